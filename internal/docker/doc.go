// Package docker provides Docker Engine API wrappers and subprocess
// invocation for the labctl CLI.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - Container status and image existence queries via the Docker SDK
//   - docker compose invocations (build, up, down, config) as child
//     processes with explicit, immutable environment overrides
//   - docker exec / docker cp invocations for entering the container
//     and copying artifacts out of it
//
// The SDK is used where an exit code or structured answer matters
// (inspect queries); compose operations shell out to the docker CLI
// because compose file merging is exactly the behavior being delegated.
// Exit codes from every subprocess are surfaced as errors; callers
// decide whether a failure is fatal.
package docker
