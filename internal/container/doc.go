// Package container implements the Isaac Lab container interface: it
// resolves a named profile into the compose file, profile filter, and
// env-file argument lists, and issues build/start/enter/stop/copy/config
// operations against the container derived from that profile.
//
// All heavy lifting is delegated: compose merging and container lifecycle
// to docker compose, status queries to the Docker SDK. What this package
// owns is the argument accumulation order (later compose files override
// earlier ones), the dot-env variable view used to locate artifacts
// inside the container, and the running-container preconditions on
// enter/stop/copy.
package container
