package model

import (
	"fmt"
	"regexp"
)

// Profile selects a named container configuration variant. The profile
// determines the derived container name, image name, and which
// profile-specific env file is appended to the compose invocation.
type Profile string

const (
	// ProfileBase is the default profile. It selects the core Isaac Lab
	// container without any profile-specific env file.
	ProfileBase Profile = "base"
)

// profileAliases maps commonly passed but non-existent profile names to
// their real counterparts. Keeping this as an explicit table (rather than
// special-casing inside Normalize) makes the alias list auditable and easy
// to extend.
//
// "isaaclab" is a frequently passed argument because it matches the
// project name, but it is not a real profile — it silently resolves
// to "base".
var profileAliases = map[Profile]Profile{
	"isaaclab": ProfileBase,
}

// profileRegex validates profile names: lowercase alphanumeric segments
// separated by single hyphens or underscores. The profile name is embedded
// into container and image names, so it must be a valid Docker name segment.
var profileRegex = regexp.MustCompile(`^[a-z0-9]+([_-][a-z0-9]+)*$`)

// Normalize resolves profile aliases and returns the canonical profile.
// An empty profile resolves to ProfileBase.
func (p Profile) Normalize() Profile {
	if p == "" {
		return ProfileBase
	}
	if canonical, ok := profileAliases[p]; ok {
		return canonical
	}
	return p
}

// Validate checks that the profile name is usable as a Docker name segment.
// Callers should Normalize first; Validate does not resolve aliases.
func (p Profile) Validate() error {
	if p == "" {
		return fmt.Errorf("profile name must not be empty")
	}
	if !profileRegex.MatchString(string(p)) {
		return fmt.Errorf("invalid profile name %q: must contain only lowercase alphanumeric characters, hyphens, and underscores", p)
	}
	return nil
}

// ContainerName returns the Docker container name derived from the profile.
// Format: "isaac-lab-<profile>".
func (p Profile) ContainerName() string {
	return "isaac-lab-" + string(p)
}

// ImageName returns the Docker image reference derived from the profile.
// Format: "isaac-lab-<profile>:latest".
func (p Profile) ImageName() string {
	return "isaac-lab-" + string(p) + ":latest"
}

// String returns the string representation of the profile.
// This satisfies the fmt.Stringer interface for CLI output and logging.
func (p Profile) String() string {
	return string(p)
}

// IsBase reports whether this is the base profile. Non-base profiles get
// an additional ".env.<profile>" env file appended after ".env.base".
func (p Profile) IsBase() bool {
	return p == ProfileBase
}
