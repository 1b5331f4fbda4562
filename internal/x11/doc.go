// Package x11 manages X11 display forwarding into the Isaac Lab container.
//
// Forwarding requires sharing an X authority cookie with the container:
// the helper derives the cookie for the host's current DISPLAY via xauth,
// strips the "ffff" wildcard-family marker so the cookie matches any
// hostname, and merges it into a temporary .xauth file that the x11.yaml
// compose overlay mounts into the container.
//
// Two values persist across invocations in the state file's "X11"
// namespace: whether the user enabled forwarding (asked once, then
// remembered) and the path of the temporary auth file (so restarts reuse
// it and stop can remove it).
//
// The cookie-handling approach follows osrf/rocker.
package x11
