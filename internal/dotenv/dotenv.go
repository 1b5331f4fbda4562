// Package dotenv parses ".env"-style files into a flat key-value map.
//
// The format is deliberately minimal, matching what docker compose
// accepts with --env-file: one KEY=VALUE pair per line, split on the
// first "=" only. Lines without "=" (including blanks and comments) are
// ignored. When the same key appears more than once — within a file or
// across files — the last occurrence wins, mirroring docker compose's
// own later-file-overrides-earlier merge order.
package dotenv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads KEY=VALUE pairs from r into a map. Later duplicates
// override earlier ones. Values are kept verbatim after the first "=",
// so values containing "=" survive intact.
func Parse(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Only lines containing "=" are variable assignments; everything
		// else (blank lines, comments, prose) is skipped silently.
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		vars[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan env file: %w", err)
	}

	return vars, nil
}

// ParseFiles parses each file in order and merges the results into a
// single map, with later files overriding earlier ones on duplicate keys.
func ParseFiles(paths ...string) (map[string]string, error) {
	merged := make(map[string]string)

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open env file %s: %w", path, err)
		}

		vars, err := Parse(f)
		// Close before the error check so the handle never leaks; we open
		// one file at a time, so defer inside the loop is not needed.
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse env file %s: %w", path, err)
		}

		for k, v := range vars {
			merged[k] = v
		}
	}

	return merged, nil
}
