// Package statefile implements the persisted key-value settings store
// shared by the container interface and the X11 helper.
//
// The store is a two-level map: namespace → key → value, serialized as
// YAML to a single file (conventionally "<context>/.container.cfg").
// Every mutation is written through to disk immediately, matching the
// single-invocation process model of the CLI — there is no caching layer
// and no file locking.
package statefile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// header is prepended to every written state file. The file is managed by
// labctl but is intentionally human-editable (the X11 toggle hint tells
// users to flip X11_FORWARDING_ENABLED by hand).
const header = "# labctl state file. Values may be edited by hand while the container is stopped.\n"

// File is a namespaced key-value store persisted to a YAML file.
// The zero value is not usable; obtain one via Load.
type File struct {
	path string
	data map[string]map[string]string
}

// Load reads the state file at path. A missing file is not an error —
// it yields an empty store that will create the file on first Set.
func Load(path string) (*File, error) {
	f := &File{
		path: path,
		data: make(map[string]map[string]string),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &f.data); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	// yaml.Unmarshal leaves the map nil for an empty document.
	if f.data == nil {
		f.data = make(map[string]map[string]string)
	}

	return f, nil
}

// Path returns the on-disk location of the state file.
func (f *File) Path() string {
	return f.path
}

// Get returns the value for key in the given namespace. The second return
// value reports whether the key was present.
func (f *File) Get(namespace, key string) (string, bool) {
	ns, ok := f.data[namespace]
	if !ok {
		return "", false
	}
	value, ok := ns[key]
	return value, ok
}

// Set stores the value for key in the given namespace and persists the
// store to disk.
func (f *File) Set(namespace, key, value string) error {
	ns, ok := f.data[namespace]
	if !ok {
		ns = make(map[string]string)
		f.data[namespace] = ns
	}
	ns[key] = value
	return f.save()
}

// Delete removes the key from the given namespace and persists the store.
// Deleting an absent key is a no-op and does not touch the file.
func (f *File) Delete(namespace, key string) error {
	ns, ok := f.data[namespace]
	if !ok {
		return nil
	}
	if _, ok := ns[key]; !ok {
		return nil
	}
	delete(ns, key)
	// Drop empty namespaces so the file does not accumulate stale sections.
	if len(ns) == 0 {
		delete(f.data, namespace)
	}
	return f.save()
}

// Namespaces returns the sorted list of namespaces currently in the store.
func (f *File) Namespaces() []string {
	names := make([]string, 0, len(f.data))
	for name := range f.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// save serializes the store to YAML and writes it to disk, creating the
// parent directory if needed.
func (f *File) save() error {
	out, err := yaml.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("failed to serialize state file: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create state file directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(f.path, append([]byte(header), out...), 0644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", f.path, err)
	}
	return nil
}
