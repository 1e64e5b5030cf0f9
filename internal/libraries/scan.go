// Package libraries builds the third-party library inventory of the
// JavaScript modules: it scans package.json manifests, enriches every
// dependency with npm registry metadata and writes LIBRARIES.md and
// libraries.json.
package libraries

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Environment tells whether a library ships with the application.
type Environment string

const (
	Runtime     Environment = "runtime"
	Development Environment = "development"
)

// ManifestName is the file scanned in every module.
const ManifestName = "package.json"

// Dependency is a library name found in a manifest.
type Dependency struct {
	Name string
	Env  Environment
}

type manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Scan reads the manifest of every directory and returns the dependencies
// unique by name, sorted by name. The first occurrence of a name decides its
// environment; directories are visited in order and runtime dependencies of a
// manifest come before its development dependencies.
func Scan(dirs ...string) ([]Dependency, error) {
	seen := make(map[string]struct{})
	var out []Dependency
	add := func(names map[string]string, env Environment) {
		for _, name := range sortedNames(names) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, Dependency{Name: name, Env: env})
		}
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, ManifestName)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var m manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		add(m.Dependencies, Runtime)
		add(m.DevDependencies, Development)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
