package libraries

import (
	"context"
	"fmt"
)

// Library is one row of the inventory.
type Library struct {
	Name    string      `json:"name"`
	RepoURL string      `json:"repoUrl"`
	License string      `json:"license"`
	Env     Environment `json:"env"`
}

// StaticReplacements are published without usable registry metadata.
var StaticReplacements = []Library{
	{Name: "@ngx-translate/core", RepoURL: "https://github.com/ngx-translate/core", License: "MIT", Env: Runtime},
	{Name: "@ngx-translate/http-loader", RepoURL: "https://github.com/ngx-translate/core", License: "MIT", Env: Runtime},
}

// Lookup fetches registry metadata for one package.
type Lookup interface {
	Latest(ctx context.Context, name string) (PackageInfo, error)
}

// Coverage counts how many libraries were enriched from the registry.
type Coverage struct {
	Fetched int
	Total   int
}

// Percent is the rounded-up share of fetched libraries.
func (c Coverage) Percent() int {
	if c.Total == 0 {
		return 0
	}
	return (c.Fetched*100 + c.Total - 1) / c.Total
}

func (c Coverage) String() string {
	return fmt.Sprintf("%d of %d (coverage: %d%%)", c.Fetched, c.Total, c.Percent())
}

// Resolver turns scanned dependencies into inventory rows.
type Resolver struct {
	Registry     Lookup
	Replacements []Library
	// Progress, when set, receives one status line per dependency.
	Progress func(status string)
}

// Resolve looks every dependency up, one request at a time. The first failed
// lookup aborts the resolution.
func (r Resolver) Resolve(ctx context.Context, deps []Dependency) ([]Library, Coverage, error) {
	replacements := make(map[string]Library, len(r.Replacements))
	for _, lib := range r.Replacements {
		replacements[lib.Name] = lib
	}

	cov := Coverage{Total: len(deps)}
	out := make([]Library, 0, len(deps))
	for i, dep := range deps {
		if lib, ok := replacements[dep.Name]; ok {
			out = append(out, lib)
			r.report(fmt.Sprintf("%d/%d Skipping fetching data for: %s.", i+1, len(deps), dep.Name))
			continue
		}
		info, err := r.Registry.Latest(ctx, dep.Name)
		if err != nil {
			return out, cov, err
		}
		cov.Fetched++
		out = append(out, Library{Name: dep.Name, RepoURL: info.RepoURL, License: info.License, Env: dep.Env})
		r.report(fmt.Sprintf("%d/%d Fetched data for: %s.", i+1, len(deps), dep.Name))
	}
	return out, cov, nil
}

func (r Resolver) report(status string) {
	if r.Progress != nil {
		r.Progress(status)
	}
}
