package libraries

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0o600))
	return dir
}

func TestScan_UniqueSortedFirstOccurrenceWins(t *testing.T) {
	a := writeManifest(t, `{
		"dependencies": {"rxjs": "^7", "@angular/core": "^16"},
		"devDependencies": {"typescript": "^5", "rxjs": "^7"}
	}`)
	b := writeManifest(t, `{"devDependencies": {"@angular/core": "^16", "eslint": "^8"}}`)
	c := writeManifest(t, `{"name": "no-deps"}`)

	deps, err := Scan(a, b, c)
	require.NoError(t, err)
	assert.Equal(t, []Dependency{
		{Name: "@angular/core", Env: Runtime},
		{Name: "eslint", Env: Development},
		{Name: "rxjs", Env: Runtime},
		{Name: "typescript", Env: Development},
	}, deps)
}

func TestScan_Errors(t *testing.T) {
	_, err := Scan(t.TempDir())
	require.Error(t, err)

	_, err = Scan(writeManifest(t, "{"))
	require.Error(t, err)
}

type fakeLookup map[string]PackageInfo

func (f fakeLookup) Latest(_ context.Context, name string) (PackageInfo, error) {
	info, ok := f[name]
	if !ok {
		return PackageInfo{}, errors.New("not found: " + name)
	}
	return info, nil
}

func TestResolver(t *testing.T) {
	var statuses []string
	r := Resolver{
		Registry: fakeLookup{
			"rxjs":       {License: "Apache-2.0", RepoURL: "https://github.com/reactivex/rxjs"},
			"typescript": {License: "Apache-2.0", RepoURL: "https://github.com/microsoft/TypeScript"},
		},
		Replacements: StaticReplacements,
		Progress:     func(s string) { statuses = append(statuses, s) },
	}
	deps := []Dependency{
		{Name: "@ngx-translate/core", Env: Development},
		{Name: "rxjs", Env: Runtime},
		{Name: "typescript", Env: Development},
	}

	libs, cov, err := r.Resolve(context.Background(), deps)
	require.NoError(t, err)
	assert.Equal(t, Coverage{Fetched: 2, Total: 3}, cov)
	assert.Equal(t, "2 of 3 (coverage: 67%)", cov.String())
	require.Len(t, libs, 3)
	assert.Equal(t, StaticReplacements[0], libs[0])
	assert.Equal(t, Library{Name: "rxjs", RepoURL: "https://github.com/reactivex/rxjs", License: "Apache-2.0", Env: Runtime}, libs[1])
	assert.Equal(t, []string{
		"1/3 Skipping fetching data for: @ngx-translate/core.",
		"2/3 Fetched data for: rxjs.",
		"3/3 Fetched data for: typescript.",
	}, statuses)
}

func TestResolver_FailsOnFirstLookupError(t *testing.T) {
	r := Resolver{Registry: fakeLookup{}}
	libs, cov, err := r.Resolve(context.Background(), []Dependency{{Name: "missing", Env: Runtime}, {Name: "other"}})
	require.Error(t, err)
	assert.Empty(t, libs)
	assert.Equal(t, 0, cov.Fetched)
}

func TestCoveragePercent(t *testing.T) {
	assert.Equal(t, 0, Coverage{}.Percent())
	assert.Equal(t, 100, Coverage{Fetched: 5, Total: 5}.Percent())
	assert.Equal(t, 34, Coverage{Fetched: 1, Total: 3}.Percent())
}

func TestRenderMarkdown(t *testing.T) {
	libs := []Library{
		{Name: "rxjs", RepoURL: "https://github.com/reactivex/rxjs", License: "Apache-2.0", Env: Runtime},
		{Name: "ts", RepoURL: "u", License: "MIT", Env: Development},
	}
	out := string(RenderMarkdown(libs))
	want := strings.Join([]string{
		"All used 3rd party libraries count: **2**<br>",
		"Runtime 3rd party libraries count: **1**<br>",
		"Development 3rd party libraries count: **1**",
		"",
		"| Library                                   | License    | Environment |",
		"| ----------------------------------------- | ---------- | ----------- |",
		"| [rxjs](https://github.com/reactivex/rxjs) | Apache-2.0 | runtime     |",
		"| [ts](u)                                   | MIT        | development |",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRenderMarkdown_EscapesPipes(t *testing.T) {
	libs := []Library{{Name: "a", RepoURL: "u", License: "MIT|Apache", Env: Runtime}}
	out := string(RenderMarkdown(libs))

	assert.Contains(t, out, "| [a](u)  | MIT\\|Apache | runtime     |")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	table := lines[len(lines)-3:]
	for _, line := range table {
		assert.Equal(t, runewidth.StringWidth(table[0]), runewidth.StringWidth(line), line)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON([]Library{{Name: "a&b", RepoURL: "u", License: "MIT", Env: Runtime}})
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"a&b","repoUrl":"u","license":"MIT","env":"runtime"}]`, string(data))

	data, err = RenderJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	libs := []Library{{Name: "a", RepoURL: "u", License: "MIT", Env: Runtime}}
	require.NoError(t, WriteMarkdown(filepath.Join(dir, MarkdownFileName), libs))
	require.NoError(t, WriteJSON(filepath.Join(dir, JSONFileName), libs))

	md, err := os.ReadFile(filepath.Join(dir, MarkdownFileName))
	require.NoError(t, err)
	assert.Contains(t, string(md), "| [a](u)  | MIT     | runtime     |")
}
