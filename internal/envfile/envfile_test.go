package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeader() Header {
	return Header{
		LicensedBy:    "MoonSphere Systems",
		License:       "Apache 2.0",
		Developer:     "MILOSZ GILGA",
		PersonalPage:  "https://miloszgilga.pl",
		RepositoryURL: "https://github.com/moonsphere-systems",
		Generator:     "msph dev",
		GeneratedAt:   time.Date(2023, 8, 20, 14, 28, 32, 0, time.UTC),
	}
}

func TestRender_FiltersCommentsKeepsBanners(t *testing.T) {
	tmpl := strings.Join([]string{
		"# database settings",
		"#! keep me",
		"DB_HOST=localhost",
		"",
		"# port",
		"DB_PORT=5432",
	}, "\n")

	out := string(Render(testHeader(), []byte(tmpl)))
	lines := strings.Split(out, "\n")

	assert.Equal(t, "#! (c) 2023 by MoonSphere Systems. On Apache 2.0 license.", lines[0])
	assert.Equal(t, "#! Developed by MILOSZ GILGA.", lines[1])
	assert.Equal(t, "#!   Repository url: https://github.com/moonsphere-systems", lines[4])
	assert.Equal(t, "#! Generated by msph dev, on 2023-08-20T14:28:32Z", lines[6])
	assert.Equal(t, "", lines[8])
	assert.Equal(t, []string{"#! keep me", "DB_HOST=localhost", "", "DB_PORT=5432"}, lines[9:])
	assert.NotContains(t, out, "database settings")
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "example.env")
	out := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(tmpl, []byte("# comment\nA=1\nB=\"two words\"\n"), 0o600))

	assert.False(t, Exists(out))
	vars, err := Generate(tmpl, out, testHeader())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "two words"}, vars)
	assert.True(t, Exists(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), HeaderPrefix))
	assert.True(t, strings.HasSuffix(string(data), "B=\"two words\"\n"))
}

func TestGenerate_MissingTemplate(t *testing.T) {
	dir := t.TempDir()
	_, err := Generate(filepath.Join(dir, "example.env"), filepath.Join(dir, ".env"), testHeader())
	require.Error(t, err)
	assert.False(t, Exists(filepath.Join(dir, ".env")))
}

func TestExists_Directory(t *testing.T) {
	assert.False(t, Exists(t.TempDir()))
}
