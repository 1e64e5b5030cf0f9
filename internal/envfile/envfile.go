// Package envfile generates the .env file consumed by docker-compose from its
// checked-in template.
package envfile

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// HeaderPrefix starts every banner line; template comments are dropped, banner lines are kept.
const HeaderPrefix = "#!"

// Header is the banner written at the top of a generated file.
type Header struct {
	LicensedBy    string
	License       string
	Developer     string
	PersonalPage  string
	RepositoryURL string
	// Generator names the program and version that produced the file.
	Generator   string
	GeneratedAt time.Time
}

// Lines renders the banner without trailing newline.
func (h Header) Lines() []string {
	return []string{
		fmt.Sprintf("%s (c) %d by %s. On %s license.", HeaderPrefix, h.GeneratedAt.Year(), h.LicensedBy, h.License),
		fmt.Sprintf("%s Developed by %s.", HeaderPrefix, h.Developer),
		HeaderPrefix,
		fmt.Sprintf("%s   Personal page: %s", HeaderPrefix, h.PersonalPage),
		fmt.Sprintf("%s   Repository url: %s", HeaderPrefix, h.RepositoryURL),
		HeaderPrefix,
		fmt.Sprintf("%s Generated by %s, on %s", HeaderPrefix, h.Generator, h.GeneratedAt.UTC().Format(time.RFC3339)),
		fmt.Sprintf("%s Go runtime version, %s, platform: %s", HeaderPrefix, runtime.Version(), runtime.GOOS),
	}
}

// Render produces the banner followed by the template with its comment lines removed.
func Render(h Header, template []byte) []byte {
	var buf bytes.Buffer
	for _, line := range h.Lines() {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	for _, line := range strings.Split(string(template), "\n") {
		if isComment(line) {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return bytes.TrimRight(buf.Bytes(), "\n")
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") && !strings.HasPrefix(line, HeaderPrefix)
}

// Generate renders templatePath into outputPath and returns the parsed variables.
// The output is written only if it parses as a dotenv file.
func Generate(templatePath, outputPath string, h Header) (map[string]string, error) {
	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	out := append(Render(h, tmpl), '\n')

	vars, err := godotenv.UnmarshalBytes(out)
	if err != nil {
		return nil, fmt.Errorf("generated content of %s is not a valid env file: %w", outputPath, err)
	}
	if err := os.WriteFile(outputPath, out, 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", outputPath, err)
	}
	return vars, nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
