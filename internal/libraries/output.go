package libraries

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	MarkdownFileName = "LIBRARIES.md"
	JSONFileName     = "libraries.json"
)

// RenderMarkdown produces the counts summary followed by an aligned table.
func RenderMarkdown(libs []Library) []byte {
	var runtime, development int
	for _, l := range libs {
		switch l.Env {
		case Runtime:
			runtime++
		case Development:
			development++
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "All used 3rd party libraries count: **%d**<br>\n", len(libs))
	fmt.Fprintf(&buf, "Runtime 3rd party libraries count: **%d**<br>\n", runtime)
	fmt.Fprintf(&buf, "Development 3rd party libraries count: **%d**\n\n", development)

	rows := [][]string{{"Library", "License", "Environment"}}
	for _, l := range libs {
		rows = append(rows, []string{fmt.Sprintf("[%s](%s)", l.Name, l.RepoURL), l.License, string(l.Env)})
	}
	writeTable(&buf, rows)
	return buf.Bytes()
}

func writeTable(buf *bytes.Buffer, rows [][]string) {
	rows = escapeCells(rows)
	widths := make([]int, len(rows[0]))
	for i := range widths {
		widths[i] = 3
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	line := func(cells []string) {
		buf.WriteString("|")
		for i, cell := range cells {
			buf.WriteString(" ")
			buf.WriteString(runewidth.FillRight(cell, widths[i]))
			buf.WriteString(" |")
		}
		buf.WriteString("\n")
	}

	line(rows[0])
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	line(sep)
	for _, row := range rows[1:] {
		line(row)
	}
}

// escapeCells returns a copy of rows with pipes escaped so they stay inside their cell.
func escapeCells(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = strings.ReplaceAll(cell, "|", `\|`)
		}
	}
	return out
}

// RenderJSON produces the compact array served by the content distributor.
func RenderJSON(libs []Library) ([]byte, error) {
	if libs == nil {
		libs = []Library{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(libs); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteMarkdown writes RenderMarkdown to path.
func WriteMarkdown(path string, libs []Library) error {
	return os.WriteFile(path, RenderMarkdown(libs), 0o644)
}

// WriteJSON writes RenderJSON to path, creating its directory.
func WriteJSON(path string, libs []Library) error {
	data, err := RenderJSON(libs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
