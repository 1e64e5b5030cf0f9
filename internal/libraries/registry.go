package libraries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	msphErrors "github.com/moonsphere-systems/moonsphere-cli/internal/errors"
)

// DefaultRegistryURL is the public npm registry.
const DefaultRegistryURL = "https://registry.npmjs.org"

// maxResponseSize bounds a single registry document.
const maxResponseSize = 4 << 20

// PackageInfo is the subset of registry metadata the inventory needs.
type PackageInfo struct {
	Name    string
	License string
	RepoURL string
}

// Client queries the npm registry.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the public registry.
func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultRegistryURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type registryDocument struct {
	Name       string          `json:"name"`
	License    json.RawMessage `json:"license"`
	Repository json.RawMessage `json:"repository"`
	Homepage   string          `json:"homepage"`
}

// Latest fetches the metadata of the latest published version of name.
func (c *Client) Latest(ctx context.Context, name string) (PackageInfo, error) {
	url := strings.TrimRight(c.BaseURL, "/") + "/" + name + "/latest"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PackageInfo{}, msphErrors.RegistryRequestFailed(url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return PackageInfo{}, msphErrors.RegistryRequestFailed(url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return PackageInfo{}, msphErrors.RegistryRequestFailed(url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	var doc registryDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&doc); err != nil {
		return PackageInfo{}, msphErrors.RegistryRequestFailed(url, err)
	}

	info := PackageInfo{Name: name, License: licenseOf(doc.License)}
	if repo := repositoryOf(doc.Repository); repo != "" {
		info.RepoURL = NormalizeRepoURL(repo)
	} else {
		info.RepoURL = doc.Homepage
	}
	return info, nil
}

var repoPattern = regexp.MustCompile(`\.com/(.+?)\.git$`)

// NormalizeRepoURL turns a git remote such as git+https://github.com/a/b.git
// into the browsable https://github.com/a/b. Other URLs are returned as is.
func NormalizeRepoURL(raw string) string {
	if m := repoPattern.FindStringSubmatch(raw); m != nil {
		return "https://github.com/" + m[1]
	}
	return raw
}

// license is either "MIT" or {"type": "MIT"} in older documents.
func licenseOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Type string `json:"type"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return obj.Type
	}
	return ""
}

// repository is either a shorthand string or {"type": "git", "url": "..."}.
func repositoryOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return obj.URL
	}
	return ""
}
