// Package config loads the static module map: which filesystem path and
// container belong to each logical MoonSphere module, plus project metadata
// used by the pipelines. It is loaded once at start and read-only afterwards.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	msphErrors "github.com/moonsphere-systems/moonsphere-cli/internal/errors"
)

// Logical module names.
const (
	ModuleContentDistributor = "content-distributor"
	ModuleWebClient          = "web-client"
	ModuleLandingPage        = "landing-page"
	ModuleDesktopClient      = "desktop-client"
	ModuleBase               = "base"
	ModuleCLI                = "cli"
	ModuleMailParser         = "mail-parser"
	ModuleS3Static           = "s3-static"
	ModuleInfraMonorepo      = "infra-monorepo"
)

// Config represents the application configuration.
type Config struct {
	// Root is the directory module paths are resolved against.
	Root    string            `yaml:"root"`
	Project ProjectConfig     `yaml:"project"`
	Docker  DockerConfig      `yaml:"docker"`
	S3      S3Config          `yaml:"s3"`
	Modules map[string]Module `yaml:"modules"`
}

// ProjectConfig is printed in headers and generated file banners.
type ProjectConfig struct {
	LicensedBy    string `yaml:"licensed_by"`
	License       string `yaml:"license"`
	Developer     string `yaml:"developer"`
	PersonalPage  string `yaml:"personal_page"`
	RepositoryURL string `yaml:"repository_url"`
}

// DockerConfig holds container runtime settings.
type DockerConfig struct {
	// Namespace is the registry namespace images are pushed to.
	Namespace string `yaml:"namespace"`
	// ComposeProject is passed as --project-name to docker-compose.
	ComposeProject string `yaml:"compose_project"`
	// The paths below are relative to the base module.
	ComposeFile  string `yaml:"compose_file"`
	EnvFile      string `yaml:"env_file"`
	EnvTemplate  string `yaml:"env_template"`
	KeysDir      string `yaml:"keys_dir"`
	DockerIgnore string `yaml:"dockerignore"`
}

// S3Config describes the object-storage CLI alias used by the s3-static migrator.
type S3Config struct {
	Alias       string `yaml:"alias"`
	Port        int    `yaml:"port"`
	AccessKey   string `yaml:"access_key"`
	SecretKey   string `yaml:"secret_key"`
	Bucket      string `yaml:"bucket"`
	TransferDir string `yaml:"transfer_dir"`
}

// Module is one submodule checkout.
type Module struct {
	Path string `yaml:"path"`
	// Container is empty for modules not deployed as a container.
	Container string `yaml:"container,omitempty"`
	// Image is the repository name for modules published as an image.
	Image string `yaml:"image,omitempty"`
}

// Load reads the configuration. An empty path yields the defaults resolved
// against the current working directory.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	cfg := Defaults()
	cfg.S3.AccessKey = os.ExpandEnv(cfg.S3.AccessKey)
	cfg.S3.SecretKey = os.ExpandEnv(cfg.S3.SecretKey)

	base, err := os.Getwd()
	if err != nil {
		return nil, msphErrors.InternalError("cannot determine working directory", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, msphErrors.ConfigNotFound(configPath)
		}
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, msphErrors.ConfigInvalid(configPath, err)
		}

		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, msphErrors.ConfigInvalid(configPath, err)
		}
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, msphErrors.ConfigInvalid(configPath, err)
		}
		base = filepath.Dir(abs)
	}

	if root := os.Getenv("MSPH_ROOT"); root != "" {
		cfg.Root = root
	}

	cfg.resolve(base)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolve(base string) {
	if !filepath.IsAbs(c.Root) {
		c.Root = filepath.Join(base, c.Root)
	}
	c.Root = filepath.Clean(c.Root)
	for name, m := range c.Modules {
		if m.Path != "" && !filepath.IsAbs(m.Path) {
			m.Path = filepath.Join(c.Root, m.Path)
		}
		c.Modules[name] = m
	}
}

// Validate checks the invariants the pipelines rely on.
func (c *Config) Validate() error {
	for _, name := range c.ModuleNames() {
		if c.Modules[name].Path == "" {
			return msphErrors.New(msphErrors.CategoryConfig, msphErrors.SeverityFatal, "module path is required").
				WithContext("module", name)
		}
	}
	if c.Docker.Namespace == "" {
		return msphErrors.ValidationFailed("docker.namespace", "docker namespace is required")
	}
	if c.S3.Port <= 0 || c.S3.Port > 65535 {
		return msphErrors.ValidationFailed("s3.port", fmt.Sprintf("invalid port %d", c.S3.Port))
	}
	return nil
}

// Module returns a configured module by logical name.
func (c *Config) Module(name string) (Module, error) {
	m, ok := c.Modules[name]
	if !ok {
		return Module{}, msphErrors.ModuleNotConfigured(name)
	}
	return m, nil
}

// ModulePath returns the absolute checkout path of a module.
func (c *Config) ModulePath(name string) (string, error) {
	m, err := c.Module(name)
	if err != nil {
		return "", err
	}
	return m.Path, nil
}

// Container returns the container name of a module.
func (c *Config) Container(name string) (string, error) {
	m, err := c.Module(name)
	if err != nil {
		return "", err
	}
	if m.Container == "" {
		return "", msphErrors.ContainerNotConfigured(name)
	}
	return m.Container, nil
}

// BasePath joins elem onto the base module path.
func (c *Config) BasePath(elem ...string) (string, error) {
	base, err := c.ModulePath(ModuleBase)
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{base}, elem...)...), nil
}

// ModuleNames returns the configured module names in sorted order.
func (c *Config) ModuleNames() []string {
	names := make([]string, 0, len(c.Modules))
	for name := range c.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Init writes a configuration file populated with the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return msphErrors.New(msphErrors.CategoryConfig, msphErrors.SeverityFatal,
			"configuration file already exists (use --force to overwrite)").WithContext("path", configPath)
	}

	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return msphErrors.InternalError("failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return msphErrors.FileSystemError("write", configPath, err)
	}
	return nil
}
