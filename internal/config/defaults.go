package config

// Defaults mirrors the usual checkout layout: every module lives next to the
// CLI checkout, in the parent directory.
func Defaults() *Config {
	return &Config{
		Root: "..",
		Project: ProjectConfig{
			LicensedBy:    "MoonSphere Systems",
			License:       "Apache 2.0",
			Developer:     "MILOSZ GILGA",
			PersonalPage:  "https://miloszgilga.pl",
			RepositoryURL: "https://github.com/moonsphere-systems",
		},
		Docker: DockerConfig{
			Namespace:      "milosz08",
			ComposeProject: "moonsphere",
			ComposeFile:    "docker/docker-compose.yml",
			EnvFile:        ".env",
			EnvTemplate:    "example.env",
			KeysDir:        "rsa-keys",
			DockerIgnore:   "docker/.dockerignore",
		},
		S3: S3Config{
			Alias:       "miniotr",
			Port:        9000,
			AccessKey:   "${MSPH_S3_USER}",
			SecretKey:   "${MSPH_S3_PASSWORD}",
			Bucket:      "static",
			TransferDir: "/s3-transfer/",
		},
		Modules: map[string]Module{
			ModuleContentDistributor: {Path: "moonsphere-content-distributor", Container: "msph-content-distributor"},
			ModuleWebClient:          {Path: "moonsphere-web-client", Container: "msph-web-client", Image: "msph-web-client"},
			ModuleLandingPage:        {Path: "moonsphere-landing-page", Container: "msph-landing-page", Image: "msph-landing-page"},
			ModuleDesktopClient:      {Path: "moonsphere-desktop-client"},
			ModuleBase:               {Path: "moonsphere-base"},
			ModuleCLI:                {Path: "moonsphere-cli"},
			ModuleMailParser:         {Path: "moonsphere-mail-parser", Image: "msph-mail-parser"},
			ModuleS3Static:           {Path: "moonsphere-s3-static", Container: "msph-s3-static"},
			ModuleInfraMonorepo:      {Path: "moonsphere-infra-monorepo"},
		},
	}
}
