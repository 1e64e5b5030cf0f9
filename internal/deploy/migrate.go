package deploy

import (
	"fmt"
	"path/filepath"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	"github.com/moonsphere-systems/moonsphere-cli/internal/docker"
	msphErrors "github.com/moonsphere-systems/moonsphere-cli/internal/errors"
	"github.com/moonsphere-systems/moonsphere-cli/internal/pipeline"
	"github.com/moonsphere-systems/moonsphere-cli/internal/process"
)

const (
	webRoot            = "/var/www/html/"
	landingPageContent = "/msph-landing-page-content/dist/"
)

// Migration targets accepted by the migrate command.
var MigrationTargets = []string{
	config.ModuleWebClient,
	config.ModuleLandingPage,
	config.ModuleContentDistributor,
	config.ModuleS3Static,
}

type moduleTarget struct {
	dir       string
	container string
}

func lookupTarget(cfg *config.Config, module string) (moduleTarget, error) {
	dir, err := cfg.ModulePath(module)
	if err != nil {
		return moduleTarget{}, err
	}
	container, err := cfg.Container(module)
	if err != nil {
		return moduleTarget{}, err
	}
	return moduleTarget{dir: dir, container: container}, nil
}

func yarnBuild(dir string, mode Mode) process.Invocation {
	return process.Command("yarn", "run", "docker:"+string(mode)).In(dir)
}

// MigrateWebClient bundles the web client and replaces the content served by its container.
func MigrateWebClient(cfg *config.Config, mode Mode) (Plan, error) {
	t, err := lookupTarget(cfg, config.ModuleWebClient)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Name:    "migrate-web-client",
		Notes:   []Note{modeNote(mode)},
		Success: "Migrated web-client into docker container.",
		Stages: []pipeline.Stage{
			docker.RunningCheck(t.container),
			pipeline.Command("Compiling webpack bundles", "compiled webpack bundles", yarnBuild(t.dir, mode)),
			pipeline.Command("Clear docker container /var/www/html directory",
				"cleared docker container /var/www/html directory", docker.RemoveAll(t.container, webRoot)),
			pipeline.Command("Migrate bundled content into docker container",
				"migrated bundled content into docker container",
				docker.CopyTo(filepath.Join(t.dir, "dist"), t.container, webRoot)),
		},
	}, nil
}

// MigrateLandingPage bundles the landing page, replaces its content and restarts the server.
func MigrateLandingPage(cfg *config.Config, mode Mode) (Plan, error) {
	t, err := lookupTarget(cfg, config.ModuleLandingPage)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Name:    "migrate-landing-page",
		Notes:   []Note{modeNote(mode)},
		Success: "Migrated landing-page into docker container.",
		Stages: []pipeline.Stage{
			docker.RunningCheck(t.container),
			pipeline.Command("Compiling vite (astro) bundles", "compiled vite (astro) bundles", yarnBuild(t.dir, mode)),
			pipeline.Command("Clear docker container /dist directory",
				"cleared docker container /dist directory", docker.RemoveAll(t.container, landingPageContent)),
			pipeline.Command("Migrate bundled content into docker container",
				"migrated bundled content into docker container",
				docker.CopyTo(filepath.Join(t.dir, "dist"), t.container, landingPageContent)),
			pipeline.Command("Restarting Astro Node web server", "restarted Astro Node web server",
				docker.Restart(t.container)),
		},
	}, nil
}

// MigrateContentDistributor replaces the static content of the content distributor,
// optionally restarting its web server.
func MigrateContentDistributor(cfg *config.Config, mode Mode, restart bool) (Plan, error) {
	t, err := lookupTarget(cfg, config.ModuleContentDistributor)
	if err != nil {
		return Plan{}, err
	}
	stages := pipeline.NewBuilder().
		Add(
			docker.RunningCheck(t.container),
			pipeline.Command("Clear docker container /var/www/html directory",
				"cleared docker container /var/www/html directory", docker.RemoveAll(t.container, webRoot)),
			pipeline.Command("Migrate static content into docker container",
				"migrated static content into docker container",
				docker.CopyTo(filepath.Join(t.dir, "content"), t.container, webRoot)),
		).
		AddIf(restart, pipeline.Command("Restarting ApacheWeb server", "restarted ApacheWeb server",
			docker.Exec(t.container, "apachectl", "restart"))).
		Build()

	return Plan{
		Name:    "migrate-content-distributor",
		Notes:   []Note{modeNote(mode)},
		Success: "Migrated content-distributor into docker container.",
		Stages:  stages,
	}, nil
}

// MigrateS3Static refreshes the static bucket from the transfer directory mounted
// into the object storage container.
func MigrateS3Static(cfg *config.Config) (Plan, error) {
	container, err := cfg.Container(config.ModuleS3Static)
	if err != nil {
		return Plan{}, err
	}
	s3 := cfg.S3
	if s3.AccessKey == "" {
		return Plan{}, msphErrors.ValidationFailed("s3.access_key", "s3 access key is empty (set MSPH_S3_USER)")
	}
	if s3.SecretKey == "" {
		return Plan{}, msphErrors.ValidationFailed("s3.secret_key", "s3 secret key is empty (set MSPH_S3_PASSWORD)")
	}
	bucket := s3.Alias + "/" + s3.Bucket + "/"
	return Plan{
		Name:    "migrate-s3-static",
		Success: "Migrated s3 static into docker container.",
		Stages: []pipeline.Stage{
			docker.RunningCheck(container),
			pipeline.Command("Establishing connection with s3 bucket", "established connection with s3 bucket",
				docker.Exec(container, "mc", "alias", "set", s3.Alias, fmt.Sprintf("http://localhost:%d", s3.Port)).
					WithSecrets(s3.AccessKey, s3.SecretKey)),
			pipeline.Command("Clearing s3 bucket", "cleared s3 bucket",
				docker.Exec(container, "mc", "rm", "--force", "--recursive", bucket)),
			pipeline.Command("Migrating s3 content into static bucket", "migrated s3 content into static bucket",
				docker.Exec(container, "mc", "cp", "--recursive", s3.TransferDir, bucket)),
		},
	}, nil
}
