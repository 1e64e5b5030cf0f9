package deploy

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	"github.com/moonsphere-systems/moonsphere-cli/internal/docker"
	"github.com/moonsphere-systems/moonsphere-cli/internal/libraries"
	"github.com/moonsphere-systems/moonsphere-cli/internal/pipeline"
)

// ScannedModules are the modules whose package.json files form the inventory.
var ScannedModules = []string{
	config.ModuleBase,
	config.ModuleCLI,
	config.ModuleWebClient,
	config.ModuleDesktopClient,
	config.ModuleLandingPage,
}

const staticMiscDir = "/var/www/html/static/misc/"

// Libraries regenerates the third-party library inventory and publishes its
// JSON form through the content distributor.
func Libraries(cfg *config.Config, registry libraries.Lookup) (Plan, error) {
	dirs := make([]string, 0, len(ScannedModules))
	for _, name := range ScannedModules {
		dir, err := cfg.ModulePath(name)
		if err != nil {
			return Plan{}, err
		}
		dirs = append(dirs, dir)
	}
	t, err := lookupTarget(cfg, config.ModuleContentDistributor)
	if err != nil {
		return Plan{}, err
	}
	markdownPath, err := cfg.BasePath(libraries.MarkdownFileName)
	if err != nil {
		return Plan{}, err
	}
	jsonPath := filepath.Join(t.dir, "content", "static", "misc", libraries.JSONFileName)

	// Stages hand their results to the next one through these.
	var (
		deps []libraries.Dependency
		libs []libraries.Library
	)

	scan := pipeline.Task(
		`Scanning "package.json" files`,
		`Ended scanning "package.json" files`,
		"Unable to scan some of the packages",
		func(_ context.Context, rt *pipeline.Runtime) error {
			var err error
			if deps, err = libraries.Scan(dirs...); err != nil {
				return err
			}
			rt.Succeed(fmt.Sprintf(`Ended scanning "package.json" files. Resolve %d dependencies`, len(deps)))
			return nil
		},
	)

	fetch := pipeline.Task(
		"Fetching additional informations for scanned libraries",
		"Fetched additional informations for scanned libraries",
		"Unable to fetch additional informations for scanned libraries",
		func(ctx context.Context, rt *pipeline.Runtime) error {
			r := libraries.Resolver{
				Registry:     registry,
				Replacements: libraries.StaticReplacements,
				Progress:     rt.Update,
			}
			resolved, cov, err := r.Resolve(ctx, deps)
			if err != nil {
				return err
			}
			libs = resolved
			rt.Succeed(fmt.Sprintf("Fetched additional informations for %s scanned libraries", cov))
			return nil
		},
	)

	save := pipeline.Task(
		"Saving generated libraries data in output files",
		"Successfully saved data in output files (2/2)",
		"Unable to save data in some output file/s",
		func(_ context.Context, rt *pipeline.Runtime) error {
			if err := libraries.WriteMarkdown(markdownPath, libs); err != nil {
				return err
			}
			rt.Update("1/2 Saved data to file: " + libraries.MarkdownFileName + ".")
			if err := libraries.WriteJSON(jsonPath, libs); err != nil {
				return err
			}
			rt.Update("2/2 Saved data to file: " + libraries.JSONFileName + ".")
			return nil
		},
	)

	return Plan{
		Name: "libraries",
		Notes: []Note{
			note("Scanning packages: %s", strings.Join(dirs, ", ")),
			note("Output files: [ %s, %s ]", libraries.MarkdownFileName, libraries.JSONFileName),
		},
		Success: "All processing was done.",
		Stages: []pipeline.Stage{
			docker.RunningCheck(t.container),
			scan,
			fetch,
			save,
			pipeline.Command(
				fmt.Sprintf("Removing %s file from docker container", libraries.JSONFileName),
				fmt.Sprintf("removed %s file from docker container", libraries.JSONFileName),
				docker.RemoveAll(t.container, staticMiscDir+libraries.JSONFileName)),
			pipeline.Command(
				fmt.Sprintf("Migrate %s file into docker container", libraries.JSONFileName),
				fmt.Sprintf("migrated %s file into docker container", libraries.JSONFileName),
				docker.CopyTo(jsonPath, t.container, staticMiscDir)),
		},
	}, nil
}
