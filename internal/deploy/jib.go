package deploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	msphErrors "github.com/moonsphere-systems/moonsphere-cli/internal/errors"
	"github.com/moonsphere-systems/moonsphere-cli/internal/pipeline"
	"github.com/moonsphere-systems/moonsphere-cli/internal/process"
)

// JibLibraries are the shared monorepo libraries that can be reinstalled before a build.
var JibLibraries = []string{"msph-shared-lib"}

const rootPomProject = "moonsphere-infra-monorepo"

// DefaultM2Dir is the local Maven repository group directory of the project artifacts.
func DefaultM2Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", msphErrors.InternalError("cannot determine home directory", err)
	}
	return filepath.Join(home, ".m2", "repository", "pl", "moonsphere"), nil
}

func mvn(args ...string) process.Invocation {
	return process.Command("mvn", args...)
}

// JibImage builds and publishes the image of a monorepo service with the Jib
// Maven plugin. With libs the listed libraries and the root pom are reinstalled
// into the local repository first.
func JibImage(cfg *config.Config, service string, libs []string, m2Dir string) (Plan, error) {
	if strings.TrimSpace(service) == "" {
		return Plan{}, msphErrors.ValidationFailed("service", "service name is required")
	}
	for _, lib := range libs {
		if err := allowed("libs", lib, JibLibraries); err != nil {
			return Plan{}, err
		}
	}
	monorepo, err := cfg.ModulePath(config.ModuleInfraMonorepo)
	if err != nil {
		return Plan{}, err
	}
	rootPom := filepath.Join(monorepo, "pom.xml")
	servicePom := filepath.Join(monorepo, service, "pom.xml")

	cleanup := pipeline.Task(
		"Removing old artifacts from .m2 local repository",
		"Successfully removed old artifacts from .m2 local repository",
		"Unable to remove old artifacts from .m2 local repository",
		func(_ context.Context, rt *pipeline.Runtime) error {
			for _, name := range append([]string{rootPomProject}, libs...) {
				dir := filepath.Join(m2Dir, name)
				if err := os.RemoveAll(dir); err != nil {
					return msphErrors.FileSystemError("remove", dir, err)
				}
				rt.Update("Removed " + name)
			}
			return nil
		},
	)

	stages := pipeline.NewBuilder().
		Add(pipeline.Command("Checking Maven installation", "checked maven installation", mvn("-version"))).
		AddIf(len(libs) > 0,
			cleanup,
			pipeline.Command("Maven installing root pom.xml file to local .m2 repository",
				"installed root pom.xml file to local .m2 repository", mvn("-f", rootPom, "-N", "install", "-U")),
			pipeline.Command("Maven installing libraries to local .m2 repository",
				"installed libraries to local .m2 repository",
				mvn("-f", rootPom, "-pl", strings.Join(libs, ","), "install", "-U")),
		).
		Add(
			pipeline.Command("Maven cleaning", "cleaned target directory", mvn("-f", servicePom, "clean")),
			pipeline.Command("Maven compiling", "compiled source code", mvn("-f", servicePom, "compile")),
			pipeline.Command("Maven packaging", "packaged source code into .jar containers", mvn("-f", servicePom, "package")),
			pipeline.Command("Maven JIB generating docker image and push into DockerHub repository",
				"generated docker image and pushed into DockerHub repository", mvn("-f", servicePom, "jib:build")),
		).
		Build()

	plan := Plan{
		Name:    "jib",
		Success: fmt.Sprintf("Create JIB docker image from service %s and deploy to DockerHub.", service),
		Stages:  stages,
	}
	if len(libs) > 0 {
		plan.Notes = append(plan.Notes, note("Reinstalling libraries: %s.", strings.Join(libs, ", ")))
	}
	return plan, nil
}
