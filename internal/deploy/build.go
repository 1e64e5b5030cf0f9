package deploy

import (
	"context"
	"fmt"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	"github.com/moonsphere-systems/moonsphere-cli/internal/docker"
	msphErrors "github.com/moonsphere-systems/moonsphere-cli/internal/errors"
	"github.com/moonsphere-systems/moonsphere-cli/internal/pipeline"
	"github.com/moonsphere-systems/moonsphere-cli/internal/vcs"
)

// BuildServices are the modules published as Dockerfile-built images.
var BuildServices = []string{config.ModuleWebClient, config.ModuleLandingPage, config.ModuleMailParser}

// headRevision is replaced in tests.
var headRevision = vcs.Head

// BuildImage builds the image of service, tags it with the checked-out revision
// and pushes every tag.
func BuildImage(cfg *config.Config, service string, mode Mode) (Plan, error) {
	if err := allowed("service", service, BuildServices); err != nil {
		return Plan{}, err
	}
	m, err := cfg.Module(service)
	if err != nil {
		return Plan{}, err
	}
	if m.Image == "" {
		return Plan{}, msphErrors.New(msphErrors.CategoryConfig, msphErrors.SeverityFatal, "module has no image name").
			WithContext("module", service)
	}
	repository := cfg.Docker.Namespace + "/" + m.Image
	latest := repository + ":latest"

	tag := pipeline.Task(
		"Tagging docker image with current revision",
		"Successfully tagged docker image with current revision",
		"Failure tagged docker image with current revision",
		func(ctx context.Context, rt *pipeline.Runtime) error {
			rev, err := headRevision(m.Path)
			if err != nil {
				return err
			}
			target := repository + ":" + rev.Short()
			if err := rt.Exec.Run(ctx, docker.Tag(latest, target)); err != nil {
				return err
			}
			rt.Succeed("Successfully tagged docker image as " + target)
			return nil
		},
	)

	return Plan{
		Name:    "build-" + service,
		Notes:   []Note{modeNote(mode), note("Target image: %s.", repository)},
		Success: fmt.Sprintf("Deployed %s into DockerHub repository.", service),
		Stages: []pipeline.Stage{
			pipeline.Command("Building docker image "+m.Image, "built docker image "+m.Image,
				docker.Build(m.Path, latest, map[string]string{"BUILD_MODE": string(mode)})),
			tag,
			pipeline.Command("Pushing docker image into DockerHub repository",
				"pushed docker image into DockerHub repository", docker.PushAllTags(repository)),
		},
	}, nil
}
