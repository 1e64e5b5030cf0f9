package deploy

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	"github.com/moonsphere-systems/moonsphere-cli/internal/docker"
	msphErrors "github.com/moonsphere-systems/moonsphere-cli/internal/errors"
	"github.com/moonsphere-systems/moonsphere-cli/internal/keys"
	"github.com/moonsphere-systems/moonsphere-cli/internal/pipeline"
)

// ServiceAll starts every compose service.
const ServiceAll = "all"

// ComposeServices are the services the up command starts.
var ComposeServices = []string{config.ModuleContentDistributor, config.ModuleWebClient, config.ModuleLandingPage}

// UpServices lists the accepted values of the up command service flag.
func UpServices() []string {
	return append(append([]string{}, ComposeServices...), ServiceAll)
}

// keyBits is lowered in tests.
var keyBits = keys.Bits

// Up provisions the container keys and starts the compose services.
func Up(cfg *config.Config, mode Mode, service string) (Plan, error) {
	if err := allowed("service", service, UpServices()); err != nil {
		return Plan{}, err
	}
	services := []string{service}
	if service == ServiceAll {
		services = ComposeServices
	}

	keysDir, err := cfg.BasePath(cfg.Docker.KeysDir)
	if err != nil {
		return Plan{}, err
	}
	ignoreSrc, err := cfg.BasePath(cfg.Docker.DockerIgnore)
	if err != nil {
		return Plan{}, err
	}
	envFile, err := cfg.BasePath(cfg.Docker.EnvFile)
	if err != nil {
		return Plan{}, err
	}
	composeFile, err := cfg.BasePath(cfg.Docker.ComposeFile)
	if err != nil {
		return Plan{}, err
	}
	ignoreDst := filepath.Join(cfg.Root, ".dockerignore")

	contentDistributor, err := cfg.Container(config.ModuleContentDistributor)
	if err != nil {
		return Plan{}, err
	}

	b := pipeline.NewBuilder()
	b.Add(pipeline.Task(
		"Generating RSA keys for "+contentDistributor+" container",
		"RSA keys already exist. Skipping",
		"Unable to generate RSA key/s",
		func(_ context.Context, rt *pipeline.Runtime) error {
			p := keys.Provisioner{Dir: keysDir, Bits: keyBits, Progress: rt.Update}
			generated, err := p.Ensure(keys.DefaultNames...)
			if err != nil {
				return err
			}
			if len(generated) > 0 {
				rt.Succeed("Successfully generated RSA key/s: " + strings.Join(generated, ", "))
			}
			return nil
		},
	))
	b.Add(pipeline.Task("Copying .dockerignore file",
		"Successfully copied .dockerignore file", "Failure copied .dockerignore file",
		func(context.Context, *pipeline.Runtime) error { return copyFile(ignoreSrc, ignoreDst) },
	))

	var selected []string
	for _, svc := range services {
		container, err := cfg.Container(svc)
		if err != nil {
			return Plan{}, err
		}
		selected = append(selected, container)
		up := docker.ComposeUp{
			Project: cfg.Docker.ComposeProject,
			EnvFile: envFile,
			File:    composeFile,
			Mode:    string(mode),
			Service: container,
		}
		b.Add(pipeline.Command("Starting docker container: "+container, "started docker container: "+svc, up.Invocation()))
	}

	b.Add(pipeline.Task("Removing .dockerignore file",
		"Successfully removed .dockerignore file", "Failure removed .dockerignore file",
		func(context.Context, *pipeline.Runtime) error {
			if err := os.Remove(ignoreDst); err != nil {
				return msphErrors.FileSystemError("remove", ignoreDst, err)
			}
			return nil
		},
	))

	return Plan{
		Name: "up",
		Notes: []Note{
			modeNote(mode),
			note("Available services: %s.", strings.Join(UpServices(), ", ")),
			note("Selected service: %s.", strings.Join(selected, ", ")),
		},
		Success: "All processing was done.",
		Stages:  b.Build(),
	}, nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return msphErrors.FileSystemError("open", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return msphErrors.FileSystemError("create", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = msphErrors.FileSystemError("close", dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return msphErrors.FileSystemError("copy", dst, err)
	}
	return nil
}
