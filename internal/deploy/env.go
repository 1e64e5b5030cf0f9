package deploy

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	"github.com/moonsphere-systems/moonsphere-cli/internal/envfile"
	"github.com/moonsphere-systems/moonsphere-cli/internal/pipeline"
	"github.com/moonsphere-systems/moonsphere-cli/internal/process"
)

// Env generates the docker-compose .env file of the base module from its
// template. Without replace an existing .env is never overwritten.
func Env(cfg *config.Config, replace bool, header envfile.Header) (Plan, error) {
	template, err := cfg.BasePath(cfg.Docker.EnvTemplate)
	if err != nil {
		return Plan{}, err
	}
	output, err := cfg.BasePath(cfg.Docker.EnvFile)
	if err != nil {
		return Plan{}, err
	}
	templateName, outputName := filepath.Base(template), filepath.Base(output)

	plan := Plan{
		Name:    "env",
		Success: fmt.Sprintf("Env file from template was generated in %q.", output),
	}
	if replace {
		plan.Notes = append(plan.Notes, note("Executing script in %s mode.", "replace"))
	}

	b := pipeline.NewBuilder()
	b.AddIf(!replace, pipeline.Check(
		fmt.Sprintf("Checking file %q status", outputName),
		fmt.Sprintf("File %q not exist", outputName),
		fmt.Sprintf("File %q already exist", outputName),
		fileAbsent(output),
	))
	b.Add(pipeline.Check(
		fmt.Sprintf("Checking file %q status", templateName),
		fmt.Sprintf("File %q exist", templateName),
		fmt.Sprintf("File %q not exist", templateName),
		filePresent(template),
	))
	b.Add(pipeline.Task(
		fmt.Sprintf("Copying content from %q to %q", templateName, outputName),
		fmt.Sprintf("Content in %q file was generated", outputName),
		fmt.Sprintf("Unable to generate content in %q file", outputName),
		func(_ context.Context, _ *pipeline.Runtime) error {
			h := header
			if h.GeneratedAt.IsZero() {
				h.GeneratedAt = time.Now()
			}
			_, err := envfile.Generate(template, output, h)
			return err
		},
	))
	plan.Stages = b.Build()
	return plan, nil
}

var errFileExists = errors.New("file already exists")

func fileAbsent(path string) pipeline.CheckFunc {
	return func(context.Context, process.Executor) error {
		if envfile.Exists(path) {
			return fmt.Errorf("%s: %w", path, errFileExists)
		}
		return nil
	}
}

func filePresent(path string) pipeline.CheckFunc {
	return func(context.Context, process.Executor) error {
		if !envfile.Exists(path) {
			return fmt.Errorf("%s: file does not exist", path)
		}
		return nil
	}
}
