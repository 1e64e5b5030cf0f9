package commands

import (
	"context"

	"github.com/moonsphere-systems/moonsphere-cli/internal/deploy"
	"github.com/moonsphere-systems/moonsphere-cli/internal/envfile"
	"github.com/moonsphere-systems/moonsphere-cli/internal/version"
)

// EnvCmd implements the 'env' command.
type EnvCmd struct {
	Replace bool `short:"r" help:"Overwrite an existing .env file"`
}

func (e *EnvCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	plan, err := deploy.Env(cfg, e.Replace, envfile.Header{
		LicensedBy:    cfg.Project.LicensedBy,
		License:       cfg.Project.License,
		Developer:     cfg.Project.Developer,
		PersonalPage:  cfg.Project.PersonalPage,
		RepositoryURL: cfg.Project.RepositoryURL,
		Generator:     version.Generator(),
		GeneratedAt:   g.Now(),
	})
	if err != nil {
		return err
	}
	return runPlan(ctx, g, root, cfg, plan)
}
