package commands

import (
	"context"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	"github.com/moonsphere-systems/moonsphere-cli/internal/deploy"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Service string `short:"s" required:"" enum:"web-client,landing-page,mail-parser" help:"Service to build (web-client|landing-page|mail-parser)"`
	Mode    string `short:"m" required:"" enum:"dev,prod" help:"Build mode (dev|prod)"`
}

func (b *BuildCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	return planAndRun(ctx, g, root, func(cfg *config.Config) (deploy.Plan, error) {
		return deploy.BuildImage(cfg, b.Service, deploy.Mode(b.Mode))
	})
}

// JibCmd implements the 'jib' command.
type JibCmd struct {
	Service string   `short:"s" required:"" help:"Monorepo service directory"`
	Libs    []string `short:"l" help:"Comma separated libraries to reinstall first (msph-shared-lib)"`
	M2Dir   string   `name:"m2-dir" help:"Local Maven repository directory of the project artifacts" type:"path"`
}

func (j *JibCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	return planAndRun(ctx, g, root, func(cfg *config.Config) (deploy.Plan, error) {
		m2 := j.M2Dir
		if m2 == "" {
			var err error
			if m2, err = deploy.DefaultM2Dir(); err != nil {
				return deploy.Plan{}, err
			}
		}
		return deploy.JibImage(cfg, j.Service, j.Libs, m2)
	})
}

// UpCmd implements the 'up' command.
type UpCmd struct {
	Mode    string `short:"m" required:"" enum:"dev,prod" help:"Build mode (dev|prod)"`
	Service string `short:"s" required:"" enum:"content-distributor,web-client,landing-page,all" help:"Service to start (content-distributor|web-client|landing-page|all)"`
}

func (u *UpCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	return planAndRun(ctx, g, root, func(cfg *config.Config) (deploy.Plan, error) {
		return deploy.Up(cfg, deploy.Mode(u.Mode), u.Service)
	})
}

// LibrariesCmd implements the 'libraries' command.
type LibrariesCmd struct{}

func (l *LibrariesCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	return planAndRun(ctx, g, root, func(cfg *config.Config) (deploy.Plan, error) {
		return deploy.Libraries(cfg, g.Registry)
	})
}
