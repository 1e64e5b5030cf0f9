package commands

import (
	"context"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	"github.com/moonsphere-systems/moonsphere-cli/internal/deploy"
)

// MigrateCmd groups the 'migrate' subcommands.
type MigrateCmd struct {
	WebClient          MigrateWebClientCmd          `cmd:"" name:"web-client" help:"Bundle the web client and copy it into its container"`
	LandingPage        MigrateLandingPageCmd        `cmd:"" name:"landing-page" help:"Bundle the landing page, copy it into its container and restart it"`
	ContentDistributor MigrateContentDistributorCmd `cmd:"" name:"content-distributor" help:"Copy static content into the content distributor"`
	S3Static           MigrateS3StaticCmd           `cmd:"" name:"s3-static" help:"Refresh the static bucket of the object storage"`
}

// MigrateWebClientCmd implements 'migrate web-client'.
type MigrateWebClientCmd struct {
	Mode string `short:"m" required:"" enum:"dev,prod" help:"Build mode (dev|prod)"`
}

func (m *MigrateWebClientCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	return planAndRun(ctx, g, root, func(cfg *config.Config) (deploy.Plan, error) {
		return deploy.MigrateWebClient(cfg, deploy.Mode(m.Mode))
	})
}

// MigrateLandingPageCmd implements 'migrate landing-page'.
type MigrateLandingPageCmd struct {
	Mode string `short:"m" required:"" enum:"dev,prod" help:"Build mode (dev|prod)"`
}

func (m *MigrateLandingPageCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	return planAndRun(ctx, g, root, func(cfg *config.Config) (deploy.Plan, error) {
		return deploy.MigrateLandingPage(cfg, deploy.Mode(m.Mode))
	})
}

// MigrateContentDistributorCmd implements 'migrate content-distributor'.
type MigrateContentDistributorCmd struct {
	Mode    string `short:"m" required:"" enum:"dev,prod" help:"Build mode (dev|prod)"`
	Restart bool   `short:"r" help:"Restart the web server after copying"`
}

func (m *MigrateContentDistributorCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	return planAndRun(ctx, g, root, func(cfg *config.Config) (deploy.Plan, error) {
		return deploy.MigrateContentDistributor(cfg, deploy.Mode(m.Mode), m.Restart)
	})
}

// MigrateS3StaticCmd implements 'migrate s3-static'.
type MigrateS3StaticCmd struct{}

func (m *MigrateS3StaticCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	return planAndRun(ctx, g, root, deploy.MigrateS3Static)
}

// planAndRun loads the configuration, declares the plan and runs it.
func planAndRun(ctx context.Context, g *Global, root *CLI, declare func(*config.Config) (deploy.Plan, error)) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	plan, err := declare(cfg)
	if err != nil {
		return err
	}
	return runPlan(ctx, g, root, cfg, plan)
}
