package commands

import (
	"context"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	"github.com/moonsphere-systems/moonsphere-cli/internal/deploy"
	"github.com/moonsphere-systems/moonsphere-cli/internal/logfields"
	"github.com/moonsphere-systems/moonsphere-cli/internal/metrics"
	"github.com/moonsphere-systems/moonsphere-cli/internal/pipeline"
	"github.com/moonsphere-systems/moonsphere-cli/internal/report"
)

// runPlan prints the command banner, runs the plan's stages and turns the
// result into the command outcome. It is the only place a Result is handled.
func runPlan(ctx context.Context, g *Global, root *CLI, cfg *config.Config, plan deploy.Plan) error {
	term := report.NewTerminal(g.Out, root.reportOptions())
	term.PrintHeader(report.Header{
		Year:          g.Now().Year(),
		LicensedBy:    cfg.Project.LicensedBy,
		License:       cfg.Project.License,
		Developer:     cfg.Project.Developer,
		PersonalPage:  cfg.Project.PersonalPage,
		RepositoryURL: cfg.Project.RepositoryURL,
	})
	term.Printf("Executing command: %s\n", term.Highlight(plan.Name))
	for _, n := range plan.Notes {
		term.Println(n.Render(term.Highlight))
	}
	term.NewLine()

	reporters := []pipeline.Reporter{term, pipeline.NewLogReporter(slog.Default())}
	var registry *prom.Registry
	if root.MetricsFile != "" {
		registry = prom.NewRegistry()
		reporters = append(reporters, pipeline.NewRecorderReporter(metrics.NewPrometheusRecorder(registry)))
	}

	res := pipeline.NewRunner(plan.Name, g.Exec, reporters...).Run(ctx, plan.Stages)

	if registry != nil {
		if err := metrics.WriteTextfile(registry, root.MetricsFile); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(root.MetricsFile), logfields.Error(err))
		}
	}

	term.NewLine()
	if res.OK() {
		term.Success(plan.Success)
		return nil
	}
	return res.Cause.Classified()
}
