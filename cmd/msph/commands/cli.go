package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	msphErrors "github.com/moonsphere-systems/moonsphere-cli/internal/errors"
	"github.com/moonsphere-systems/moonsphere-cli/internal/libraries"
	"github.com/moonsphere-systems/moonsphere-cli/internal/process"
	"github.com/moonsphere-systems/moonsphere-cli/internal/report"
	"github.com/moonsphere-systems/moonsphere-cli/internal/version"
)

// Global carries the process-wide dependencies handed to every command.
// Nil fields are filled with production implementations.
type Global struct {
	Out io.Writer
	Err io.Writer

	Exec     process.Executor
	Registry libraries.Lookup
	Now      func() time.Time
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path; built-in defaults when omitted" type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging and echo program output"`
	NoColor     bool             `name:"no-color" help:"Disable coloured output"`
	MetricsFile string           `name:"metrics-file" help:"Write run metrics in Prometheus text format to this file" type:"path"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Env       EnvCmd       `cmd:"" help:"Generate the docker-compose .env file from its template"`
	Migrate   MigrateCmd   `cmd:"" help:"Migrate freshly built content into running containers"`
	Build     BuildCmd     `cmd:"" help:"Build, tag and push a Dockerfile based image"`
	Jib       JibCmd       `cmd:"" help:"Build and push a monorepo service image with Maven Jib"`
	Up        UpCmd        `cmd:"" help:"Provision container keys and start docker-compose services"`
	Libraries LibrariesCmd `cmd:"" help:"Regenerate the third-party library inventory"`
	Modules   ModulesCmd   `cmd:"" help:"List the configured modules"`
	Init      InitCmd      `cmd:"" help:"Write a configuration file populated with the defaults"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(g.Err, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if g.Exec == nil {
		ex := process.NewExecutor()
		if c.Verbose {
			ex.Echo = g.Err
		}
		g.Exec = ex
	}
	return nil
}

func (c *CLI) reportOptions() report.Options {
	return report.Options{NoColor: c.NoColor}
}

func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.Config)
}

// exitRequest is raised by kong when --help or --version asks to exit.
type exitRequest int

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(ctx context.Context, args []string, g *Global) (code int) {
	if g.Registry == nil {
		g.Registry = libraries.NewClient()
	}
	if g.Now == nil {
		g.Now = time.Now
	}

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("msph"),
		kong.Description("Build and deploy pipelines for the MoonSphere modules."),
		kong.Writers(g.Out, g.Err),
		kong.Exit(func(c int) { panic(exitRequest(c)) }),
		kong.Vars{"version": version.String()},
		kong.Bind(g),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		fmt.Fprintf(g.Err, "msph: %v\n", err)
		return 1
	}

	defer func() {
		if r := recover(); r != nil {
			req, ok := r.(exitRequest)
			if !ok {
				panic(r)
			}
			code = int(req)
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		p := report.NewPrinter(g.Out, cli.reportOptions())
		p.Error(err.Error())
		fmt.Fprintln(g.Err, `Run "msph --help" for usage.`)
		return 1
	}

	err = kctx.Run(&cli)
	if err == nil {
		return 0
	}

	adapter := msphErrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
	if cli.Verbose {
		adapter.LogError(err)
	}
	report.NewPrinter(g.Out, cli.reportOptions()).Error(adapter.FormatError(err))
	return adapter.ExitCodeFor(err)
}
