package commands

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/moonsphere-systems/moonsphere-cli/internal/config"
	"github.com/moonsphere-systems/moonsphere-cli/internal/report"
)

// ModulesCmd implements the 'modules' command.
type ModulesCmd struct{}

func (m *ModulesCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	p := report.NewPrinter(g.Out, root.reportOptions())
	p.Printf("Modules resolved against %s\n", p.Highlight(cfg.Root))
	p.Println(modulesTable(cfg))
	return nil
}

func modulesTable(cfg *config.Config) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("MODULE", "PATH", "CONTAINER", "IMAGE")
	for _, name := range cfg.ModuleNames() {
		m := cfg.Modules[name]
		t.Row(name, m.Path, dash(m.Container), dash(m.Image))
	}
	return t.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite existing configuration file"`
	Path  string `arg:"" optional:"" help:"Where to write the configuration" default:"msph.yaml" type:"path"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	p := report.NewPrinter(g.Out, root.reportOptions())
	p.Printf("Writing configuration to %s\n", p.Highlight(i.Path))
	if err := config.Init(i.Path, i.Force); err != nil {
		return err
	}
	p.Success("Configuration initialized.")
	return nil
}
