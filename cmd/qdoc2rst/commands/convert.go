package commands

import (
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/qdoc2rst/internal/config"
)

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	Input    string `short:"i" help:"Override input.directory" type:"path"`
	Output   string `short:"o" help:"Override output.directory" type:"path"`
	Workers  int    `short:"j" help:"Override build.workers"`
	FailFast bool   `name:"fail-fast" help:"Stop at the first page that cannot be converted"`
}

func (c *ConvertCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	if err := c.apply(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(g.context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conv, finish, err := newConverter(cfg)
	if err != nil {
		return err
	}
	report, err := conv.Run(ctx)
	finish()
	if err != nil {
		return err
	}
	printReport(g.out(), report)
	return nil
}

// apply overlays the command line flags on cfg and revalidates it.
func (c *ConvertCmd) apply(cfg *config.Config) error {
	if c.Input != "" {
		cfg.Input.Directory = c.Input
	}
	if c.Output != "" {
		cfg.Output.Directory = c.Output
	}
	if c.Workers > 0 {
		cfg.Build.Workers = c.Workers
	}
	if c.FailFast {
		cfg.Build.FailFast = true
	}
	return config.ValidateConfig(cfg)
}
