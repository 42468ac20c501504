package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/qdoc2rst/internal/config"
	"git.home.luguber.info/inful/qdoc2rst/internal/convert"
	"git.home.luguber.info/inful/qdoc2rst/internal/logfields"
	"git.home.luguber.info/inful/qdoc2rst/internal/metrics"
)

// Global carries process-wide state into the commands.
type Global struct {
	// Context is the parent of every command context; nil means background.
	Context context.Context
	// Out receives user-facing output; nil means stdout.
	Out io.Writer
}

func (g *Global) context() context.Context {
	if g == nil || g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"qdoc2rst.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert the qdoc HTML pages into RST reference pages"`
	Parse   ParseCmd   `cmd:"" help:"Print the document model extracted from one class page"`
	Watch   WatchCmd   `cmd:"" help:"Convert, then convert again whenever the input pages change"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// LoadConfig loads the configuration named by the global flag and switches
// logging to its level and format. -v always selects debug level.
func LoadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return nil, err
	}
	configureLogging(cfg.Logging, root.Verbose, os.Stderr)
	return cfg, nil
}

func configureLogging(logging config.LoggingConfig, verbose bool, w io.Writer) {
	level := logging.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if logging.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// newConverter builds a converter for cfg. The returned finish function
// exports metrics when a textfile is configured.
func newConverter(cfg *config.Config) (*convert.Converter, func(), error) {
	if cfg.Metrics.Textfile == "" {
		conv, err := convert.New(cfg)
		return conv, func() {}, err
	}

	recorder := metrics.NewPrometheusRecorder(nil)
	conv, err := convert.New(cfg, convert.WithRecorder(recorder))
	finish := func() {
		if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			slog.Warn("Failed to export metrics", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}
	return conv, finish, err
}

func printReport(w io.Writer, r *convert.Report) {
	_, _ = fmt.Fprintf(w, "Converted %d classes and %d modules in %s: %d written, %d unchanged, %d failed, %d declarations skipped\n",
		r.Classes, r.Modules, r.Duration.Round(time.Millisecond), r.Written, r.Unchanged, r.Failed, r.Skipped)
}
