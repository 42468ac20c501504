package commands

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/qdoc2rst/internal/convert"
	"git.home.luguber.info/inful/qdoc2rst/internal/logfields"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ConvertCmd `embed:""`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	if err := w.apply(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(g.context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conv, finish, err := newConverter(cfg)
	if err != nil {
		return err
	}
	err = conv.Watch(ctx, func(report *convert.Report, err error) {
		finish()
		if err != nil {
			if ctx.Err() == nil {
				slog.Error("Conversion failed", logfields.Error(err))
			}
			return
		}
		printReport(g.out(), report)
	})
	if err != nil {
		return err
	}
	slog.Info("Watch stopped")
	return nil
}
