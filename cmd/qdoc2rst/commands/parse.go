package commands

import (
	"encoding/json"
	"log/slog"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/qdoc2rst/internal/apimodel"
	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
	"git.home.luguber.info/inful/qdoc2rst/internal/logfields"
	"git.home.luguber.info/inful/qdoc2rst/internal/qdoc"
)

// ParseCmd implements the 'parse' command.
type ParseCmd struct {
	File   string `arg:"" help:"qdoc HTML class page" type:"path"`
	Format string `short:"f" help:"Output format" enum:"yaml,json" default:"yaml"`
}

type parseOutput struct {
	Class   *apimodel.ClassDef `json:"class" yaml:"class"`
	Skipped []string           `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

func (p *ParseCmd) Run(g *Global, root *CLI) error {
	if _, err := LoadConfig(root); err != nil {
		return err
	}

	res, err := qdoc.ParseClassFile(p.File)
	if err != nil {
		return err
	}
	if res == nil {
		return errors.NotFoundError("page has no class description").
			WithContext("path", p.File).
			Build()
	}
	if len(res.Skipped) > 0 {
		slog.Warn("Skipped unrecognized declarations", logfields.Path(p.File), logfields.Count(len(res.Skipped)))
	}

	out := parseOutput{Class: res.Class, Skipped: res.Skipped}
	if p.Format == "json" {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
	} else {
		enc := yaml.NewEncoder(g.out())
		enc.SetIndent(2)
		err = enc.Encode(out)
		if err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode document model").Build()
	}
	return nil
}
