// Package convert turns a directory of qdoc HTML pages into RST reference
// pages.
//
// A run parses class pages on a bounded worker pool, then parses module
// pages one by one. Each module page claims the classes it lists; the
// top-level index lists every module page followed by the classes no module
// claimed.
package convert

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/qdoc2rst/internal/config"
	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
	"git.home.luguber.info/inful/qdoc2rst/internal/logfields"
	"git.home.luguber.info/inful/qdoc2rst/internal/metrics"
	"git.home.luguber.info/inful/qdoc2rst/internal/qdoc"
	"git.home.luguber.info/inful/qdoc2rst/internal/rst"
)

const (
	indexStem   = "index"
	indexHeader = "API Reference"
)

// Report summarizes one conversion run.
type Report struct {
	// Classes and Modules count the pages converted into RST.
	Classes int
	Modules int
	// Ignored counts HTML pages that are not class pages.
	Ignored int
	// Excluded counts files dropped by the exclude patterns.
	Excluded int
	// Skipped counts declarations that did not have the expected shape.
	Skipped int
	// Failed counts pages that could not be read, parsed or rendered.
	Failed int
	// Written and Unchanged count output files, the index included.
	Written   int
	Unchanged int
	Duration  time.Duration
}

func (r *Report) count(res writeResult) {
	if res == unchanged {
		r.Unchanged++
		return
	}
	r.Written++
}

// Converter runs conversions for one configuration.
type Converter struct {
	cfg      *config.Config
	renderer *rst.Renderer
	recorder metrics.Recorder
}

// Option configures a Converter.
type Option func(*Converter)

// WithRecorder routes run metrics to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Converter) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New builds a Converter and its renderer from cfg.
func New(cfg *config.Config, opts ...Option) (*Converter, error) {
	renderer, err := rst.New(rst.Options{
		RefPrefix:     cfg.Output.RefPrefix,
		PageTemplate:  cfg.Templates.Page,
		IndexTemplate: cfg.Templates.Index,
	})
	if err != nil {
		return nil, err
	}
	c := &Converter{cfg: cfg, renderer: renderer, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// classOutcome is the result of one class page, filled in by a worker.
type classOutcome struct {
	converted bool
	ignored   bool
	failed    bool
	skipped   int
	write     writeResult
}

// Run converts every input page once.
func (c *Converter) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{}

	err := c.run(ctx, report)
	report.Duration = time.Since(start)
	c.recorder.ObserveRunDuration(report.Duration)

	switch {
	case err != nil && ctx.Err() != nil:
		c.recorder.IncRunOutcome(metrics.RunCanceled)
	case err != nil:
		c.recorder.IncRunOutcome(metrics.RunFailed)
	case report.Failed > 0:
		c.recorder.IncRunOutcome(metrics.RunWarning)
	default:
		c.recorder.IncRunOutcome(metrics.RunSuccess)
	}
	if err != nil {
		if ctx.Err() != nil && !errors.IsClassified(err) {
			err = errors.RuntimeError("conversion canceled").WithCause(err).Warning().Build()
		}
		return report, err
	}

	slog.Info("Conversion complete",
		slog.Int("classes", report.Classes),
		slog.Int("modules", report.Modules),
		slog.Int("written", report.Written),
		slog.Int("unchanged", report.Unchanged),
		slog.Int("failed", report.Failed),
		slog.Int("skipped_declarations", report.Skipped),
		logfields.Duration(report.Duration))
	return report, nil
}

func (c *Converter) run(ctx context.Context, report *Report) error {
	pages, excluded, err := c.discover()
	if err != nil {
		return err
	}
	report.Excluded = excluded

	if err := os.MkdirAll(c.cfg.Output.Directory, 0o750); err != nil {
		return errors.FileSystemError("failed to create output directory").WithCause(err).
			WithContext("path", c.cfg.Output.Directory).
			Build()
	}

	classPages, modulePages := partition(pages)
	slog.Info("Converting pages",
		logfields.Path(c.cfg.Input.Directory),
		slog.Int("classes", len(classPages)),
		slog.Int("modules", len(modulePages)),
		slog.Int("excluded", excluded))

	candidates, err := c.convertClasses(ctx, classPages, report)
	if err != nil {
		return err
	}
	modules, err := c.convertModules(ctx, modulePages, candidates, report)
	if err != nil {
		return err
	}

	res, err := c.renderIndex(rst.IndexPage{
		Module:  indexStem,
		Header:  indexHeader,
		Entries: append(modules, candidates.Remaining()...),
	}, indexStem)
	if err != nil {
		return err
	}
	c.recordPage(metrics.PageIndex, res, 0)
	report.count(res)
	return nil
}

// convertClasses converts the class pages in parallel and returns the names
// of the converted ones, in input order.
func (c *Converter) convertClasses(ctx context.Context, pages []page, report *Report) (*qdoc.CandidateSet, error) {
	outcomes := make([]classOutcome, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Build.Workers)
	for i, p := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, err := c.convertClass(p)
			if err != nil {
				if c.cfg.Build.FailFast {
					return err
				}
				slog.Error("Failed to convert class page", logfields.Page(p.stem), logfields.Error(err))
				outcome.failed = true
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := qdoc.NewCandidateSet()
	for i, o := range outcomes {
		report.Skipped += o.skipped
		switch {
		case o.failed:
			report.Failed++
		case o.ignored:
			report.Ignored++
		case o.converted:
			report.Classes++
			report.count(o.write)
			candidates.Add(pages[i].stem)
		}
	}
	return candidates, nil
}

func (c *Converter) convertClass(p page) (classOutcome, error) {
	start := time.Now()
	var outcome classOutcome

	res, err := qdoc.ParseClassFile(p.path)
	if err != nil {
		c.recorder.IncPageResult(metrics.PageClass, metrics.ResultFailed)
		return outcome, err
	}
	if res == nil {
		slog.Debug("Ignoring page without class description", logfields.Page(p.stem))
		c.recorder.IncPageResult(metrics.PageClass, metrics.ResultIgnored)
		outcome.ignored = true
		return outcome, nil
	}
	outcome.skipped = len(res.Skipped)

	content, err := c.renderer.RenderClass(res.Class)
	if err != nil {
		c.recorder.IncPageResult(metrics.PageClass, metrics.ResultFailed)
		return outcome, err
	}
	outcome.write, err = c.writeOutput(p.stem, content)
	if err != nil {
		c.recorder.IncPageResult(metrics.PageClass, metrics.ResultFailed)
		return outcome, err
	}
	outcome.converted = true

	c.recordPage(metrics.PageClass, outcome.write, time.Since(start))
	c.recorder.AddSkippedDeclarations(outcome.skipped)
	slog.Debug("Converted class page",
		logfields.Page(p.stem),
		logfields.Class(res.Class.Name),
		logfields.Count(res.Class.Methods.Len()))
	return outcome, nil
}

// convertModules converts the module pages in input order. Each page claims
// its classes from candidates, so the order decides which module lists a
// class appearing on several module pages.
func (c *Converter) convertModules(ctx context.Context, pages []page, candidates *qdoc.CandidateSet, report *Report) ([]string, error) {
	var modules []string
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := c.convertModule(p, candidates)
		if err != nil {
			c.recorder.IncPageResult(metrics.PageModule, metrics.ResultFailed)
			if c.cfg.Build.FailFast {
				return nil, err
			}
			slog.Error("Failed to convert module page", logfields.Module(p.stem), logfields.Error(err))
			report.Failed++
			continue
		}
		report.count(res)
		report.Modules++
		modules = append(modules, p.stem)
	}
	return modules, nil
}

func (c *Converter) convertModule(p page, candidates *qdoc.CandidateSet) (writeResult, error) {
	start := time.Now()
	names, err := qdoc.ParseModuleFile(p.path, candidates)
	if err != nil {
		return written, err
	}
	res, err := c.renderIndex(rst.IndexPage{
		Module:  rst.ModuleName(p.stem),
		Header:  rst.ModuleHeader(p.stem),
		Entries: names,
	}, p.stem)
	if err != nil {
		return written, err
	}
	c.recordPage(metrics.PageModule, res, time.Since(start))
	slog.Debug("Converted module page", logfields.Module(p.stem), logfields.Count(len(names)))
	return res, nil
}

func (c *Converter) renderIndex(index rst.IndexPage, stem string) (writeResult, error) {
	content, err := c.renderer.RenderIndex(index)
	if err != nil {
		return written, err
	}
	return c.writeOutput(stem, content)
}

func (c *Converter) recordPage(kind metrics.PageKind, res writeResult, d time.Duration) {
	result := metrics.ResultWritten
	if res == unchanged {
		result = metrics.ResultUnchanged
	}
	c.recorder.IncPageResult(kind, result)
	if d > 0 {
		c.recorder.ObservePageDuration(kind, d)
	}
}
