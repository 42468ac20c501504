package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"git.home.luguber.info/inful/qdoc2rst/internal/config"
	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
	"git.home.luguber.info/inful/qdoc2rst/internal/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func classPage(name, parent string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>%[1]s</title></head><body>
<h1 class="title">%[1]s Class</h1>
<table class="alignedsummary"><tr><td>Inherits:</td><td>%[2]s</td></tr></table>
<div class="descr">
<h2>Detailed Description</h2>
<p>%[1]s is documented here&hellip;</p>
</div>
<div class="func">
<h3 class="fn" id="update">void %[1]s::update(int step)</h3>
<p>Advances by step.</p>
<h3 class="fn" id="broken">%[1]s::broken</h3>
</div>
</body></html>
`, name, parent)
}

func modulePage(title string, classes ...string) string {
	var rows strings.Builder
	for _, c := range classes {
		fmt.Fprintf(&rows, "<tr><td class=\"tblName\"><p><a href=\"%s.html\">%s</a></p></td></tr>\n", strings.ToLower(c), c)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><meta charset="utf-8"></head><body>
<h1 class="title">%s</h1>
<div class="table"><table class="annotated">
%s</table></div>
</body></html>
`, title, rows.String())
}

const plainPage = `<html><body><h1 class="title">Overview</h1><p>Start here.</p></body></html>`

type fixture struct {
	in, out string
	cfg     *config.Config
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{in: filepath.Join(root, "html"), out: filepath.Join(root, "reference")}
	require.NoError(t, os.MkdirAll(f.in, 0o750))
	for name, content := range files {
		f.write(t, name, content)
	}
	f.cfg = config.Default()
	f.cfg.Input.Directory = f.in
	f.cfg.Output.Directory = f.out
	return f
}

func (f *fixture) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.in, name), []byte(content), 0o600))
}

func (f *fixture) read(t *testing.T, stem string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.out, stem+".rst"))
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) run(t *testing.T, opts ...Option) *Report {
	t.Helper()
	conv, err := New(f.cfg, opts...)
	require.NoError(t, err)
	report, err := conv.Run(context.Background())
	require.NoError(t, err)
	return report
}

func standardPages() map[string]string {
	return map[string]string{
		"actor.html":                classPage("Actor", "Object"),
		"component.html":            classPage("Component", "Object"),
		"scene.html":                classPage("Scene", "Actor"),
		"overview.html":             plainPage,
		"engine-module.html":        modulePage("Engine Module", "Actor", "Unknown", "Component"),
		"thunder-engine-index.html": classPage("Excluded", "Object"),
		"notes.txt":                 "not html",
	}
}

func TestRun_EndToEnd(t *testing.T) {
	f := newFixture(t, standardPages())
	report := f.run(t)

	assert.Equal(t, 3, report.Classes)
	assert.Equal(t, 1, report.Modules)
	assert.Equal(t, 1, report.Ignored)
	assert.Equal(t, 1, report.Excluded)
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 5, report.Written)
	assert.Equal(t, 0, report.Unchanged)

	entries, err := os.ReadDir(f.out)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"actor.rst", "component.rst", "engine-module.rst", "index.rst", "scene.rst"}, names)

	actor := f.read(t, "actor")
	assert.Contains(t, actor, ".. _api_Actor:")
	assert.Contains(t, actor, "**Inherited:** :ref:`Object<api_Object>`")
	assert.Contains(t, actor, "Actor is documented here...")
	assert.Contains(t, actor, "**Actor::update** (:ref:`int<api_int>` *step*)")
	assert.Contains(t, actor, "Advances by *step*.")

	module := f.read(t, "engine-module")
	assert.Contains(t, module, ".. _api_engine_module:\n\nEngine Module\n=============\n")
	assert.Contains(t, module, "   actor\n   component\n")
	assert.NotContains(t, module, "unknown")

	index := f.read(t, "index")
	assert.Contains(t, index, ".. _api_index:\n\nAPI Reference\n=============\n")
	assert.True(t, strings.HasSuffix(index, "   engine-module\n   scene\n"), index)
}

func TestRun_UnchangedOutputsAreNotRewritten(t *testing.T) {
	f := newFixture(t, standardPages())
	f.run(t)

	second := f.run(t)
	assert.Equal(t, 0, second.Written)
	assert.Equal(t, 5, second.Unchanged)

	f.write(t, "actor.html", classPage("Actor", "Entity"))
	third := f.run(t)
	assert.Equal(t, 1, third.Written)
	assert.Equal(t, 4, third.Unchanged)
	assert.Contains(t, f.read(t, "actor"), ":ref:`Entity<api_Entity>`")
}

func TestRun_ModulesClaimInInputOrder(t *testing.T) {
	f := newFixture(t, map[string]string{
		"actor.html":         classPage("Actor", "Object"),
		"camera.html":        classPage("Camera", "Actor"),
		"a-module.html":      modulePage("A Module", "Camera"),
		"b-module.html":      modulePage("B Module", "Camera", "Actor"),
		"lonely-module.html": modulePage("Lonely Module"),
	})
	report := f.run(t)
	assert.Equal(t, 3, report.Modules)

	assert.Contains(t, f.read(t, "a-module"), "   camera\n")
	b := f.read(t, "b-module")
	assert.Contains(t, b, "   actor\n")
	assert.NotContains(t, b, "camera")
	assert.True(t, strings.HasSuffix(f.read(t, "index"), "   a-module\n   b-module\n   lonely-module\n"))
}

func TestRun_Workers(t *testing.T) {
	pages := map[string]string{}
	for i := range 20 {
		pages[fmt.Sprintf("class%02d.html", i)] = classPage(fmt.Sprintf("Class%02d", i), "Object")
	}
	f := newFixture(t, pages)
	f.cfg.Build.Workers = 3

	report := f.run(t)
	assert.Equal(t, 20, report.Classes)
	index := f.read(t, "index")
	assert.Less(t, strings.Index(index, "class00"), strings.Index(index, "class19"))
}

func TestRun_FailedPages(t *testing.T) {
	f := newFixture(t, standardPages())
	require.NoError(t, os.Symlink(filepath.Join(f.in, "missing-target.html"), filepath.Join(f.in, "broken.html")))

	report := f.run(t)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 3, report.Classes)
	assert.NotContains(t, f.read(t, "index"), "broken")

	f.cfg.Build.FailFast = true
	conv, err := New(f.cfg)
	require.NoError(t, err)
	_, err = conv.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestRun_TruncatedPageFails(t *testing.T) {
	pages := standardPages()
	full := classPage("Truncated", "Object")
	pages["truncated.html"] = full[:strings.Index(full, "broken")]
	f := newFixture(t, pages)

	report := f.run(t)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 3, report.Classes)
	assert.NoFileExists(t, filepath.Join(f.out, "truncated.rst"))
	assert.NotContains(t, f.read(t, "index"), "truncated")

	f.cfg.Build.FailFast = true
	conv, err := New(f.cfg)
	require.NoError(t, err)
	_, err = conv.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryParse))
}

func TestRun_MissingInputDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Directory = filepath.Join(t.TempDir(), "absent")
	cfg.Output.Directory = filepath.Join(t.TempDir(), "out")

	conv, err := New(cfg)
	require.NoError(t, err)
	_, err = conv.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestRun_Canceled(t *testing.T) {
	f := newFixture(t, standardPages())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv, err := New(f.cfg)
	require.NoError(t, err)
	_, err = conv.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryRuntime))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, errors.SeverityWarning, errors.GetSeverity(err))
}

func TestRun_EmptyExcludeKeepsEveryPage(t *testing.T) {
	f := newFixture(t, standardPages())
	f.cfg.Input.Exclude = nil

	report := f.run(t)
	assert.Equal(t, 4, report.Classes)
	assert.Equal(t, 0, report.Excluded)
}

func TestNew_BadTemplate(t *testing.T) {
	cfg := config.Default()
	cfg.Templates.Page = filepath.Join(t.TempDir(), "missing.rst")
	_, err := New(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

type recordingRecorder struct {
	metrics.NoopRecorder
	mu       sync.Mutex
	results  map[string]int
	skipped  int
	outcomes []metrics.RunOutcomeLabel
}

func (r *recordingRecorder) IncPageResult(kind metrics.PageKind, result metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.results == nil {
		r.results = map[string]int{}
	}
	r.results[string(kind)+"/"+string(result)]++
}

func (r *recordingRecorder) AddSkippedDeclarations(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped += n
}

func (r *recordingRecorder) IncRunOutcome(outcome metrics.RunOutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func TestRun_RecordsMetrics(t *testing.T) {
	f := newFixture(t, standardPages())
	rec := &recordingRecorder{}
	f.run(t, WithRecorder(rec))

	assert.Equal(t, map[string]int{
		"class/written":  3,
		"class/ignored":  1,
		"module/written": 1,
		"index/written":  1,
	}, rec.results)
	assert.Equal(t, 3, rec.skipped)
	assert.Equal(t, []metrics.RunOutcomeLabel{metrics.RunSuccess}, rec.outcomes)
}

func TestWatch_RerunsOnChange(t *testing.T) {
	f := newFixture(t, standardPages())
	f.cfg.Watch.Debounce = "20ms"
	conv, err := New(f.cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan *Report)
	done := make(chan error, 1)
	go func() {
		done <- conv.Watch(ctx, func(r *Report, err error) {
			if ctx.Err() == nil {
				assert.NoError(t, err)
			}
			select {
			case reports <- r:
			case <-ctx.Done():
			}
		})
	}()

	next := func() *Report {
		select {
		case r := <-reports:
			return r
		case <-time.After(5 * time.Second):
			require.FailNow(t, "timed out waiting for a run")
			return nil
		}
	}

	assert.Equal(t, 3, next().Classes)

	f.write(t, "notes.txt", "still not html")
	f.write(t, "light.html", classPage("Light", "Actor"))
	for next().Classes != 4 {
	}
	assert.Contains(t, f.read(t, "index"), "   light\n")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Directory = filepath.Join(t.TempDir(), "absent")
	conv, err := New(cfg)
	require.NoError(t, err)

	err = conv.Watch(context.Background(), func(*Report, error) {})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}
