package convert

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
	"git.home.luguber.info/inful/qdoc2rst/internal/logfields"
)

const htmlExt = ".html"

// page is one input HTML file.
type page struct {
	path string
	// stem is the file name without extension; it names the output file.
	stem   string
	module bool
}

// discover lists the input pages in file name order, dropping excluded ones.
// It returns the kept pages and the number of excluded files.
func (c *Converter) discover() ([]page, int, error) {
	dir := c.cfg.Input.Directory
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, errors.NotFoundError("input directory not found").
				WithCause(err).
				WithContext("path", dir).
				Build()
		}
		return nil, 0, errors.FileSystemError("failed to list input directory").WithCause(err).
			WithContext("path", dir).
			Build()
	}

	var (
		pages    []page
		excluded int
	)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != htmlExt {
			continue
		}
		if c.excluded(name) {
			slog.Debug("Excluding page", logfields.Page(name))
			excluded++
			continue
		}
		pages = append(pages, page{
			path:   filepath.Join(dir, name),
			stem:   strings.TrimSuffix(name, htmlExt),
			module: strings.Contains(name, c.cfg.Input.ModuleMarker),
		})
	}
	return pages, excluded, nil
}

func (c *Converter) excluded(name string) bool {
	for _, pattern := range c.cfg.Input.Exclude {
		// Patterns are validated with the configuration.
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func partition(pages []page) (classes, modules []page) {
	for _, p := range pages {
		if p.module {
			modules = append(modules, p)
		} else {
			classes = append(classes, p)
		}
	}
	return classes, modules
}
