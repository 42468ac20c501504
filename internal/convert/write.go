package convert

import (
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
)

// writeResult tells whether an output file was rewritten.
type writeResult int

const (
	written writeResult = iota
	unchanged
)

// writeOutput writes content to <output>/<stem>.rst unless the existing file
// already holds the same content.
func (c *Converter) writeOutput(stem, content string) (writeResult, error) {
	path := filepath.Join(c.cfg.Output.Directory, stem+".rst")

	// #nosec G304 -- path is built from the output directory and an input file stem.
	if existing, err := os.ReadFile(path); err == nil && xxhash.Sum64(existing) == xxhash.Sum64String(content) {
		return unchanged, nil
	}

	// #nosec G306 -- generated documentation is meant to be world readable.
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return written, errors.FileSystemError("failed to write output").WithCause(err).
			WithContext("path", path).
			Build()
	}
	return written, nil
}
