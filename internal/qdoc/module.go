package qdoc

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
	"git.home.luguber.info/inful/qdoc2rst/internal/util/sets"
)

const classModuleEntry = "tblName"

// CandidateSet holds the class page names not yet claimed by a module page.
// It is safe for concurrent use.
type CandidateSet struct {
	mu      sync.Mutex
	members *sets.Ordered[string]
}

// NewCandidateSet returns a set holding names in the given order.
func NewCandidateSet(names ...string) *CandidateSet {
	return &CandidateSet{members: sets.NewOrdered(names...)}
}

// Add inserts name if it is not present yet.
func (c *CandidateSet) Add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.members.Add(name)
}

// Has reports whether name is still unclaimed.
func (c *CandidateSet) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.members.Has(name)
}

// Claim removes name and reports whether it was present.
func (c *CandidateSet) Claim(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.members.Delete(name)
}

// Remaining returns the unclaimed names in insertion order.
func (c *CandidateSet) Remaining() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.members.Values()
}

// Len returns the number of unclaimed names.
func (c *CandidateSet) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.members.Len()
}

// ParseModuleFile reads the module index page at path and claims its classes.
func ParseModuleFile(path string, candidates *CandidateSet) ([]string, error) {
	// #nosec G304 -- path comes from the input directory listing.
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.FileSystemError("failed to read module page").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	names, err := ParseModule(bytes.NewReader(data), candidates)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	return names, nil
}

// ParseModule scans a module index page for member class names. Each
// lower-cased name found in candidates is removed from it and returned, in
// page order.
func ParseModule(r io.Reader, candidates *CandidateSet) ([]string, error) {
	doc, err := loadDocument(r)
	if err != nil {
		return nil, err
	}

	var claimed []string
	byClass(doc.Selection, classModuleEntry).Each(func(_ int, cell *goquery.Selection) {
		name := strings.ToLower(strings.TrimSpace(Linearize(cell.Get(0))))
		if candidates.Claim(name) {
			claimed = append(claimed, name)
		}
	})
	return claimed, nil
}
