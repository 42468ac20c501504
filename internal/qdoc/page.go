// Package qdoc extracts the API document model from qdoc-generated HTML
// class reference pages.
//
// Pages are located by exact class attribute markers: "descr" for the class
// description, "types" and "func" for enum and member declarations (each
// declaration marked "fn"), "alignedsummary" for the inheritance row and
// "title" for the page title. These markers are fixed by the generator.
package qdoc

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/qdoc2rst/internal/apimodel"
	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
	"git.home.luguber.info/inful/qdoc2rst/internal/logfields"
)

const (
	classDescription = "descr"
	classTypes       = "types"
	classMembers     = "func"
	classSummary     = "alignedsummary"
	classTitle       = "title"
	classDeclaration = "fn"

	titleSuffix   = " Class"
	inheritsLabel = "Inherits:"
)

// PageResult is the outcome of extracting one class page.
type PageResult struct {
	Class *apimodel.ClassDef
	// Skipped holds the declarations that did not have the expected shape.
	Skipped []string
}

// ParseClassFile reads and extracts the class page at path.
func ParseClassFile(path string) (*PageResult, error) {
	// #nosec G304 -- path comes from the input directory listing.
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.FileSystemError("failed to read page").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	res, err := ParseClass(bytes.NewReader(data))
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	return res, nil
}

// ParseClass extracts a class page. It returns a nil result, without error,
// when the page has no description region and therefore is not a class page.
func ParseClass(r io.Reader) (*PageResult, error) {
	doc, err := loadDocument(r)
	if err != nil {
		return nil, err
	}

	descr := firstByClass(doc.Selection, classDescription)
	if descr == nil {
		return nil, nil
	}

	res := &PageResult{Class: apimodel.NewClassDef(pageTitle(doc))}
	res.Class.Description = describeClass(descr)

	if types := firstByClass(doc.Selection, classTypes); types != nil {
		res.extractTypes(types)
	}
	if members := firstByClass(doc.Selection, classMembers); members != nil {
		res.extractMembers(members)
	}
	if summary := firstByClass(doc.Selection, classSummary); summary != nil {
		res.Class.Inherits = inheritedClass(summary)
	}
	return res, nil
}

func loadDocument(r io.Reader) (*goquery.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.ParseError("failed to read page").WithCause(err).Build()
	}
	data = Normalize(data)
	if err := checkWellFormed(data); err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.ParseError("failed to parse page markup").WithCause(err).Build()
	}
	return doc, nil
}

func byClass(s *goquery.Selection, class string) *goquery.Selection {
	return s.Find(`[class="` + class + `"]`)
}

func firstByClass(s *goquery.Selection, class string) *html.Node {
	found := byClass(s, class)
	if found.Length() == 0 {
		return nil
	}
	return found.Get(0)
}

// pageTitle is the title text without the trailing " Class".
func pageTitle(doc *goquery.Document) string {
	title := firstByClass(doc.Selection, classTitle)
	if title == nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimSpace(Linearize(title)), titleSuffix)
}

// describeClass reads the description region from its second element child
// on; the first one is the region heading.
func describeClass(descr *html.Node) []apimodel.Fragment {
	children := elementChildren(descr)
	if len(children) == 0 {
		return nil
	}
	return ClassifyBlock(CollectBlock(children[0]), BlockOptions{}).Fragments
}

// inheritedClass returns the text of the cell following the "Inherits:"
// label. When the label appears more than once the last one wins.
func inheritedClass(summary *html.Node) string {
	var inherits string
	next := false
	goquery.NewDocumentFromNode(summary).Find("td").Each(func(_ int, td *goquery.Selection) {
		text := strings.TrimSpace(Linearize(td.Get(0)))
		if next {
			inherits = text
		}
		next = text == inheritsLabel
	})
	return inherits
}

func (res *PageResult) skip(kind, decl string) {
	slog.Debug("Skipping unrecognized declaration",
		slog.String("kind", kind),
		logfields.Class(res.Class.Name),
		logfields.Declaration(decl))
	res.Skipped = append(res.Skipped, decl)
}

func (res *PageResult) extractTypes(region *html.Node) {
	byClass(goquery.NewDocumentFromNode(region).Selection, classDeclaration).Each(func(_ int, fn *goquery.Selection) {
		marker := fn.Get(0)
		decl := Linearize(marker)
		name, ok := ParseEnumName(decl)
		if !ok {
			res.skip("enum", decl)
			return
		}
		block := ClassifyBlock(CollectBlock(marker), BlockOptions{EnumTables: true})
		res.Class.Types = append(res.Class.Types, apimodel.TypeDef{
			Name:        name,
			Description: block.Fragments,
			EnumValues:  block.EnumValues,
		})
	})
}

func (res *PageResult) extractMembers(region *html.Node) {
	byClass(goquery.NewDocumentFromNode(region).Selection, classDeclaration).Each(func(_ int, fn *goquery.Selection) {
		marker := fn.Get(0)
		decl := Linearize(marker)
		method, ok := ParseSignature(decl)
		if !ok {
			res.skip("member", decl)
			return
		}
		method.Description = ClassifyBlock(CollectBlock(marker), BlockOptions{}).Fragments
		res.Class.Methods.Add(method)
	})
}
