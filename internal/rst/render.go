// Package rst renders the API document model as reStructuredText pages.
//
// A class page is produced from the page template with the fields
// className, inheritance, description, public, static, enums and methods.
// Module and top-level index pages are produced from the index template with
// the fields module, header and index. Both templates also receive prefix,
// the cross-reference label prefix.
package rst

import (
	"bytes"
	"embed"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/qdoc2rst/internal/apimodel"
	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
)

// DefaultRefPrefix prefixes every generated label.
const DefaultRefPrefix = "api"

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// Options configure a Renderer. Empty template paths select the embedded
// defaults.
type Options struct {
	RefPrefix     string
	PageTemplate  string
	IndexTemplate string
	TableWidth    int
}

// Renderer turns class definitions and page listings into RST documents.
type Renderer struct {
	prefix     string
	tableWidth int
	page       *template.Template
	index      *template.Template
}

// IndexPage is a toctree page listing other documents.
type IndexPage struct {
	Module  string
	Header  string
	Entries []string
}

// New loads the page and index templates and returns a Renderer.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{prefix: opts.RefPrefix, tableWidth: opts.TableWidth}
	if r.prefix == "" {
		r.prefix = DefaultRefPrefix
	}
	if r.tableWidth <= 0 {
		r.tableWidth = DefaultTableWidth
	}

	var err error
	if r.page, err = loadTemplate("page.rst.tmpl", opts.PageTemplate); err != nil {
		return nil, err
	}
	if r.index, err = loadTemplate("index.rst.tmpl", opts.IndexTemplate); err != nil {
		return nil, err
	}
	return r, nil
}

func loadTemplate(name, override string) (*template.Template, error) {
	var (
		body []byte
		err  error
	)
	if override != "" {
		// #nosec G304 -- template path is operator configuration.
		body, err = os.ReadFile(filepath.Clean(override))
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read template").
				WithContext("path", override).
				Build()
		}
	} else {
		body, err = defaultTemplates.ReadFile("templates/" + name)
		if err != nil {
			return nil, errors.InternalError("embedded template missing").
				WithCause(err).
				WithContext("template", name).
				Build()
		}
	}

	tpl, err := template.New(name).Funcs(template.FuncMap{"underline": underline}).Option("missingkey=error").Parse(string(body))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse template").
			WithContext("template", name).
			WithContext("path", override).
			Build()
	}
	return tpl, nil
}

// underline repeats ch once per rune of title.
func underline(title, ch string) string {
	return strings.Repeat(ch, utf8.RuneCountInString(title))
}

// RenderClass renders the reference page of class.
func (r *Renderer) RenderClass(class *apimodel.ClassDef) (string, error) {
	inheritance := ""
	if class.Inherits != "" {
		inheritance = r.typeRef(class.Inherits)
	}
	data := map[string]any{
		"prefix":      r.prefix,
		"className":   class.Name,
		"inheritance": inheritance,
		"description": describe(class.Description, nil),
		"public":      r.methodTable(class, false),
		"static":      r.methodTable(class, true),
		"methods":     r.methodDetails(class),
		"enums":       r.enums(class),
	}
	out, err := execute(r.page, data)
	if err != nil {
		return "", errors.RenderError("failed to render class page").WithCause(err).
			WithContext("class", class.Name).
			Build()
	}
	return out, nil
}

// RenderIndex renders a toctree page over page.Entries.
func (r *Renderer) RenderIndex(page IndexPage) (string, error) {
	data := map[string]any{
		"prefix": r.prefix,
		"module": page.Module,
		"header": page.Header,
		"index":  strings.Join(page.Entries, "\n   "),
	}
	out, err := execute(r.index, data)
	if err != nil {
		return "", errors.RenderError("failed to render index page").WithCause(err).
			WithContext("module", page.Module).
			Build()
	}
	return out, nil
}

func execute(tpl *template.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ModuleName is the label of the module page generated from stem.
func ModuleName(stem string) string {
	return strings.ReplaceAll(stem, "-", "_")
}

// ModuleHeader is the page title of the module page generated from stem,
// e.g. "engine-module" becomes "Engine Module".
func ModuleHeader(stem string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(stem, "-", " "))
}
