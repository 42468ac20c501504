package rst

import (
	"fmt"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/qdoc2rst/internal/apimodel"
)

const (
	seeAlso    = "See also "
	notePrefix = "Note: "
	codeIndent = "    "
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ref is a cross-reference to the page or anchor of target.
func (r *Renderer) ref(label, target string) string {
	return fmt.Sprintf(":ref:`%s<%s_%s>`", label, r.prefix, target)
}

func (r *Renderer) typeRef(name string) string {
	return r.ref(name, name)
}

func (r *Renderer) anchor(parts ...string) string {
	return ".. _" + r.prefix + "_" + strings.Join(parts, "_") + ":\n\n"
}

// codeBlock renders text as a literal block.
func codeBlock(text string) string {
	return "::\n\n" + codeIndent + strings.ReplaceAll(text, "\n", "\n"+codeIndent)
}

// describe renders description fragments as paragraphs, code fragments as
// literal blocks.
func describe(fragments []apimodel.Fragment, prose func(string) string) string {
	var b strings.Builder
	for _, f := range fragments {
		text := f.Text
		switch {
		case f.Code:
			text = codeBlock(text)
		case prose != nil:
			text = prose(text)
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// methodTable is the summary grid of either the static or the non-static
// methods of class.
func (r *Renderer) methodTable(class *apimodel.ClassDef, static bool) string {
	table := NewGridTable(r.tableWidth, AlignRight, AlignLeft)
	for _, m := range class.Methods.All() {
		if m.IsStatic() != static {
			continue
		}
		table.AddRow(r.returnCell(m), r.signatureCell(class.Name, m))
	}
	return table.String()
}

func (r *Renderer) returnCell(m *apimodel.MethodDef) string {
	if !m.HasReturnType() {
		return ""
	}
	var b strings.Builder
	for _, q := range m.ReturnQualifiers {
		b.WriteString(q)
		b.WriteByte(' ')
	}
	b.WriteString(r.typeRef(m.ReturnType))
	if m.Reference != "" {
		b.WriteByte(' ')
		b.WriteString(m.Reference)
	}
	return b.String()
}

func (r *Renderer) signatureCell(className string, m *apimodel.MethodDef) string {
	args := make([]string, 0, m.Arguments.Len())
	for _, a := range m.Arguments.List() {
		args = append(args, argumentSummary(a))
	}
	return r.ref(m.Name, className+"_"+m.Name) + " (" + strings.Join(args, ", ") + ")" + trailing(m)
}

func argumentSummary(a *apimodel.ArgumentDef) string {
	var parts []string
	if a.LeadingQualifiers != "" {
		parts = append(parts, a.LeadingQualifiers)
	}
	if a.Type != "" {
		parts = append(parts, a.Type)
	}
	parts = append(parts, a.Reference+a.Name)
	return strings.Join(parts, " ") + defaultValue(a)
}

func defaultValue(a *apimodel.ArgumentDef) string {
	if !a.HasDefault {
		return ""
	}
	return " = " + a.Default
}

func trailing(m *apimodel.MethodDef) string {
	if m.TrailingQualifiers == "" {
		return ""
	}
	return " " + m.TrailingQualifiers
}

// methodDetails renders one section per method overload. Overloads share
// the anchor of their name, emitted before the first one only.
func (r *Renderer) methodDetails(class *apimodel.ClassDef) string {
	var b strings.Builder
	for _, name := range class.Methods.Names() {
		b.WriteString(r.anchor(class.Name, name))
		for _, m := range class.Methods.Overloads(name) {
			b.WriteString(r.methodHeading(class.Name, m))
			b.WriteString("\n\n")
			b.WriteString(describe(m.Description, proseRewriter(m.Arguments)))
			b.WriteString("----\n\n")
		}
	}
	return b.String()
}

func (r *Renderer) methodHeading(className string, m *apimodel.MethodDef) string {
	var b strings.Builder
	if m.HasReturnType() {
		b.WriteString(r.returnCell(m))
		b.WriteByte(' ')
	}
	args := make([]string, 0, m.Arguments.Len())
	for _, a := range m.Arguments.List() {
		args = append(args, r.argumentDetail(a))
	}
	fmt.Fprintf(&b, "**%s::%s** (%s)%s", className, m.Name, strings.Join(args, ", "), trailing(m))
	return b.String()
}

func (r *Renderer) argumentDetail(a *apimodel.ArgumentDef) string {
	var parts []string
	if a.LeadingQualifiers != "" {
		parts = append(parts, a.LeadingQualifiers)
	}
	if a.Type != "" {
		parts = append(parts, r.typeRef(a.Type))
	}
	if a.Reference != "" {
		parts = append(parts, a.Reference)
	}
	if a.Name != "" {
		parts = append(parts, "*"+a.Name+"*")
	}
	return strings.Join(parts, " ") + defaultValue(a)
}

// proseRewriter marks up "See also" lists, notes and argument names in a
// method description paragraph.
func proseRewriter(args *apimodel.Arguments) func(string) string {
	type emphasis struct {
		re   *regexp.Regexp
		repl string
	}
	var names []emphasis
	for _, name := range args.Names() {
		if identifier.MatchString(name) {
			names = append(names, emphasis{regexp.MustCompile(` ` + name + `\b`), " *" + name + "*"})
		}
	}
	return func(text string) string {
		if strings.HasPrefix(text, seeAlso) {
			text = "**See also** " + strings.ReplaceAll(text, seeAlso, "")
		}
		for _, e := range names {
			text = e.re.ReplaceAllLiteralString(text, e.repl)
		}
		return strings.ReplaceAll(text, notePrefix, "**Note:** ")
	}
}

// enums renders the enum section, or nothing when the class has no types.
func (r *Renderer) enums(class *apimodel.ClassDef) string {
	if len(class.Types) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.anchor(class.Name, "enums"))
	b.WriteString("Public Enums\n------------\n\n")
	for _, t := range class.Types {
		b.WriteString(r.anchor(class.Name, t.Name))
		fmt.Fprintf(&b, "**enum %s::%s**\n\n", class.Name, t.Name)
		b.WriteString(describe(t.Description, nil))
		if len(t.EnumValues) == 0 {
			continue
		}
		table := NewGridTable(r.tableWidth, AlignRight, AlignLeft, AlignLeft)
		for _, row := range t.EnumValues {
			table.AddRow(row...)
		}
		b.WriteString(table.String())
		b.WriteString("\n\n")
	}
	return b.String()
}
