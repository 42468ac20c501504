package qdoc

import (
	"strings"

	"git.home.luguber.info/inful/qdoc2rst/internal/apimodel"
)

// Declarations follow the fixed shape qdoc writes for members:
//
//	[tag] qualifiers returnType &Scope::name(type name, const type *name = default) trailing
//
// Every part except the name and the parentheses is optional. Parsing is a
// sequence of positional rules over the linearized text; there is no grammar.

const scopeSeparator = "::"

// declParts is a declaration split into its four raw groups.
type declParts struct {
	tag         string
	hasTag      bool
	head        string // everything before the first '('
	args        string // between the first '(' and the last ')'
	trailing    string
	hasTrailing bool
}

// ParseSignature parses one member declaration. It reports false when the
// text does not have the declaration shape; callers skip such declarations.
func ParseSignature(decl string) (*apimodel.MethodDef, bool) {
	parts, ok := splitDeclaration(decl)
	if !ok {
		return nil, false
	}

	m := &apimodel.MethodDef{Name: memberName(parts.head)}
	if ret, ok := returnSpec(parts.head); ok {
		m.ReturnType = ret.typ
		m.ReturnQualifiers = ret.qualifiers
		m.Reference = ret.reference
	}
	m.Arguments = parseArguments(parts.args)
	if parts.hasTag {
		m.Tags = parts.tag
	}
	if parts.hasTrailing {
		m.TrailingQualifiers = parts.trailing
	}
	return m, true
}

// splitDeclaration separates the optional bracketed tag, the head, the
// argument text and the trailing qualifiers. No group spans a line break:
// the first line that has the declaration shape is used.
func splitDeclaration(decl string) (declParts, bool) {
	for _, line := range strings.Split(decl, "\n") {
		if parts, ok := splitLine(line); ok {
			return parts, true
		}
	}
	return declParts{}, false
}

func splitLine(line string) (declParts, bool) {
	var parts declParts
	rest := line
	if tag, remainder, ok := cutTag(line); ok {
		parts.tag, parts.hasTag = tag, true
		rest = remainder
	}

	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return declParts{}, false
	}
	closing := strings.LastIndexByte(rest, ')')
	if closing < open {
		return declParts{}, false
	}

	parts.head = rest[:open]
	parts.args = rest[open+1 : closing]
	if after := rest[closing+1:]; strings.HasPrefix(after, " ") {
		parts.trailing, parts.hasTrailing = after[1:], true
	}
	return parts, true
}

// cutTag takes a leading "[...]" followed by a space. The tag extends to the
// last "] " that still leaves a parenthesized remainder.
func cutTag(decl string) (tag, rest string, ok bool) {
	if !strings.HasPrefix(decl, "[") {
		return "", decl, false
	}
	for end := strings.LastIndex(decl, "] "); end > 0; end = strings.LastIndex(decl[:end], "] ") {
		remainder := decl[end+2:]
		open := strings.IndexByte(remainder, '(')
		if open >= 0 && strings.LastIndexByte(remainder, ')') > open {
			return decl[:end+1], remainder, true
		}
	}
	return "", decl, false
}

// memberName is the part of head after the last scope separator, or the
// whole head when it is unqualified.
func memberName(head string) string {
	if i := strings.LastIndex(head, scopeSeparator); i >= 0 {
		return head[i+len(scopeSeparator):]
	}
	return head
}

type returnParts struct {
	typ        string
	qualifiers []string
	reference  string
}

// returnSpec splits head at its last space. The tokens before it end with
// the return type and start with its qualifiers; the reference run is read
// from the start of the text after the space.
func returnSpec(head string) (returnParts, bool) {
	space := strings.LastIndexByte(head, ' ')
	if space < 0 {
		return returnParts{}, false
	}
	tokens := strings.Fields(head[:space])
	if len(tokens) == 0 {
		return returnParts{}, false
	}
	return returnParts{
		typ:        tokens[len(tokens)-1],
		qualifiers: tokens[:len(tokens)-1],
		reference:  referenceRun(head[space+1:]),
	}, true
}

// parseArguments splits the argument text on ", ". Argument text that is
// blank yields nil rather than an empty mapping.
func parseArguments(text string) *apimodel.Arguments {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	args := apimodel.NewArguments()
	for _, piece := range strings.Split(text, ", ") {
		args.Set(parseArgument(piece))
	}
	return args
}

// parseArgument reads "qualifiers type &name = default".
func parseArgument(piece string) *apimodel.ArgumentDef {
	arg := &apimodel.ArgumentDef{}

	split := strings.Split(piece, " = ")
	decl := split[0]
	if len(split) > 1 {
		arg.Default, arg.HasDefault = split[1], true
	}

	space := strings.LastIndexByte(decl, ' ')
	rawName := decl[space+1:]
	arg.Reference = referenceRun(rawName)
	arg.Name = rawName[len(arg.Reference):]
	if space < 0 {
		return arg
	}

	prefix := decl[:space]
	typeStart := strings.LastIndexByte(prefix, ' ') + 1
	arg.Type = prefix[typeStart:]
	if typeStart > 0 {
		arg.LeadingQualifiers = prefix[:typeStart-1]
	}
	return arg
}

// referenceRun returns the maximal leading run of '&' and '*' in s.
func referenceRun(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool { return r != '&' && r != '*' })
	if end < 0 {
		return s
	}
	return s[:end]
}

// ParseEnumName extracts the enum name from an enum declaration such as
// "enum Scope::Name": the text after the last space of the first line that
// has one, with any owning scope removed.
func ParseEnumName(decl string) (string, bool) {
	for _, line := range strings.Split(decl, "\n") {
		space := strings.LastIndexByte(line, ' ')
		if space < 0 {
			continue
		}
		return memberName(line[space+1:]), true
	}
	return "", false
}
