// Package apimodel holds the intermediate document model extracted from
// class-reference pages and handed to the renderer.
//
// The model is plain data. It is populated once by the extractor in
// internal/qdoc and treated as read-only afterwards.
package apimodel

// Fragment is one paragraph-level piece of a description.
//
// Code fragments come from verbatim blocks and keep their line breaks and
// indentation; renderers must not reflow them.
type Fragment struct {
	Text string `json:"text" yaml:"text"`
	Code bool   `json:"code,omitempty" yaml:"code,omitempty"`
}

// ArgumentDef describes one argument of a member declaration.
type ArgumentDef struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	// Reference is the run of '&' and '*' characters written in front of the name.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`
	// LeadingQualifiers are the tokens preceding the type, e.g. "const".
	LeadingQualifiers string `json:"leadingQualifiers,omitempty" yaml:"leadingQualifiers,omitempty"`
	Default           string `json:"default,omitempty" yaml:"default,omitempty"`
	HasDefault        bool   `json:"hasDefault,omitempty" yaml:"hasDefault,omitempty"`
}

// MethodDef describes one member declaration (one overload).
type MethodDef struct {
	Name       string `json:"name" yaml:"name"`
	ReturnType string `json:"returnType,omitempty" yaml:"returnType,omitempty"`
	// ReturnQualifiers are the tokens written before the return type. Nil when
	// no return type was found.
	ReturnQualifiers []string `json:"returnQualifiers,omitempty" yaml:"returnQualifiers,omitempty"`
	Reference        string   `json:"reference,omitempty" yaml:"reference,omitempty"`
	// Tags is the bracketed annotation in front of the declaration, brackets included.
	Tags string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// TrailingQualifiers is the text following the argument list, e.g. "const".
	TrailingQualifiers string     `json:"trailingQualifiers,omitempty" yaml:"trailingQualifiers,omitempty"`
	Arguments          *Arguments `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Description        []Fragment `json:"description,omitempty" yaml:"description,omitempty"`
}

// StaticTag is the annotation qdoc writes in front of static members.
const StaticTag = "[static]"

// HasReturnType reports whether a return type was discovered for the method.
func (m *MethodDef) HasReturnType() bool { return m.ReturnType != "" }

// IsStatic reports whether the method carries the static annotation.
func (m *MethodDef) IsStatic() bool { return m.Tags == StaticTag }

// TypeDef describes a public enum.
type TypeDef struct {
	Name        string     `json:"name" yaml:"name"`
	Description []Fragment `json:"description,omitempty" yaml:"description,omitempty"`
	// EnumValues rows hold three cells: value name, numeric value, description.
	EnumValues [][]string `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`
}

// ClassDef is the complete model of one class page.
type ClassDef struct {
	Name string `json:"name" yaml:"name"`
	// Inherits is the single parent class name, empty when none was listed.
	Inherits    string     `json:"inherits,omitempty" yaml:"inherits,omitempty"`
	Description []Fragment `json:"description,omitempty" yaml:"description,omitempty"`
	Methods     *MethodSet `json:"methods" yaml:"methods"`
	Types       []TypeDef  `json:"types,omitempty" yaml:"types,omitempty"`
}

// NewClassDef returns a ClassDef with an empty method set.
func NewClassDef(name string) *ClassDef {
	return &ClassDef{Name: name, Methods: NewMethodSet()}
}
