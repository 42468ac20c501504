package qdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/qdoc2rst/internal/apimodel"
)

func TestParseSignature_StaticTagAndTrailingConst(t *testing.T) {
	m, ok := ParseSignature("[static] int MyClass::getValue() const")
	require.True(t, ok)

	assert.Equal(t, "[static]", m.Tags)
	assert.Equal(t, "int", m.ReturnType)
	assert.Empty(t, m.ReturnQualifiers)
	assert.Equal(t, "", m.Reference)
	assert.Equal(t, "getValue", m.Name)
	assert.Nil(t, m.Arguments)
	assert.Equal(t, "const", m.TrailingQualifiers)
	assert.True(t, m.IsStatic())
}

func TestParseSignature_ReferenceReturn(t *testing.T) {
	m, ok := ParseSignature("QString &MyClass::name()")
	require.True(t, ok)

	assert.Equal(t, "name", m.Name)
	assert.Equal(t, "QString", m.ReturnType)
	assert.Equal(t, "&", m.Reference)
	assert.Empty(t, m.TrailingQualifiers)
	assert.Empty(t, m.Tags)
}

func TestParseSignature_ReturnQualifiers(t *testing.T) {
	m, ok := ParseSignature("static const QString **Scope::Inner::lookup(int key)")
	require.True(t, ok)

	assert.Equal(t, "lookup", m.Name)
	assert.Equal(t, "QString", m.ReturnType)
	assert.Equal(t, []string{"static", "const"}, m.ReturnQualifiers)
	assert.Equal(t, "**", m.Reference)
}

func TestParseSignature_NoReturnType(t *testing.T) {
	m, ok := ParseSignature("MyClass::MyClass()")
	require.True(t, ok)

	assert.Equal(t, "MyClass", m.Name)
	assert.False(t, m.HasReturnType())
	assert.Nil(t, m.ReturnQualifiers)
	assert.Empty(t, m.Reference)
}

func TestParseSignature_UnqualifiedNameKeepsWholeHead(t *testing.T) {
	m, ok := ParseSignature("name(int a, float b = 1.5)")
	require.True(t, ok)

	assert.Equal(t, "name", m.Name)
	require.NotNil(t, m.Arguments)
	assert.Equal(t, []string{"a", "b"}, m.Arguments.Names())

	b, _ := m.Arguments.Get("b")
	assert.Equal(t, "float", b.Type)
	assert.True(t, b.HasDefault)
	assert.Equal(t, "1.5", b.Default)

	a, _ := m.Arguments.Get("a")
	assert.False(t, a.HasDefault)
}

func TestParseSignature_ArgumentOrderAndRawDefaults(t *testing.T) {
	m, ok := ParseSignature(`void Log::write(const char *text, QString &tag = QString("main"), int level = Level::Info | Level::Debug)`)
	require.True(t, ok)

	require.Equal(t, 3, m.Arguments.Len())
	assert.Equal(t, []string{"text", "tag", "level"}, m.Arguments.Names())

	tag, _ := m.Arguments.Get("tag")
	assert.Equal(t, `QString("main")`, tag.Default)
	assert.Equal(t, "&", tag.Reference)

	level, _ := m.Arguments.Get("level")
	assert.Equal(t, "Level::Info | Level::Debug", level.Default)
}

func TestParseSignature_BlankArgumentTextIsAbsent(t *testing.T) {
	for _, decl := range []string{"void A::f()", "void A::f(  )"} {
		m, ok := ParseSignature(decl)
		require.True(t, ok, decl)
		assert.Nil(t, m.Arguments, decl)
	}
}

func TestParseSignature_Mismatch(t *testing.T) {
	for _, decl := range []string{"", "Actor::broken", "enum Actor::Layers", "void f)(", "void f("} {
		_, ok := ParseSignature(decl)
		assert.False(t, ok, decl)
	}
}

func TestParseSignature_TrailingRequiresSpace(t *testing.T) {
	m, ok := ParseSignature("void A::f()const")
	require.True(t, ok)
	assert.Empty(t, m.TrailingQualifiers)

	m, ok = ParseSignature("virtual void A::f() = 0")
	require.True(t, ok)
	assert.Equal(t, "= 0", m.TrailingQualifiers)
	assert.Equal(t, []string{"virtual"}, m.ReturnQualifiers)
}

func TestParseSignature_TagNeedsBracketsAndSpace(t *testing.T) {
	m, ok := ParseSignature("[signal] void A::changed(int value)")
	require.True(t, ok)
	assert.Equal(t, "[signal]", m.Tags)

	m, ok = ParseSignature("[static][virtual] void A::f()")
	require.True(t, ok)
	assert.Equal(t, "[static][virtual]", m.Tags)
	assert.Equal(t, "void", m.ReturnType)

	m, ok = ParseSignature("[static]void A::f()")
	require.True(t, ok)
	assert.Empty(t, m.Tags)
	assert.Equal(t, "[static]void", m.ReturnType)
}

func TestParseSignature_ArgumentParenthesesStayInArguments(t *testing.T) {
	m, ok := ParseSignature("void A::connect(Object *sender, const char *signal = SIGNAL(changed())) const")
	require.True(t, ok)

	assert.Equal(t, "const", m.TrailingQualifiers)
	signal, ok := m.Arguments.Get("signal")
	require.True(t, ok)
	assert.Equal(t, "SIGNAL(changed())", signal.Default)
	assert.Equal(t, "*", signal.Reference)
	assert.Equal(t, "const", signal.LeadingQualifiers)
}

func TestParseArgument(t *testing.T) {
	tests := []struct {
		piece    string
		expected apimodel.ArgumentDef
	}{
		{
			piece: "const QObject *parent = nullptr",
			expected: apimodel.ArgumentDef{
				Name: "parent", Type: "QObject", Reference: "*",
				LeadingQualifiers: "const", Default: "nullptr", HasDefault: true,
			},
		},
		{
			piece:    "int count",
			expected: apimodel.ArgumentDef{Name: "count", Type: "int"},
		},
		{
			piece:    "unsigned long long &&value",
			expected: apimodel.ArgumentDef{Name: "value", Type: "long", Reference: "&&", LeadingQualifiers: "unsigned long"},
		},
		{
			piece:    "int",
			expected: apimodel.ArgumentDef{Name: "int"},
		},
		{
			piece:    "bool flag = ",
			expected: apimodel.ArgumentDef{Name: "flag", Type: "bool", HasDefault: true},
		},
		{
			piece:    "int x = 1 = 2",
			expected: apimodel.ArgumentDef{Name: "x", Type: "int", Default: "1", HasDefault: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.piece, func(t *testing.T) {
			got := parseArgument(tt.piece)
			assert.Equal(t, tt.expected, *got)
			assert.NotContains(t, got.Reference, " ")
		})
	}
}

func TestReferenceRun(t *testing.T) {
	assert.Equal(t, "", referenceRun(""))
	assert.Equal(t, "&", referenceRun("&name"))
	assert.Equal(t, "*&", referenceRun("*&name"))
	assert.Equal(t, "**", referenceRun("**"))
	assert.Equal(t, "", referenceRun("name*"))
}

func TestParseEnumName(t *testing.T) {
	tests := []struct {
		decl string
		name string
		ok   bool
	}{
		{"enum Actor::Layers", "Layers", true},
		{"enum Outer::Inner::Mode", "Mode", true},
		{"enum Flags", "Flags", true},
		{"enum Actor::Layers\nflags Actor::LayerSet", "Layers", true},
		{"Layers\nenum Actor::Layers", "Layers", true},
		{"Layers", "", false},
	}
	for _, tt := range tests {
		name, ok := ParseEnumName(tt.decl)
		assert.Equal(t, tt.ok, ok, tt.decl)
		assert.Equal(t, tt.name, name, tt.decl)
	}
}

func TestParseSignature_GroupsStopAtLineBreak(t *testing.T) {
	m, ok := ParseSignature("[static] void A::f() const\n[since 5.0]")
	require.True(t, ok)
	assert.Equal(t, "[static]", m.Tags)
	assert.Equal(t, "const", m.TrailingQualifiers)

	m, ok = ParseSignature("obsolete\nint A::count(bool deep)")
	require.True(t, ok)
	assert.Equal(t, "count", m.Name)
	assert.Equal(t, "int", m.ReturnType)

	_, ok = ParseSignature("void A::f(int a,\nint b)")
	assert.False(t, ok)
}
