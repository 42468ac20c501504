package apimodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArguments_KeepsInsertionOrder(t *testing.T) {
	args := NewArguments()
	args.Set(&ArgumentDef{Name: "b", Type: "int"})
	args.Set(&ArgumentDef{Name: "a", Type: "float"})
	args.Set(&ArgumentDef{Name: "b", Type: "bool"})

	require.Equal(t, []string{"b", "a"}, args.Names())
	b, ok := args.Get("b")
	require.True(t, ok)
	assert.Equal(t, "bool", b.Type)
	assert.Equal(t, 2, args.Len())
}

func TestArguments_NilIsEmpty(t *testing.T) {
	var args *Arguments
	assert.Equal(t, 0, args.Len())
	assert.Nil(t, args.List())
	_, ok := args.Get("x")
	assert.False(t, ok)
}

func TestMethodSet_GroupsOverloadsInDeclarationOrder(t *testing.T) {
	set := NewMethodSet()
	first := &MethodDef{Name: "setValue"}
	second := &MethodDef{Name: "value"}
	third := &MethodDef{Name: "setValue", TrailingQualifiers: "const"}
	set.Add(first)
	set.Add(second)
	set.Add(third)

	assert.Equal(t, []string{"setValue", "value"}, set.Names())
	assert.Equal(t, []*MethodDef{first, third}, set.Overloads("setValue"))
	assert.Equal(t, []*MethodDef{first, third, second}, set.All())
	assert.Equal(t, 3, set.Len())
}

func TestMethodDef_IsStatic(t *testing.T) {
	assert.True(t, (&MethodDef{Tags: "[static]"}).IsStatic())
	assert.False(t, (&MethodDef{Tags: "[virtual]"}).IsStatic())
	assert.False(t, (&MethodDef{}).IsStatic())
}

func TestClassDef_JSONKeepsOrder(t *testing.T) {
	class := NewClassDef("Actor")
	args := NewArguments()
	args.Set(&ArgumentDef{Name: "z", Type: "int"})
	args.Set(&ArgumentDef{Name: "y", Type: "int"})
	class.Methods.Add(&MethodDef{Name: "move", Arguments: args})

	data, err := json.Marshal(class)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Actor",
		"methods": [{"name": "move", "overloads": [{"name": "move", "arguments": [
			{"name": "z", "type": "int"},
			{"name": "y", "type": "int"}
		]}]}]
	}`, string(data))
}
