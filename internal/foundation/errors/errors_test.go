package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "config.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		assert.Equal(t, "[config:fatal] invalid configuration", err.Error())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "config.yaml", file)
	})

	t.Run("Wrapped errors unwrap", func(t *testing.T) {
		cause := stderrors.New("unexpected EOF")
		err := WrapError(cause, CategoryParse, "failed to parse page").
			WithContext("path", "html/node.html").
			Build()

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "[parse:error] failed to parse page: unexpected EOF", err.Error())
		assert.False(t, err.IsFatal())
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := ConfigError("bad workers").Build()
		outer := fmt.Errorf("loading: %w", inner)

		assert.True(t, IsClassified(outer))
		assert.True(t, HasCategory(outer, CategoryConfig))
		assert.Equal(t, CategoryConfig, GetCategory(outer))
		assert.Equal(t, SeverityFatal, GetSeverity(outer))
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		err := stderrors.New("plain")
		assert.False(t, IsClassified(err))
		assert.Equal(t, CategoryInternal, GetCategory(err))
		assert.Equal(t, SeverityError, GetSeverity(err))
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := ParseError("bad page").WithContext("path", "a.html").Build()
		derived := base.WithContext("page", "a")

		_, hasPage := base.Context().Get("page")
		assert.False(t, hasPage)
		page, _ := derived.Context().GetString("page")
		assert.Equal(t, "a", page)
	})
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
		{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
		{"NotFoundError", NotFoundError("test"), CategoryNotFound, SeverityError},
		{"ParseError", ParseError("test"), CategoryParse, SeverityError},
		{"RenderError", RenderError("test"), CategoryRender, SeverityFatal},
		{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError},
		{"RuntimeError", RuntimeError("test"), CategoryRuntime, SeverityFatal},
		{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			assert.Equal(t, tt.category, err.Category())
			assert.Equal(t, tt.severity, err.Severity())
		})
	}
}

func TestErrorContext_Merge(t *testing.T) {
	ctx1 := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	ctx2 := ErrorContext{}.Set("key2", 42).Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	v1, _ := merged.GetString("key1")
	v2, _ := merged.Get("key2")
	shared, _ := merged.GetString("shared")
	assert.Equal(t, "value1", v1)
	assert.Equal(t, 42, v2)
	assert.Equal(t, "overridden", shared)

	_, ok := merged.GetString("key2")
	assert.False(t, ok, "non-string values are not returned by GetString")
}
