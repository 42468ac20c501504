package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Page", KeyPage, "qobject", Page("qobject")},
		{"Class", KeyClass, "Actor", Class("Actor")},
		{"Module", KeyModule, "engine-module", Module("engine-module")},
		{"Path", KeyPath, "/tmp/x.html", Path("/tmp/x.html")},
		{"Stage", KeyStage, "render", Stage("render")},
		{"Declaration", KeyDeclaration, "void f()", Declaration("void f()")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.attrKey, tc.attr.Key)
			assert.Equal(t, tc.attrVal, tc.attr.Value.String())
		})
	}
}

func TestNumericHelpers(t *testing.T) {
	assert.Equal(t, KeyCount, Count(3).Key)
	assert.Equal(t, int64(3), Count(3).Value.Int64())

	d := Duration(1500 * time.Microsecond)
	assert.Equal(t, KeyDurationMS, d.Key)
	assert.InDelta(t, 1.5, d.Value.Float64(), 1e-9)
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
