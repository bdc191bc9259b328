package report

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpanOver(t *testing.T) {
	a := &TextSpan{StartLine: 1, StartCol: 4, EndLine: 1, EndCol: 6}
	b := &TextSpan{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 2}

	span := NewSpanOver(a, b)
	assert.Equal(t, &TextSpan{StartLine: 1, StartCol: 4, EndLine: 3, EndCol: 2}, span)

	assert.Same(t, a, NewSpanOver(a, nil))
	assert.Same(t, b, NewSpanOver(nil, b))
	assert.Equal(t, "2:5", a.String())
}

func TestNoticeStack(t *testing.T) {
	ns := NewNoticeStack()
	assert.False(t, ns.HasErrors())

	_, ok := ns.Top()
	assert.False(t, ok)

	ns.Warn(nil, "unknown attribute `%s`", "fast")
	assert.False(t, ns.HasErrors())

	ns.Error(&TextSpan{}, "character literal must contain exactly one character")
	require.Equal(t, 2, ns.Len())
	assert.True(t, ns.HasErrors())
	assert.Equal(t, 1, ns.ErrorCount())

	top, ok := ns.Top()
	require.True(t, ok)
	assert.Equal(t, SeverityError, top.Severity)
	assert.Equal(t, "unknown attribute `fast`", ns.Notices()[0].Message)
	assert.Equal(t, SeverityWarning, ns.Notices()[0].Severity)
}

func TestTypedErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&UndefinedReferenceError{Name: "x", Kind: "variable"}, "undefined variable reference `x`"},
		{&UndefinedReferenceError{Name: "x", Kind: "function", Reason: "not a function"}, "undefined function reference `x`: not a function"},
		{&RedefinitionError{Kind: "function", Name: "main"}, "function `main` is already defined"},
		{&SignatureMismatchError{Name: "f", Expected: 1, Got: 2}, "function `f` was declared with 1 arguments but is redeclared with 2"},
		{&UnimplementedError{Construct: "string type"}, "string type: not implemented"},
		{Internal("bad owner %d", 3), "internal error: bad owner 3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestIsInternal(t *testing.T) {
	assert.True(t, IsInternal(Internal("oops")))
	assert.True(t, IsInternal(fmt.Errorf("lowering: %w", Internal("oops"))))
	assert.False(t, IsInternal(&RedefinitionError{Kind: "global", Name: "g"}))
	assert.False(t, IsInternal(errors.New("plain")))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelSilent, ParseLogLevel("silent"))
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelVerbose, ParseLogLevel("verbose"))
	assert.Equal(t, LogLevelVerbose, ParseLogLevel("bogus"))
}

func TestReporterCountsWhenSilent(t *testing.T) {
	InitReporter(LogLevelSilent)
	defer InitReporter(LogLevelSilent)

	ns := NewNoticeStack()
	ns.Error(nil, "first")
	ns.Warn(nil, "second")
	ReportNotices("missing.ion", "missing.ion", ns)
	ReportPassError("missing.ion", "missing.ion", &RedefinitionError{Kind: "extern", Name: "puts"})

	errs, warns := Counts()
	assert.Equal(t, 2, errs)
	assert.Equal(t, 1, warns)
	assert.True(t, AnyErrors())
}

func TestFormatSourceText(t *testing.T) {
	lines := []string{"    int8 x = 300;"}
	span := &TextSpan{StartLine: 1, StartCol: 13, EndLine: 1, EndCol: 15}

	out := formatSourceText(lines, span)
	assert.Contains(t, out, "2 | ")
	assert.Contains(t, out, "int8 x = 300;")
	assert.Contains(t, out, "^^^")
	assert.NotContains(t, out, "^^^^")

	// The indentation common to all lines is trimmed.
	assert.False(t, strings.Contains(out, "    int8"))
}
