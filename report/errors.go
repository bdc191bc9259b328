package report

import (
	"errors"
	"fmt"
)

// LocalCompileError is a positioned compilation error raised inside a single
// source file.  The file is supplied by whoever reports it.
type LocalCompileError struct {
	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (lce *LocalCompileError) Error() string {
	return lce.Message
}

// Raise builds a LocalCompileError from a format string.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// UndefinedReferenceError indicates that a name could not be bound to any
// visible declaration of the right kind.
type UndefinedReferenceError struct {
	// The name being referenced.
	Name string

	// The kind of the reference: "variable" or "function".
	Kind string

	// An optional qualification of why resolution failed.
	Reason string

	Span *TextSpan
}

func (ure *UndefinedReferenceError) Error() string {
	if ure.Reason != "" {
		return fmt.Sprintf("undefined %s reference `%s`: %s", ure.Kind, ure.Name, ure.Reason)
	}

	return fmt.Sprintf("undefined %s reference `%s`", ure.Kind, ure.Name)
}

// RedefinitionError indicates that an emitted symbol was defined twice.
type RedefinitionError struct {
	// The kind of symbol being redefined: "function", "extern", or "global".
	Kind string
	Name string
}

func (re *RedefinitionError) Error() string {
	return fmt.Sprintf("%s `%s` is already defined", re.Kind, re.Name)
}

// SignatureMismatchError indicates that a prototype disagrees with an earlier
// declaration of the same function.
type SignatureMismatchError struct {
	Name string

	// The number of arguments of the existing and the new declaration.
	Expected, Got int
}

func (sme *SignatureMismatchError) Error() string {
	return fmt.Sprintf(
		"function `%s` was declared with %d arguments but is redeclared with %d",
		sme.Name, sme.Expected, sme.Got,
	)
}

// UnimplementedError indicates that a construct is recognized but can not be
// lowered yet.
type UnimplementedError struct {
	Construct string
}

func (ue *UnimplementedError) Error() string {
	return fmt.Sprintf("%s: not implemented", ue.Construct)
}

// InternalError indicates an invariant violation inside the compiler itself:
// these should never occur for any input.
type InternalError struct {
	Message string
}

func (ie *InternalError) Error() string {
	return "internal error: " + ie.Message
}

// Internal creates a new internal error.
func Internal(msg string, args ...interface{}) *InternalError {
	return &InternalError{Message: fmt.Sprintf(msg, args...)}
}

// IsInternal returns whether err is or wraps an internal error.
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal compiler error: a bug in ion rather than in the
// compiled program.  ICEs are displayed at every log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	displayICE(fmt.Sprintf(message, args...))
}

// ReportFatal reports an error that ends the compilation but is not a bug, such
// as a missing source file or an unwritable output path.
func ReportFatal(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	if rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(message, args...))
	}
}

// ReportCompileError reports an error in the compiled source.  absPath locates
// the file for the source excerpt and reprPath is what the user sees.  A nil
// span omits position information.
func ReportCompileError(absPath, reprPath string, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	if rep.logLevel > LogLevelSilent {
		displayCompileMessage("error", absPath, reprPath, span, fmt.Sprintf(message, args...))
	}
}

// ReportCompileWarning reports a warning about the compiled source.  It takes
// the same arguments as ReportCompileError.
func ReportCompileWarning(absPath, reprPath string, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warnCount++
	if rep.logLevel > LogLevelError {
		displayCompileMessage("warning", absPath, reprPath, span, fmt.Sprintf(message, args...))
	}
}

// ReportNotices reports every notice in the stack in the order they were
// recorded.
func ReportNotices(absPath, reprPath string, notices *NoticeStack) {
	for _, n := range notices.Notices() {
		if n.Severity == SeverityWarning {
			ReportCompileWarning(absPath, reprPath, n.Span, "%s", n.Message)
		} else {
			ReportCompileError(absPath, reprPath, n.Span, "%s", n.Message)
		}
	}
}

// ReportPassError reports an error returned by a compiler pass.  Internal
// errors are reported as ICEs; all other errors are reported as compilation
// errors, with position information when the error carries a span.
func ReportPassError(absPath, reprPath string, err error) {
	var ie *InternalError
	if errors.As(err, &ie) {
		ReportICE("%s", ie.Message)
		return
	}

	var span *TextSpan
	var ure *UndefinedReferenceError
	var lce *LocalCompileError
	if errors.As(err, &ure) {
		span = ure.Span
	} else if errors.As(err, &lce) {
		span = lce.Span
	}

	ReportCompileError(absPath, reprPath, span, "%s", err)
}
