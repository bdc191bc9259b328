package report

import "fmt"

// Severity indicates how serious a notice is.
type Severity int

// Enumeration of notice severities.
const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}

	return "error"
}

// Notice is a recoverable diagnostic produced while parsing.  Notices are
// collected rather than raised so that several syntax errors can be reported
// for a single compilation unit.
type Notice struct {
	Message  string
	Severity Severity

	// The span of source text the notice refers to.  This may be nil.
	Span *TextSpan
}

func (n Notice) String() string {
	return fmt.Sprintf("%s: %s: %s", n.Span, n.Severity, n.Message)
}

// NoticeStack is the shared collection of notices produced for a compilation
// unit.  It is owned by the caller of the parser and handed to it at
// construction so that the caller can inspect it afterwards.
type NoticeStack struct {
	notices []Notice
}

// NewNoticeStack creates a new, empty notice stack.
func NewNoticeStack() *NoticeStack {
	return &NoticeStack{}
}

// Push adds a notice to the top of the stack.
func (ns *NoticeStack) Push(n Notice) {
	ns.notices = append(ns.notices, n)
}

// Error records an error notice over the given span.
func (ns *NoticeStack) Error(span *TextSpan, msg string, args ...interface{}) {
	ns.Push(Notice{Message: fmt.Sprintf(msg, args...), Severity: SeverityError, Span: span})
}

// Warn records a warning notice over the given span.
func (ns *NoticeStack) Warn(span *TextSpan, msg string, args ...interface{}) {
	ns.Push(Notice{Message: fmt.Sprintf(msg, args...), Severity: SeverityWarning, Span: span})
}

// Notices returns all recorded notices in the order they were recorded.
func (ns *NoticeStack) Notices() []Notice {
	return ns.notices
}

// Len returns the number of recorded notices.
func (ns *NoticeStack) Len() int {
	return len(ns.notices)
}

// Top returns the most recently recorded notice.
func (ns *NoticeStack) Top() (Notice, bool) {
	if len(ns.notices) == 0 {
		return Notice{}, false
	}

	return ns.notices[len(ns.notices)-1], true
}

// HasErrors returns whether any notice of error severity was recorded.
func (ns *NoticeStack) HasErrors() bool {
	return ns.ErrorCount() > 0
}

// ErrorCount returns the number of error notices.
func (ns *NoticeStack) ErrorCount() int {
	n := 0
	for _, notice := range ns.notices {
		if notice.Severity == SeverityError {
			n++
		}
	}

	return n
}
