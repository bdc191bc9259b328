package report

import "fmt"

// TextSpan is an inclusive range of source text: it runs from the first to the
// last character covered.  Lines and columns count from zero.
type TextSpan struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// NewSpanOver returns the span from the start of start to the end of end.  If
// either is nil, the other is returned.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	if start == nil {
		return end
	} else if end == nil {
		return start
	}

	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func (ts *TextSpan) String() string {
	if ts == nil {
		return "?"
	}

	return fmt.Sprintf("%d:%d", ts.StartLine+1, ts.StartCol+1)
}
