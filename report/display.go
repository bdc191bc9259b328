package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Styles used for displaying messages.
var (
	errorStyle   = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	warnStyle    = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	iceStyle     = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	gutterStyle  = pterm.NewStyle(pterm.FgBlue)
	successStyle = pterm.NewStyle(pterm.FgGreen)
)

// displayICE prints an internal compiler error along with a request to file
// an issue.
func displayICE(message string) {
	iceStyle.Print("internal compiler error:")
	fmt.Printf(" %s\n", message)
	fmt.Print("This error was not supposed to happen: please open an issue.\n\n")
}

// displayFatal prints an error that stopped compilation.
func displayFatal(message string) {
	errorStyle.Print("fatal error:")
	fmt.Printf(" %s\n\n", message)
}

// displayCompileMessage prints an "error" or "warning" message, followed by
// the source excerpt when the span is known.
func displayCompileMessage(label, absPath, reprPath string, span *TextSpan, message string) {
	style := errorStyle
	if label == "warning" {
		style = warnStyle
	}

	if span == nil {
		fmt.Printf("%s: ", reprPath)
		style.Print(label + ":")
		fmt.Printf(" %s\n\n", message)
	} else {
		fmt.Printf("%s:%d:%d: ", reprPath, span.StartLine+1, span.StartCol+1)
		style.Print(label + ":")
		fmt.Printf(" %s\n\n", message)
		displaySourceText(absPath, span)
	}
}

// -----------------------------------------------------------------------------

// BeginPhase displays the start of a named compilation phase.  Phase messages
// are only displayed at the verbose log level.
func BeginPhase(name string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.phase = name
	rep.phaseStartTime = time.Now()

	if rep.logLevel == LogLevelVerbose {
		fmt.Printf("%s...\n", name)
	}
}

// EndPhase displays the end of the current compilation phase along with how
// long it took.
func EndPhase(success bool) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.phase == "" {
		return
	}

	elapsed := time.Since(rep.phaseStartTime)
	if rep.logLevel == LogLevelVerbose {
		if success {
			successStyle.Print("done")
		} else {
			errorStyle.Print("failed")
		}

		fmt.Printf(" %s (%.3fs)\n", rep.phase, elapsed.Seconds())
	}

	rep.phase = ""
}

// DisplaySummary displays the number of errors and warnings produced during
// compilation in a horizontal rule sized to the terminal.
func DisplaySummary() {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelSilent {
		return
	}

	fmt.Println(strings.Repeat("-", min(pterm.GetTerminalWidth(), 80)))

	var style *pterm.Style
	if rep.errorCount > 0 {
		style = errorStyle
	} else {
		style = successStyle
	}

	style.Printf("%d error(s), %d warning(s)\n", rep.errorCount, rep.warnCount)
}

// -----------------------------------------------------------------------------

// displaySourceText prints the source lines covered by span.
func displaySourceText(absPath string, span *TextSpan) {
	// Open the file so we can read the desired source text.  Failing to do so
	// only drops the excerpt: the message has already been displayed.
	file, err := os.Open(absPath)
	if err != nil {
		return
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if sc.Err() != nil || len(lines) == 0 {
		return
	}

	fmt.Print(formatSourceText(lines, span))
}

// formatSourceText renders the given source lines with a line number gutter
// and carret underlining of the span.
func formatSourceText(lines []string, span *TextSpan) string {
	var sb strings.Builder

	// indentation common to every line is stripped
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	gutterWidth := len(strconv.Itoa(span.EndLine + 1))
	numFmt := "%-" + strconv.Itoa(gutterWidth) + "v | "

	for i, line := range lines {
		sb.WriteString(gutterStyle.Sprintf(numFmt, i+span.StartLine+1))
		sb.WriteString(line[minIndent:])
		sb.WriteRune('\n')

		sb.WriteString(gutterStyle.Sprint(strings.Repeat(" ", gutterWidth) + " | "))

		// Only the first line skips the leading columns and only the last line
		// stops short of the end.
		carretStart := 0
		if i == 0 {
			carretStart = span.StartCol - minIndent
		}

		carretEnd := len(line) - minIndent
		if i == len(lines)-1 {
			carretEnd = span.EndCol - minIndent + 1
		}

		carretStart = clamp(carretStart, 0, len(line)-minIndent)
		carretEnd = clamp(carretEnd, carretStart, len(line)-minIndent)

		sb.WriteString(strings.Repeat(" ", carretStart))
		sb.WriteString(errorStyle.Sprint(strings.Repeat("^", max(carretEnd-carretStart, 1))))
		sb.WriteRune('\n')
	}

	sb.WriteRune('\n')
	return sb.String()
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	} else if x > hi {
		return hi
	}

	return x
}
