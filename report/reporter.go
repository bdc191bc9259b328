package report

import (
	"sync"
	"time"
)

// Reporter counts and displays the diagnostics of a compilation, filtered by
// its log level.  All access goes through its mutex.
type Reporter struct {
	m *sync.Mutex

	// One of the LogLevel constants.
	logLevel int

	// The number of errors and warnings reported so far.
	errorCount, warnCount int

	// The name and start time of the phase currently running.
	phase          string
	phaseStartTime time.Time
}

// Log levels, quietest first.  Each level displays everything the levels
// before it do.
const (
	LogLevelSilent  = iota // nothing
	LogLevelError          // errors
	LogLevelWarn           // warnings
	LogLevelVerbose        // phase progress and the summary
)

// rep is the global reporter instance.  It starts silent so that library users
// (and tests) never print unless the driver asks for output.
var rep = &Reporter{m: &sync.Mutex{}, logLevel: LogLevelSilent}

// InitReporter sets the log level of the global reporter and clears its
// counters.
func InitReporter(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
	rep.errorCount = 0
	rep.warnCount = 0
	rep.phase = ""
}

// ParseLogLevel converts a log level name into its enumerated value.  Invalid
// names default to verbose.
func ParseLogLevel(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}

// AnyErrors returns whether or not any errors were reported.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount > 0
}

// Counts returns the number of errors and warnings reported so far.
func Counts() (errors, warnings int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount, rep.warnCount
}
