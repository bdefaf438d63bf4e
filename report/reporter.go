package report

import (
	"os"
	"sync"
)

// Reporter is responsible for presenting diagnostics to the user during
// program execution.  The reporter respects the set log level and is
// synchronized: its methods can be safely called from multiple goroutines.
type Reporter struct {
	// The mutex used to synchronize display calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether or not an error has been reported.
	isErr bool
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// rep is the global reporter instance.
var rep *Reporter

// InitReporter initializes the global reporter to the given log level.  If
// the reporter has already been initialized, this function does nothing.
func InitReporter(logLevel int) {
	if rep == nil {
		rep = &Reporter{
			m:        &sync.Mutex{},
			logLevel: logLevel,
		}

		initLogger(logLevel)
	}
}

// -----------------------------------------------------------------------------

// Report displays a single diagnostic subject to the set log level.
func Report(d Diagnostic) {
	rep.m.Lock()
	defer rep.m.Unlock()

	switch d.Severity {
	case Error:
		if rep.logLevel >= LogLevelError {
			displayDiagnostic(d)
		}

		rep.isErr = true
	case Warning:
		if rep.logLevel >= LogLevelWarn {
			displayDiagnostic(d)
		}
	}
}

// ReportAll displays every diagnostic of a list in order.
func ReportAll(list List) {
	for _, d := range list {
		Report(d)
	}
}

// ReportFatal displays a fatal configuration or environment error and
// stops the program.  These are expected errors that prevent the compiler
// from running at all: a missing tool binary, an unparsable toolchain
// manifest, and the like.
func ReportFatal(msg string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayFatal(msg, args...)
	}

	os.Exit(1)
}

// DisplayInfoMessage displays a tagged informational message to the user.
func DisplayInfoMessage(tag, msg string) {
	if rep.logLevel >= LogLevelVerbose {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayInfo(tag, msg)
	}
}

// AnyErrors returns whether or not any errors were reported.
func AnyErrors() bool {
	return rep.isErr
}
