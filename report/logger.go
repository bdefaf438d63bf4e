package report

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the structured logger used for pass-internal debug and trace
// output.  It is distinct from the diagnostic reporter: diagnostics are the
// compiler's user-facing findings, while Log records what the passes did on
// the way there.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// initLogger builds the global debug-level logger when the reporter's log
// level is verbose; at any lower level Log stays a no-op logger.  Called
// once from InitReporter.
func initLogger(logLevel int) {
	if logLevel < LogLevelVerbose {
		return
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return
	}

	Log = logger.Sugar()
}
