package cli

import (
	"io"

	log "github.com/sirupsen/logrus"

	"dpm-integrator/internal/config"
)

const (
	verboseNone  = "NONE"
	verboseInfo  = "INFO"
	verboseDebug = "DEBUG"
	verboseTrace = "TRACE"
)

var verbosityLevels = map[string]log.Level{
	verboseInfo:  log.InfoLevel,
	verboseDebug: log.DebugLevel,
	verboseTrace: log.TraceLevel,
}

// newLogger builds the logger of one invocation. --verbose wins over the
// configured level; NONE keeps the configured one.
func newLogger(cfg config.LoggerConfig, verbose string, out io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(out)

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.WarnLevel
	}
	if l, ok := verbosityLevels[verbose]; ok {
		level = l
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger
}
