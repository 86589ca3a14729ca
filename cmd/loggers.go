package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// EnvLogFile redirects log output to a file, the only way to see logs while the TUI runs.
const EnvLogFile = "GROVE_PROMPT_LOG_FILE"

var (
	logger = logrus.New()
	log    = newLogger("grove-prompt")
)

func newLogger(component string) *logrus.Entry {
	return logger.WithField("component", component)
}

// configureLogging sets the level and destination. Logs go to stderr unless
// the TUI owns the terminal, in which case they are discarded. The returned
// closer releases the log file, if any.
func configureLogging(verbose, interactive bool) (io.Closer, error) {
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if path := os.Getenv(EnvLogFile); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		logger.SetOutput(f)
		logger.SetFormatter(&logrus.JSONFormatter{})
		return f, nil
	}

	if interactive {
		logger.SetOutput(io.Discard)
	} else {
		logger.SetOutput(os.Stderr)
	}
	return io.NopCloser(nil), nil
}
