package logging

import (
	"io"
	"os"

	"github.com/shubh-io/dockboard/internal/config"
	"github.com/sirupsen/logrus"
)

var logFile *os.File

// Setup points logrus at the configured debug file.
// the TUI owns the terminal, so nothing is ever written to stderr once it runs
func Setup(cfg config.LoggingConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	if cfg.File == "" {
		logrus.SetOutput(io.Discard)
		return nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		// fallback to discard
		logrus.SetOutput(io.Discard)
		return err
	}
	logFile = f
	logrus.SetOutput(f)
	return nil
}

func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logrus.SetOutput(io.Discard)
	return err
}
