// Package logging configures the logrus logger dapur writes to. The TUI
// owns the terminal, so entries go to <log_dir>/dapur.log as JSON.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// FileName is the name of the log file inside the log directory.
const FileName = "dapur.log"

// TimestampFormat is used for the "time" field of every entry.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Setup opens <dir>/dapur.log for appending and returns a logger writing
// JSON entries to it. The returned closer releases the file.
func Setup(dir, level string) (*logrus.Logger, io.Closer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil, fmt.Errorf("log dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(file, level), file, nil
}

// New builds a JSON logger writing to w.
func New(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: TimestampFormat})
	log.SetLevel(ParseLevel(level))
	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// ParseLevel maps a level name to a logrus level, defaulting to info.
func ParseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
