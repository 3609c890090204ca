// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup sets the level and output of the standard logrus logger.
//
// An empty file keeps stderr. Passing Discard as file silences logging, which
// the terminal UI uses so log lines never draw over the screen.
func Setup(level, file string) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	switch file {
	case "":
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	case Discard:
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// Discard is the Setup file value that drops every log line.
const Discard = "-"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
