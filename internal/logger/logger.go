// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup sets formatter and level of the standard logger. An unknown level
// falls back to info. A nil out keeps stderr.
func Setup(level string, json bool, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	if json {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
