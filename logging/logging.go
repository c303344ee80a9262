// Package logging hands out named logrus entries that share one logger, so
// the level and output can be set once by the executable.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var base = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{FullTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.InfoLevel,
}

// Levels lists the accepted names for SetLevel.
var Levels = []string{"panic", "fatal", "error", "warn", "info", "debug"}

// Named creates a named package logger.
func Named(name string) *logrus.Entry {
	return base.WithField("pkg", name)
}

// SetLevel sets the level of every named logger.
func SetLevel(level string) error {
	level = strings.ToLower(level)
	for _, l := range Levels {
		if l == level {
			lvl, err := logrus.ParseLevel(level)
			if err != nil {
				return err
			}
			base.SetLevel(lvl)
			return nil
		}
	}
	return fmt.Errorf(
		"invalid logging level %q, must be one of: %s",
		level, strings.Join(Levels, ", "),
	)
}

// SetOutput redirects every named logger to w.
func SetOutput(w io.Writer) { base.SetOutput(w) }
