// Package logging wraps logrus with the run-correlation conventions
// used across the runner and orchestrator. Grounded on the ambient
// logging idiom expected of a teacher-style CLI build tool: a single
// package-level entry point returning a *logrus.Entry pre-populated
// with a run id, rather than scattering raw fmt.Printf calls through
// the runner (the shape the teacher's own verbose/banner logging in
// exec.go gestures at, generalized here onto a structured logger).
package logging

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewRunLogger returns a logrus.Entry tagged with a fresh run id, so
// that log lines from one build invocation can be correlated even when
// the orchestrator is invoked repeatedly in the same process.
func NewRunLogger() *logrus.Entry {
	return logrus.WithField("run_id", uuid.NewString())
}

// Configure sets the package-wide logrus formatter and level. cmd/forge
// calls it at start-up and again in `build` with the --verbose setting.
func Configure(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}
