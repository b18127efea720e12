package gateway

import (
	"time"

	"github.com/declbuild/forge/internal/diag"
)

// MemFileSystem is an in-memory FSGateway fake for tests: a map from
// path to modification time. A path is "existing" iff it has an entry.
type MemFileSystem struct {
	mtimes map[string]time.Time
}

// NewMemFileSystem creates an empty fake filesystem.
func NewMemFileSystem() *MemFileSystem {
	return &MemFileSystem{mtimes: make(map[string]time.Time)}
}

// Set seeds path with an explicit modification time, creating it if
// absent.
func (m *MemFileSystem) Set(path string, t time.Time) {
	m.mtimes[path] = t
}

func (m *MemFileSystem) Exists(path string) bool {
	_, ok := m.mtimes[path]
	return ok
}

func (m *MemFileSystem) LastWriteTime(path string) (time.Time, error) {
	t, ok := m.mtimes[path]
	if !ok {
		return time.Time{}, diag.New(diag.IO, "no such file: "+path)
	}
	return t, nil
}

func (m *MemFileSystem) Touch(path string) error {
	m.mtimes[path] = time.Now()
	return nil
}

// RecordingSpawner is a ProcessSpawner fake that records every command
// it was asked to run, in order, and returns a configurable exit code
// (0 by default).
type RecordingSpawner struct {
	Commands [][]string
	ExitCode int
	Err      error
}

// NewRecordingSpawner creates a spawner that records commands and
// succeeds (exit code 0) unless configured otherwise.
func NewRecordingSpawner() *RecordingSpawner {
	return &RecordingSpawner{}
}

func (s *RecordingSpawner) Run(cmd []string) (int, error) {
	cp := append([]string(nil), cmd...)
	s.Commands = append(s.Commands, cp)
	if s.Err != nil {
		return s.ExitCode, s.Err
	}
	return s.ExitCode, nil
}
