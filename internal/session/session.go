// Package session writes a per-session transcript of executed commands.
//
// Each shell session gets its own file named by a fresh UUID, so
// concurrent shells never contend for a transcript.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Recorder appends executed command lines to a session transcript.
type Recorder struct {
	id   uuid.UUID
	file *os.File
}

// New creates a transcript file under dir. The directory is created if
// needed, with restrictive permissions.
func New(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("session: create transcript dir: %w", err)
	}

	id := uuid.New()
	path := filepath.Join(dir, id.String()+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("session: open transcript: %w", err)
	}

	r := &Recorder{id: id, file: file}
	r.writeLine("session %s started", id)
	return r, nil
}

// ID returns the session identifier.
func (r *Recorder) ID() uuid.UUID { return r.id }

// Path returns the transcript file path.
func (r *Recorder) Path() string { return r.file.Name() }

// Record appends one executed line and its exit code.
func (r *Recorder) Record(line string, exitCode int) {
	if r == nil {
		return
	}
	r.writeLine("> %s  [exit %d]", line, exitCode)
}

// Close ends the transcript.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	r.writeLine("session %s ended", r.id)
	return r.file.Close()
}

func (r *Recorder) writeLine(format string, args ...any) {
	stamp := time.Now().UTC().Format(time.RFC3339)
	fmt.Fprintf(r.file, "%s %s\n", stamp, fmt.Sprintf(format, args...))
}
