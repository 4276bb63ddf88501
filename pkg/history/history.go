// Package history stores conversation turns in an append-only
// newline-delimited JSON log and keeps the bounded in-memory window
// that is sent as context to the model.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	loggerpkg "electron/pkg/logger"
)

// Turn roles as they appear on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-tagged message in the conversation. Turns are
// immutable once created and are never edited or deleted from the log.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ReadAll parses every line of the history file. A missing or empty
// file yields an empty slice and no error. A single unparsable line
// fails the whole read.
func ReadAll(path string) ([]Turn, error) {
	return read(path, 0)
}

// ReadTail behaves as ReadAll but returns only the last limit turns
// when limit is positive.
func ReadTail(path string, limit int) ([]Turn, error) {
	return read(path, limit)
}

func read(path string, limit int) ([]Turn, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat history file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	turns := make([]Turn, 0, len(lines))
	for _, line := range lines {
		var t Turn
		if err := json.Unmarshal([]byte(line), &t); err != nil {
			return nil, fmt.Errorf("parse history line: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// Log is the append handle held open for the lifetime of a session.
type Log struct {
	path   string
	file   *os.File
	logger loggerpkg.Logger
}

// Open opens the history file for appending, creating it if needed.
func Open(path string, logger loggerpkg.Logger) (*Log, error) {
	if logger == nil {
		logger = loggerpkg.NopLogger{}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	return &Log{path: path, file: f, logger: logger}, nil
}

// Append serializes one turn as a single line and syncs the file
// before returning, so a turn reported as persisted survives a crash.
func (l *Log) Append(t Turn) error {
	b, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}
	if _, err := l.file.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write turn: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync history file: %w", err)
	}
	return nil
}

// All returns the full conversation. Corrupt history degrades to an
// empty conversation rather than a partial one; the failure is logged.
func (l *Log) All() []Turn {
	return l.absorb(ReadAll(l.path))
}

// Tail returns the last limit turns, or everything when limit <= 0.
func (l *Log) Tail(limit int) []Turn {
	return l.absorb(ReadTail(l.path, limit))
}

func (l *Log) absorb(turns []Turn, err error) []Turn {
	if err != nil {
		loggerpkg.Errorf(l.logger, "failed to load history from %q: %v", l.path, err)
		return nil
	}
	return turns
}

// Close closes the underlying file handle.
func (l *Log) Close() error {
	return l.file.Close()
}

// Path returns the on-disk location of the log.
func (l *Log) Path() string {
	return l.path
}
