// Package oplog writes the operator-facing operation trail.
//
// Each call appends one "YYYY-MM-DD HH:MM:SS - <message>" line to the
// configured log file and mirrors it to standard output. This file is the
// audit trail RMA operators read back after a session; keep the format flat
// and greppable.
package oplog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const lineTimeFormat = "2006-01-02 15:04:05"

type Log struct {
	mu     sync.Mutex
	file   io.WriteCloser
	mirror io.Writer
	now    func() time.Time
}

// Open creates or opens the trail file in append mode. Lines are mirrored to
// stdout.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Log{file: f, mirror: os.Stdout, now: time.Now}, nil
}

// NewWithWriters builds a trail over arbitrary writers; tests use buffers.
func NewWithWriters(file io.WriteCloser, mirror io.Writer, now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{file: file, mirror: mirror, now: now}
}

// Printf formats and appends one line. Write failures are deliberately not
// surfaced: the trail is best-effort and losing it must never stop an
// operation mid-flight.
func (l *Log) Printf(format string, args ...any) {
	l.Print(fmt.Sprintf(format, args...))
}

func (l *Log) Print(msg string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	line := l.now().Format(lineTimeFormat) + " - " + msg + "\n"
	if l.file != nil {
		_, _ = io.WriteString(l.file, line)
	}
	if l.mirror != nil {
		_, _ = io.WriteString(l.mirror, line)
	}
}

func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
