package history

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("history disabled")

// Config configures the history journal.
//
// Driver values:
//   - "file": append-only JSON Lines journal
//   - "sqlite": SQLite database file
//
// If Driver is empty or "none", history is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// Entry records one executed workflow step.
// Keep it compact and schema-stable.
type Entry struct {
	At       time.Time `json:"at"`
	RunID    string    `json:"run_id"`
	Model    string    `json:"model,omitempty"`
	Workflow string    `json:"workflow"`
	Step     string    `json:"step"`
	OK       bool      `json:"ok"`
	Error    string    `json:"error,omitempty"`
	TookMS   int64     `json:"took_ms"`
}
