// Package workflow holds the fixed operation sequences and the interactive
// menu that dispatches them.
//
// A workflow is an ordered list of steps executed unconditionally: a failed
// step is logged and recorded, and the sequence still moves on. A failed
// protection disable stays visible in the trail, and the operator decides
// what to do next, not the program.
package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"hwidctl/internal/history"
	"hwidctl/pkg/logx"
)

type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

type Workflow struct {
	Name  string // stable machine name, recorded in history
	Title string // operator-facing menu line
	Steps []Step
}

// Engine executes workflows, logging every step and recording it in the
// history journal when one is configured.
type Engine struct {
	log   logx.Logger
	store history.Store
	model string
	runID string
}

func NewEngine(log logx.Logger, store history.Store, model string) *Engine {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Engine{
		log:   log,
		store: store,
		model: model,
		runID: uuid.NewString(),
	}
}

// RunID identifies this process run in history entries.
func (e *Engine) RunID() string { return e.runID }

// Run executes every step of wf in order, never short-circuiting. The
// returned error joins all step failures so non-interactive callers can exit
// non-zero; the interactive menu ignores it.
func (e *Engine) Run(ctx context.Context, wf Workflow) error {
	e.log.Info("workflow start", logx.String("workflow", wf.Name))

	var failures []error
	for _, step := range wf.Steps {
		start := time.Now()
		err := step.Run(ctx)
		took := time.Since(start)

		if err != nil {
			failures = append(failures, err)
			e.log.Error("step failed",
				logx.String("workflow", wf.Name),
				logx.String("step", step.Name),
				logx.Duration("took", took),
				logx.Err(err))
		} else {
			e.log.Debug("step ok",
				logx.String("workflow", wf.Name),
				logx.String("step", step.Name),
				logx.Duration("took", took))
		}

		e.record(ctx, wf.Name, step.Name, err, took)
	}

	e.log.Info("workflow done",
		logx.String("workflow", wf.Name),
		logx.Int("failed_steps", len(failures)))
	return errors.Join(failures...)
}

// record appends a history entry. History failures are logged and swallowed;
// they must never affect the workflow outcome.
func (e *Engine) record(ctx context.Context, workflow, step string, stepErr error, took time.Duration) {
	if e.store == nil {
		return
	}
	entry := history.Entry{
		At:       time.Now(),
		RunID:    e.runID,
		Model:    e.model,
		Workflow: workflow,
		Step:     step,
		OK:       stepErr == nil,
		TookMS:   took.Milliseconds(),
	}
	if stepErr != nil {
		entry.Error = stepErr.Error()
	}
	if err := e.store.Append(ctx, entry); err != nil {
		e.log.Warn("history append failed", logx.Err(err))
	}
}
