package device

import (
	"context"

	"hwidctl/internal/execx"
	"hwidctl/pkg/logx"
)

// WriteProtect issues the firmware write-protection disable command.
// Disabling when already disabled is not an error; there is no re-enable.
type WriteProtect struct {
	runner     execx.Runner
	disableCmd []string
	log        logx.Logger
}

func NewWriteProtect(runner execx.Runner, disableCmd []string, log logx.Logger) *WriteProtect {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &WriteProtect{runner: runner, disableCmd: disableCmd, log: log}
}

func (w *WriteProtect) Disable(ctx context.Context) error {
	if _, err := w.runner.Run(ctx, w.disableCmd...); err != nil {
		w.log.Error("write protection disable failed", logx.Err(err))
		return err
	}
	w.log.Info("write protection disabled")
	return nil
}
