package device

import (
	"context"
	"os"
	"strings"

	"hwidctl/internal/execx"
	"hwidctl/pkg/logx"
)

// UnknownModel is reported when neither the model query command nor the DMI
// fallback yields a product name.
const UnknownModel = "Unknown Model"

// ModelDetector resolves the hardware model string. It prefers the platform
// model command and falls back to the DMI product name in sysfs, which stays
// readable on boards where the vendor tooling is missing.
type ModelDetector struct {
	runner   execx.Runner
	queryCmd []string
	dmiPath  string
	log      logx.Logger
}

func NewModelDetector(runner execx.Runner, queryCmd []string, dmiPath string, log logx.Logger) *ModelDetector {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &ModelDetector{runner: runner, queryCmd: queryCmd, dmiPath: dmiPath, log: log}
}

// Detect never fails; it returns UnknownModel as the last resort.
func (d *ModelDetector) Detect(ctx context.Context) string {
	out, err := d.runner.Run(ctx, d.queryCmd...)
	if err == nil && strings.TrimSpace(out) != "" {
		model := strings.TrimSpace(out)
		d.log.Debug("model detected", logx.String("model", model), logx.String("source", "command"))
		return model
	}
	if err != nil {
		d.log.Debug("model query failed", logx.Err(err))
	}

	if d.dmiPath != "" {
		if b, rerr := os.ReadFile(d.dmiPath); rerr == nil {
			if model := strings.TrimSpace(string(b)); model != "" {
				d.log.Debug("model detected", logx.String("model", model), logx.String("source", "dmi"))
				return model
			}
		}
	}

	d.log.Warn("model detection failed, using sentinel")
	return UnknownModel
}
