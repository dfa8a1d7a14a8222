// Package device talks to the machine-side collaborators: the VPD key-value
// store, the firmware write-protection controller, and the hardware model
// query. Everything goes through execx.Runner so tests never touch real
// hardware.
package device

import (
	"context"

	"hwidctl/internal/execx"
	"hwidctl/pkg/logx"
)

// HWIDKey is the VPD key this tool manages.
const HWIDKey = "HWID"

// VPD wraps the external vpd utility: full dump and set-single-key.
type VPD struct {
	runner  execx.Runner
	dumpCmd []string
	setCmd  []string
	log     logx.Logger
}

func NewVPD(runner execx.Runner, dumpCmd, setCmd []string, log logx.Logger) *VPD {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &VPD{runner: runner, dumpCmd: dumpCmd, setCmd: setCmd, log: log}
}

// Dump returns the raw line-oriented KEY=VALUE dump of the whole store.
func (v *VPD) Dump(ctx context.Context) (string, error) {
	out, err := v.runner.Run(ctx, v.dumpCmd...)
	if err != nil {
		v.log.Error("vpd dump failed", logx.Err(err))
		return "", err
	}
	return out, nil
}

// Set writes one key. An empty value is valid and zeroes the key.
func (v *VPD) Set(ctx context.Context, key, value string) error {
	argv := append(append([]string(nil), v.setCmd...), key+"="+value)
	if _, err := v.runner.Run(ctx, argv...); err != nil {
		v.log.Error("vpd set failed", logx.String("key", key), logx.Err(err))
		return err
	}
	v.log.Debug("vpd set", logx.String("key", key))
	return nil
}
