package workflow

import (
	"context"

	"hwidctl/internal/backup"
	"hwidctl/internal/device"
	"hwidctl/internal/oplog"
)

// Workflow and step names. History queries key on these, so treat them as a
// stable external surface.
const (
	NameZeroProtected = "zero_hwid"
	NameZeroKeepWP    = "zero_hwid_keep_wp"
	NameRestore       = "restore_hwid"
	NameDisableWP     = "disable_wp"

	StepBackup    = "backup"
	StepDisableWP = "disable_wp"
	StepZero      = "zero"
	StepRestore   = "restore"
)

// Standard builds the four menu workflows from the device collaborators.
func Standard(mgr *backup.Manager, vpd *device.VPD, wp *device.WriteProtect, trail *oplog.Log) []Workflow {
	backupStep := Step{Name: StepBackup, Run: mgr.Backup}

	disableStep := Step{Name: StepDisableWP, Run: func(ctx context.Context) error {
		if err := wp.Disable(ctx); err != nil {
			trail.Printf("Failed to disable write protection: %v", err)
			return err
		}
		trail.Print("Write protection disabled")
		return nil
	}}

	zeroStep := Step{Name: StepZero, Run: func(ctx context.Context) error {
		if err := vpd.Set(ctx, device.HWIDKey, ""); err != nil {
			trail.Printf("Failed to zero HWID: %v", err)
			return err
		}
		trail.Print("HWID zeroed")
		return nil
	}}

	restoreStep := Step{Name: StepRestore, Run: mgr.Restore}

	return []Workflow{
		{
			Name:  NameZeroProtected,
			Title: "Zero HWID (disable write protection first)",
			Steps: []Step{backupStep, disableStep, zeroStep},
		},
		{
			Name:  NameZeroKeepWP,
			Title: "Zero HWID (leave write protection alone)",
			Steps: []Step{backupStep, zeroStep},
		},
		{
			Name:  NameRestore,
			Title: "Restore HWID from backup",
			Steps: []Step{restoreStep},
		},
		{
			Name:  NameDisableWP,
			Title: "Disable write protection only",
			Steps: []Step{disableStep},
		},
	}
}
