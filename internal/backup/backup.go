// Package backup dumps the VPD store to a flat KEY=VALUE file and restores
// the HWID key from it.
package backup

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"hwidctl/internal/device"
	"hwidctl/internal/oplog"
	"hwidctl/pkg/logx"
)

var (
	// ErrBackupMissing means restore was attempted with no backup file present.
	ErrBackupMissing = errors.New("backup file does not exist")
	// ErrNoHWIDInBackup means the backup file holds no usable HWID= line.
	ErrNoHWIDInBackup = errors.New("no HWID entry found in backup")
)

type Manager struct {
	vpd   *device.VPD
	path  string
	log   logx.Logger
	trail *oplog.Log
}

func NewManager(vpd *device.VPD, path string, log logx.Logger, trail *oplog.Log) *Manager {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Manager{vpd: vpd, path: path, log: log, trail: trail}
}

// Path returns the backup file location.
func (m *Manager) Path() string { return m.path }

// Backup dumps the entire VPD store to the backup file, overwriting any
// prior content. Success is defined by the dump command's exit status; the
// dump is not inspected for shape or completeness.
func (m *Manager) Backup(ctx context.Context) error {
	dump, err := m.vpd.Dump(ctx)
	if err != nil {
		m.trail.Printf("Backup failed: %v", err)
		return err
	}
	if !strings.HasSuffix(dump, "\n") && dump != "" {
		dump += "\n"
	}
	if err := os.WriteFile(m.path, []byte(dump), 0o644); err != nil {
		m.trail.Printf("Backup failed: %v", err)
		return err
	}
	m.trail.Printf("Backup written to %s", m.path)
	m.log.Info("vpd backup written", logx.String("path", m.path))
	return nil
}

// Restore reads the backup file, extracts the first non-empty HWID value, and
// writes it back into the VPD store. Nothing is written when the file is
// missing or holds no usable entry.
func (m *Manager) Restore(ctx context.Context) error {
	b, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.trail.Printf("Restore failed: no backup file at %s", m.path)
			return ErrBackupMissing
		}
		m.trail.Printf("Restore failed: %v", err)
		return err
	}

	value, ok := extractHWID(string(b))
	if !ok {
		m.trail.Printf("Restore failed: backup at %s has no HWID entry", m.path)
		return ErrNoHWIDInBackup
	}

	if err := m.vpd.Set(ctx, device.HWIDKey, value); err != nil {
		m.trail.Printf("Restore failed writing HWID: %v", err)
		return err
	}
	m.trail.Printf("HWID restored to '%s'", value)
	m.log.Info("hwid restored", logx.String("hwid", value))
	return nil
}

// extractHWID scans KEY=VALUE lines for the first non-empty HWID value.
// Duplicate HWID lines after the first are ignored.
func extractHWID(dump string) (string, bool) {
	sc := bufio.NewScanner(strings.NewReader(dump))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, device.HWIDKey+"=")
		if !ok {
			continue
		}
		if v := strings.TrimSpace(rest); v != "" {
			return v, true
		}
	}
	return "", false
}
