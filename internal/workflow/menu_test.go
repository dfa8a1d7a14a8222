package workflow

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hwidctl/internal/backup"
	"hwidctl/internal/device"
	"hwidctl/internal/oplog"
	"hwidctl/pkg/logx"
)

// seqRunner records the first word of every argv so tests can assert external
// command order across a workflow.
type seqRunner struct {
	calls []string
}

func (s *seqRunner) Run(_ context.Context, argv ...string) (string, error) {
	s.calls = append(s.calls, strings.Join(argv, " "))
	if argv[0] == "vpd-dump" {
		return "HWID=SAVED123\nSERIAL=9\n", nil
	}
	return "", nil
}

type nopCloseBuf struct{ bytes.Buffer }

func (b *nopCloseBuf) Close() error { return nil }

type fixture struct {
	runner    *seqRunner
	trailBuf  *nopCloseBuf
	menuOut   *bytes.Buffer
	workflows []Workflow
	engine    *Engine
	trail     *oplog.Log
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fr := &seqRunner{}
	var trailBuf nopCloseBuf
	trail := oplog.NewWithWriters(&trailBuf, nil, func() time.Time {
		return time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)
	})

	vpd := device.NewVPD(fr, []string{"vpd-dump"}, []string{"vpd-set"}, logx.Nop())
	wp := device.NewWriteProtect(fr, []string{"wp-disable"}, logx.Nop())
	mgr := backup.NewManager(vpd, filepath.Join(t.TempDir(), "backup.txt"), logx.Nop(), trail)

	return &fixture{
		runner:    fr,
		trailBuf:  &trailBuf,
		menuOut:   &bytes.Buffer{},
		workflows: Standard(mgr, vpd, wp, trail),
		engine:    NewEngine(logx.Nop(), nil, "Lulu"),
		trail:     trail,
	}
}

func (f *fixture) runMenu(t *testing.T, input string) {
	t.Helper()
	m := NewMenu(strings.NewReader(input), f.menuOut, f.trail, f.engine, f.workflows, "Lulu")
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("menu: %v", err)
	}
}

func TestZeroProtectedOrder(t *testing.T) {
	f := newFixture(t)
	f.runMenu(t, "1\n5\n")

	want := []string{"vpd-dump", "wp-disable", "vpd-set HWID="}
	if len(f.runner.calls) != len(want) {
		t.Fatalf("calls = %v", f.runner.calls)
	}
	for i := range want {
		if f.runner.calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, f.runner.calls[i], want[i])
		}
	}
}

func TestZeroKeepWPSkipsProtectionDisable(t *testing.T) {
	f := newFixture(t)
	f.runMenu(t, "2\n5\n")

	want := []string{"vpd-dump", "vpd-set HWID="}
	if len(f.runner.calls) != len(want) {
		t.Fatalf("calls = %v", f.runner.calls)
	}
	for _, c := range f.runner.calls {
		if strings.HasPrefix(c, "wp-disable") {
			t.Fatalf("protection disable must not run: %v", f.runner.calls)
		}
	}
}

func TestRestoreFromMenu(t *testing.T) {
	f := newFixture(t)
	// Take a backup first (workflow 2), then restore (workflow 3).
	f.runMenu(t, "2\n3\n5\n")

	last := f.runner.calls[len(f.runner.calls)-1]
	if last != "vpd-set HWID=SAVED123" {
		t.Fatalf("last call = %q", last)
	}
	if !strings.Contains(f.trailBuf.String(), "'SAVED123'") {
		t.Fatalf("trail = %q", f.trailBuf.String())
	}
}

func TestExitRunsNothing(t *testing.T) {
	f := newFixture(t)
	f.runMenu(t, "5\n")

	if len(f.runner.calls) != 0 {
		t.Fatalf("exit must not invoke collaborators: %v", f.runner.calls)
	}
	if !strings.Contains(f.trailBuf.String(), "Exiting") {
		t.Fatalf("trail = %q", f.trailBuf.String())
	}
}

func TestInvalidInputReprompts(t *testing.T) {
	f := newFixture(t)
	f.runMenu(t, "9\n0\nabc\n\n5\n")

	if len(f.runner.calls) != 0 {
		t.Fatalf("invalid input must have no side effects: %v", f.runner.calls)
	}
	if got := strings.Count(f.menuOut.String(), promptText); got != 5 {
		t.Fatalf("prompt shown %d times, want 5", got)
	}
	if got := strings.Count(f.menuOut.String(), "Invalid choice."); got != 4 {
		t.Fatalf("invalid notice shown %d times, want 4", got)
	}
}

func TestMenuLoopsUntilExit(t *testing.T) {
	f := newFixture(t)
	f.runMenu(t, "4\n4\n5\n")

	if len(f.runner.calls) != 2 {
		t.Fatalf("calls = %v", f.runner.calls)
	}
}

func TestEOFExitsCleanly(t *testing.T) {
	f := newFixture(t)
	f.runMenu(t, "")

	if len(f.runner.calls) != 0 {
		t.Fatalf("calls = %v", f.runner.calls)
	}
}
