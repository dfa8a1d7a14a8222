package oplog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type nopCloseBuf struct{ bytes.Buffer }

func (b *nopCloseBuf) Close() error { return nil }

func fixedNow() time.Time {
	return time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)
}

func TestPrintFormatsTimestampedLine(t *testing.T) {
	var file nopCloseBuf
	var mirror bytes.Buffer
	l := NewWithWriters(&file, &mirror, fixedNow)

	l.Print("HWID zeroed")

	want := "2024-05-17 09:30:00 - HWID zeroed\n"
	if file.String() != want {
		t.Fatalf("file line = %q, want %q", file.String(), want)
	}
	if mirror.String() != want {
		t.Fatalf("mirror line = %q, want %q", mirror.String(), want)
	}
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trail.log")
	for _, msg := range []string{"first", "second"} {
		l, err := Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		l.Print(msg)
		if err := l.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trail: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), string(b))
	}
	if !strings.HasSuffix(lines[0], " - first") || !strings.HasSuffix(lines[1], " - second") {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestNilLogIsSafe(t *testing.T) {
	var l *Log
	l.Print("ignored")
	l.Printf("ignored %d", 1)
	if err := l.Close(); err != nil {
		t.Fatalf("Close on nil: %v", err)
	}
}
