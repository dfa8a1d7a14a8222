package workflow

import (
	"context"
	"errors"
	"testing"

	"hwidctl/internal/history"
	"hwidctl/pkg/logx"
)

type memStore struct {
	entries []history.Entry
	err     error
}

func (m *memStore) Append(_ context.Context, e history.Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *memStore) Recent(_ context.Context, n int) ([]history.Entry, error) { return nil, nil }
func (m *memStore) Close() error                                             { return nil }

func recordingStep(name string, order *[]string, err error) Step {
	return Step{Name: name, Run: func(context.Context) error {
		*order = append(*order, name)
		return err
	}}
}

func TestEngineRunsEveryStepInOrder(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	wf := Workflow{
		Name: "test",
		Steps: []Step{
			recordingStep("first", &order, nil),
			recordingStep("second", &order, boom),
			recordingStep("third", &order, nil),
		},
	}

	err := NewEngine(logx.Nop(), nil, "Lulu").Run(context.Background(), wf)

	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Fatalf("order = %v", order)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestEngineRecordsHistoryPerStep(t *testing.T) {
	var order []string
	st := &memStore{}
	e := NewEngine(logx.Nop(), st, "Lulu")
	wf := Workflow{
		Name: "test",
		Steps: []Step{
			recordingStep("ok", &order, nil),
			recordingStep("bad", &order, errors.New("nope")),
		},
	}

	_ = e.Run(context.Background(), wf)

	if len(st.entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(st.entries))
	}
	if !st.entries[0].OK || st.entries[0].Step != "ok" {
		t.Fatalf("entry 0 = %+v", st.entries[0])
	}
	if st.entries[1].OK || st.entries[1].Error != "nope" {
		t.Fatalf("entry 1 = %+v", st.entries[1])
	}
	for _, en := range st.entries {
		if en.RunID != e.RunID() || en.Model != "Lulu" || en.Workflow != "test" {
			t.Fatalf("entry fields = %+v", en)
		}
	}
}

func TestEngineSurvivesHistoryFailure(t *testing.T) {
	var order []string
	st := &memStore{err: errors.New("disk full")}
	wf := Workflow{Name: "test", Steps: []Step{recordingStep("only", &order, nil)}}

	if err := NewEngine(logx.Nop(), st, "").Run(context.Background(), wf); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(order) != 1 {
		t.Fatalf("step did not run: %v", order)
	}
}
