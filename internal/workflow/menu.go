package workflow

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hwidctl/internal/oplog"
)

const promptText = "Enter your choice [1-5]: "

// Menu is the interactive dispatcher. It keeps presenting the option list
// until the operator picks Exit; invalid input re-prompts with no side
// effects.
type Menu struct {
	in        *bufio.Reader
	out       io.Writer
	trail     *oplog.Log
	engine    *Engine
	workflows []Workflow
	model     string
}

func NewMenu(in io.Reader, out io.Writer, trail *oplog.Log, engine *Engine, workflows []Workflow, model string) *Menu {
	return &Menu{
		in:        bufio.NewReader(in),
		out:       out,
		trail:     trail,
		engine:    engine,
		workflows: workflows,
		model:     model,
	}
}

// Run drives the menu loop. It returns nil on a clean exit (option 5 or EOF
// on input) and an error only when input becomes unreadable.
func (m *Menu) Run(ctx context.Context) error {
	m.trail.Printf("Session started on model: %s", m.model)

	for {
		m.printOptions()

		choice, err := m.readChoice()
		if err == io.EOF {
			m.trail.Print("Input closed, exiting")
			return nil
		}
		if err != nil {
			return err
		}

		if choice == len(m.workflows)+1 {
			m.trail.Print("Exiting")
			return nil
		}

		wf := m.workflows[choice-1]
		m.trail.Printf("Selected: %s", wf.Title)
		// The engine already logged every step; the menu just comes back up.
		_ = m.engine.Run(ctx, wf)
	}
}

func (m *Menu) printOptions() {
	fmt.Fprintf(m.out, "\nHWID maintenance (%s)\n", m.model)
	for i, wf := range m.workflows {
		fmt.Fprintf(m.out, "  %d) %s\n", i+1, wf.Title)
	}
	fmt.Fprintf(m.out, "  %d) Exit\n", len(m.workflows)+1)
}

// readChoice re-prompts until the operator enters a number in range.
func (m *Menu) readChoice() (int, error) {
	for {
		fmt.Fprint(m.out, promptText)
		line, err := m.in.ReadString('\n')
		if err != nil && line == "" {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && n >= 1 && n <= len(m.workflows)+1 {
			return n, nil
		}
		fmt.Fprintln(m.out, "Invalid choice.")
		if err != nil {
			return 0, err
		}
	}
}
