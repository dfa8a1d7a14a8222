// Package execx wraps invocation of the external privileged tools.
//
// Every collaborator (vpd, the write-protection controller, the model query)
// is reached through Runner, so workflows and tests can swap in fakes and the
// rest of the code never inspects a raw exit status.
package execx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes one external command and returns its trimmed combined
// output. A non-zero exit is reported as *CommandError.
type Runner interface {
	Run(ctx context.Context, argv ...string) (string, error)
}

// CommandError reports an external command that ran but failed.
type CommandError struct {
	Argv     []string
	ExitCode int // -1 when the process never ran or was killed by a signal
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	out := e.Output
	if out != "" {
		out = ": " + out
	}
	return fmt.Sprintf("%s exited with code %d%s", strings.Join(e.Argv, " "), e.ExitCode, out)
}

func (e *CommandError) Unwrap() error { return e.Err }

// System runs commands via os/exec.
type System struct{}

func (System) Run(ctx context.Context, argv ...string) (string, error) {
	if len(argv) == 0 {
		return "", errors.New("execx: empty argv")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	s := strings.TrimSpace(string(out))
	if err != nil {
		code := -1
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			code = ee.ExitCode()
		}
		return s, &CommandError{Argv: append([]string(nil), argv...), ExitCode: code, Output: s, Err: err}
	}
	return s, nil
}
