package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Command describes one external program invocation.
type Command struct {
	Dir   string
	Name  string
	Args  []string
	Stdin []byte
}

// String renders the command the way an operator would type it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result carries the exit code and the combined stdout/stderr of a command.
type Result struct {
	ExitCode int
	Output   string
}

// CommandRunner executes external commands. A non-zero exit is reported through
// Result.ExitCode; the error is reserved for commands that could not be started.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// CommandError reports a command that exited with a non-zero status.
type CommandError struct {
	Command  string
	ExitCode int
	Output   string
}

func (e *CommandError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.ExitCode, out)
}

// RunChecked runs cmd and turns a non-zero exit into a *CommandError.
func RunChecked(ctx context.Context, runner CommandRunner, cmd Command) (Result, error) {
	res, err := runner.Run(ctx, cmd)
	if err != nil {
		return res, fmt.Errorf("failed to start %q: %w", cmd.String(), err)
	}
	if res.ExitCode != 0 {
		return res, &CommandError{Command: cmd.String(), ExitCode: res.ExitCode, Output: res.Output}
	}
	return res, nil
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a runner backed by the operating system.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = &out
	if len(cmd.Stdin) > 0 {
		c.Stdin = bytes.NewReader(cmd.Stdin)
	}
	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{ExitCode: exitErr.ExitCode(), Output: out.String()}, nil
		}
		return Result{}, err
	}
	return Result{Output: out.String()}, nil
}

// LoggingRunner logs every command and its output at debug level.
type LoggingRunner struct {
	next CommandRunner
	log  *zap.Logger
}

// NewLoggingRunner wraps next.
func NewLoggingRunner(next CommandRunner, log *zap.Logger) *LoggingRunner {
	return &LoggingRunner{next: next, log: log}
}

func (r *LoggingRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	r.log.Debug("executing command", zap.String("dir", cmd.Dir), zap.Stringer("command", cmd))
	res, err := r.next.Run(ctx, cmd)
	if err != nil {
		r.log.Debug("command could not start", zap.Stringer("command", cmd), zap.Error(err))
		return res, err
	}
	r.log.Debug("command finished",
		zap.Stringer("command", cmd),
		zap.Int("exit_code", res.ExitCode),
		zap.String("output", res.Output),
	)
	return res, nil
}

// DryRunRunner logs commands without executing them and reports success.
type DryRunRunner struct {
	log *zap.Logger
}

// NewDryRunRunner returns a runner that never touches the system.
func NewDryRunRunner(log *zap.Logger) *DryRunRunner {
	return &DryRunRunner{log: log}
}

func (r *DryRunRunner) Run(_ context.Context, cmd Command) (Result, error) {
	r.log.Info("dry-run: skipping command", zap.String("dir", cmd.Dir), zap.Stringer("command", cmd))
	return Result{}, nil
}
