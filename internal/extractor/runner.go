package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// FailedExitCode is reported when the process could not be started,
// timed out, or was otherwise never able to produce its own exit status.
const FailedExitCode = -1

// waitDelay bounds how long output pipes are drained after the process is
// killed, since children of yt-dlp (ffmpeg) may keep them open.
const waitDelay = 2 * time.Second

// Result holds the outcome of a single process invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner abstracts process execution so tests can inject a fake runner.
type Runner interface {
	// Run executes name with args, bounded by timeout when it is positive.
	// Failures are reported through Result, never as a panic or error.
	Run(ctx context.Context, timeout time.Duration, name string, args []string) Result
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, timeout time.Duration, name string, args []string) Result {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{
			ExitCode: FailedExitCode,
			Stderr:   fmt.Sprintf("command timed out after %s", timeout),
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{
			ExitCode: FailedExitCode,
			Stderr:   ctxErr.Error(),
		}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			return Result{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
		}
		return Result{
			ExitCode: FailedExitCode,
			Stderr:   err.Error(),
		}
	}

	return Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
}

var _ Runner = ExecRunner{}
