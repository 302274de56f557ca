package bosun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/casualjim/bosun/extract"
	"github.com/casualjim/bosun/pkg/slogx"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// reapDelay bounds how long Wait keeps draining a killed child's pipes before
// forcing them closed. It guarantees a timed-out invocation cannot leave an
// orphaned process or a blocked reader behind.
const reapDelay = 5 * time.Second

// Invoke runs one tool invocation to completion on the calling goroutine,
// bounded by the invocation timeout.
//
// The outcome is a value, not an error: a nonzero exit yields StatusFailed
// with stderr in Result.Error, a timeout yields StatusTimeout with the child
// terminated and reaped, and both preserve whatever stdout was captured. The
// returned error is non-nil only when the process could not be started at
// all, or the surrounding context was canceled; no Result exists then.
func (o *Orchestrator) Invoke(ctx context.Context, inv Invocation) (Result, error) {
	inv = o.normalize(inv)
	return o.withFallback(ctx, inv, o.invokeOnce)
}

// invokeOnce is the blocking execution path: stdin (when present) is supplied
// from memory and the calling goroutine waits in cmd.Run.
func (o *Orchestrator) invokeOnce(ctx context.Context, inv Invocation) (Result, error) {
	runID := newRunID()
	argv, stdin := o.BuildCommand(inv)
	started := time.Now()

	cctx, cancel := context.WithTimeout(ctx, inv.Timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, argv[0], argv[1:]...)
	cmd.Dir = inv.WorkingDir
	cmd.WaitDelay = reapDelay
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logInvocationStart(ctx, runID, inv, argv)

	waitErr := cmd.Run()

	return assembleResult(ctx, procState{
		runID:   runID,
		inv:     inv,
		argv:    argv,
		started: started,
		stdout:  stdout.String(),
		stderr:  stderr.String(),
		waitErr: waitErr,
		ctxErr:  cctx.Err(),
	})
}

// withFallback runs the invocation and, when fallback-on-failure is enabled,
// retries anything short of success once through the fallback tool. The
// retried result is marked FallbackUsed.
func (o *Orchestrator) withFallback(
	ctx context.Context,
	inv Invocation,
	run func(context.Context, Invocation) (Result, error),
) (Result, error) {
	res, err := run(ctx, inv)
	if !o.shouldFallback(inv, res, err) {
		return res, err
	}

	slog.InfoContext(ctx, "retrying through fallback tool",
		slog.String("primary", inv.Tool),
		slog.String("fallback", o.fallback),
		slogx.Stringer("status", res.Status),
	)

	inv.Tool = o.fallback
	inv.AllowedTools = nil
	fres, ferr := run(ctx, inv)
	if ferr != nil {
		return Result{}, ferr
	}
	fres.FallbackUsed = true
	return fres, nil
}

func (o *Orchestrator) shouldFallback(inv Invocation, res Result, err error) bool {
	if !o.fallbackOnFailure || o.fallback == "" || inv.Tool == o.fallback {
		return false
	}
	if err != nil {
		// Context cancellation is the caller's decision, not a tool failure.
		return !errors.Is(err, context.Canceled)
	}
	return res.Status != StatusSuccess
}

// procState carries everything assembleResult needs to classify one finished
// (or killed) process.
type procState struct {
	runID   uuid.UUID
	inv     Invocation
	argv    []string
	started time.Time
	stdout  string
	stderr  string
	waitErr error
	ctxErr  error
}

// assembleResult turns the raw process outcome into the one immutable Result
// for this invocation, or into a distinct error when the process never ran.
func assembleResult(ctx context.Context, st procState) (Result, error) {
	res := Result{
		RunID:     st.runID,
		Tool:      st.inv.Tool,
		Output:    st.stdout,
		StartedAt: strfmt.DateTime(st.started),
		Duration:  time.Since(st.started),
		Command:   st.argv,
	}

	switch {
	case st.waitErr == nil:
		res.Status = StatusSuccess
		res.Payload = extract.JSON(st.stdout)

	case errors.Is(st.ctxErr, context.DeadlineExceeded):
		res.Status = StatusTimeout
		res.ExitCode = timeoutExitCode
		res.Error = fmt.Sprintf("timeout after %s", st.inv.Timeout)

	case errors.Is(st.ctxErr, context.Canceled):
		return Result{}, fmt.Errorf("invocation canceled: %w", st.ctxErr)

	default:
		var xerr *exec.ExitError
		if !errors.As(st.waitErr, &xerr) {
			// The process never ran: missing binary, permission denied, a
			// broken pipe during setup. Not a tool failure, so it does not
			// get dressed up as one.
			return Result{}, fmt.Errorf("start %s: %w", st.argv[0], st.waitErr)
		}
		res.Status = StatusFailed
		res.ExitCode = xerr.ExitCode()
		res.Error = st.stderr
	}

	slog.DebugContext(ctx, "tool invocation finished",
		slog.String("run_id", st.runID.String()),
		slogx.Stringer("status", res.Status),
		slog.Int("exit_code", res.ExitCode),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

func logInvocationStart(ctx context.Context, runID uuid.UUID, inv Invocation, argv []string) {
	slog.DebugContext(ctx, "invoking tool",
		slog.String("run_id", runID.String()),
		slog.String("tool", inv.Tool),
		slog.Duration("timeout", inv.Timeout),
		slog.Any("command", argv),
	)
}

func newRunID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
