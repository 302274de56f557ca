package bosun

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/casualjim/bosun/pkg/slogx"
)

// InvokeAsync starts the invocation without blocking the caller and returns a
// Future that resolves to exactly what Invoke would have returned: the same
// Result semantics, the same timeout and reaping guarantees, and spawn
// failures surfaced through the Future's error, never folded into a Result.
func (o *Orchestrator) InvokeAsync(ctx context.Context, inv Invocation) *Future[Result] {
	inv = o.normalize(inv)
	fut := newFuture[Result]()
	go func() {
		fut.complete(o.withFallback(ctx, inv, o.invokeAsyncOnce))
	}()
	return fut
}

// invokeAsyncOnce is the pipeline behind InvokeAsync: start the process, feed
// and close stdin when a payload is present, then wait bounded by the
// timeout. Closing stdin before waiting matters; tools that read the sandbox
// prompt from stdin block until they see end-of-input.
func (o *Orchestrator) invokeAsyncOnce(ctx context.Context, inv Invocation) (Result, error) {
	runID := newRunID()
	argv, stdinPayload := o.BuildCommand(inv)
	started := time.Now()

	cctx, cancel := context.WithTimeout(ctx, inv.Timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, argv[0], argv[1:]...)
	cmd.Dir = inv.WorkingDir
	cmd.WaitDelay = reapDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var stdin io.WriteCloser
	if stdinPayload != "" {
		pipe, err := cmd.StdinPipe()
		if err != nil {
			return Result{}, fmt.Errorf("open stdin pipe for %s: %w", argv[0], err)
		}
		stdin = pipe
	}

	logInvocationStart(ctx, runID, inv, argv)

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("start %s: %w", argv[0], err)
	}

	if stdin != nil {
		if _, err := io.WriteString(stdin, stdinPayload); err != nil {
			// The child may have exited before draining stdin; the exit
			// status below tells the real story.
			slog.DebugContext(ctx, "stdin write interrupted",
				slog.String("run_id", runID.String()),
				slogx.Error(err),
			)
		}
		_ = stdin.Close()
	}

	waitErr := cmd.Wait()

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
