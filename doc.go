/*
Package bosun orchestrates invocations of external command-line coding agents.

It drives a primary agent binary (and optionally a fallback binary), feeding
each one a natural-language prompt plus structured options, and normalizes the
raw process output into a single immutable Result: a success/failed/timeout
status, the captured output, timing, the exit code, and a parsed JSON payload
when the output contains one.

The package exposes three invocation surfaces on an Orchestrator:

  - Invoke: run one command to completion on the calling goroutine,
    bounded by a wall-clock timeout.
  - InvokeAsync: start the same invocation without blocking the caller and
    receive a Future that resolves to the identical result shape.
  - InvokeParallel: fan a list of prompts out through InvokeAsync under a
    concurrency cap, with results index-aligned to the input prompts.

Commands are always built as argument vectors and handed directly to process
creation; no shell is ever involved, so prompt content cannot be interpreted
as shell syntax.

# Basic Usage

	o := bosun.New(
		bosun.WithTimeout(5*time.Minute),
	)

	res, err := o.Invoke(ctx, bosun.Invocation{
		Prompt: "Summarize the open TODOs in this repository as JSON",
	})
	if err != nil {
		// the process could not be started at all
	}
	switch res.Status {
	case bosun.StatusSuccess:
		if res.Payload.Exists() {
			// structured payload recovered from the output
		}
	case bosun.StatusFailed:
		// res.ExitCode and res.Error carry the diagnostics
	case bosun.StatusTimeout:
		// the child process has been terminated and reaped
	}

Invocation outcomes are returned as values rather than errors: a nonzero exit
or a timeout is a Result the caller can branch on. Only failures to start the
process at all surface as Go errors.

The settings subpackage assembles the JSON document the primary tool consumes
via its --settings flag, and the extract subpackage implements the heuristics
for recovering JSON embedded in free-form output.
*/
package bosun
