package bosun

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Status classifies the outcome of a single tool invocation. It is a closed
// set: every invocation that produced a Result is exactly one of these.
type Status int

const (
	// StatusSuccess means the process exited zero.
	StatusSuccess Status = iota
	// StatusFailed means the process exited nonzero.
	StatusFailed
	// StatusTimeout means the process exceeded its allotted duration and was
	// terminated.
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// timeoutExitCode is the sentinel exit code recorded when an invocation is
// terminated for exceeding its timeout.
const timeoutExitCode = -1

// Invocation describes a single run of an external agent tool. The zero value
// is usable: every field has an orchestrator-level default. The struct is
// treated as immutable for the duration of the invocation; the orchestrator
// never retains it.
type Invocation struct {
	// Tool selects the binary to invoke. Empty selects the orchestrator's
	// primary tool.
	Tool string
	// Prompt is the natural-language instruction handed to the tool.
	Prompt string
	// Model, when set, is passed through as --model.
	Model string
	// AllowedTools pre-approves capabilities for the primary tool. A nil
	// slice means "use the orchestrator defaults"; an empty non-nil slice
	// pre-approves nothing.
	AllowedTools []string
	// AddDirs lists extra directories the tool may access, one --add-dir
	// flag each.
	AddDirs []string
	// Settings references a settings document, passed through as --settings.
	// The settings package generates documents in the expected shape.
	Settings string
	// Sandbox switches prompt delivery to stdin with a leading /sandbox
	// directive instead of a trailing command-line argument.
	Sandbox bool
	// Timeout bounds the invocation's wall-clock duration. Zero means the
	// orchestrator default.
	Timeout time.Duration
	// WorkingDir overrides the child process working directory.
	WorkingDir string
}

// Result is the outcome of one invocation. It is assembled exactly once, when
// the invocation finishes, and never mutated afterwards; ownership transfers
// to the caller.
type Result struct {
	// RunID correlates this invocation across log lines.
	RunID uuid.UUID
	// Status is the outcome classification.
	Status Status
	// Tool is the binary that was invoked.
	Tool string
	// Output is the captured stdout, preserved even on failure or timeout
	// because partial output is often the most useful diagnostic.
	Output string
	// Payload is the structured value recovered from Output, if any.
	// Payload.Exists() reports false when the output carried none; that is
	// an expected condition for prose output, not an error.
	Payload gjson.Result
	// StartedAt is the wall-clock instant just before process start.
	StartedAt strfmt.DateTime
	// Duration is wall-clock time from process start to result assembly.
	Duration time.Duration
	// ExitCode is the process exit code, or -1 after a timeout.
	ExitCode int
	// Error holds the failure description: stderr for a nonzero exit, a
	// synthetic message for a timeout. Empty on success.
	Error string
	// Command is the exact argument vector that was executed.
	Command []string
	// FallbackUsed reports that this result came from the fallback tool
	// after the primary failed.
	FallbackUsed bool
}
