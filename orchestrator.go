package bosun

import (
	"time"

	"github.com/fogfish/opts"
)

// Defaults applied when the caller does not override them.
const (
	DefaultPrimary       = "claude"
	DefaultFallback      = "opencode"
	DefaultTimeout       = 10 * time.Minute
	DefaultMaxConcurrent = 3
)

// DefaultAllowedTools is the capability allow-list applied to primary-tool
// invocations that do not supply their own. It is initialized once and must
// never be mutated.
var DefaultAllowedTools = []string{
	"Write", "Read", "Edit", "Glob", "Grep", "LS",
	"Bash", "Task", "Skill",
	"WebFetch", "WebSearch",
	"mcp__perplexity-ask__perplexity_ask",
	"mcp__context7__resolve-library-id",
	"mcp__context7__get-library-docs",
	"mcp__brave-search__brave_web_search",
}

// Orchestrator invokes external agent CLI tools. It is immutable after New
// and safe for concurrent use; invocations share no state beyond the
// concurrency permits handed out by InvokeParallel.
type Orchestrator struct {
	primary           string
	fallback          string
	timeout           time.Duration
	projectDir        string
	fallbackOnFailure bool
}

var (
	// WithPrimary sets the primary tool binary. Defaults to "claude".
	WithPrimary = opts.ForName[Orchestrator, string]("primary")
	// WithFallback sets the fallback tool binary. Defaults to "opencode";
	// set it to the empty string to disable the fallback entirely.
	WithFallback = opts.ForName[Orchestrator, string]("fallback")
	// WithTimeout sets the default per-invocation timeout.
	WithTimeout = opts.ForName[Orchestrator, time.Duration]("timeout")
	// WithProjectDir sets the default working directory for invocations
	// that do not override it.
	WithProjectDir = opts.ForName[Orchestrator, string]("projectDir")
	// WithFallbackOnFailure makes Invoke and InvokeAsync retry once through
	// the fallback tool when the primary fails, times out, or cannot be
	// started. Off by default.
	WithFallbackOnFailure = opts.ForName[Orchestrator, bool]("fallbackOnFailure")
)

// New creates an Orchestrator with the given options applied over the
// defaults.
func New(options ...opts.Option[Orchestrator]) *Orchestrator {
	o := &Orchestrator{
		primary:  DefaultPrimary,
		fallback: DefaultFallback,
		timeout:  DefaultTimeout,
	}
	if err := opts.Apply(o, options); err != nil {
		panic(err)
	}
	return o
}

// normalize resolves per-invocation defaults without mutating the caller's
// view: Invocation is passed and returned by value.
func (o *Orchestrator) normalize(inv Invocation) Invocation {
	if inv.Tool == "" {
		inv.Tool = o.primary
	}
	if inv.Timeout <= 0 {
		inv.Timeout = o.timeout
	}
	if inv.WorkingDir == "" {
		inv.WorkingDir = o.projectDir
	}
	if inv.AllowedTools == nil && inv.Tool == o.primary {
		inv.AllowedTools = DefaultAllowedTools
	}
	return inv
}
