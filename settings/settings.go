// Package settings assembles the JSON settings document the primary tool
// consumes through its --settings flag.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/sjson"
)

// DefaultHookTimeout bounds how long the tool waits for a hook command.
const DefaultHookTimeout = 5 * time.Second

// HookCommand is a single hook entry understood by the primary tool.
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`
}

// HookMatcher binds hook commands to a tool-name pattern.
type HookMatcher struct {
	Matcher string        `json:"matcher"`
	Hooks   []HookCommand `json:"hooks"`
}

// Document describes what goes into a generated settings document. The zero
// value renders as an empty object.
type Document struct {
	// HookScript, when set and present on disk, is registered as a command
	// hook for every tool, both PreToolUse and PostToolUse. A script that
	// does not exist is skipped silently, matching how callers probe for an
	// optional hook.
	HookScript string
	// HookTimeout overrides DefaultHookTimeout for the hook entries.
	HookTimeout time.Duration
	// AdditionalDirectories is written to permissions.additionalDirectories.
	AdditionalDirectories []string
}

// Generate renders the settings document as a JSON string.
func Generate(doc Document) (string, error) {
	out := "{}"

	if doc.HookScript != "" {
		if _, err := os.Stat(doc.HookScript); err == nil {
			abs, err := filepath.Abs(doc.HookScript)
			if err != nil {
				return "", fmt.Errorf("resolve hook script: %w", err)
			}
			timeout := doc.HookTimeout
			if timeout <= 0 {
				timeout = DefaultHookTimeout
			}
			entries := []HookMatcher{{
				Matcher: "*",
				Hooks: []HookCommand{{
					Type:    "command",
					Command: abs,
					Timeout: int(timeout / time.Second),
				}},
			}}
			raw, err := json.Marshal(entries)
			if err != nil {
				return "", fmt.Errorf("marshal hook entries: %w", err)
			}
			for _, event := range []string{"PreToolUse", "PostToolUse"} {
				out, err = sjson.SetRaw(out, "hooks."+event, string(raw))
				if err != nil {
					return "", fmt.Errorf("set %s hooks: %w", event, err)
				}
			}
		}
	}

	if len(doc.AdditionalDirectories) > 0 {
		var err error
		out, err = sjson.Set(out, "permissions.additionalDirectories", doc.AdditionalDirectories)
		if err != nil {
			return "", fmt.Errorf("set additional directories: %w", err)
		}
	}

	return out, nil
}
