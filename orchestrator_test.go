package bosun

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	o := New()

	assert.Equal(t, DefaultPrimary, o.primary)
	assert.Equal(t, DefaultFallback, o.fallback)
	assert.Equal(t, DefaultTimeout, o.timeout)
	assert.Empty(t, o.projectDir)
	assert.False(t, o.fallbackOnFailure)
}

func TestNewOptions(t *testing.T) {
	o := New(
		WithPrimary("my-agent"),
		WithFallback(""),
		WithTimeout(30*time.Second),
		WithProjectDir("/srv/project"),
		WithFallbackOnFailure(true),
	)

	assert.Equal(t, "my-agent", o.primary)
	assert.Empty(t, o.fallback)
	assert.Equal(t, 30*time.Second, o.timeout)
	assert.Equal(t, "/srv/project", o.projectDir)
	assert.True(t, o.fallbackOnFailure)
}

func TestNormalize(t *testing.T) {
	o := New(WithProjectDir("/srv/project"))

	inv := o.normalize(Invocation{Prompt: "hi"})
	assert.Equal(t, DefaultPrimary, inv.Tool)
	assert.Equal(t, DefaultTimeout, inv.Timeout)
	assert.Equal(t, "/srv/project", inv.WorkingDir)
	assert.Equal(t, DefaultAllowedTools, inv.AllowedTools)

	// The fallback tool never inherits the capability defaults.
	inv = o.normalize(Invocation{Prompt: "hi", Tool: DefaultFallback})
	assert.Nil(t, inv.AllowedTools)

	// Caller-supplied values win.
	inv = o.normalize(Invocation{
		Prompt:       "hi",
		Timeout:      time.Second,
		WorkingDir:   "/elsewhere",
		AllowedTools: []string{"Read"},
	})
	assert.Equal(t, time.Second, inv.Timeout)
	assert.Equal(t, "/elsewhere", inv.WorkingDir)
	assert.Equal(t, []string{"Read"}, inv.AllowedTools)
}

func TestDefaultAllowedTools(t *testing.T) {
	assert.NotEmpty(t, DefaultAllowedTools)
	assert.Contains(t, DefaultAllowedTools, "Bash")
	assert.Contains(t, DefaultAllowedTools, "Read")
	assert.Contains(t, DefaultAllowedTools, "WebSearch")
}
