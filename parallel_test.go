package bosun

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowFirstBody echoes the prompt, but delays prompt A so it finishes last.
const slowFirstBody = `shift $(($# - 1))
case "$1" in A) sleep 0.3;; esac
echo "$1"`

func TestInvokeParallelPreservesOrder(t *testing.T) {
	script := writeScript(t, "agent", slowFirstBody)
	o := New(WithPrimary(script))

	results, err := o.InvokeParallel(context.Background(), []string{"A", "B", "C"}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, want := range []string{"A", "B", "C"} {
		assert.Equal(t, StatusSuccess, results[i].Status)
		assert.Equal(t, want, strings.TrimSpace(results[i].Output))
	}
}

func TestInvokeParallelSequentialWhenCapIsOne(t *testing.T) {
	script := writeScript(t, "agent", `sleep 0.2
`+echoPromptBody)
	o := New(WithPrimary(script))

	start := time.Now()
	results, err := o.InvokeParallel(context.Background(), []string{"A", "B", "C"}, 1)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, want := range []string{"A", "B", "C"} {
		assert.Equal(t, want, strings.TrimSpace(results[i].Output))
	}
	// Three 200ms stubs through a single permit cannot overlap.
	assert.GreaterOrEqual(t, elapsed, 500*time.Millisecond)
}

func TestInvokeParallelFailuresAreIndependent(t *testing.T) {
	script := writeScript(t, "agent", `shift $(($# - 1))
if [ "$1" = "boom" ]; then
  echo bad >&2
  exit 2
fi
echo "$1"`)
	o := New(WithPrimary(script))

	results, err := o.InvokeParallel(context.Background(), []string{"ok", "boom", "also ok"}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, StatusSuccess, results[0].Status)
	assert.Equal(t, StatusFailed, results[1].Status)
	assert.Contains(t, results[1].Error, "bad")
	assert.Equal(t, StatusSuccess, results[2].Status)
}

func TestInvokeParallelSpawnFailureLeavesZeroResult(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-binary")
	o := New(WithPrimary(missing))

	results, err := o.InvokeParallel(context.Background(), []string{"x", "y"}, 2)
	require.Error(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, Result{}, results[0])
	assert.Equal(t, Result{}, results[1])
}

func TestInvokeParallelEmptyPrompts(t *testing.T) {
	o := New(WithPrimary("claude"))

	results, err := o.InvokeParallel(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInvokeParallelDefaultsCap(t *testing.T) {
	script := writeScript(t, "agent", echoPromptBody)
	o := New(WithPrimary(script))

	results, err := o.InvokeParallel(context.Background(), []string{"one"}, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "one", strings.TrimSpace(results[0].Output))
}
