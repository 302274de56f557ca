package bosun

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeScript drops an executable shell script into a temp dir and returns
// its path. Invocation tests stand in stub binaries for the real agent CLIs.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("invocation tests require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

// echoPromptBody prints the last argument, which is the prompt in the
// non-sandbox primary form.
const echoPromptBody = `shift $(($# - 1))
echo "$1"`
