package bosun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "timeout", StatusTimeout.String())
	assert.Equal(t, "unknown", Status(99).String())
}

func TestZeroResultHasNoPayload(t *testing.T) {
	var res Result
	assert.False(t, res.Payload.Exists())
}
