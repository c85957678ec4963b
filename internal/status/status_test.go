package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForOrderKnown(t *testing.T) {
	info := ForOrder("Processing")
	assert.Equal(t, "Processing", info.Label)
	assert.True(t, info.Cancelable)
	assert.False(t, info.Terminal)

	info = ForOrder("cancelled")
	assert.True(t, info.Terminal)
	assert.False(t, info.Cancelable)
	assert.Equal(t, "danger", info.Tone)
}

func TestForOrderUnknown(t *testing.T) {
	info := ForOrder("On Hold")
	assert.Equal(t, "On Hold", info.Label)
	assert.Equal(t, "secondary", info.Tone)
	assert.False(t, info.Cancelable)

	assert.Equal(t, "Unknown", ForOrder("  ").Label)
}
