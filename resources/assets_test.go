package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconLoadsAndCaches(t *testing.T) {
	first, err := Icon(IconIdle)
	require.NoError(t, err)
	assert.Equal(t, IconIdle, first.Name())
	assert.Contains(t, string(first.Content()), "<svg")

	second := MustIcon(IconIdle)
	assert.Same(t, first, second)

	assert.NotPanics(t, func() { MustIcon(IconRunning) })
}

func TestIconMissing(t *testing.T) {
	_, err := Icon("missing.svg")
	require.Error(t, err)
	assert.Panics(t, func() { MustIcon("missing.svg") })
}
