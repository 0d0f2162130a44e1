package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopInhibitorReleasesTwice(t *testing.T) {
	release, err := noopInhibitor{}.Inhibit("palming")
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		release()
		release()
	})
}

func TestScreenInhibitorAlwaysReturnsRelease(t *testing.T) {
	// Without a session bus the linux inhibitor fails, but callers still get
	// a usable release func.
	release, _ := NewScreenInhibitor("BlinkRestTest").Inhibit("test")
	require.NotNil(t, release)
	assert.NotPanics(t, release)
}
