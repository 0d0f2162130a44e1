package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuDisablesMissingHandlers(t *testing.T) {
	opened := 0
	manager := New(nil, Callbacks{OnOpen: func() { opened++ }})

	menu := manager.menu()
	require.Len(t, menu.Items, 10)
	assert.True(t, menu.Items[0].Disabled)

	open := menu.Items[2]
	assert.False(t, open.Disabled)
	open.Action()
	assert.Equal(t, 1, opened)

	assert.True(t, menu.Items[3].Disabled)
}

func TestSetStatusUpdatesLabel(t *testing.T) {
	manager := New(nil, Callbacks{})
	manager.SetStatus("blinking 1:42")
	assert.Equal(t, "Status: blinking 1:42", manager.statusItem.Label)
	assert.Equal(t, "blinking 1:42", manager.Status())
}
