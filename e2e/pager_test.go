//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleDetailPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("make=Toyota"))
	require.True(t, tf.Ready(), "Should render the listing")
	require.True(t, tf.SeePlain("Toyota Aqua G"))

	require.NoError(t, tf.FocusResults())
	require.NoError(t, tf.SendEnter())

	// The seller's business name only appears on the detail page
	require.True(t, tf.SeePlain("Lanka Motors"), "Should show vehicle details in the pager")

	// Leaving the pager goes back to the listing it came from
	require.NoError(t, tf.Quit())
	time.Sleep(300 * time.Millisecond)
	require.NoError(t, tf.Quit())
	out, err := tf.WaitExit(3 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "/cars?make=Toyota", lastLine(out))
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should render the listing")

	require.NoError(t, tf.SendKeys(KeyHelp))
	require.True(t, tf.SeePlain("carosearch Help"), "Should show help in the pager")
	require.True(t, tf.SeePlain("Ranges: 2010-2015"), "Help should explain the input syntax")

	require.NoError(t, tf.Quit())
	snapshot := len(tf.SnapshotPlain())
	require.True(t, tf.WaitFor(func(string) bool {
		s := tf.SnapshotPlain()
		return len(s) > snapshot && strings.Contains(s[snapshot:], "carosearch")
	}, 3*time.Second), "Should return to the listing after closing help")
}
