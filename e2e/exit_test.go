//go:build e2e && unix

package main

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should render the listing")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	t.Logf("Sending 'q' to quit application...")
	require.NoError(t, tf.Quit())

	select {
	case exitErr := <-done:
		assert.NoError(t, exitErr, "Process should exit cleanly with 'q'")
		return
	case <-time.After(1500 * time.Millisecond):
		t.Logf("'q' didn't work within 1.5 seconds, using Ctrl+C")
		tf.SendCtrlC()
	}

	select {
	case exitErr := <-done:
		t.Logf("Process exited with Ctrl+C (exit code: %v)", exitErr)
	case <-time.After(750 * time.Millisecond):
		t.Error("Application did not exit within total timeout")
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		tf.SendCtrlC()
	}
}

func TestSavedSearchIsPersisted(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("make=Nissan"))
	require.True(t, tf.Ready(), "Should render the listing")

	require.NoError(t, tf.SendKeys(KeyCtrlS))
	require.True(t, tf.SeePlain("Save search as:"), "Should prompt for a name")
	require.NoError(t, tf.Type("leafs"))
	require.NoError(t, tf.SendEnter())
	require.True(t, tf.SeePlain(`Saved search "leafs"`))

	require.NoError(t, tf.Quit())
	_, err := tf.WaitExit(3 * time.Second)
	require.NoError(t, err)

	data, err := os.ReadFile(tf.ConfigPath())
	require.NoError(t, err, "Saving a search should write the config file")
	assert.True(t, strings.Contains(string(data), "leafs = 'make=Nissan'") ||
		strings.Contains(string(data), `leafs = "make=Nissan"`), "Config should hold the saved query:\n%s", data)
}

func TestSavedSearchIsLoaded(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	require.NoError(t, tf.WriteConfig("version = 1\n\n[saved_searches]\nhybrids = 'make=Toyota'\n"))

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should render the listing")

	require.NoError(t, tf.SendKeys("'"))
	require.True(t, tf.SeeLocation("/cars?make=Toyota"), "Loading a saved search should update the location")
}
