//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewDriver(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	err = tf.StartApp("-n", "50")
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("vselect"), "Should show vselect title")

	t.Logf("Sending 'q' to quit application...")
	tf.Quit()

	exited, err := tf.WaitExit(2 * time.Second)
	require.True(t, exited, "app did not exit after quit")
	require.NoError(t, err, "Process should exit cleanly with 'q'")
}

func TestQuitKeyIsTypeaheadWhileOpen(t *testing.T) {
	t.Parallel()
	tf := NewDriver(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	_, err = tf.WriteOptionFile("words.txt", "alpha", "quartz", "zulu")
	require.NoError(t, err)

	require.NoError(t, tf.StartApp("-f", "words.txt"))
	require.True(t, tf.Ready(), "Should receive ready signal")

	tf.Enter()
	require.True(t, tf.SeePlain("alpha"), "Panel should open")
	tf.Quit()

	exited, _ := tf.WaitExit(500 * time.Millisecond)
	require.False(t, exited, "'q' must not quit while the panel is open")

	tf.SendCtrlC()
	exited, _ = tf.WaitExit(2 * time.Second)
	require.True(t, exited, "app did not exit after Ctrl+C")
}
