//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchNarrowsOptions(t *testing.T) {
	t.Parallel()
	tf := NewDriver(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	require.NoError(t, tf.StartApp("-n", "5000"))
	require.True(t, tf.Ready(), "Should receive ready signal")

	tf.Enter()
	tf.Search()
	tf.SendKeys("004321")
	require.True(t, tf.SeePlain("[Search: 004321]"), "Title should show the query")
	require.True(t, tf.SeePlain("Option 004321"), "Match should be listed")

	tf.Enter() // keep the filter
	tf.Enter() // select the match
	require.True(t, tf.WaitForStatusMessage("Selected: Option 004321", defaultWait))
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewDriver(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	require.NoError(t, tf.StartApp("-n", "10"))
	require.True(t, tf.Ready(), "Should receive ready signal")

	tf.Help()
	require.True(t, tf.SeePlain("vselect Help"), "Help should open in the pager")

	tf.Quit()
	require.True(t, tf.SeePlain("Pick an option"), "Should return to the field after closing the pager")
}
