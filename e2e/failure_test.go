//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFailedSearchCanBeRetried(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	endpoint, err := tf.StartFixtures("--fail-status", "500")
	require.NoError(t, err, "Failed to start fixtures")

	require.NoError(t, tf.StartApp(endpoint))
	require.True(t, tf.Ready())

	require.NoError(t, tf.Search("London"))
	require.True(t, tf.SeePlain("Oops! Something went wrong"), "Should show the error screen")
	require.True(t, tf.SeePlain("Error fetching events"), "Should show the failure message")
	require.True(t, tf.SeePlain("Suggestions:"), "Should show troubleshooting tips")

	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyRetry))
	require.True(t, tf.SeePlainSince(mark, "Find Events Near You"), "Retry should return to the form")
}

func TestPlaceholderEndpointWarning(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(""))
	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("No search endpoint configured"), "Should warn about the placeholder endpoint")
}

func TestRequireEndpointFailsFast(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("", "--require-endpoint"))
	require.Error(t, tf.WaitForExit(waitExit), "Should exit with an error")
	require.True(t, tf.SeePlain("search endpoint is not configured"))
}
