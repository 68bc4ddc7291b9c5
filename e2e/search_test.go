//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchShowsResults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	endpoint, err := tf.StartFixtures()
	require.NoError(t, err, "Failed to start fixtures")

	require.NoError(t, tf.StartApp(endpoint), "Failed to start app")
	require.True(t, tf.Ready(), "Should show the search form")

	require.NoError(t, tf.Search("London"))
	require.True(t, tf.SeePlain("5 Events in London"), "Should show the result header")
	require.True(t, tf.SeePlain("Self-Defence Basics Workshop"), "Should list the first event")
	require.True(t, tf.SeePlain("Community Dojo, London"), "Should show the event location")
}

func TestBlankCityIsNotSubmitted(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	endpoint, err := tf.StartFixtures()
	require.NoError(t, err, "Failed to start fixtures")

	require.NoError(t, tf.StartApp(endpoint))
	require.True(t, tf.Ready())

	require.NoError(t, tf.Search("   "))
	require.True(t, tf.SeePlain("Enter a city to search"), "Should ask for a city")
	require.False(t, tf.OutputContainsPlain("Events in", 500*time.Millisecond), "Should not search")
}

func TestNewSearchFromResults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	endpoint, err := tf.StartFixtures()
	require.NoError(t, err)

	require.NoError(t, tf.StartApp(endpoint))
	require.True(t, tf.Ready())

	require.NoError(t, tf.Search("Paris"))
	require.True(t, tf.SeePlain("5 Events in Paris"))

	// back to the form; the previous city is still in the input
	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyNewQuery))
	require.True(t, tf.SeePlainSince(mark, "Find Events Near You"))

	for i := 0; i < len("Paris"); i++ {
		require.NoError(t, tf.SendKeys("\x7f"))
	}
	require.NoError(t, tf.Search("Berlin"))
	require.True(t, tf.SeePlain("5 Events in Berlin"))
}

func TestSortByDate(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	endpoint, err := tf.StartFixtures()
	require.NoError(t, err)

	require.NoError(t, tf.StartApp(endpoint))
	require.True(t, tf.Ready())

	require.NoError(t, tf.Search("Tokyo"))
	require.True(t, tf.SeePlain("5 Events in Tokyo"))

	require.NoError(t, tf.SendKeys(KeySort))
	require.True(t, tf.SeePlain("Sort By:"), "Should show the sort options")

	require.NoError(t, tf.SendKeys(KeyDown))
	require.NoError(t, tf.SendEnter())
	require.True(t, tf.SeePlain("[Sort: Date (Earliest First)]"), "Should mark the active sort")
}
