package page

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateTracksBindingsAndNotifies(t *testing.T) {
	layout, err := DefaultLayout()
	require.NoError(t, err)
	state := NewState(layout)

	var seen []Snapshot
	state.Observe(func(s Snapshot) { seen = append(seen, s) })

	require.Equal(t, "Accidents", state.Value())
	require.Equal(t, "🌙 Dark Mode", state.Snapshot().ToggleLabel)

	state.SetTheme(true, "☀️ Light Mode")
	state.SetOpacity(0)
	state.SetText("Current Traffic: 🚗 Low Traffic")
	state.SetColor("green")
	state.SetOpacity(1)
	state.Select("Road Closures")

	require.Len(t, seen, 6)
	last := seen[len(seen)-1]
	require.Equal(t, int64(6), last.Version)
	require.True(t, last.DarkMode)
	require.Equal(t, "Current Traffic: 🚗 Low Traffic", state.Text())
	require.Equal(t, "green", last.TrafficColor)
	require.Equal(t, 1.0, last.TrafficOpacity)
	require.Equal(t, "Road Closures", state.Value())
	require.Equal(t, 0.0, seen[1].TrafficOpacity)
}

func TestStateThemeIsOneChange(t *testing.T) {
	layout, err := DefaultLayout()
	require.NoError(t, err)
	state := NewState(layout)

	var seen []Snapshot
	state.Observe(func(s Snapshot) { seen = append(seen, s) })
	state.SetTheme(true, "☀️ Light Mode")

	require.Len(t, seen, 1)
	require.True(t, seen[0].DarkMode)
	require.Equal(t, "☀️ Light Mode", seen[0].ToggleLabel)
}

func TestStateScroll(t *testing.T) {
	layout, err := DefaultLayout()
	require.NoError(t, err)
	state := NewState(layout)

	require.True(t, state.HasTarget("features"))
	require.False(t, state.HasTarget("pricing"))

	state.ScrollIntoView("features", true)
	state.ScrollIntoView("features", true)
	snap := state.Snapshot()
	require.Equal(t, "features", snap.ScrollTarget)
	require.Equal(t, int64(2), snap.ScrollSeq)
}
