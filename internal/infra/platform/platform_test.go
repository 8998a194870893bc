package platform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
)

func TestRosterPicksFirstDevice(t *testing.T) {
	roster := NewRoster(true, []dashboard.Device{{ID: "a", Name: "Van"}, {ID: "b", Name: "Coupe"}}, nil)

	device, err := roster.RequestDevice(context.Background(), dashboard.RequestOptions{AcceptAllDevices: true})
	require.NoError(t, err)
	require.Equal(t, "Van", device.Name)
}

func TestRosterFailures(t *testing.T) {
	ctx := context.Background()
	all := dashboard.RequestOptions{AcceptAllDevices: true}

	_, err := NewRoster(false, SimulatedVehicles(1), nil).RequestDevice(ctx, all)
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = NewRoster(true, nil, nil).RequestDevice(ctx, all)
	require.ErrorIs(t, err, ErrNoDevices)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = NewRoster(true, SimulatedVehicles(1), nil).RequestDevice(cancelled, all)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSimulatedVehicles(t *testing.T) {
	devices := SimulatedVehicles(3)
	require.Len(t, devices, 3)
	seen := map[string]bool{}
	for _, d := range devices {
		require.NotEmpty(t, d.Name)
		require.False(t, seen[d.ID])
		seen[d.ID] = true
	}
}

func TestStaticColorScheme(t *testing.T) {
	require.True(t, NewStaticColorScheme("dark").PrefersDark(context.Background()))
	require.False(t, NewStaticColorScheme("light").PrefersDark(context.Background()))
}

func TestRandomBounds(t *testing.T) {
	rnd := NewRandom()
	for i := 0; i < 1000; i++ {
		require.Less(t, rnd.IntN(3), 3)
		f := rnd.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
}
