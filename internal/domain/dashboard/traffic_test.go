package dashboard

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRefreshTrafficFadesInSelectedLevel(t *testing.T) {
	h := newHarness()
	h.random.ints = []int{2}
	h.cfg.FadeDelay = 500 * time.Millisecond
	svc := h.build(t)

	var slept time.Duration
	svc.sleep = func(_ context.Context, d time.Duration) error {
		slept = d
		require.Equal(t, []float64{0}, h.display.Opacities())
		return nil
	}

	require.NoError(t, svc.RefreshTraffic(context.Background()))
	require.Equal(t, 500*time.Millisecond, slept)
	require.Equal(t, "Current Traffic: 🚛🚕 Heavy Traffic", h.display.Text())
	require.Equal(t, "red", h.display.Color())
	require.Equal(t, []float64{0, 1}, h.display.Opacities())
}

func TestRefreshTrafficCancelledKeepsPreviousText(t *testing.T) {
	h := newHarness()
	h.display.text = "Current Traffic: 🚗 Low Traffic"
	svc := h.build(t)
	svc.sleep = func(context.Context, time.Duration) error { return context.Canceled }

	err := svc.RefreshTraffic(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "Current Traffic: 🚗 Low Traffic", h.display.Text())
	require.Equal(t, []float64{0, 1}, h.display.Opacities())
}

func TestRefreshTrafficFetchFailureIsReportedNotApplied(t *testing.T) {
	h := newHarness()
	fetchErr := errors.New("sensor offline")
	caps := h.capabilities()
	caps.Traffic = failingTraffic{err: fetchErr}
	svc, err := newService(h.cfg, h.elements(), caps, discardLogger())
	require.NoError(t, err)

	require.ErrorIs(t, svc.RefreshTraffic(context.Background()), fetchErr)
	require.Empty(t, h.display.Opacities())
	require.Empty(t, h.display.Text())
}

func TestRandomTrafficDrawsEveryLevelUniformly(t *testing.T) {
	source := randomTraffic{rnd: newScriptedRandom()}
	counts := map[TrafficLevel]int{}
	const draws = 30000
	for i := 0; i < draws; i++ {
		level, err := source.Fetch(context.Background())
		require.NoError(t, err)
		counts[level]++
	}
	require.Len(t, counts, len(TrafficLevels))
	for _, level := range TrafficLevels {
		share := float64(counts[level]) / draws
		require.Less(t, math.Abs(share-1.0/3), 0.02, level.Status)
	}
}
