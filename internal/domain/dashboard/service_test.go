package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/trafficai/pkg/errors"
)

func TestNewServiceRejectsMissingBindings(t *testing.T) {
	h := newHarness()
	el := h.elements()
	el.Map = nil
	caps := h.capabilities()
	caps.Speech = nil

	_, err := NewService(h.cfg, el, caps, discardLogger())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeConfig))
	require.Contains(t, err.Error(), "element traffic-map")
	require.Contains(t, err.Error(), "capability speech-recognition")
}

func TestNewServiceRejectsInvalidConfig(t *testing.T) {
	h := newHarness()
	h.cfg.MapInterval = 0
	_, err := NewService(h.cfg, h.elements(), h.capabilities(), discardLogger())
	require.True(t, apperrors.IsCode(err, apperrors.CodeConfig))
}

func TestNewServiceSizesCanvas(t *testing.T) {
	h := newHarness()
	h.build(t)
	w, hgt := h.canvas.Size()
	require.Equal(t, 500, w)
	require.Equal(t, 300, hgt)
}

func TestStartRunsTasksUntilStopped(t *testing.T) {
	h := newHarness()
	h.cfg.TrafficInterval = 10 * time.Millisecond
	h.cfg.MapInterval = 5 * time.Millisecond
	svc := h.build(t)

	require.NoError(t, svc.Start(context.Background()))
	err := svc.Start(context.Background())
	require.True(t, apperrors.IsCode(err, apperrors.CodeAlreadyStarted))

	require.Eventually(t, func() bool { return h.sink.Count() >= 3 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return h.display.Text() != "" }, time.Second, 5*time.Millisecond)
	_, stored := h.store.value("theme")
	require.True(t, stored)

	svc.Stop()
	frames := h.sink.Count()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, frames, h.sink.Count())

	svc.Stop()
	require.NoError(t, svc.Start(context.Background()))
	svc.Stop()
}

func TestStartStopsWithParentContext(t *testing.T) {
	h := newHarness()
	h.cfg.MapInterval = 5 * time.Millisecond
	svc := h.build(t)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, svc.Start(ctx))
	require.Eventually(t, func() bool { return h.sink.Count() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()
	svc.Stop()
}
