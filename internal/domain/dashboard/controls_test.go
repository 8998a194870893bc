package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimalRouteAlwaysFromFixedSet(t *testing.T) {
	h := newHarness()
	svc := h.build(t)
	seen := map[Route]bool{}
	for i := 0; i < 400; i++ {
		route := svc.OptimalRoute(context.Background())
		require.Contains(t, Routes, route)
		seen[route] = true
	}
	require.Len(t, seen, len(Routes))
}

func TestSetAlertPersistsAndConfirms(t *testing.T) {
	h := newHarness()
	h.store.values["customAlert"] = "Road Closures"
	h.choice.value = "Accidents"
	svc := h.build(t)

	require.Equal(t, "Accidents", svc.SetAlert(context.Background()))
	stored, _ := h.store.value("customAlert")
	require.Equal(t, "Accidents", stored)
	require.Equal(t, "🔔 Alert set for: Accidents", h.notifier.All()[0].Message)
}

func TestSetAlertStorageFailureStillConfirms(t *testing.T) {
	h := newHarness()
	h.store.setErr = errors.New("read only")
	svc := h.build(t)

	require.Equal(t, "Accidents", svc.SetAlert(context.Background()))
	require.Len(t, h.notifier.All(), 1)
}

func TestScrollTo(t *testing.T) {
	h := newHarness()
	svc := h.build(t)
	ctx := context.Background()

	require.True(t, svc.ScrollTo(ctx, "#map"))
	require.False(t, svc.ScrollTo(ctx, "#missing"))
	require.False(t, svc.ScrollTo(ctx, "#"))
	require.Equal(t, []string{"map"}, h.scroller.scrolled)
}

func TestLoginComingSoon(t *testing.T) {
	h := newHarness()
	svc := h.build(t)

	svc.Login(context.Background())
	require.Equal(t, "🚀 Login functionality coming soon!", h.notifier.All()[0].Message)
}
