package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitThemeUsesStoredValue(t *testing.T) {
	for _, stored := range []ThemeMode{ThemeLight, ThemeDark} {
		t.Run(string(stored), func(t *testing.T) {
			h := newHarness()
			h.scheme = fakeScheme{dark: stored == ThemeLight}
			h.store.values["theme"] = string(stored)
			svc := h.build(t)

			require.Equal(t, stored, svc.initTheme(context.Background()))
			require.Equal(t, stored, svc.CurrentTheme())
			require.Equal(t, stored.ToggleLabel(), h.toggle.Label())
		})
	}
}

func TestInitThemeFallsBackToSystemPreference(t *testing.T) {
	for _, prefersDark := range []bool{true, false} {
		h := newHarness()
		h.scheme = fakeScheme{dark: prefersDark}
		svc := h.build(t)

		want := ThemeLight
		if prefersDark {
			want = ThemeDark
		}
		require.Equal(t, want, svc.initTheme(context.Background()))
		stored, ok := h.store.value("theme")
		require.True(t, ok)
		require.Equal(t, string(want), stored)
	}
}

func TestInitThemeIgnoresUnknownOrUnreadableValue(t *testing.T) {
	h := newHarness()
	h.scheme = fakeScheme{dark: true}
	h.store.values["theme"] = "sepia"
	svc := h.build(t)
	require.Equal(t, ThemeDark, svc.initTheme(context.Background()))

	h = newHarness()
	h.store.getErr = errors.New("quota exceeded")
	svc = h.build(t)
	require.Equal(t, ThemeLight, svc.initTheme(context.Background()))
}

func TestToggleThemeTwiceRestoresMode(t *testing.T) {
	h := newHarness()
	svc := h.build(t)
	ctx := context.Background()
	original := svc.initTheme(ctx)

	first := svc.ToggleTheme(ctx)
	require.Equal(t, original.Toggled(), first)
	stored, _ := h.store.value("theme")
	require.Equal(t, string(first), stored)
	require.Equal(t, "☀️ Light Mode", h.toggle.Label())

	second := svc.ToggleTheme(ctx)
	require.Equal(t, original, second)
	stored, _ = h.store.value("theme")
	require.Equal(t, string(original), stored)
	require.Equal(t, "🌙 Dark Mode", h.toggle.Label())
}

func TestThemeStorageFailureKeepsSessionInMemory(t *testing.T) {
	h := newHarness()
	h.store.setErr = errors.New("storage disabled")
	svc := h.build(t)
	ctx := context.Background()

	svc.initTheme(ctx)
	require.Equal(t, ThemeDark, svc.ToggleTheme(ctx))
	require.Equal(t, ThemeLight, svc.ToggleTheme(ctx))
	require.Equal(t, 1, h.store.setCall)
	require.False(t, h.toggle.DarkMode())
}

func TestParseThemeMode(t *testing.T) {
	mode, ok := ParseThemeMode("dark")
	require.True(t, ok)
	require.Equal(t, ThemeDark, mode)

	_, ok = ParseThemeMode("Dark")
	require.False(t, ok)
}
