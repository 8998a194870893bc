package dashboard

import "context"

func (s *service) initTheme(ctx context.Context) ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	mode, ok := s.storedThemeLocked(ctx)
	if !ok {
		mode = ThemeLight
		if s.caps.ColorScheme.PrefersDark(ctx) {
			mode = ThemeDark
		}
		s.logger.Debug("no stored theme, using system preference", "theme", mode)
	}
	s.applyThemeLocked(ctx, mode)
	return mode
}

func (s *service) storedThemeLocked(ctx context.Context) (ThemeMode, bool) {
	raw, found, err := s.caps.Storage.Get(ctx, s.cfg.ThemeKey)
	if err != nil {
		s.logger.Warn("read stored theme failed", "key", s.cfg.ThemeKey, "error", err)
		return "", false
	}
	if !found {
		return "", false
	}
	mode, ok := ParseThemeMode(raw)
	if !ok {
		s.logger.Warn("ignoring unknown stored theme", "value", raw)
	}
	return mode, ok
}

// ApplyTheme styles the page for mode, relabels the toggle and persists mode.
func (s *service) ApplyTheme(ctx context.Context, mode ThemeMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyThemeLocked(ctx, mode)
}

func (s *service) applyThemeLocked(ctx context.Context, mode ThemeMode) {
	s.el.Theme.SetTheme(mode == ThemeDark, mode.ToggleLabel())
	if s.themeVolatile {
		return
	}
	if err := s.caps.Storage.Set(ctx, s.cfg.ThemeKey, string(mode)); err != nil {
		// Keep the rest of the session in memory only.
		s.themeVolatile = true
		s.logger.Warn("persist theme failed, keeping theme in memory", "error", err)
	}
}

// ToggleTheme flips whatever mode is currently visible.
func (s *service) ToggleTheme(ctx context.Context) ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.visibleThemeLocked().Toggled()
	s.applyThemeLocked(ctx, next)
	return next
}

// CurrentTheme reports the visible mode.
func (s *service) CurrentTheme() ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleThemeLocked()
}

func (s *service) visibleThemeLocked() ThemeMode {
	if s.el.Theme.DarkMode() {
		return ThemeDark
	}
	return ThemeLight
}
