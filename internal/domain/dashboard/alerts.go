package dashboard

import "context"

// SetAlert persists the selected alert type and confirms it.
func (s *service) SetAlert(ctx context.Context) string {
	s.mu.Lock()
	alertType := s.el.Alerts.Value()
	if err := s.caps.Storage.Set(ctx, s.cfg.AlertKey, alertType); err != nil {
		s.logger.Warn("persist alert preference failed", "key", s.cfg.AlertKey, "error", err)
	}
	s.mu.Unlock()

	s.notifyf(ctx, LevelSuccess, msgAlertSet, alertType)
	return alertType
}
