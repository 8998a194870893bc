package dashboard

import (
	"context"
	"strings"
)

// ScrollTo smoothly scrolls to the anchor named by href. Unknown targets are ignored.
func (s *service) ScrollTo(_ context.Context, href string) bool {
	id := strings.TrimPrefix(strings.TrimSpace(href), "#")
	if id == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.el.Scroller.HasTarget(id) {
		s.logger.Debug("scroll target not found", "target", id)
		return false
	}
	s.el.Scroller.ScrollIntoView(id, true)
	return true
}
