package dashboard

import "context"

// randomTraffic is the simulated fetch: a uniform draw with no I/O.
type randomTraffic struct {
	rnd RandomSource
}

func (r randomTraffic) Fetch(ctx context.Context) (TrafficLevel, error) {
	if err := ctx.Err(); err != nil {
		return TrafficLevel{}, err
	}
	return TrafficLevels[r.rnd.IntN(len(TrafficLevels))], nil
}

// RefreshTraffic fetches a reading and fades it into the traffic display.
func (s *service) RefreshTraffic(ctx context.Context) error {
	level, err := s.traffic.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("traffic fetch failed", "error", err)
		}
		return err
	}

	s.mu.Lock()
	s.el.Traffic.SetOpacity(0)
	s.mu.Unlock()

	if err := s.sleep(ctx, s.cfg.FadeDelay); err != nil {
		s.mu.Lock()
		s.el.Traffic.SetOpacity(1)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.el.Traffic.SetText(level.DisplayText())
	s.el.Traffic.SetColor(level.Color)
	s.el.Traffic.SetOpacity(1)
	s.logger.Debug("traffic updated", "status", level.Status, "color", level.Color)
	return nil
}
