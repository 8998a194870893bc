package dashboard

import "context"

const (
	mapBackground = "#e0e0e0"
	roadColor     = "#333"
)

// DrawMap redraws the whole map from scratch and publishes the frame.
func (s *service) DrawMap(ctx context.Context) MapFrame {
	s.mu.Lock()
	canvas := s.el.Map
	w, h := canvas.Size()
	width, height := float64(w), float64(h)

	canvas.FillRect(0, 0, width, height, mapBackground)
	for x := s.cfg.GridOffset; x < width; x += s.cfg.GridSpacing {
		canvas.StrokeLine(x, 0, x, height, s.cfg.RoadWidth, roadColor)
	}
	for y := s.cfg.GridOffset; y < height; y += s.cfg.GridSpacing {
		canvas.StrokeLine(0, y, width, y, s.cfg.RoadWidth, roadColor)
	}
	points := s.drawTrafficPointsLocked(width, height)

	s.frameSeq++
	frame := MapFrame{
		Seq:        s.frameSeq,
		Width:      w,
		Height:     h,
		Radius:     s.cfg.PointRadius,
		Points:     points,
		RenderedAt: s.now(),
	}
	s.lastFrame = frame
	s.hasFrame = true
	s.mu.Unlock()

	if s.caps.Frames != nil {
		if err := s.caps.Frames.PublishFrame(ctx, frame); err != nil {
			s.logger.Warn("publish map frame failed", "seq", frame.Seq, "error", err)
		}
	}
	return frame
}

func (s *service) drawTrafficPointsLocked(width, height float64) []TrafficPoint {
	points := make([]TrafficPoint, 0, s.cfg.PointCount)
	for i := 0; i < s.cfg.PointCount; i++ {
		pt := TrafficPoint{
			X:     s.caps.Random.Float64() * width,
			Y:     s.caps.Random.Float64() * height,
			Color: CongestionColors[s.caps.Random.IntN(len(CongestionColors))],
		}
		s.el.Map.FillCircle(pt.X, pt.Y, s.cfg.PointRadius, pt.Color)
		points = append(points, pt)
	}
	return points
}

// LastFrame returns the most recent frame, if any has been drawn.
func (s *service) LastFrame() (MapFrame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFrame, s.hasFrame
}
