package dashboard

import "context"

// OptimalRoute picks one of the canned routes and announces it.
func (s *service) OptimalRoute(ctx context.Context) Route {
	route := Routes[s.caps.Random.IntN(len(Routes))]
	s.notifyf(ctx, LevelInfo, msgRouteSelected, route.Type, route.Time)
	return route
}
