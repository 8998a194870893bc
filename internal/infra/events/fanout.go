package events

import (
	"context"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
)

// Fanout delivers every notification to each notifier in order.
type Fanout []dashboard.Notifier

func (f Fanout) Notify(ctx context.Context, n dashboard.Notification) {
	for _, notifier := range f {
		notifier.Notify(ctx, n)
	}
}

var _ dashboard.Notifier = Fanout(nil)
