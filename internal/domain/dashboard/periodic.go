package dashboard

import (
	"context"
	"time"
)

// periodicTask runs fn once immediately and then on every tick until stopped.
type periodicTask struct {
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func startPeriodic(parent context.Context, interval time.Duration, fn func(ctx context.Context)) *periodicTask {
	ctx, cancel := context.WithCancel(parent)
	t := &periodicTask{
		interval: interval,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go t.loop(ctx, fn)
	return t
}

func (t *periodicTask) loop(ctx context.Context, fn func(ctx context.Context)) {
	defer close(t.done)
	fn(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

func (t *periodicTask) stop() {
	t.cancel()
	<-t.done
}
