package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
)

// Encoder produces the image of the surface a frame was drawn on.
type Encoder interface {
	PNG() ([]byte, error)
}

// Recorder captures the canvas image of each published frame and archives
// it under one key, so the archive always holds the latest map only.
type Recorder struct {
	surface Encoder
	archive Archive
	key     string

	mu     sync.RWMutex
	latest []byte
	seq    int64
}

// NewRecorder archives frames drawn on surface under key. archive may be nil.
func NewRecorder(surface Encoder, archive Archive, key string) *Recorder {
	return &Recorder{surface: surface, archive: archive, key: key}
}

// PublishFrame encodes the surface and stores it.
func (r *Recorder) PublishFrame(ctx context.Context, frame dashboard.MapFrame) error {
	data, err := r.surface.PNG()
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", frame.Seq, err)
	}
	r.mu.Lock()
	if frame.Seq >= r.seq {
		r.latest, r.seq = data, frame.Seq
	}
	r.mu.Unlock()

	if r.archive == nil {
		return nil
	}
	if err := r.archive.Put(ctx, r.key, data, "image/png"); err != nil {
		return fmt.Errorf("archive frame %d: %w", frame.Seq, err)
	}
	return nil
}

// Latest returns the most recent frame image and its sequence number.
func (r *Recorder) Latest() ([]byte, int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest, r.seq, r.latest != nil
}

// Fanout publishes every frame to each sink in order and joins their errors.
type Fanout []dashboard.FrameSink

func (f Fanout) PublishFrame(ctx context.Context, frame dashboard.MapFrame) error {
	var errs []error
	for _, sink := range f {
		if err := sink.PublishFrame(ctx, frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ dashboard.FrameSink = (*Recorder)(nil)
	_ dashboard.FrameSink = Fanout(nil)
)
