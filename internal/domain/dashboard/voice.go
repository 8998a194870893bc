package dashboard

import (
	"context"
	"strings"

	apperrors "github.com/yanqian/trafficai/pkg/errors"
)

// ClassifyCommand matches a transcript against the known commands. The first
// match wins, checked in the order traffic, route, connect vehicle.
func ClassifyCommand(transcript string) Command {
	text := strings.ToLower(transcript)
	switch {
	case strings.Contains(text, "traffic"):
		return CommandTraffic
	case strings.Contains(text, "route"):
		return CommandRoute
	case strings.Contains(text, "connect vehicle"):
		return CommandConnect
	default:
		return CommandUnknown
	}
}

// StartVoice opens a recognition session in the configured locale.
func (s *service) StartVoice(ctx context.Context) error {
	if err := s.caps.Speech.Start(ctx, s.cfg.Locale); err != nil {
		s.logger.Error("voice recognition failed to start", "locale", s.cfg.Locale, "error", err)
		s.notify(ctx, LevelError, msgVoiceUnavailable)
		return apperrors.Wrap(apperrors.CodeSpeechFailed, "voice recognition unavailable", err)
	}
	s.logger.Info("voice recognition started", "locale", s.cfg.Locale)
	return nil
}

// HandleTranscript dispatches a recognition result.
func (s *service) HandleTranscript(ctx context.Context, transcript string) Command {
	text := strings.ToLower(strings.TrimSpace(transcript))
	s.logger.Info("voice command", "transcript", text)

	cmd := ClassifyCommand(text)
	switch cmd {
	case CommandTraffic:
		s.mu.Lock()
		current := s.el.Traffic.Text()
		s.mu.Unlock()
		s.notify(ctx, LevelInfo, msgCurrentTraffic+current)
	case CommandRoute:
		s.OptimalRoute(ctx)
	case CommandConnect:
		// The pairing flow has already surfaced any failure.
		_, _ = s.ConnectVehicle(ctx)
	default:
		s.notify(ctx, LevelInfo, msgNotUnderstood)
	}
	return cmd
}
