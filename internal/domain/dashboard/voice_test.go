package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/trafficai/pkg/errors"
)

func TestClassifyCommand(t *testing.T) {
	cases := map[string]Command{
		"what's the traffic":          CommandTraffic,
		"find a route":                CommandRoute,
		"connect vehicle now":         CommandConnect,
		"xyz unknown":                 CommandUnknown,
		"TRAFFIC please":              CommandTraffic,
		"Route around the traffic":    CommandTraffic,
		"connect vehicle via a route": CommandRoute,
		"connect my vehicle":          CommandUnknown,
		"":                            CommandUnknown,
	}
	for transcript, want := range cases {
		require.Equal(t, want, ClassifyCommand(transcript), transcript)
	}
}

func TestHandleTranscriptTrafficReadsDisplay(t *testing.T) {
	h := newHarness()
	h.display.text = "Current Traffic: 🚙 Moderate Traffic"
	svc := h.build(t)

	require.Equal(t, CommandTraffic, svc.HandleTranscript(context.Background(), "What's the Traffic"))
	notes := h.notifier.All()
	require.Len(t, notes, 1)
	require.Equal(t, "🚦 Current Traffic: Current Traffic: 🚙 Moderate Traffic", notes[0].Message)
}

func TestHandleTranscriptTrafficKeepsPercentLiteral(t *testing.T) {
	h := newHarness()
	h.display.text = "100% jammed %s"
	svc := h.build(t)

	svc.HandleTranscript(context.Background(), "traffic")
	notes := h.notifier.All()
	require.Len(t, notes, 1)
	require.Equal(t, "🚦 Current Traffic: 100% jammed %s", notes[0].Message)
}

func TestHandleTranscriptRoute(t *testing.T) {
	h := newHarness()
	h.random.ints = []int{1}
	svc := h.build(t)

	require.Equal(t, CommandRoute, svc.HandleTranscript(context.Background(), "find a route"))
	require.Equal(t, "🚀 AI Selected Route: Eco-Friendly (18 min)", h.notifier.All()[0].Message)
}

func TestHandleTranscriptConnectFailureHandled(t *testing.T) {
	h := newHarness()
	h.chooser.results = []error{errChooserCancelled}
	svc := h.build(t)

	require.Equal(t, CommandConnect, svc.HandleTranscript(context.Background(), "connect vehicle now"))
	notes := h.notifier.All()
	require.Len(t, notes, 1)
	require.Equal(t, LevelError, notes[0].Level)
}

func TestHandleTranscriptFallback(t *testing.T) {
	h := newHarness()
	svc := h.build(t)

	require.Equal(t, CommandUnknown, svc.HandleTranscript(context.Background(), "xyz unknown"))
	require.Equal(t, "🤖 AI: Sorry, I didn't understand that command.", h.notifier.All()[0].Message)
}

func TestStartVoiceUsesLocale(t *testing.T) {
	h := newHarness()
	svc := h.build(t)

	require.NoError(t, svc.StartVoice(context.Background()))
	require.Equal(t, "en-US", h.speech.lang)
	require.Empty(t, h.notifier.All())
}

func TestStartVoiceFailure(t *testing.T) {
	h := newHarness()
	h.speech.err = errors.New("not-allowed")
	svc := h.build(t)

	err := svc.StartVoice(context.Background())
	require.True(t, apperrors.IsCode(err, apperrors.CodeSpeechFailed))
	notes := h.notifier.All()
	require.Len(t, notes, 1)
	require.Equal(t, LevelError, notes[0].Level)
}
