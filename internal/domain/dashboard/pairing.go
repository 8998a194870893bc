package dashboard

import (
	"context"
	"time"

	apperrors "github.com/yanqian/trafficai/pkg/errors"
)

// maxBackoffShift caps retry delays at 32 times the base backoff.
const maxBackoffShift = 5

// pairingDelay is the wait before attempt, doubling from base on each retry.
func pairingDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 2 {
		return 0
	}
	return base << min(attempt-2, maxBackoffShift)
}

// ConnectVehicle asks the device chooser for any nearby device. Every failure
// ends in one logged error and one failure notification.
func (s *service) ConnectVehicle(ctx context.Context) (Device, error) {
	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= s.cfg.PairingAttempts; attempt++ {
		if attempt > 1 {
			delay := pairingDelay(s.cfg.PairingBackoff, attempt)
			s.logger.Warn("retrying vehicle pairing", "attempt", attempt, "delay_ms", delay.Milliseconds(), "error", lastErr)
			if err := s.sleep(ctx, delay); err != nil {
				break
			}
		}
		attempts++
		device, err := s.caps.Chooser.RequestDevice(ctx, RequestOptions{AcceptAllDevices: true})
		if err == nil {
			s.logger.Info("connected to vehicle", "device", device.Name, "device_id", device.ID)
			s.notifyf(ctx, LevelSuccess, msgConnected, device.Name)
			return device, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	s.logger.Error("bluetooth connection failed", "attempts", attempts, "error", lastErr)
	s.notify(ctx, LevelError, msgConnectFailed)
	return Device{}, apperrors.Wrap(apperrors.CodePairingFailed, "vehicle pairing failed", lastErr)
}
