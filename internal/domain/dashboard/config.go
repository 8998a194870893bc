package dashboard

import (
	"errors"
	"fmt"
	"time"
)

// MaxPairingAttempts bounds the opt-in pairing retry loop.
const MaxPairingAttempts = 10

// Config holds runtime knobs for the controller.
type Config struct {
	TrafficInterval time.Duration
	FadeDelay       time.Duration
	MapInterval     time.Duration
	CanvasWidth     int
	CanvasHeight    int
	GridSpacing     float64
	GridOffset      float64
	RoadWidth       float64
	PointCount      int
	PointRadius     float64
	Locale          string
	ThemeKey        string
	AlertKey        string
	PairingAttempts int
	PairingBackoff  time.Duration
}

// DefaultConfig matches the stock page behaviour.
func DefaultConfig() Config {
	return Config{
		TrafficInterval: 5 * time.Second,
		FadeDelay:       500 * time.Millisecond,
		MapInterval:     3 * time.Second,
		CanvasWidth:     500,
		CanvasHeight:    300,
		GridSpacing:     100,
		GridOffset:      50,
		RoadWidth:       5,
		PointCount:      10,
		PointRadius:     8,
		Locale:          "en-US",
		ThemeKey:        "theme",
		AlertKey:        "customAlert",
		PairingAttempts: 1,
		PairingBackoff:  time.Second,
	}
}

func (c Config) validate() error {
	var errs []error
	if c.TrafficInterval <= 0 {
		errs = append(errs, errors.New("traffic interval must be positive"))
	}
	if c.FadeDelay < 0 {
		errs = append(errs, errors.New("fade delay cannot be negative"))
	}
	if c.MapInterval <= 0 {
		errs = append(errs, errors.New("map interval must be positive"))
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		errs = append(errs, errors.New("canvas size must be positive"))
	}
	if c.GridSpacing <= 0 {
		errs = append(errs, errors.New("grid spacing must be positive"))
	}
	if c.PointCount < 0 {
		errs = append(errs, errors.New("point count cannot be negative"))
	}
	if c.Locale == "" {
		errs = append(errs, errors.New("locale cannot be empty"))
	}
	if c.ThemeKey == "" || c.AlertKey == "" {
		errs = append(errs, errors.New("storage keys cannot be empty"))
	}
	if c.PairingAttempts <= 0 || c.PairingAttempts > MaxPairingAttempts {
		errs = append(errs, fmt.Errorf("pairing attempts must be between 1 and %d", MaxPairingAttempts))
	}
	return errors.Join(errs...)
}
