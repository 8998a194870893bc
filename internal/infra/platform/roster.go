package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
)

var (
	// ErrUnsupported mirrors a browser without the pairing capability.
	ErrUnsupported = errors.New("NotSupportedError: device pairing is not available")
	// ErrNoDevices mirrors a chooser dismissed with nothing in range.
	ErrNoDevices = errors.New("NotFoundError: no devices in range")
)

// Roster is a device chooser over a fixed set of advertised vehicles. With
// AcceptAllDevices every device qualifies; the first one is picked.
type Roster struct {
	enabled bool
	devices []dashboard.Device
	logger  *slog.Logger
}

// NewRoster builds a chooser over devices.
func NewRoster(enabled bool, devices []dashboard.Device, logger *slog.Logger) *Roster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Roster{
		enabled: enabled,
		devices: append([]dashboard.Device(nil), devices...),
		logger:  logger.With("component", "platform.roster"),
	}
}

// SimulatedVehicles names n fake vehicles.
func SimulatedVehicles(n int) []dashboard.Device {
	fake := faker.New()
	devices := make([]dashboard.Device, 0, n)
	for i := 0; i < n; i++ {
		car := fake.Car()
		devices = append(devices, dashboard.Device{
			ID:   cuid.New(),
			Name: fmt.Sprintf("%s %s (%s)", car.Maker(), car.Model(), car.Plate()),
		})
	}
	return devices
}

// RequestDevice implements dashboard.DeviceChooser.
func (r *Roster) RequestDevice(ctx context.Context, opts dashboard.RequestOptions) (dashboard.Device, error) {
	if err := ctx.Err(); err != nil {
		return dashboard.Device{}, err
	}
	if !r.enabled {
		return dashboard.Device{}, ErrUnsupported
	}
	if !opts.AcceptAllDevices || len(r.devices) == 0 {
		return dashboard.Device{}, ErrNoDevices
	}
	device := r.devices[0]
	r.logger.Debug("device chosen", "device", device.Name, "candidates", len(r.devices))
	return device, nil
}

// Devices lists the advertised devices.
func (r *Roster) Devices() []dashboard.Device {
	return append([]dashboard.Device(nil), r.devices...)
}

var _ dashboard.DeviceChooser = (*Roster)(nil)
