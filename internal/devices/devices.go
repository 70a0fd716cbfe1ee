// Package devices connects configured control surfaces behind one
// device-agnostic interface, for tools that handle every model alike.
package devices

import (
	"errors"
	"fmt"

	"github.com/PixPMusic/tindrivers/internal/config"
	"github.com/PixPMusic/tindrivers/internal/midi"
	"github.com/PixPMusic/tindrivers/internal/midi/launchcontrol"
	"github.com/PixPMusic/tindrivers/internal/midi/launchpad"
)

// Surface is a connected control surface with its device-specific types
// erased.
type Surface interface {
	// Name returns the configured name
	Name() string
	// Session returns the connection id used in driver logs
	Session() string
	// Events drains the pending input events
	Events() []Event
	// Send writes a raw frame to the device unchanged
	Send(frame []byte) error
	// Close clears the device and releases its ports
	Close() error
}

// Event is a device-agnostic input event.
type Event struct {
	Kind     midi.EventKind
	Address  midi.Address
	Position string
	Value    uint8
}

type describedPosition interface {
	midi.Position
	fmt.Stringer
}

type surface[P describedPosition, V midi.Visual] struct {
	name   string
	driver *midi.Driver[P, V]
}

func (s *surface[P, V]) Name() string {
	return s.name
}

func (s *surface[P, V]) Session() string {
	return s.driver.Session()
}

func (s *surface[P, V]) Events() []Event {
	events := s.driver.Read()
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		out = append(out, Event{
			Kind:     ev.Kind,
			Address:  ev.Position.Address(),
			Position: ev.Position.String(),
			Value:    ev.Value,
		})
	}
	return out
}

func (s *surface[P, V]) Send(frame []byte) error {
	return s.driver.Send(midi.Raw[V](frame))
}

func (s *surface[P, V]) Close() error {
	return s.driver.Close()
}

// Connect returns the appropriate driver for the given device configuration
func Connect(cfg config.DeviceConfig, opts ...midi.Option) (Surface, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Port != "" {
		opts = append(opts[:len(opts):len(opts)], midi.WithPort(cfg.Port))
	}

	switch cfg.Type {
	case config.DeviceTypeLaunchpad:
		d, err := launchpad.Connect(opts...)
		if err != nil {
			return nil, err
		}
		return &surface[launchpad.Position, launchpad.Visual]{name: cfg.Name, driver: d}, nil
	case config.DeviceTypeLaunchControl:
		d, err := launchcontrol.ConnectTemplate(cfg.Template, opts...)
		if err != nil {
			return nil, err
		}
		return &surface[launchcontrol.Position, launchcontrol.Visual]{name: cfg.Name, driver: d}, nil
	default:
		return nil, fmt.Errorf("unknown device type: %s", cfg.Type)
	}
}

// ConnectAll connects every configured device in order. If one fails, the
// devices already connected are closed again.
func ConnectAll(cfgs []config.DeviceConfig, opts ...midi.Option) ([]Surface, error) {
	surfaces := make([]Surface, 0, len(cfgs))
	for _, cfg := range cfgs {
		s, err := Connect(cfg, opts...)
		if err != nil {
			connectErr := fmt.Errorf("failed to connect %s: %w", cfg.Name, err)
			return nil, errors.Join(connectErr, CloseAll(surfaces))
		}
		surfaces = append(surfaces, s)
	}
	return surfaces, nil
}

// CloseAll closes every surface, in reverse order, and joins the errors.
func CloseAll(surfaces []Surface) error {
	var errs []error
	for i := len(surfaces) - 1; i >= 0; i-- {
		if err := surfaces[i].Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", surfaces[i].Name(), err))
		}
	}
	return errors.Join(errs...)
}
