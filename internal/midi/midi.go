package midi

import (
	"errors"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var errNoDriver = errors.New("no MIDI driver registered")

// Transport is an open pair of input/output ports for one device.
type Transport interface {
	// Send writes one complete frame to the output port
	Send(frame []byte) error
	// Close stops input callbacks and releases both ports
	Close() error
}

// Opener opens the input and output ports whose names contain port and
// delivers every raw input frame to recv. recv is called from the transport's
// own goroutine.
type Opener func(device, port string, recv func(frame []byte)) (Transport, error)

// Manager lists the MIDI ports of the registered driver
type Manager struct{}

// NewManager creates a new MIDI manager
func NewManager() *Manager {
	return &Manager{}
}

// Close cleans up the MIDI driver
func (m *Manager) Close() {
	midi.CloseDriver()
}

// ListInPorts returns the names of available MIDI input ports
func (m *Manager) ListInPorts() ([]string, error) {
	drv := drivers.Get()
	if drv == nil {
		return nil, &TransportError{Kind: ErrPortInfo, Device: "midi", Err: errNoDriver}
	}
	ins, err := drv.Ins()
	if err != nil {
		return nil, &TransportError{Kind: ErrPortInfo, Device: drv.String(), Err: err}
	}
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names, nil
}

// ListOutPorts returns the names of available MIDI output ports
func (m *Manager) ListOutPorts() ([]string, error) {
	drv := drivers.Get()
	if drv == nil {
		return nil, &TransportError{Kind: ErrPortInfo, Device: "midi", Err: errNoDriver}
	}
	outs, err := drv.Outs()
	if err != nil {
		return nil, &TransportError{Kind: ErrPortInfo, Device: drv.String(), Err: err}
	}
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names, nil
}

// OpenPorts is the Opener backed by the registered gomidi driver. The first
// input and output ports whose names contain port are used. A missing port is
// a *NotFoundError; a missing driver or a port that fails to open is a
// *TransportError of kind ErrConnect.
func OpenPorts(device, port string, recv func(frame []byte)) (Transport, error) {
	if drivers.Get() == nil {
		return nil, &TransportError{Kind: ErrConnect, Device: device, Err: errNoDriver}
	}

	in, err := midi.FindInPort(port)
	if err != nil || in == nil {
		return nil, &NotFoundError{Device: device, Port: port, Err: err}
	}
	out, err := midi.FindOutPort(port)
	if err != nil || out == nil {
		return nil, &NotFoundError{Device: device, Port: port, Err: err}
	}

	send, err := midi.SendTo(out)
	if err != nil {
		return nil, &TransportError{Kind: ErrConnect, Device: device, Err: err}
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		recv(msg)
	})
	if err != nil {
		closeErr := errors.Join(in.Close(), out.Close())
		return nil, &TransportError{Kind: ErrConnect, Device: device, Err: errors.Join(err, closeErr)}
	}

	return &portTransport{in: in, out: out, send: send, stop: stop}, nil
}

type portTransport struct {
	in   drivers.In
	out  drivers.Out
	send func(midi.Message) error
	stop func()

	once sync.Once
}

func (t *portTransport) Send(frame []byte) error {
	return t.send(midi.Message(frame))
}

func (t *portTransport) Close() error {
	var err error
	t.once.Do(func() {
		t.stop()
		err = errors.Join(t.in.Close(), t.out.Close())
	})
	return err
}
