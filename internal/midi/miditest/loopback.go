// Package miditest provides an in-memory transport for exercising drivers
// without hardware.
package miditest

import (
	"sync"

	"github.com/PixPMusic/tindrivers/internal/midi"
)

// Loopback records every frame sent to it and lets a test inject input frames
// as if a device had produced them.
type Loopback struct {
	mu      sync.Mutex
	recv    func([]byte)
	port    string
	sent    [][]byte
	sendErr error
	opened  bool
	closed  bool
}

// New creates a Loopback that has not been opened yet.
func New() *Loopback {
	return &Loopback{}
}

// Opener returns a midi.Opener that hands out this Loopback.
func (l *Loopback) Opener() midi.Opener {
	return func(device, port string, recv func(frame []byte)) (midi.Transport, error) {
		l.mu.Lock()
		defer l.mu.Unlock()

		l.recv = recv
		l.port = port
		l.opened = true
		l.closed = false
		return l, nil
	}
}

// Missing returns a midi.Opener that never finds a port.
func Missing() midi.Opener {
	return func(device, port string, recv func(frame []byte)) (midi.Transport, error) {
		return nil, &midi.NotFoundError{Device: device, Port: port}
	}
}

// Send implements midi.Transport.
func (l *Loopback) Send(frame []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sendErr != nil {
		return l.sendErr
	}
	l.sent = append(l.sent, append([]byte(nil), frame...))
	return nil
}

// Close implements midi.Transport.
func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	return nil
}

// Inject delivers an input frame to the driver's callback. Frames injected
// after Close are dropped, as a closed port would.
func (l *Loopback) Inject(frame ...byte) {
	l.mu.Lock()
	recv, closed := l.recv, l.closed
	l.mu.Unlock()

	if recv == nil || closed {
		return
	}
	recv(frame)
}

// FailSends makes every following Send return err; nil restores sending.
func (l *Loopback) FailSends(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sendErr = err
}

// Sent returns a copy of every frame sent so far.
func (l *Loopback) Sent() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([][]byte(nil), l.sent...)
}

// Last returns the most recent frame sent, or nil.
func (l *Loopback) Last() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.sent) == 0 {
		return nil
	}
	return l.sent[len(l.sent)-1]
}

// Reset forgets the frames sent so far.
func (l *Loopback) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent = nil
}

// Port returns the port substring the driver asked for.
func (l *Loopback) Port() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.port
}

// Opened reports whether the driver opened the transport.
func (l *Loopback) Opened() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.opened
}

// Closed reports whether the driver released the transport.
func (l *Loopback) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}
