package midi

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Options configure Connect.
type Options struct {
	// Port overrides the profile's port-name substring
	Port   string
	Logger *slog.Logger
	// Opener defaults to OpenPorts
	Opener Opener
	// AbsorbDefaults makes any two "off" visuals absorb each other
	AbsorbDefaults bool
}

// Option mutates Options.
type Option func(*Options)

func WithPort(port string) Option {
	return func(o *Options) { o.Port = port }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func WithOpener(opener Opener) Option {
	return func(o *Options) { o.Opener = opener }
}

func WithAbsorbDefaults() Option {
	return func(o *Options) { o.AbsorbDefaults = true }
}

// Driver drives one connected device described by a Profile.
//
// All methods must be called from the goroutine that owns the driver; only the
// transport callback runs elsewhere, and it only touches the inbox.
type Driver[P Position, V Visual] struct {
	profile   *Profile[P, V]
	transport Transport
	inbox     *Inbox[InputEvent[P]]
	logger    *slog.Logger
	session   string

	visuals  *VisualState[V]
	physical map[Address]PhysicalState

	closed bool
}

// Connect opens the device's ports, installs the input callback, sends the
// profile's init frames and forces every address off.
func Connect[P Position, V Visual](profile *Profile[P, V], opts ...Option) (*Driver[P, V], error) {
	o := Options{Port: profile.Port, Opener: OpenPorts}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	absorb := profile.Absorb
	if o.AbsorbDefaults {
		absorb = AbsorbDefaults[V]
	}

	session := uuid.NewString()
	logger := o.Logger.With("device", profile.Name, "session", session)
	logger.Debug("starting driver", "port", o.Port)

	d := &Driver[P, V]{
		profile:  profile,
		inbox:    NewInbox[InputEvent[P]](),
		logger:   logger,
		session:  session,
		visuals:  NewVisualState(absorb),
		physical: make(map[Address]PhysicalState, len(profile.Addresses)),
	}
	for _, addr := range profile.Addresses {
		if profile.analog(addr) {
			d.physical[addr] = Analog(0)
		} else {
			d.physical[addr] = Binary(false)
		}
	}

	transport, err := o.Opener(profile.Name, o.Port, d.receive)
	if err != nil {
		return nil, err
	}
	d.transport = transport

	for _, frame := range profile.Init {
		if err := d.Send(Raw[V](frame)); err != nil {
			d.release()
			return nil, fmt.Errorf("failed to initialise %s: %w", profile.Name, err)
		}
	}

	d.Clear()
	if err := d.Push(); err != nil {
		d.release()
		return nil, fmt.Errorf("failed to clear %s: %w", profile.Name, err)
	}

	logger.Info("driver connected", "port", o.Port)
	return d, nil
}

// receive runs on the transport goroutine.
func (d *Driver[P, V]) receive(frame []byte) {
	ev, ok := d.profile.Decode(frame)
	if !ok {
		d.logger.Debug("dropped input frame", "frame", fmt.Sprintf("% X", frame))
		return
	}
	d.inbox.Put(ev)
}

// Name returns the device name.
func (d *Driver[P, V]) Name() string {
	return d.profile.Name
}

// Session returns the id of this connection, as used in logs.
func (d *Driver[P, V]) Session() string {
	return d.session
}

// Close forces every address off and releases the ports. Calling Close again
// is a no-op.
func (d *Driver[P, V]) Close() error {
	if d.closed {
		return nil
	}
	d.logger.Debug("closing driver")

	d.Clear()
	pushErr := d.Push()
	closeErr := d.release()
	if err := errors.Join(pushErr, closeErr); err != nil {
		return fmt.Errorf("failed to close %s: %w", d.profile.Name, err)
	}
	return nil
}

func (d *Driver[P, V]) release() error {
	d.closed = true
	d.inbox.Close()
	d.visuals.Pop()
	if err := d.transport.Close(); err != nil {
		return &TransportError{Kind: ErrConnect, Device: d.profile.Name, Err: err}
	}
	return nil
}

// Read drains every input event received since the last call and updates the
// physical-state cache. It never blocks.
func (d *Driver[P, V]) Read() []InputEvent[P] {
	events := d.inbox.Drain()
	if d.profile.Coalesce {
		events = Coalesce(events)
	}
	for _, ev := range events {
		d.physical[ev.Position.Address()] = ev.State()
	}
	return events
}

// PositionState returns the cached physical state of pos.
func (d *Driver[P, V]) PositionState(pos P) (PhysicalState, error) {
	addr := pos.Address()
	state, ok := d.physical[addr]
	if !ok {
		return PhysicalState{}, &PositionError{
			Device:      d.profile.Name,
			Description: fmt.Sprintf("%d is not a control", addr),
		}
	}
	return state, nil
}

// Pressed reports whether the button at pos is held down.
func (d *Driver[P, V]) Pressed(pos P) (bool, error) {
	state, err := d.PositionState(pos)
	if err != nil {
		return false, err
	}
	if state.IsAnalog() {
		return false, &PositionError{
			Device:      d.profile.Name,
			Description: fmt.Sprintf("%d as a button", pos.Address()),
		}
	}
	return state.Pressed(), nil
}

// Value returns the analog value of the knob or slider at pos.
func (d *Driver[P, V]) Value(pos P) (uint8, error) {
	state, err := d.PositionState(pos)
	if err != nil {
		return 0, err
	}
	if !state.IsAnalog() {
		return 0, &PositionError{
			Device:      d.profile.Name,
			Description: fmt.Sprintf("%d as an analog control", pos.Address()),
		}
	}
	return state.Value(), nil
}

// Send encodes msg and writes it to the device.
func (d *Driver[P, V]) Send(msg OutputMessage[V]) error {
	if d.closed {
		return ErrClosed
	}
	frame, err := msg.frame(d.profile.Encode)
	if err != nil {
		return err
	}
	d.logger.Debug("sending message", "frame", fmt.Sprintf("% X", frame))
	if err := d.transport.Send(frame); err != nil {
		return &TransportError{Kind: ErrSend, Device: d.profile.Name, Err: err}
	}
	return nil
}

// Add queues visual for the next Push.
func (d *Driver[P, V]) Add(visual V) error {
	addr := visual.Address()
	if !d.profile.Valid(addr) {
		return &PositionError{Device: d.profile.Name, Description: fmt.Sprintf("%d", addr)}
	}
	if d.profile.Validate != nil {
		if err := d.profile.Validate(visual); err != nil {
			return err
		}
	}
	d.visuals.Queue(visual)
	return nil
}

// Push transmits the queued visuals that differ from what the device already
// shows, as one bulk-update frame, and ends the cycle. On failure the
// effective state is left untouched and the queue is kept.
func (d *Driver[P, V]) Push() error {
	if d.closed {
		return ErrClosed
	}
	batch := d.visuals.Diff()
	if len(batch) == 0 && !d.profile.PushEmpty {
		d.visuals.Pop()
		return nil
	}
	if err := d.Send(Colors[V](batch)); err != nil {
		return err
	}
	d.visuals.Commit(batch)
	return nil
}

// Pop discards the queued visuals.
func (d *Driver[P, V]) Pop() {
	d.visuals.Pop()
}

// Clear replaces the queue with Off for every address of the device.
func (d *Driver[P, V]) Clear() {
	d.visuals.Pop()
	for _, addr := range d.profile.Addresses {
		d.visuals.Queue(d.profile.Off(addr))
	}
}

// Pending returns the number of queued visuals.
func (d *Driver[P, V]) Pending() int {
	return d.visuals.Pending()
}

// Effective returns the visual last transmitted at pos.
func (d *Driver[P, V]) Effective(pos P) (V, bool) {
	return d.visuals.Effective(pos.Address())
}
