package midi

// Controller is the capability contract every control-surface driver exposes.
// E, O, V and P are the device's input event, output message, visual and
// position types, so one device's visuals cannot be handed to another
// device's driver.
//
// Connecting is done by a constructor in each device package.
type Controller[E any, O any, V Visual, P Position] interface {
	// Close clears the device and releases its ports
	Close() error

	// Read drains the input events received since the last call
	Read() []E
	// PositionState returns the cached physical state of a control
	PositionState(pos P) (PhysicalState, error)

	// Send transmits a raw or structured output message
	Send(msg O) error

	// Add queues a visual, replacing any visual queued for the same address
	Add(visual V) error
	// Push transmits the queued visuals not absorbed by the effective state
	Push() error
	// Pop discards the queued visuals without transmitting
	Pop()
	// Clear queues Off for every address of the device
	Clear()
}

// Profile describes one device model: its address space, wire codec and the
// behaviour the generic Driver needs to orchestrate it.
type Profile[P Position, V Visual] struct {
	// Name is used in errors and logs
	Name string
	// Port is the default port-name substring used at connect time
	Port string

	// Addresses lists every valid address, ascending
	Addresses []Address
	Valid     func(Address) bool
	// IsAnalog reports analog-capable addresses; nil means none are
	IsAnalog func(Address) bool
	// Position builds the position of a valid address
	Position func(Address) P

	// Off returns the "off" visual of a valid address
	Off func(Address) V
	// Validate checks the channels of a visual
	Validate func(V) error
	// Encode builds a bulk-update frame
	Encode func([]V) ([]byte, error)
	Absorb AbsorbFunc[V]

	// Init frames are sent once, right after the ports are opened
	Init [][]byte
	// PushEmpty transmits a bulk-update frame even when nothing changed
	PushEmpty bool
	// Coalesce collapses analog events per address within one Read
	Coalesce bool
}

func (p *Profile[P, V]) analog(addr Address) bool {
	return p.IsAnalog != nil && p.IsAnalog(addr)
}
