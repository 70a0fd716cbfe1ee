package midi

// OutputMessage is an outgoing message for a device whose visuals are V:
// either Raw bytes or a Colors bulk update.
type OutputMessage[V Visual] interface {
	frame(encode func([]V) ([]byte, error)) ([]byte, error)
}

// Raw is a frame sent to the device unchanged.
type Raw[V Visual] []byte

func (r Raw[V]) frame(func([]V) ([]byte, error)) ([]byte, error) {
	return []byte(r), nil
}

// Colors is a batch of visuals encoded as one bulk-update frame.
type Colors[V Visual] []V

func (c Colors[V]) frame(encode func([]V) ([]byte, error)) ([]byte, error) {
	return encode([]V(c))
}
