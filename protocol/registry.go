package protocol

import "fmt"

var registry = make(map[CommandID]Decoder)

// Register associates a command id with the decoder for its message type.
// Called from each message type's package-level init(). Duplicate
// registration is a programming error and aborts the program immediately,
// matching the source's own intolerance of two classes claiming the same
// command id.
func Register(id CommandID, dec Decoder) {
	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("protocol: command id %s already registered", id))
	}
	registry[id] = dec
}

// Decode looks up the decoder registered for frame.Command and runs it. If
// no decoder is registered, it returns an UnknownFrame value rather than an
// error — an unrecognized command is expected protocol evolution, not a
// failure.
func Decode(frame Frame) (Message, error) {
	dec, ok := registry[frame.Command]
	if !ok {
		return UnknownFrame{Command: frame.Command, Args: frame.Args}, nil
	}
	return dec(frame.Args)
}
