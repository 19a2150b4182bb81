package protocol

// Message is implemented by every concrete request, confirmation, and
// notification type.
type Message interface {
	CommandID() CommandID
}

// Request is a message that can be serialized and sent to the gateway. Every
// request carries a compile-time association with the command id of its
// confirmation, so the client never needs to derive one name from another.
type Request interface {
	Message
	Arguments() []byte
	ConfirmationID() CommandID
}

// Decoder parses the argument bytes of a frame already known (by command id)
// to belong to a particular message type.
type Decoder func(args []byte) (Message, error)

// UnknownFrame is produced for any command id with no registered decoder.
// Per the codec's design, an unrecognized command is a value, not an error.
type UnknownFrame struct {
	Command CommandID
	Args    []byte
}

func (u UnknownFrame) CommandID() CommandID { return u.Command }
