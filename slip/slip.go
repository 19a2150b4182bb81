// Package slip implements RFC 1055 SLIP byte-stream framing, as used by the
// KLF-200 gateway to delimit binary protocol payloads over its TCP/TLS
// connection.
package slip

import (
	"bufio"
	"errors"
	"io"
)

const (
	End    byte = 0xC0
	Esc    byte = 0xDB
	EscEnd byte = 0xDC
	EscEsc byte = 0xDD
)

// MaxFrame bounds the accumulating buffer of an in-progress frame. A partial
// frame longer than this without a terminating End is a protocol error.
const MaxFrame = 512

// ErrOverflow is returned when a frame exceeds MaxFrame bytes without being
// terminated by an End byte. The reader drops its buffer and resynchronizes
// at the next End.
var ErrOverflow = errors.New("slip: frame exceeds maximum size")

type state int

const (
	stateInit state = iota
	stateFrame
	stateEsc
)

// Reader pulls framed payloads out of a byte stream. It tolerates leading
// noise (bytes before the first End) and silently discards empty frames,
// since back-to-back End bytes are a legal abort-and-restart marker.
type Reader struct {
	r   *bufio.Reader
	st  state
	buf []byte
}

// NewReader wraps r with a SLIP frame reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r), st: stateInit}
}

// ReadFrame returns the next non-empty decoded payload. It blocks until a
// full frame is available, the underlying reader is exhausted (io.EOF), or a
// read error occurs. ErrOverflow is returned (and internal state reset) when
// a frame grows past MaxFrame before being terminated; the caller may call
// ReadFrame again to keep consuming the stream.
func (fr *Reader) ReadFrame() ([]byte, error) {
	for {
		b, err := fr.r.ReadByte()
		if err != nil {
			return nil, err
		}

		switch fr.st {
		case stateInit:
			if b == End {
				fr.st = stateFrame
			}
			// else: discard noise byte, stay in INIT.

		case stateFrame:
			switch b {
			case End:
				frame := fr.buf
				fr.buf = nil
				fr.st = stateInit
				if len(frame) == 0 {
					continue // empty frame: discard, keep reading
				}
				return frame, nil
			case Esc:
				fr.st = stateEsc
			default:
				if len(fr.buf) >= MaxFrame {
					fr.buf = nil
					fr.st = stateInit
					return nil, ErrOverflow
				}
				fr.buf = append(fr.buf, b)
			}

		case stateEsc:
			switch b {
			case EscEnd:
				fr.buf = append(fr.buf, End)
				fr.st = stateFrame
			case EscEsc:
				fr.buf = append(fr.buf, Esc)
				fr.st = stateFrame
			default:
				// Corrupt escape sequence: drop buffer, resynchronize.
				fr.buf = nil
				fr.st = stateInit
			}
		}
	}
}

// Encode frames payload for transmission: each End byte becomes Esc EscEnd
// and each Esc byte becomes Esc EscEsc, with the result delimited by a
// leading and trailing End byte. Substitution is done in a single left-to-
// right pass over the source bytes, so an escape sequence just emitted is
// never rewritten by a later rule.
func Encode(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+2)
	out = append(out, End)
	for _, b := range payload {
		switch b {
		case Esc:
			out = append(out, Esc, EscEsc)
		case End:
			out = append(out, Esc, EscEnd)
		default:
			out = append(out, b)
		}
	}
	out = append(out, End)
	return out
}
