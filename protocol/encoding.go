package protocol

import "encoding/binary"

// putString writes s into a fixed-size field of n bytes, truncating or
// zero-padding as needed. Used for null-padded fixed-width string arguments
// such as the gateway password and node names.
func putString(dst []byte, s string, n int) {
	b := []byte(s)
	if len(b) > n {
		b = b[:n]
	}
	copy(dst[:n], b)
}

// getString reads a fixed-size, NUL-terminated (or NUL-padded) string field.
func getString(src []byte) string {
	for i, b := range src {
		if b == 0 {
			return string(src[:i])
		}
	}
	return string(src)
}

func putU16(dst []byte, v uint16) { binary.BigEndian.PutUint16(dst, v) }
func putU32(dst []byte, v uint32) { binary.BigEndian.PutUint32(dst, v) }
func getU16(src []byte) uint16    { return binary.BigEndian.Uint16(src) }
func getU32(src []byte) uint32    { return binary.BigEndian.Uint32(src) }
