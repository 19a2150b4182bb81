package slip

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestEncodeEscapeRoundTrip(t *testing.T) {
	payload := []byte{0xC0, 0xDB, 0x00}
	want := []byte{End, Esc, EscEnd, Esc, EscEsc, 0x00, End}

	got := Encode(payload)
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode(%x) = %x, want %x", payload, got, want)
	}

	fr := NewReader(bytes.NewReader(got))
	frame, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(frame, payload) {
		t.Fatalf("decoded %x, want %x", frame, payload)
	}
}

func TestEncodeDecodeRoundTripArbitrary(t *testing.T) {
	payloads := [][]byte{
		{0x00, 0x22, 0x30, 0x00},
		{},
		{0xC0},
		{0xDB},
		bytes.Repeat([]byte{0xAA}, 100),
	}
	for _, p := range payloads {
		fr := NewReader(bytes.NewReader(Encode(p)))
		got, err := fr.ReadFrame()
		if len(p) == 0 {
			// An all-empty payload still frames to C0 C0, which the
			// reader treats as an empty frame and discards.
			if !errors.Is(err, io.EOF) {
				t.Fatalf("empty payload: err = %v, want io.EOF", err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ReadFrame(%x): %v", p, err)
		}
		if !bytes.Equal(got, p) {
			t.Fatalf("round trip %x got %x", p, got)
		}
	}
}

func TestReaderDiscardsLeadingNoise(t *testing.T) {
	stream := append([]byte{0x01, 0x02, 0x03}, Encode([]byte{0xAB, 0xCD})...)
	fr := NewReader(bytes.NewReader(stream))
	frame, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(frame, []byte{0xAB, 0xCD}) {
		t.Fatalf("got %x, want ab cd", frame)
	}
}

func TestReaderDiscardsEmptyFrames(t *testing.T) {
	// Two consecutive End bytes, then a real frame.
	stream := []byte{End, End}
	stream = append(stream, Encode([]byte{0x01})...)
	fr := NewReader(bytes.NewReader(stream))
	frame, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(frame, []byte{0x01}) {
		t.Fatalf("got %x, want 01", frame)
	}
}

func TestReaderCorruptEscapeResyncs(t *testing.T) {
	// Esc followed by a byte that is neither EscEnd nor EscEsc corrupts the
	// in-progress frame; the reader resyncs at the next End, here the one
	// that opens the following frame.
	stream := []byte{End, 0x01, Esc, 0x99, 0x02}
	stream = append(stream, Encode([]byte{0x77})...)

	fr := NewReader(bytes.NewReader(stream))
	frame, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(frame, []byte{0x77}) {
		t.Fatalf("got %x, want 77", frame)
	}
}

func TestReaderOverflow(t *testing.T) {
	big := bytes.Repeat([]byte{0x41}, MaxFrame+10)
	stream := append([]byte{End}, big...)
	stream = append(stream, Encode([]byte{0x01})...)

	fr := NewReader(bytes.NewReader(stream))
	_, err := fr.ReadFrame()
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("err = %v, want ErrOverflow", err)
	}

	frame, err := fr.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame after overflow: %v", err)
	}
	if !bytes.Equal(frame, []byte{0x01}) {
		t.Fatalf("got %x, want 01", frame)
	}
}
