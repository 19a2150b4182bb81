package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func xorAll(b []byte) byte {
	cs := byte(0)
	for _, v := range b {
		cs ^= v
	}
	return cs
}

func TestEncodeRequestPasswordEnter(t *testing.T) {
	req := PasswordEnterReq{Password: "secret"}
	payload := EncodeRequest(req)

	if payload[0] != ProtocolID {
		t.Fatalf("protocol id = %#x, want 0", payload[0])
	}
	if int(payload[1]) != len(payload)-2 {
		t.Fatalf("length byte = %d, want %d", payload[1], len(payload)-2)
	}
	if got := xorAll(payload[:len(payload)-1]); got != payload[len(payload)-1] {
		t.Fatalf("checksum = %#x, want %#x", payload[len(payload)-1], got)
	}

	frame, err := DecodeFrame(payload)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if frame.Command != GwPasswordEnterReq {
		t.Fatalf("command = %#x, want GW_PASSWORD_ENTER_REQ", frame.Command)
	}
	if !bytes.HasPrefix(frame.Args, []byte("secret")) {
		t.Fatalf("args %x do not start with 'secret'", frame.Args)
	}
}

func TestDecodeFrameWrongProtocolID(t *testing.T) {
	payload := EncodeRequest(GetStateReq{})
	payload[0] = 0x01
	_, err := DecodeFrame(payload)
	if !errors.Is(err, ErrWrongProtocolID) {
		t.Fatalf("err = %v, want ErrWrongProtocolID", err)
	}
}

func TestDecodeFrameWrongLength(t *testing.T) {
	payload := EncodeRequest(GetStateReq{})
	payload[1] = 0xFF
	_, err := DecodeFrame(payload)
	if !errors.Is(err, ErrWrongLength) {
		t.Fatalf("err = %v, want ErrWrongLength", err)
	}
}

func TestDecodeFrameWrongChecksum(t *testing.T) {
	payload := EncodeRequest(PasswordEnterReq{Password: "secret"})
	payload[10] ^= 0x01 // flip a bit inside the password field
	_, err := DecodeFrame(payload)
	if !errors.Is(err, ErrWrongChecksum) {
		t.Fatalf("err = %v, want ErrWrongChecksum", err)
	}
}

func TestScenarioPingRoundTrip(t *testing.T) {
	payload := EncodeRequest(GetStateReq{})
	want := []byte{0x00, 0x03, 0x00, 0x0C}
	if !bytes.Equal(payload[:4], want) {
		t.Fatalf("payload header = %x, want %x", payload[:4], want)
	}

	// Gateway confirmation: command 0x000D, 6 argument bytes.
	confirmBody := []byte{0x00, 0x0D, 0x01, 0x02, 0xAA, 0xBB, 0xCC, 0xDD}
	confirmPayload := append([]byte{0x00, byte(len(confirmBody) + 1)}, confirmBody...)
	confirmPayload = append(confirmPayload, xorAll(confirmPayload))

	frame, err := DecodeFrame(confirmPayload)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	msg, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cfm, ok := msg.(GetStateCfm)
	if !ok {
		t.Fatalf("decoded %T, want GetStateCfm", msg)
	}
	if cfm.GatewayState != 0x01 || cfm.SubState != 0x02 {
		t.Fatalf("cfm = %+v", cfm)
	}
}

func TestUnknownCommandDecodesAsValue(t *testing.T) {
	frame := Frame{Command: CommandID(0xBEEF), Args: []byte{0x01, 0x02}}
	msg, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	uf, ok := msg.(UnknownFrame)
	if !ok {
		t.Fatalf("decoded %T, want UnknownFrame", msg)
	}
	if uf.Command != frame.Command {
		t.Fatalf("command = %#x, want %#x", uf.Command, frame.Command)
	}
}

func TestCommandSendReqFunctionalParameterDefaults(t *testing.T) {
	req := CommandSendReq{
		SessionID:         7,
		CommandOriginator: OriginatorUser,
		PriorityLevel:     PriorityUserLevel2,
		MainParameter:     Percent(0.5).Encode(),
		NodeIDs:           []byte{3},
	}
	args := req.Arguments()

	if got := getU16(args[0:2]); got != 7 {
		t.Fatalf("session id = %d, want 7", got)
	}
	if args[2] != byte(OriginatorUser) {
		t.Fatalf("originator = %d, want %d", args[2], OriginatorUser)
	}
	// First functional parameter slot should default to Ignore (0xD400)
	// since FunctionalParameters was left zero-valued. FP0 starts after
	// session(2)+originator(1)+priority(1)+paramActive(1)+FPI(4)+mainParam(2) = 11 bytes.
	fp0 := getU16(args[11:13])
	if fp0 != (Ignore{}).Encode() {
		t.Fatalf("fp0 = %#x, want ignore code", fp0)
	}
	// Index array count should be 1, with node id 3 at the front.
	idxOffset := 11 + 16*2
	if args[idxOffset] != 1 {
		t.Fatalf("index count = %d, want 1", args[idxOffset])
	}
	if args[idxOffset+1] != 3 {
		t.Fatalf("node id = %d, want 3", args[idxOffset+1])
	}
}

func TestFunctionalParameterEncodings(t *testing.T) {
	cases := []struct {
		fp   FunctionalParameter
		want uint16
	}{
		{Target{}, 0xD100},
		{Current{}, 0xD200},
		{Default{}, 0xD300},
		{Ignore{}, 0xD400},
	}
	for _, c := range cases {
		if got := c.fp.Encode(); got != c.want {
			t.Errorf("%T.Encode() = %#x, want %#x", c.fp, got, c.want)
		}
	}
}

func TestSessionFinishedNtfDecode(t *testing.T) {
	msg, err := decodeSessionFinishedNtf([]byte{0x00, 0x05})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ntf := msg.(SessionFinishedNtf)
	if ntf.SessionID != 5 {
		t.Fatalf("session id = %d, want 5", ntf.SessionID)
	}
}
