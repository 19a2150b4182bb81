package protocol

import (
	"errors"
	"net"
)

func init() {
	Register(GwErrorNtf, decodeErrorNtf)
	Register(GwRebootCfm, decodeRebootCfm)
	Register(GwGetStateCfm, decodeGetStateCfm)
	Register(GwLeaveLearnStateCfm, decodeLeaveLearnStateCfm)
	Register(GwGetVersionCfm, decodeGetVersionCfm)
	Register(GwGetProtocolVersionCfm, decodeGetProtocolVersionCfm)
	Register(GwGetNetworkSetupCfm, decodeGetNetworkSetupCfm)
	Register(GwSetUTCCfm, decodeSetUTCCfm)
	Register(GwRtcSetTimeZoneCfm, decodeRtcSetTimeZoneCfm)
	Register(GwGetLocalTimeCfm, decodeGetLocalTimeCfm)
}

// ErrorNtf reports what triggered an error. It is always an ambient
// notification — it is never treated as failing an in-flight request; it is
// only ever delivered to broker subscribers (see gateway.Client).
type ErrorNtf struct {
	ErrorNumber byte
}

func (ErrorNtf) CommandID() CommandID { return GwErrorNtf }

// Well-known ErrorNtf.ErrorNumber values; others are undocumented.
const (
	ErrorGeneric          = 0
	ErrorUnknownCommand   = 1
	ErrorFrameStructure   = 2
	ErrorBusy             = 7
	ErrorBadIndex         = 8
	ErrorNotAuthenticated = 12
)

func decodeErrorNtf(args []byte) (Message, error) {
	if len(args) < 1 {
		return nil, errors.New("protocol: ErrorNtf: short frame")
	}
	return ErrorNtf{ErrorNumber: args[0]}, nil
}

// RebootReq asks the gateway to reboot.
type RebootReq struct{}

func (RebootReq) CommandID() CommandID      { return GwRebootReq }
func (RebootReq) ConfirmationID() CommandID { return GwRebootCfm }
func (RebootReq) Arguments() []byte         { return nil }

type RebootCfm struct{}

func (RebootCfm) CommandID() CommandID         { return GwRebootCfm }
func decodeRebootCfm(_ []byte) (Message, error) { return RebootCfm{}, nil }

// GetStateReq requests the gateway's operating state; also used as the
// keep-alive ping.
type GetStateReq struct{}

func (GetStateReq) CommandID() CommandID      { return GwGetStateReq }
func (GetStateReq) ConfirmationID() CommandID { return GwGetStateCfm }
func (GetStateReq) Arguments() []byte         { return nil }

type GetStateCfm struct {
	GatewayState byte
	SubState     byte
	StateData    [4]byte
}

func (GetStateCfm) CommandID() CommandID { return GwGetStateCfm }

func decodeGetStateCfm(args []byte) (Message, error) {
	if len(args) < 6 {
		return nil, errors.New("protocol: GetStateCfm: short frame")
	}
	var cfm GetStateCfm
	cfm.GatewayState = args[0]
	cfm.SubState = args[1]
	copy(cfm.StateData[:], args[2:6])
	return cfm, nil
}

// LeaveLearnStateReq takes the gateway out of node-learning mode.
type LeaveLearnStateReq struct{}

func (LeaveLearnStateReq) CommandID() CommandID      { return GwLeaveLearnStateReq }
func (LeaveLearnStateReq) ConfirmationID() CommandID { return GwLeaveLearnStateCfm }
func (LeaveLearnStateReq) Arguments() []byte         { return nil }

// LeaveLearnStateCfm declares the SuccessOne convention.
type LeaveLearnStateCfm struct {
	Status    byte
	IsSuccess bool
}

func (LeaveLearnStateCfm) CommandID() CommandID { return GwLeaveLearnStateCfm }

func decodeLeaveLearnStateCfm(args []byte) (Message, error) {
	if len(args) < 1 {
		return nil, errors.New("protocol: LeaveLearnStateCfm: short frame")
	}
	status := args[0]
	return LeaveLearnStateCfm{Status: status, IsSuccess: IsSuccess(SuccessOne, status)}, nil
}

// GetVersionReq requests the gateway's firmware version.
type GetVersionReq struct{}

func (GetVersionReq) CommandID() CommandID      { return GwGetVersionReq }
func (GetVersionReq) ConfirmationID() CommandID { return GwGetVersionCfm }
func (GetVersionReq) Arguments() []byte         { return nil }

type GetVersionCfm struct {
	SoftwareVersion [6]byte
	HardwareVersion byte
	ProductGroup    byte // always 14 per Velux documentation
	ProductType     byte // always 3 per Velux documentation
}

func (GetVersionCfm) CommandID() CommandID { return GwGetVersionCfm }

func decodeGetVersionCfm(args []byte) (Message, error) {
	if len(args) < 9 {
		return nil, errors.New("protocol: GetVersionCfm: short frame")
	}
	var cfm GetVersionCfm
	copy(cfm.SoftwareVersion[:], args[0:6])
	cfm.HardwareVersion = args[6]
	cfm.ProductGroup = args[7]
	cfm.ProductType = args[8]
	return cfm, nil
}

// GetProtocolVersionReq requests the gateway's protocol version.
type GetProtocolVersionReq struct{}

func (GetProtocolVersionReq) CommandID() CommandID      { return GwGetProtocolVersionReq }
func (GetProtocolVersionReq) ConfirmationID() CommandID { return GwGetProtocolVersionCfm }
func (GetProtocolVersionReq) Arguments() []byte         { return nil }

type GetProtocolVersionCfm struct {
	MajorVersion uint16
	MinorVersion uint16
}

func (GetProtocolVersionCfm) CommandID() CommandID { return GwGetProtocolVersionCfm }

func decodeGetProtocolVersionCfm(args []byte) (Message, error) {
	if len(args) < 4 {
		return nil, errors.New("protocol: GetProtocolVersionCfm: short frame")
	}
	return GetProtocolVersionCfm{
		MajorVersion: getU16(args[0:2]),
		MinorVersion: getU16(args[2:4]),
	}, nil
}

// GetNetworkSetupReq requests the gateway's IPv4 network configuration.
type GetNetworkSetupReq struct{}

func (GetNetworkSetupReq) CommandID() CommandID      { return GwGetNetworkSetupReq }
func (GetNetworkSetupReq) ConfirmationID() CommandID { return GwGetNetworkSetupCfm }
func (GetNetworkSetupReq) Arguments() []byte         { return nil }

type GetNetworkSetupCfm struct {
	IPAddress  net.IP
	Mask       net.IP
	DefaultGW  net.IP
	DHCP       bool
}

func (GetNetworkSetupCfm) CommandID() CommandID { return GwGetNetworkSetupCfm }

func decodeGetNetworkSetupCfm(args []byte) (Message, error) {
	if len(args) < 13 {
		return nil, errors.New("protocol: GetNetworkSetupCfm: short frame")
	}
	return GetNetworkSetupCfm{
		IPAddress: net.IPv4(args[0], args[1], args[2], args[3]),
		Mask:      net.IPv4(args[4], args[5], args[6], args[7]),
		DefaultGW: net.IPv4(args[8], args[9], args[10], args[11]),
		DHCP:      args[12] != 0,
	}, nil
}

// SetUTCReq sets the gateway's clock to a UTC Unix timestamp.
type SetUTCReq struct {
	UnixTime uint32
}

func (SetUTCReq) CommandID() CommandID      { return GwSetUTCReq }
func (SetUTCReq) ConfirmationID() CommandID { return GwSetUTCCfm }
func (r SetUTCReq) Arguments() []byte {
	args := make([]byte, 4)
	putU32(args, r.UnixTime)
	return args
}

type SetUTCCfm struct{}

func (SetUTCCfm) CommandID() CommandID           { return GwSetUTCCfm }
func decodeSetUTCCfm(_ []byte) (Message, error) { return SetUTCCfm{}, nil }

// RtcSetTimeZoneReq sets the gateway's timezone, as a POSIX TZ string.
type RtcSetTimeZoneReq struct {
	TimeZone string
}

func (RtcSetTimeZoneReq) CommandID() CommandID      { return GwRtcSetTimeZoneReq }
func (RtcSetTimeZoneReq) ConfirmationID() CommandID { return GwRtcSetTimeZoneCfm }
func (r RtcSetTimeZoneReq) Arguments() []byte {
	args := make([]byte, 64)
	putString(args, r.TimeZone, 63)
	return args
}

// RtcSetTimeZoneCfm declares the SuccessOne convention.
type RtcSetTimeZoneCfm struct {
	Status    byte
	IsSuccess bool
}

func (RtcSetTimeZoneCfm) CommandID() CommandID { return GwRtcSetTimeZoneCfm }

func decodeRtcSetTimeZoneCfm(args []byte) (Message, error) {
	if len(args) < 1 {
		return nil, errors.New("protocol: RtcSetTimeZoneCfm: short frame")
	}
	status := args[0]
	return RtcSetTimeZoneCfm{Status: status, IsSuccess: IsSuccess(SuccessOne, status)}, nil
}

// GetLocalTimeReq requests the gateway's local time.
type GetLocalTimeReq struct{}

func (GetLocalTimeReq) CommandID() CommandID      { return GwGetLocalTimeReq }
func (GetLocalTimeReq) ConfirmationID() CommandID { return GwGetLocalTimeCfm }
func (GetLocalTimeReq) Arguments() []byte         { return nil }

// GetLocalTimeCfm layout (12 bytes): UTCTime(4)@0, reserved(4)@4,
// YearOffset(1)@8, reserved(2)@9, Flags(1)@11 (bit 0: daylight saving).
type GetLocalTimeCfm struct {
	UTCTime        uint32
	YearOffset     int8
	Flags          byte
	DaylightSaving bool
}

func (GetLocalTimeCfm) CommandID() CommandID { return GwGetLocalTimeCfm }

func decodeGetLocalTimeCfm(args []byte) (Message, error) {
	if len(args) < 12 {
		return nil, errors.New("protocol: GetLocalTimeCfm: short frame")
	}
	return GetLocalTimeCfm{
		UTCTime:        getU32(args[0:4]),
		YearOffset:     int8(args[8]),
		Flags:          args[11],
		DaylightSaving: args[11]&0x01 != 0,
	}, nil
}
