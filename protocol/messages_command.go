package protocol

import "errors"

func init() {
	Register(GwCommandSendCfm, decodeCommandSendCfm)
	Register(GwCommandRunStatusNtf, decodeCommandRunStatusNtf)
	Register(GwSessionFinishedNtf, decodeSessionFinishedNtf)
}

// Originator identifies who or what triggered a CommandSendReq.
type Originator byte

const (
	OriginatorUser              Originator = 1
	OriginatorRain              Originator = 2
	OriginatorTimer             Originator = 3
	OriginatorUPS               Originator = 5
	OriginatorSAAC              Originator = 8
	OriginatorWind              Originator = 9
	OriginatorLoadShedding      Originator = 11
	OriginatorLocalLight        Originator = 12
	OriginatorEnvironmentSensor Originator = 13
	OriginatorEmergency         Originator = 255
)

// Priority is the command's priority class; lower values preempt higher
// ones.
type Priority byte

const (
	PriorityProtectionHuman      Priority = 0
	PriorityProtectionEnvironment Priority = 1
	PriorityUserLevel1           Priority = 2
	PriorityUserLevel2           Priority = 3
	PriorityComfortLevel1        Priority = 4
	PriorityComfortLevel2        Priority = 5
	PriorityComfortLevel3        Priority = 6
	PriorityComfortLevel4        Priority = 7
)

// CommandSendReq instructs one or more nodes to move. SessionID is assigned
// by the caller from a session.Allocator before the request is built — the
// message type itself holds no allocator reference, per the single-owner
// session registry design.
//
// The source's own CommandSendReq constructor is an invalid partial
// definition (a positional parameter following defaulted ones, and a body
// of unfilled placeholders); the wire layout below is instead grounded on a
// complete, working reference implementation of this exact command.
type CommandSendReq struct {
	SessionID            uint16
	CommandOriginator    Originator
	PriorityLevel        Priority
	MainParameter        uint16
	FunctionalParameters [16]FunctionalParameter // nil entries encode as Ignore
	NodeIDs              []byte                  // at most 20
	PriorityLevelLock    bool
}

func (CommandSendReq) CommandID() CommandID      { return GwCommandSendReq }
func (CommandSendReq) ConfirmationID() CommandID { return GwCommandSendCfm }

func (r CommandSendReq) Arguments() []byte {
	args := make([]byte, 0, 58)

	sessionID := make([]byte, 2)
	putU16(sessionID, r.SessionID)
	args = append(args, sessionID...)

	args = append(args, byte(r.CommandOriginator), byte(r.PriorityLevel))

	// Parameter-active flags: bit 0 marks the main parameter as set.
	args = append(args, 0x01)
	// FPI1/FPI2 active-flag bitmasks — unused, no functional parameters are
	// independently toggled via these fields in this implementation.
	args = append(args, 0x00, 0x00, 0x00, 0x00)

	mainParam := make([]byte, 2)
	putU16(mainParam, r.MainParameter)
	args = append(args, mainParam...)

	for _, fp := range r.FunctionalParameters {
		code := Ignore{}.Encode()
		if fp != nil {
			code = fp.Encode()
		}
		b := make([]byte, 2)
		putU16(b, code)
		args = append(args, b...)
	}

	args = append(args, byte(len(r.NodeIDs)))
	nodeIDs := make([]byte, 20)
	copy(nodeIDs, r.NodeIDs)
	args = append(args, nodeIDs...)

	lock := byte(0)
	if r.PriorityLevelLock {
		lock = 1
	}
	args = append(args, lock, 0x00) // priority level lock (2 bytes)
	args = append(args, make([]byte, 8)...) // lock time per priority class
	args = append(args, 0x00)               // originator for lock

	return args
}

// CommandSendCfm declares the SuccessOne convention: status 1 means the
// session was accepted and is running.
type CommandSendCfm struct {
	SessionID uint16
	Status    byte
	IsSuccess bool
}

func (CommandSendCfm) CommandID() CommandID { return GwCommandSendCfm }

func decodeCommandSendCfm(args []byte) (Message, error) {
	if len(args) < 3 {
		return nil, errors.New("protocol: CommandSendCfm: short frame")
	}
	status := args[2]
	return CommandSendCfm{
		SessionID: getU16(args[0:2]),
		Status:    status,
		IsSuccess: IsSuccess(SuccessOne, status),
	}, nil
}

// CommandRunStatusNtf reports progress of a running session, one per node
// affected, as the actuator moves toward its target.
type CommandRunStatusNtf struct {
	SessionID       uint16
	StatusID        byte
	Index           byte
	NodeParameter   byte
	ParameterValue  uint16
	RunStatus       byte
	StatusReply     byte
	InformationCode uint32
}

func (CommandRunStatusNtf) CommandID() CommandID { return GwCommandRunStatusNtf }

func decodeCommandRunStatusNtf(args []byte) (Message, error) {
	if len(args) < 13 {
		return nil, errors.New("protocol: CommandRunStatusNtf: short frame")
	}
	return CommandRunStatusNtf{
		SessionID:       getU16(args[0:2]),
		StatusID:        args[2],
		Index:           args[3],
		NodeParameter:   args[4],
		ParameterValue:  getU16(args[5:7]),
		RunStatus:       args[7],
		StatusReply:     args[8],
		InformationCode: getU32(args[9:13]),
	}, nil
}

// SessionFinishedNtf is the terminator of a CommandSendReq session.
// gateway.Client always releases the session id on receipt of this message,
// whether or not any waiter claimed it.
type SessionFinishedNtf struct {
	SessionID uint16
}

func (SessionFinishedNtf) CommandID() CommandID { return GwSessionFinishedNtf }

func decodeSessionFinishedNtf(args []byte) (Message, error) {
	if len(args) < 2 {
		return nil, errors.New("protocol: SessionFinishedNtf: short frame")
	}
	return SessionFinishedNtf{SessionID: getU16(args[0:2])}, nil
}
