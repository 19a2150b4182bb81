package protocol

import "errors"

func init() {
	Register(GwGetAllNodesInformationCfm, decodeGetAllNodesInformationCfm)
	Register(GwGetAllNodesInformationNtf, decodeGetAllNodesInformationNtf)
	Register(GwGetAllNodesInformationFinishedNtf, decodeGetAllNodesInformationFinishedNtf)
	Register(GwNodeStatePositionChangedNtf, decodeNodeStatePositionChangedNtf)
	Register(GwHouseStatusMonitorEnableCfm, decodeHouseStatusMonitorEnableCfm)
	Register(GwHouseStatusMonitorDisableCfm, decodeHouseStatusMonitorDisableCfm)
}

// GetAllNodesInformationReq starts a streamed enumeration of every node
// known to the gateway: a Cfm acknowledging the request, one Ntf per node,
// then a FinishedNtf terminator (see collect.Collect).
type GetAllNodesInformationReq struct{}

func (GetAllNodesInformationReq) CommandID() CommandID      { return GwGetAllNodesInformationReq }
func (GetAllNodesInformationReq) ConfirmationID() CommandID { return GwGetAllNodesInformationCfm }
func (GetAllNodesInformationReq) Arguments() []byte         { return nil }

type GetAllNodesInformationCfm struct {
	Status     byte
	IsSuccess  bool
	TotalNodes byte
}

func (GetAllNodesInformationCfm) CommandID() CommandID { return GwGetAllNodesInformationCfm }

func decodeGetAllNodesInformationCfm(args []byte) (Message, error) {
	if len(args) < 2 {
		return nil, errors.New("protocol: GetAllNodesInformationCfm: short frame")
	}
	status := args[0]
	return GetAllNodesInformationCfm{
		Status:     status,
		IsSuccess:  IsSuccess(SuccessZero, status),
		TotalNodes: args[1],
	}, nil
}

// GetAllNodesInformationNtf carries one node's full information record.
// Layout (124 bytes): NodeID(1) Order(2) Placement(1) Name(64) Velocity(1)
// NodeTypeSubType(2) ProductGroup(1) ProductType(1) NodeVariation(1)
// PowerMode(1) BuildNumber(1) Serial(8) State(1) CurrentPosition(2)
// Target(2) FP1..FP4(8) RemainingTime(2) TimeStamp(4) NbrOfAlias(1)
// AliasArray(20).
type GetAllNodesInformationNtf struct {
	NodeID          byte
	Order           uint16
	Placement       byte
	Name            string
	Velocity        byte
	NodeTypeSubType uint16
	ProductGroup    byte
	ProductType     byte
	NodeVariation   byte
	PowerMode       byte
	BuildNumber     byte
	Serial          [8]byte
	State           byte
	CurrentPosition uint16
	TargetPosition  uint16
	FunctionalPos   [4]uint16
	RemainingTime   uint16
	TimeStamp       uint32
}

func (GetAllNodesInformationNtf) CommandID() CommandID { return GwGetAllNodesInformationNtf }

func decodeGetAllNodesInformationNtf(args []byte) (Message, error) {
	if len(args) < 103 {
		return nil, errors.New("protocol: GetAllNodesInformationNtf: short frame")
	}
	n := GetAllNodesInformationNtf{
		NodeID:          args[0],
		Order:           getU16(args[1:3]),
		Placement:       args[3],
		Name:            getString(args[4:68]),
		Velocity:        args[68],
		NodeTypeSubType: getU16(args[69:71]),
		ProductGroup:    args[71],
		ProductType:     args[72],
		NodeVariation:   args[73],
		PowerMode:       args[74],
		BuildNumber:     args[75],
		State:           args[84],
		CurrentPosition: getU16(args[85:87]),
		TargetPosition:  getU16(args[87:89]),
		RemainingTime:   getU16(args[97:99]),
		TimeStamp:       getU32(args[99:103]),
	}
	copy(n.Serial[:], args[76:84])
	for i := 0; i < 4; i++ {
		n.FunctionalPos[i] = getU16(args[89+2*i : 91+2*i])
	}
	return n, nil
}

// GetAllNodesInformationFinishedNtf terminates the node-enumeration stream.
type GetAllNodesInformationFinishedNtf struct{}

func (GetAllNodesInformationFinishedNtf) CommandID() CommandID {
	return GwGetAllNodesInformationFinishedNtf
}

func decodeGetAllNodesInformationFinishedNtf(_ []byte) (Message, error) {
	return GetAllNodesInformationFinishedNtf{}, nil
}

// NodeStatePositionChangedNtf is an ambient, unsolicited notification the
// gateway sends whenever an actuator's position changes, whether or not any
// client is mid-command. It has no waiter of its own; gateway.Client always
// publishes it to the broker.
type NodeStatePositionChangedNtf struct {
	NodeID          byte
	State           byte
	CurrentPosition uint16
	TargetPosition  uint16
}

func (NodeStatePositionChangedNtf) CommandID() CommandID { return GwNodeStatePositionChangedNtf }

func decodeNodeStatePositionChangedNtf(args []byte) (Message, error) {
	if len(args) < 6 {
		return nil, errors.New("protocol: NodeStatePositionChangedNtf: short frame")
	}
	return NodeStatePositionChangedNtf{
		NodeID:          args[0],
		State:           args[1],
		CurrentPosition: getU16(args[2:4]),
		TargetPosition:  getU16(args[4:6]),
	}, nil
}

// HouseStatusMonitorEnableReq asks the gateway to start emitting
// NodeStatePositionChangedNtf whenever any actuator moves, whether or not
// this client requested the move.
type HouseStatusMonitorEnableReq struct{}

func (HouseStatusMonitorEnableReq) CommandID() CommandID { return GwHouseStatusMonitorEnableReq }
func (HouseStatusMonitorEnableReq) ConfirmationID() CommandID {
	return GwHouseStatusMonitorEnableCfm
}
func (HouseStatusMonitorEnableReq) Arguments() []byte { return nil }

type HouseStatusMonitorEnableCfm struct{}

func (HouseStatusMonitorEnableCfm) CommandID() CommandID { return GwHouseStatusMonitorEnableCfm }

func decodeHouseStatusMonitorEnableCfm(_ []byte) (Message, error) {
	return HouseStatusMonitorEnableCfm{}, nil
}

// HouseStatusMonitorDisableReq stops ambient position-change notifications.
type HouseStatusMonitorDisableReq struct{}

func (HouseStatusMonitorDisableReq) CommandID() CommandID { return GwHouseStatusMonitorDisableReq }
func (HouseStatusMonitorDisableReq) ConfirmationID() CommandID {
	return GwHouseStatusMonitorDisableCfm
}
func (HouseStatusMonitorDisableReq) Arguments() []byte { return nil }

type HouseStatusMonitorDisableCfm struct{}

func (HouseStatusMonitorDisableCfm) CommandID() CommandID { return GwHouseStatusMonitorDisableCfm }

func decodeHouseStatusMonitorDisableCfm(_ []byte) (Message, error) {
	return HouseStatusMonitorDisableCfm{}, nil
}
