package protocol

import "errors"

func init() {
	Register(GwCSControllerCopyCfm, decodeCSControllerCopyCfm)
	Register(GwCSControllerCopyNtf, decodeCSControllerCopyNtf)
	Register(GwCSControllerCopyCancelNtf, decodeCSControllerCopyCancelNtf)
}

// ControllerCopyMode selects which copy operation CsControllerCopyReq
// performs.
type ControllerCopyMode byte

const (
	CopyModeTCM ControllerCopyMode = 0 // copy this controller's configuration to another
	CopyModeRCM ControllerCopyMode = 1 // receive configuration from another controller
)

// CsControllerCopyReq starts a controller-to-controller configuration copy,
// chosen by the REST layer's copy_mode JSON field ("tcm" or "rcm").
type CsControllerCopyReq struct {
	CopyMode ControllerCopyMode
}

func (CsControllerCopyReq) CommandID() CommandID      { return GwCSControllerCopyReq }
func (CsControllerCopyReq) ConfirmationID() CommandID { return GwCSControllerCopyCfm }
func (r CsControllerCopyReq) Arguments() []byte       { return []byte{byte(r.CopyMode)} }

type CsControllerCopyCfm struct{}

func (CsControllerCopyCfm) CommandID() CommandID { return GwCSControllerCopyCfm }

func decodeCSControllerCopyCfm(_ []byte) (Message, error) {
	return CsControllerCopyCfm{}, nil
}

// Well-known CsControllerCopyNtf.Status values.
const (
	ControllerCopyOK                     = 0
	ControllerCopyFailedNoOtherController = 2
	ControllerCopyFailedDTSNotReady      = 4
	ControllerCopyFailedDTSError         = 5
	ControllerCopyFailedCSNotReady       = 9
)

// CsControllerCopyNtf reports the outcome of an in-progress controller
// copy. Unlike most confirmations, success is declared by the copy *mode*
// echoing ControllerCopyOK rather than a dedicated status byte.
type CsControllerCopyNtf struct {
	ControllerCopyMode   byte
	ControllerCopyStatus byte
}

func (CsControllerCopyNtf) CommandID() CommandID { return GwCSControllerCopyNtf }

func (n CsControllerCopyNtf) IsSuccess() bool { return n.ControllerCopyMode == ControllerCopyOK }

func decodeCSControllerCopyNtf(args []byte) (Message, error) {
	if len(args) < 2 {
		return nil, errors.New("protocol: CsControllerCopyNtf: short frame")
	}
	return CsControllerCopyNtf{ControllerCopyMode: args[0], ControllerCopyStatus: args[1]}, nil
}

// CsControllerCopyCancelNtf reports that an in-progress controller copy was
// cancelled.
type CsControllerCopyCancelNtf struct{}

func (CsControllerCopyCancelNtf) CommandID() CommandID { return GwCSControllerCopyCancelNtf }

func decodeCSControllerCopyCancelNtf(_ []byte) (Message, error) {
	return CsControllerCopyCancelNtf{}, nil
}
