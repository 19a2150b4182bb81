package protocol

import "errors"

func init() {
	Register(GwPasswordEnterCfm, decodePasswordEnterCfm)
	Register(GwPasswordChangeCfm, decodePasswordChangeCfm)
	Register(GwPasswordChangeNtf, decodePasswordChangeNtf)
}

// PasswordEnterReq authenticates the connection. The password occupies a
// fixed 32-byte field (31 characters plus a mandatory trailing NUL).
type PasswordEnterReq struct {
	Password string
}

func (PasswordEnterReq) CommandID() CommandID       { return GwPasswordEnterReq }
func (PasswordEnterReq) ConfirmationID() CommandID  { return GwPasswordEnterCfm }
func (r PasswordEnterReq) Arguments() []byte {
	args := make([]byte, 32)
	putString(args, r.Password, 31)
	return args
}

// PasswordEnterCfm declares the SuccessZero convention: status 0 means the
// password was accepted.
type PasswordEnterCfm struct {
	Status    byte
	IsSuccess bool
}

func (PasswordEnterCfm) CommandID() CommandID { return GwPasswordEnterCfm }

func decodePasswordEnterCfm(args []byte) (Message, error) {
	if len(args) < 1 {
		return nil, errors.New("protocol: PasswordEnterCfm: short frame")
	}
	status := args[0]
	return PasswordEnterCfm{Status: status, IsSuccess: IsSuccess(SuccessZero, status)}, nil
}

// PasswordChangeReq requests the gateway adopt a new password.
type PasswordChangeReq struct {
	OldPassword, NewPassword string
}

func (PasswordChangeReq) CommandID() CommandID      { return GwPasswordChangeReq }
func (PasswordChangeReq) ConfirmationID() CommandID { return GwPasswordChangeCfm }
func (r PasswordChangeReq) Arguments() []byte {
	args := make([]byte, 64)
	putString(args[0:32], r.OldPassword, 31)
	putString(args[32:64], r.NewPassword, 31)
	return args
}

// PasswordChangeCfm declares the SuccessZero convention.
type PasswordChangeCfm struct {
	Status    byte
	IsSuccess bool
}

func (PasswordChangeCfm) CommandID() CommandID { return GwPasswordChangeCfm }

func decodePasswordChangeCfm(args []byte) (Message, error) {
	if len(args) < 1 {
		return nil, errors.New("protocol: PasswordChangeCfm: short frame")
	}
	status := args[0]
	return PasswordChangeCfm{Status: status, IsSuccess: IsSuccess(SuccessZero, status)}, nil
}

// PasswordChangeNtf is broadcast to every connected client when the password
// changes, carrying the new password.
type PasswordChangeNtf struct {
	NewPassword string
}

func (PasswordChangeNtf) CommandID() CommandID { return GwPasswordChangeNtf }

func decodePasswordChangeNtf(args []byte) (Message, error) {
	if len(args) < 32 {
		return nil, errors.New("protocol: PasswordChangeNtf: short frame")
	}
	return PasswordChangeNtf{NewPassword: getString(args[:32])}, nil
}
