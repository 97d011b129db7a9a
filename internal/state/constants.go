package state

const (
	ErrMsgReadFailed   = "failed to read state"
	ErrMsgWriteFailed  = "failed to write state"
	ErrMsgEncodeFailed = "failed to encode state"
	ErrMsgDecodeFailed = "failed to decode state"
)
