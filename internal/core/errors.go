package core

// Error codes for domain errors.
const (
	ErrCodeRoomNotFound   = "room_not_found"
	ErrCodeRoomFull       = "room_full"
	ErrCodeAlreadyStarted = "already_started"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeInvalidState   = "invalid_state"
	ErrCodeBadRequest     = "bad_request"
)

// GameError wraps a code and human-readable message. It is only ever
// surfaced to the originating caller; other players are never interrupted.
type GameError struct {
	Code    string
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func gameError(code, msg string) *GameError {
	return &GameError{Code: code, Message: msg}
}
