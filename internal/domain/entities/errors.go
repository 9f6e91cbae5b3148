package entities

import "errors"

// Domain errors
var (
	// Signaling errors
	ErrDuplicateRoom    = errors.New("room already exists for session")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrRoomClosed       = errors.New("room is closed")
	ErrPeerNotFound     = errors.New("peer not found in room")
	ErrSignalingTimeout = errors.New("signaling operation timed out")

	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionFinished  = errors.New("session already finished")
	ErrNoQuestions      = errors.New("no questions available for session")

	// Capture errors
	ErrLateResponse   = errors.New("response arrived after capture window closed")
	ErrCaptureRefused = errors.New("no capture window open for question")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidRequest = errors.New("invalid request")
)
