package errors

// ErrorCode identifies an error family for API consumers
type ErrorCode string

const (
	ErrorCode_HTTP_OK          ErrorCode = "OK"
	ErrorCode_INTERNAL         ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND        ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS   ErrorCode = "ALREADY_EXISTS"
	ErrorCode_UNAUTHENTICATED  ErrorCode = "UNAUTHENTICATED"
	ErrorCode_FORBIDDEN        ErrorCode = "FORBIDDEN"

	// Signaling
	ErrorCode_ROOM_DUPLICATE     ErrorCode = "ROOM_DUPLICATE"
	ErrorCode_ROOM_NOT_FOUND     ErrorCode = "ROOM_NOT_FOUND"
	ErrorCode_ROOM_FULL          ErrorCode = "ROOM_FULL"
	ErrorCode_ROOM_CLOSED        ErrorCode = "ROOM_CLOSED"
	ErrorCode_PEER_NOT_FOUND     ErrorCode = "PEER_NOT_FOUND"
	ErrorCode_SIGNALING_TIMEOUT  ErrorCode = "SIGNALING_TIMEOUT"

	// Session
	ErrorCode_SESSION_NOT_FOUND ErrorCode = "SESSION_NOT_FOUND"
	ErrorCode_SESSION_FINISHED  ErrorCode = "SESSION_FINISHED"
	ErrorCode_NO_QUESTIONS      ErrorCode = "NO_QUESTIONS"

	// Capture
	ErrorCode_LATE_RESPONSE   ErrorCode = "LATE_RESPONSE"
	ErrorCode_CAPTURE_REFUSED ErrorCode = "CAPTURE_REFUSED"

	// Integration
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = "INTEGRATION_STORAGE_FAILED"
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = "INTEGRATION_CACHE_FAILED"
	ErrorCode_SPEECH_DISPATCH_FAILED     ErrorCode = "SPEECH_DISPATCH_FAILED"
	ErrorCode_REPORT_HANDOFF_FAILED      ErrorCode = "REPORT_HANDOFF_FAILED"

	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = "DB_QUERY_FAILED"
)

// String returns the string form of the code
func (c ErrorCode) String() string {
	return string(c)
}
