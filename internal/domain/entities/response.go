package entities

import (
	"time"

	"github.com/google/uuid"
)

// WordTimestamp represents a single transcribed word with time info
type WordTimestamp struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Response is one captured answer to one question. It is created when the
// capture window closes and is immutable thereafter.
type Response struct {
	QuestionID      uuid.UUID       `json:"question_id"`
	Transcript      string          `json:"transcript"`
	DurationSeconds float64         `json:"duration_seconds"`
	Words           []WordTimestamp `json:"words,omitempty"`
	CaptureComplete bool            `json:"capture_complete"` // true when ended by timeout rather than manual stop
	NoResponse      bool            `json:"no_response"`
	CapturedAt      time.Time       `json:"captured_at"`
	Score           *ResponseScore  `json:"score,omitempty"`
}

// EmptyResponse synthesizes the record for a capture window that closed with
// no answer.
func EmptyResponse(questionID uuid.UUID) Response {
	return Response{
		QuestionID:      questionID,
		Transcript:      "",
		CaptureComplete: true,
		NoResponse:      true,
		CapturedAt:      time.Now(),
	}
}
