package interview

import (
	"context"

	"github.com/google/uuid"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// SpeechSynthesizer receives question prompts for text-to-speech delivery to
// the candidate client. Dispatch is fire-and-forget from the runner's point
// of view: only the acknowledgement is consumed, never playback completion.
type SpeechSynthesizer interface {
	Dispatch(ctx context.Context, sessionID uuid.UUID, text string) error
}

// ReportSink receives the final session report, completed or partial. Storage
// and user-facing delivery are the sink's responsibility; the orchestrator is
// done once the handoff is acknowledged.
type ReportSink interface {
	Deliver(ctx context.Context, session *entities.InterviewSession, report *entities.SessionReport) error
}

// CapturedResponse is the speech-capture payload delivered when the client
// finishes answering a question.
type CapturedResponse struct {
	QuestionID      uuid.UUID                `json:"question_id"`
	Transcript      string                   `json:"transcript"`
	DurationSeconds float64                  `json:"duration_seconds"`
	Words           []entities.WordTimestamp `json:"words,omitempty"`
	CaptureComplete bool                     `json:"capture_complete"`
}
