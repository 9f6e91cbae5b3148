package entities

import (
	"time"

	"github.com/google/uuid"
)

// SessionPhase represents the lifecycle phase of an interview session
type SessionPhase string

const (
	SessionPhaseSetup     SessionPhase = "setup"
	SessionPhaseActive    SessionPhase = "active"
	SessionPhaseCompleted SessionPhase = "completed"
	SessionPhaseAborted   SessionPhase = "aborted"
)

// AbortReason explains why a session ended before completing
type AbortReason string

const (
	AbortReasonSetupTimeout   AbortReason = "setup_timeout"
	AbortReasonConnectionLost AbortReason = "connection_lost"
	AbortReasonCancelled      AbortReason = "cancelled"
)

// InterviewSession represents one interview attempt. It is owned exclusively
// by its session runner while live and becomes read-only once it reaches a
// terminal phase.
type InterviewSession struct {
	ID             uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CandidateID    uuid.UUID    `json:"candidate_id" gorm:"type:uuid;not null;index"`
	JobID          uuid.UUID    `json:"job_id" gorm:"type:uuid;not null;index"`
	Category       string       `json:"category" gorm:"type:varchar(50)"`
	Phase          SessionPhase `json:"phase" gorm:"type:varchar(20);not null;default:'setup';index"`
	QuestionIndex  int          `json:"question_index" gorm:"default:0"`
	QuestionCount  int          `json:"question_count" gorm:"default:0"`
	OverallScore   *float64     `json:"overall_score,omitempty"`
	AbortedFor     *AbortReason `json:"aborted_for,omitempty" gorm:"type:varchar(30)"`
	AudioOnlyRetry bool         `json:"audio_only_retry" gorm:"default:false"`
	CreatedAt      time.Time    `json:"created_at" gorm:"autoCreateTime"`
	ActivatedAt    *time.Time   `json:"activated_at,omitempty"`
	FinishedAt     *time.Time   `json:"finished_at,omitempty"`
	Responses      []Response   `json:"responses,omitempty" gorm:"-"`
}

// TableName specifies the table name for InterviewSession
func (InterviewSession) TableName() string {
	return "interview_sessions"
}

// NewInterviewSession creates a session in the setup phase
func NewInterviewSession(candidateID, jobID uuid.UUID, category string) *InterviewSession {
	return &InterviewSession{
		ID:          uuid.New(),
		CandidateID: candidateID,
		JobID:       jobID,
		Category:    category,
		Phase:       SessionPhaseSetup,
		CreatedAt:   time.Now(),
	}
}

// IsTerminal reports whether the session has reached a terminal phase
func (s *InterviewSession) IsTerminal() bool {
	return s.Phase == SessionPhaseCompleted || s.Phase == SessionPhaseAborted
}

// Activate transitions the session from setup to active
func (s *InterviewSession) Activate() {
	now := time.Now()
	s.Phase = SessionPhaseActive
	s.ActivatedAt = &now
}

// Complete marks the session as completed
func (s *InterviewSession) Complete() {
	now := time.Now()
	s.Phase = SessionPhaseCompleted
	s.FinishedAt = &now
}

// Abort marks the session as aborted with the given reason
func (s *InterviewSession) Abort(reason AbortReason) {
	now := time.Now()
	s.Phase = SessionPhaseAborted
	s.AbortedFor = &reason
	s.FinishedAt = &now
}

// AdvanceQuestion moves to the next question. The index never decreases.
func (s *InterviewSession) AdvanceQuestion() {
	s.QuestionIndex++
}

// HasMoreQuestions reports whether unanswered questions remain
func (s *InterviewSession) HasMoreQuestions() bool {
	return s.QuestionIndex < s.QuestionCount
}

// AttachResponse appends a scored response to the session record
func (s *InterviewSession) AttachResponse(r Response) {
	s.Responses = append(s.Responses, r)
}
