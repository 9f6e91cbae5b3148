package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuestionCategory classifies an interview question
type QuestionCategory string

const (
	CategoryIntroduction QuestionCategory = "introduction"
	CategoryBehavioral   QuestionCategory = "behavioral"
	CategoryTechnical    QuestionCategory = "technical"
	CategorySituational  QuestionCategory = "situational"
	CategoryCareer       QuestionCategory = "career"
)

// Question is one prompt from the question bank. Questions are immutable once
// loaded into a session; they are referenced by position, never mutated.
type Question struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	JobID           uuid.UUID        `json:"job_id" gorm:"type:uuid;not null;index"`
	Prompt          string           `json:"prompt" gorm:"type:text;not null"`
	Category        QuestionCategory `json:"category" gorm:"type:varchar(30);not null;index"`
	AllottedSeconds int              `json:"allotted_seconds" gorm:"not null;default:120"`
	Position        int              `json:"position" gorm:"not null"`
	CreatedAt       time.Time        `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Question
func (Question) TableName() string {
	return "questions"
}

// AllottedDuration returns the capture window length for this question
func (q *Question) AllottedDuration() time.Duration {
	return time.Duration(q.AllottedSeconds) * time.Second
}
