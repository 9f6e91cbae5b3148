package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// SessionRepository defines persistence operations for interview sessions
type SessionRepository interface {
	Create(ctx context.Context, session *entities.InterviewSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.InterviewSession, error)
	Update(ctx context.Context, session *entities.InterviewSession) error
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entities.InterviewSession, error)
}
