package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// QuestionRepository supplies ordered question sets from the question bank.
// Positions within a set are contiguous starting at 0.
type QuestionRepository interface {
	ListByJob(ctx context.Context, jobID uuid.UUID, category entities.QuestionCategory) ([]*entities.Question, error)
}
