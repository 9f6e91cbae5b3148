package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// QuestionRepository implements the question bank repository using GORM
type QuestionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{
		db: db,
	}
}

// ListByJob returns the ordered question set for a job and category
func (r *QuestionRepository) ListByJob(ctx context.Context, jobID uuid.UUID, category entities.QuestionCategory) ([]*entities.Question, error) {
	var questions []*entities.Question
	query := r.db.WithContext(ctx).Where("job_id = ?", jobID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("position ASC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions by job: %w", err)
	}
	return questions, nil
}
