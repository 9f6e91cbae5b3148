package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// ReportRepository defines persistence operations for session reports
type ReportRepository interface {
	Create(ctx context.Context, report *entities.SessionReport) error
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*entities.SessionReport, error)
}
