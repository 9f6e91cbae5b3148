package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// ReportRepository implements the session report repository using GORM
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{
		db: db,
	}
}

// Create creates a new session report
func (r *ReportRepository) Create(ctx context.Context, report *entities.SessionReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// FindBySessionID finds the report for a session
func (r *ReportRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*entities.SessionReport, error) {
	var report entities.SessionReport
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find report by session ID: %w", err)
	}
	return &report, nil
}
