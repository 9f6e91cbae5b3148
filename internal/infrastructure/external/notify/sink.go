// Package notify hands finished session reports off for storage and
// candidate-facing delivery.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/talentwire/interview-orchestrator/errors"
	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// dedupeTTL bounds how long a delivered marker is kept. A session id is
// never reused, so the marker only needs to outlive retries and restarts.
const dedupeTTL = 24 * time.Hour

// Archiver stores the serialized report payload
type Archiver interface {
	ArchiveReport(ctx context.Context, sessionID string, payload []byte) (string, error)
}

// Sink archives completed and partial session reports. Redis deduplicates
// the handoff so a crashed-and-restarted delivery never archives twice.
type Sink struct {
	archiver Archiver
	rdb      *redis.Client
	logger   *zap.Logger
}

// NewSink creates a report sink
func NewSink(archiver Archiver, rdb *redis.Client, logger *zap.Logger) *Sink {
	return &Sink{
		archiver: archiver,
		rdb:      rdb,
		logger:   logger,
	}
}

type reportEnvelope struct {
	Session *entities.InterviewSession `json:"session"`
	Report  *entities.SessionReport    `json:"report"`
}

// Deliver archives the report. Duplicate deliveries for the same session are
// acknowledged without re-archiving.
func (s *Sink) Deliver(ctx context.Context, session *entities.InterviewSession, report *entities.SessionReport) error {
	key := "report:delivered:" + session.ID.String()
	stored, err := s.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), dedupeTTL).Result()
	if err != nil {
		// a cache outage must not block the handoff
		s.logger.Warn("report dedupe check failed",
			zap.String("session_id", session.ID.String()),
			zap.Error(err),
		)
	} else if !stored {
		s.logger.Info("report already delivered, skipping",
			zap.String("session_id", session.ID.String()),
		)
		return nil
	}

	payload, err := json.Marshal(reportEnvelope{Session: session, Report: report})
	if err != nil {
		return apperrors.ErrReportHandoffFailed(session.ID.String(), err)
	}

	operation := func() error {
		_, err := s.archiver.ArchiveReport(ctx, session.ID.String(), payload)
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		// release the marker so a later retry can go through
		s.rdb.Del(context.Background(), key)
		return apperrors.ErrReportHandoffFailed(session.ID.String(), err)
	}

	s.logger.Info("report delivered",
		zap.String("session_id", session.ID.String()),
		zap.Bool("partial", report.IsPartial),
	)
	return nil
}
