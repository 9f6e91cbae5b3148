package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
	"github.com/talentwire/interview-orchestrator/internal/domain/repositories"
)

// questionCacheTTL is how long a question set stays cached. Question sets
// change rarely; stale reads only delay new questions, never corrupt a
// running session, which snapshots its set at start.
const questionCacheTTL = 10 * time.Minute

// CachedQuestionRepository caches question sets in Redis in front of the
// database-backed question bank. Cache failures fall through to the source.
type CachedQuestionRepository struct {
	source repositories.QuestionRepository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewCachedQuestionRepository creates a caching question repository
func NewCachedQuestionRepository(source repositories.QuestionRepository, rdb *redis.Client, logger *zap.Logger) *CachedQuestionRepository {
	return &CachedQuestionRepository{
		source: source,
		rdb:    rdb,
		logger: logger,
	}
}

// ListByJob returns the ordered question set for a job and category
func (r *CachedQuestionRepository) ListByJob(ctx context.Context, jobID uuid.UUID, category entities.QuestionCategory) ([]*entities.Question, error) {
	key := questionCacheKey(jobID, category)

	cached, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var questions []*entities.Question
		if err := json.Unmarshal(cached, &questions); err == nil {
			return questions, nil
		}
		// corrupt entry, drop it and reload
		r.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		r.logger.Warn("question cache read failed", zap.String("key", key), zap.Error(err))
	}

	questions, err := r.source.ListByJob(ctx, jobID, category)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(questions); err == nil {
		if err := r.rdb.Set(ctx, key, payload, questionCacheTTL).Err(); err != nil {
			r.logger.Warn("question cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return questions, nil
}

func questionCacheKey(jobID uuid.UUID, category entities.QuestionCategory) string {
	return fmt.Sprintf("questions:%s:%s", jobID.String(), category)
}
