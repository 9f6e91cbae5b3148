package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

type countingQuestionSource struct {
	calls     int
	questions []*entities.Question
}

func (c *countingQuestionSource) ListByJob(_ context.Context, _ uuid.UUID, _ entities.QuestionCategory) ([]*entities.Question, error) {
	c.calls++
	return c.questions, nil
}

func TestCachedQuestionRepository_SecondReadHitsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	jobID := uuid.New()
	source := &countingQuestionSource{questions: []*entities.Question{
		{ID: uuid.New(), JobID: jobID, Prompt: "Walk me through your background", Category: entities.CategoryIntroduction, AllottedSeconds: 90, Position: 0},
		{ID: uuid.New(), JobID: jobID, Prompt: "Describe a hard bug you fixed", Category: entities.CategoryIntroduction, AllottedSeconds: 120, Position: 1},
	}}
	repo := NewCachedQuestionRepository(source, rdb, zap.NewNop())

	first, err := repo.ListByJob(context.Background(), jobID, entities.CategoryIntroduction)
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	second, err := repo.ListByJob(context.Background(), jobID, entities.CategoryIntroduction)
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}

	if source.calls != 1 {
		t.Fatalf("expected one source read, got %d", source.calls)
	}
	if len(second) != len(first) {
		t.Fatalf("cache returned %d questions, want %d", len(second), len(first))
	}
	for i := range first {
		if second[i].ID != first[i].ID || second[i].Position != first[i].Position {
			t.Fatalf("cached question %d does not match source", i)
		}
	}
}

func TestCachedQuestionRepository_ExpiredEntryReloads(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	jobID := uuid.New()
	source := &countingQuestionSource{questions: []*entities.Question{
		{ID: uuid.New(), JobID: jobID, Prompt: "Why this role", Category: entities.CategoryCareer, AllottedSeconds: 60, Position: 0},
	}}
	repo := NewCachedQuestionRepository(source, rdb, zap.NewNop())

	if _, err := repo.ListByJob(context.Background(), jobID, entities.CategoryCareer); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	mr.FastForward(questionCacheTTL * 2)
	if _, err := repo.ListByJob(context.Background(), jobID, entities.CategoryCareer); err != nil {
		t.Fatalf("read after expiry failed: %v", err)
	}

	if source.calls != 2 {
		t.Fatalf("expected reload after expiry, got %d source reads", source.calls)
	}
}
