package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

type fakeArchiver struct {
	calls    int32
	failures int32
	payload  []byte
}

func (f *fakeArchiver) ArchiveReport(_ context.Context, sessionID string, payload []byte) (string, error) {
	if atomic.AddInt32(&f.calls, 1) <= atomic.LoadInt32(&f.failures) {
		return "", errors.New("storage unavailable")
	}
	f.payload = payload
	return "reports/" + sessionID + ".json", nil
}

func newTestSink(t *testing.T, archiver *fakeArchiver) *Sink {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSink(archiver, rdb, zap.NewNop())
}

func TestDeliver_ArchivesEnvelope(t *testing.T) {
	archiver := &fakeArchiver{}
	sink := newTestSink(t, archiver)

	session := entities.NewInterviewSession(uuid.New(), uuid.New(), "technical")
	session.Complete()
	report := &entities.SessionReport{ID: uuid.New(), SessionID: session.ID}

	if err := sink.Deliver(context.Background(), session, report); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	var envelope reportEnvelope
	if err := json.Unmarshal(archiver.payload, &envelope); err != nil {
		t.Fatalf("archived payload is not valid JSON: %v", err)
	}
	if envelope.Session.ID != session.ID {
		t.Fatalf("wrong session archived: %s", envelope.Session.ID)
	}
}

func TestDeliver_DeduplicatesSecondHandoff(t *testing.T) {
	archiver := &fakeArchiver{}
	sink := newTestSink(t, archiver)

	session := entities.NewInterviewSession(uuid.New(), uuid.New(), "technical")
	report := &entities.SessionReport{ID: uuid.New(), SessionID: session.ID}

	if err := sink.Deliver(context.Background(), session, report); err != nil {
		t.Fatalf("first deliver failed: %v", err)
	}
	if err := sink.Deliver(context.Background(), session, report); err != nil {
		t.Fatalf("duplicate deliver must be acknowledged: %v", err)
	}
	if atomic.LoadInt32(&archiver.calls) != 1 {
		t.Fatalf("expected a single archive call, got %d", archiver.calls)
	}
}

func TestDeliver_RetriesTransientStorageFailure(t *testing.T) {
	archiver := &fakeArchiver{failures: 2}
	sink := newTestSink(t, archiver)

	session := entities.NewInterviewSession(uuid.New(), uuid.New(), "technical")
	report := &entities.SessionReport{ID: uuid.New(), SessionID: session.ID}

	if err := sink.Deliver(context.Background(), session, report); err != nil {
		t.Fatalf("deliver should succeed after retries: %v", err)
	}
	if atomic.LoadInt32(&archiver.calls) != 3 {
		t.Fatalf("expected 3 archive attempts, got %d", archiver.calls)
	}
}

func TestDeliver_ReleasesMarkerOnFailure(t *testing.T) {
	archiver := &fakeArchiver{failures: 10}
	sink := newTestSink(t, archiver)

	session := entities.NewInterviewSession(uuid.New(), uuid.New(), "technical")
	report := &entities.SessionReport{ID: uuid.New(), SessionID: session.ID}

	if err := sink.Deliver(context.Background(), session, report); err == nil {
		t.Fatal("expected handoff failure")
	}

	// marker was released; a later retry can archive
	atomic.StoreInt32(&archiver.failures, 0)
	atomic.StoreInt32(&archiver.calls, 0)
	if err := sink.Deliver(context.Background(), session, report); err != nil {
		t.Fatalf("retry after failure should deliver: %v", err)
	}
}
