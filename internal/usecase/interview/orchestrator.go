// Package interview drives the per-session interview state machine: setup,
// the question/capture/score loop, and terminal report handoff. It is the
// only package that calls both the signaling layer and the scoring layer.
package interview

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
	"github.com/talentwire/interview-orchestrator/internal/domain/repositories"
	"github.com/talentwire/interview-orchestrator/internal/usecase/registry"
	"github.com/talentwire/interview-orchestrator/internal/usecase/scoring"
	"github.com/talentwire/interview-orchestrator/internal/usecase/signaling"
)

// Orchestrator starts sessions and routes external signals (ready acks,
// captured responses, cancellation) to the runner goroutine that owns each
// live session.
type Orchestrator struct {
	cfg        Config
	rooms      *signaling.Manager
	runners    *registry.Registry[*runner]
	sessions   repositories.SessionRepository
	reports    repositories.ReportRepository
	questions  repositories.QuestionRepository
	scorer     *scoring.Scorer
	aggregator *scoring.Aggregator
	synth      SpeechSynthesizer
	sink       ReportSink
	logger     *zap.Logger
}

// NewOrchestrator creates the session orchestrator
func NewOrchestrator(
	cfg Config,
	rooms *signaling.Manager,
	sessions repositories.SessionRepository,
	reports repositories.ReportRepository,
	questions repositories.QuestionRepository,
	synth SpeechSynthesizer,
	sink ReportSink,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg.withDefaults(),
		rooms:      rooms,
		runners:    registry.New[*runner](),
		sessions:   sessions,
		reports:    reports,
		questions:  questions,
		scorer:     scoring.NewScorer(),
		aggregator: scoring.NewAggregator(),
		synth:      synth,
		sink:       sink,
		logger:     logger,
	}
}

// StartSession loads the question set, persists a fresh session, opens its
// signaling room and launches the runner goroutine. The returned room is
// what the transport hands to joining peers.
func (o *Orchestrator) StartSession(ctx context.Context, candidateID, jobID uuid.UUID, category entities.QuestionCategory) (*entities.InterviewSession, *signaling.Room, error) {
	questions, err := o.questions.ListByJob(ctx, jobID, category)
	if err != nil {
		return nil, nil, err
	}
	if len(questions) == 0 {
		return nil, nil, entities.ErrNoQuestions
	}

	session := entities.NewInterviewSession(candidateID, jobID, string(category))
	session.QuestionCount = len(questions)
	if err := o.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	room, err := o.rooms.OpenRoom(session.ID, false)
	if err != nil {
		return nil, nil, err
	}

	r := &runner{
		session:    session,
		questions:  questions,
		cfg:        o.cfg,
		rooms:      o.rooms,
		room:       room,
		scorer:     o.scorer,
		aggregator: o.aggregator,
		synth:      o.synth,
		sink:       o.sink,
		sessions:   o.sessions,
		reports:    o.reports,
		logger:     o.logger,
		ready:      make(chan struct{}, 1),
		cancelCh:   make(chan struct{}),
		done:       make(chan struct{}),
	}
	key := session.ID.String()
	r.onExit = func() { o.runners.Delete(key) }
	o.runners.Put(key, r)

	go r.run(context.Background())

	o.logger.Info("session started",
		zap.String("session_id", key),
		zap.String("candidate_id", candidateID.String()),
		zap.String("job_id", jobID.String()),
		zap.Int("questions", len(questions)),
	)
	return session, room, nil
}

// SignalReady forwards the client's ready-to-capture ack for its current
// question
func (o *Orchestrator) SignalReady(sessionID uuid.UUID) error {
	r, ok := o.runners.Get(sessionID.String())
	if !ok {
		return entities.ErrSessionNotFound
	}
	r.signalReady()
	return nil
}

// IngestCapture is the single entry point for the speech-capture
// collaborator. Responses outside an open capture window are rejected.
func (o *Orchestrator) IngestCapture(sessionID uuid.UUID, capture CapturedResponse) error {
	r, ok := o.runners.Get(sessionID.String())
	if !ok {
		return entities.ErrSessionNotFound
	}
	return r.ingest(capture)
}

// Cancel aborts a live session. It is safe in any phase; an in-flight
// capture window is discarded and a partial report is still produced.
func (o *Orchestrator) Cancel(sessionID uuid.UUID) error {
	r, ok := o.runners.Get(sessionID.String())
	if !ok {
		return entities.ErrSessionNotFound
	}
	r.cancelSession()
	return nil
}

// Session returns a persisted session by id
func (o *Orchestrator) Session(ctx context.Context, sessionID uuid.UUID) (*entities.InterviewSession, error) {
	return o.sessions.FindByID(ctx, sessionID)
}

// SessionsByCandidate lists a candidate's past and live sessions
func (o *Orchestrator) SessionsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entities.InterviewSession, error) {
	return o.sessions.ListByCandidate(ctx, candidateID)
}

// Report returns the persisted report for a finished session
func (o *Orchestrator) Report(ctx context.Context, sessionID uuid.UUID) (*entities.SessionReport, error) {
	return o.reports.FindBySessionID(ctx, sessionID)
}

// Shutdown cancels every live session and waits for the runners to hand off
// their partial reports, or for ctx to expire.
func (o *Orchestrator) Shutdown(ctx context.Context) {
	var live []*runner
	o.runners.Range(func(_ string, r *runner) bool {
		r.cancelSession()
		live = append(live, r)
		return true
	})
	for _, r := range live {
		select {
		case <-r.done:
		case <-ctx.Done():
			return
		}
	}
}
