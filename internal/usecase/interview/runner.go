package interview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
	"github.com/talentwire/interview-orchestrator/internal/domain/repositories"
	"github.com/talentwire/interview-orchestrator/internal/metrics"
	"github.com/talentwire/interview-orchestrator/internal/usecase/scoring"
	"github.com/talentwire/interview-orchestrator/internal/usecase/signaling"
)

// finishTimeout bounds the persistence and handoff work done when a session
// reaches a terminal phase. It runs on its own context so a cancelled session
// still hands off its partial report.
const finishTimeout = 10 * time.Second

type stepOutcome int

const (
	stepOK stepOutcome = iota
	stepRetry   // room was reconnected, re-ask the current question
	stepAborted // session reached a terminal phase during the wait
)

// captureWindow is the single ingestion slot for one question. The channel
// holds at most one response; anything past the first is refused.
type captureWindow struct {
	questionID uuid.UUID
	deliver    chan CapturedResponse
}

// runner drives one session's state machine on its own goroutine. Runners
// share no mutable state with each other; everything crossing into a runner
// arrives on a channel.
type runner struct {
	session   *entities.InterviewSession
	questions []*entities.Question
	scores    []entities.ResponseScore

	cfg        Config
	rooms      *signaling.Manager
	room       *signaling.Room
	scorer     *scoring.Scorer
	aggregator *scoring.Aggregator
	synth      SpeechSynthesizer
	sink       ReportSink
	sessions   repositories.SessionRepository
	reports    repositories.ReportRepository
	logger     *zap.Logger

	mu       sync.Mutex
	window   *captureWindow
	ready    chan struct{}
	cancelCh chan struct{}
	cancel   sync.Once
	done     chan struct{}
	onExit   func()
}

func (r *runner) run(ctx context.Context) {
	defer close(r.done)
	if r.onExit != nil {
		defer r.onExit()
	}

	metrics.SessionsByPhase.WithLabelValues(string(entities.SessionPhaseSetup)).Inc()

	deadline := time.Now().Add(r.cfg.SetupTimeout)
	if r.waitForPeers(ctx, deadline, entities.AbortReasonSetupTimeout) != stepOK {
		r.finish()
		return
	}

	r.session.Activate()
	metrics.SessionsByPhase.WithLabelValues(string(entities.SessionPhaseActive)).Inc()
	if err := r.sessions.Update(ctx, r.session); err != nil {
		r.logger.Error("session activation update failed",
			zap.String("session_id", r.session.ID.String()),
			zap.Error(err),
		)
	}
	r.logger.Info("session active",
		zap.String("session_id", r.session.ID.String()),
		zap.Int("questions", len(r.questions)),
	)

	// Questions run strictly in order: a response is scored before the next
	// prompt is dispatched.
	for !r.session.IsTerminal() && r.session.HasMoreQuestions() {
		q := r.questions[r.session.QuestionIndex]
		r.dispatch(ctx, q)

		resp, outcome := r.captureResponse(ctx, q)
		if outcome == stepRetry {
			continue // same question again on the replacement room
		}
		if outcome == stepAborted {
			break
		}

		score := r.scorer.Score(resp, *q)
		resp.Score = &score
		r.session.AttachResponse(resp)
		r.scores = append(r.scores, score)
		metrics.ResponsesScored.Inc()
		r.session.AdvanceQuestion()
	}

	if !r.session.IsTerminal() {
		r.session.Complete()
	}
	r.finish()
}

// waitForPeers blocks until both the candidate and the interviewer-service
// peer have joined the current room, the deadline passes, or the session
// aborts. A connection loss during the wait consumes the session's single
// reconnect attempt; the deadline does not reset.
func (r *runner) waitForPeers(ctx context.Context, deadline time.Time, timeoutReason entities.AbortReason) stepOutcome {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	joined := make(map[entities.PeerRole]bool, 2)
	for {
		select {
		case ev := <-r.room.Events():
			switch ev.Type {
			case signaling.EventPeerJoined:
				joined[ev.Role] = true
				if joined[entities.PeerRoleCandidate] && joined[entities.PeerRoleInterviewer] {
					return stepOK
				}
			case signaling.EventConnectionLost, signaling.EventRoomClosed:
				if !r.reconnect() {
					r.abort(entities.AbortReasonConnectionLost)
					return stepAborted
				}
				joined = make(map[entities.PeerRole]bool, 2)
			}
		case <-timer.C:
			r.abort(timeoutReason)
			return stepAborted
		case <-r.cancelCh:
			r.abort(entities.AbortReasonCancelled)
			return stepAborted
		case <-ctx.Done():
			r.abort(entities.AbortReasonCancelled)
			return stepAborted
		}
	}
}

// dispatch sends the prompt to the speech synthesizer. Delivery failures do
// not fail the question; the client still renders the prompt text.
func (r *runner) dispatch(ctx context.Context, q *entities.Question) {
	if err := r.synth.Dispatch(ctx, r.session.ID, q.Prompt); err != nil {
		r.logger.Warn("speech dispatch failed",
			zap.String("session_id", r.session.ID.String()),
			zap.String("question_id", q.ID.String()),
			zap.Error(err),
		)
	}
}

// captureResponse waits for the client's ready signal, then opens the capture
// window for the question's allotted duration. The window closes on the first
// of: a captured response, the allotted duration elapsing (scored as no
// response), a connection loss, or cancellation.
func (r *runner) captureResponse(ctx context.Context, q *entities.Question) (entities.Response, stepOutcome) {
	readyTimer := time.NewTimer(r.cfg.ReadyTimeout)
	defer readyTimer.Stop()
ready:
	for {
		select {
		case <-r.ready:
			break ready
		case <-readyTimer.C:
			// A stalled client must not wedge the session; the window opens
			// and the allotted-duration clock starts regardless.
			r.logger.Warn("ready signal never arrived, opening capture window",
				zap.String("session_id", r.session.ID.String()),
				zap.String("question_id", q.ID.String()),
			)
			break ready
		case ev := <-r.room.Events():
			if out, handled := r.handleRoomEvent(ctx, ev); handled {
				return entities.Response{}, out
			}
		case <-r.cancelCh:
			r.abort(entities.AbortReasonCancelled)
			return entities.Response{}, stepAborted
		case <-ctx.Done():
			r.abort(entities.AbortReasonCancelled)
			return entities.Response{}, stepAborted
		}
	}

	w := &captureWindow{questionID: q.ID, deliver: make(chan CapturedResponse, 1)}
	r.setWindow(w)
	defer r.setWindow(nil)

	captureTimer := time.NewTimer(q.AllottedDuration())
	defer captureTimer.Stop()
	for {
		select {
		case c := <-w.deliver:
			return entities.Response{
				QuestionID:      q.ID,
				Transcript:      c.Transcript,
				DurationSeconds: c.DurationSeconds,
				Words:           c.Words,
				CaptureComplete: c.CaptureComplete,
				CapturedAt:      time.Now(),
			}, stepOK
		case <-captureTimer.C:
			return entities.EmptyResponse(q.ID), stepOK
		case ev := <-r.room.Events():
			if out, handled := r.handleRoomEvent(ctx, ev); handled {
				return entities.Response{}, out
			}
		case <-r.cancelCh:
			r.abort(entities.AbortReasonCancelled)
			return entities.Response{}, stepAborted
		case <-ctx.Done():
			r.abort(entities.AbortReasonCancelled)
			return entities.Response{}, stepAborted
		}
	}
}

// handleRoomEvent reacts to asynchronous room notifications while a wait is
// in progress. handled=false means the wait simply continues.
func (r *runner) handleRoomEvent(ctx context.Context, ev signaling.Event) (stepOutcome, bool) {
	switch ev.Type {
	case signaling.EventQualityChanged:
		r.logger.Warn("room quality degraded",
			zap.String("session_id", r.session.ID.String()),
			zap.String("room_id", ev.RoomID),
		)
		return stepOK, false
	case signaling.EventConnectionLost, signaling.EventRoomClosed:
		if !r.reconnect() {
			r.abort(entities.AbortReasonConnectionLost)
			return stepAborted, true
		}
		// Peers must rejoin the replacement room before the current question
		// is re-asked; the in-flight capture window is discarded unscored.
		if r.waitForPeers(ctx, time.Now().Add(r.cfg.SetupTimeout), entities.AbortReasonConnectionLost) != stepOK {
			return stepAborted, true
		}
		return stepRetry, true
	}
	return stepOK, false
}

// reconnect performs the single audio-only room re-open allowed per session.
// Any loss after the retry has been spent is final.
func (r *runner) reconnect() bool {
	if r.session.AudioOnlyRetry {
		return false
	}
	r.session.AudioOnlyRetry = true

	room, err := r.rooms.OpenRoom(r.session.ID, true)
	if err != nil {
		r.logger.Warn("audio-only room reopen failed",
			zap.String("session_id", r.session.ID.String()),
			zap.Error(err),
		)
		return false
	}
	r.room = room
	r.logger.Info("room reopened in audio-only mode",
		zap.String("session_id", r.session.ID.String()),
		zap.String("room_id", room.ID()),
	)
	return true
}

func (r *runner) abort(reason entities.AbortReason) {
	r.session.Abort(reason)
	r.logger.Warn("session aborted",
		zap.String("session_id", r.session.ID.String()),
		zap.String("reason", string(reason)),
	)
}

// finish aggregates whatever was scored, persists the terminal session and
// its report, and hands the report to the sink. It runs on a fresh context so
// an aborted or cancelled session still produces its partial report.
func (r *runner) finish() {
	ctx, cancel := context.WithTimeout(context.Background(), finishTimeout)
	defer cancel()

	if r.room != nil {
		r.rooms.CloseRoom(r.room.ID())
	}

	isPartial := r.session.Phase == entities.SessionPhaseAborted
	report := r.aggregator.Aggregate(r.session.ID, r.scores, isPartial)
	r.session.OverallScore = report.OverallScore

	metrics.SessionsByPhase.WithLabelValues(string(r.session.Phase)).Inc()

	if err := r.sessions.Update(ctx, r.session); err != nil {
		r.logger.Error("terminal session update failed",
			zap.String("session_id", r.session.ID.String()),
			zap.Error(err),
		)
	}
	if err := r.reports.Create(ctx, report); err != nil {
		r.logger.Error("report persistence failed",
			zap.String("session_id", r.session.ID.String()),
			zap.Error(err),
		)
	}
	if err := r.sink.Deliver(ctx, r.session, report); err != nil {
		r.logger.Error("report handoff failed",
			zap.String("session_id", r.session.ID.String()),
			zap.Error(err),
		)
	}

	r.logger.Info("session finished",
		zap.String("session_id", r.session.ID.String()),
		zap.String("phase", string(r.session.Phase)),
		zap.Bool("partial", isPartial),
		zap.Int("responses_scored", len(r.scores)),
	)
}

func (r *runner) setWindow(w *captureWindow) {
	r.mu.Lock()
	r.window = w
	r.mu.Unlock()
}

// ingest routes a captured response into the open window. A response for a
// closed window or a different question is late and never scored.
func (r *runner) ingest(c CapturedResponse) error {
	r.mu.Lock()
	w := r.window
	r.mu.Unlock()

	if w == nil || w.questionID != c.QuestionID {
		metrics.LateResponses.Inc()
		r.logger.Warn("late response rejected",
			zap.String("session_id", r.session.ID.String()),
			zap.String("question_id", c.QuestionID.String()),
		)
		return entities.ErrLateResponse
	}
	select {
	case w.deliver <- c:
		return nil
	default:
		// the window already holds its one response
		return entities.ErrCaptureRefused
	}
}

// signalReady records the client's ready-to-capture ack. The slot is
// buffered, so a signal that races ahead of the runner is not lost.
func (r *runner) signalReady() {
	select {
	case r.ready <- struct{}{}:
	default:
	}
}

// cancelSession is safe to call from any state, any number of times
func (r *runner) cancelSession() {
	r.cancel.Do(func() { close(r.cancelCh) })
}
