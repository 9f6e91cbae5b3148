package interview

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
	"github.com/talentwire/interview-orchestrator/internal/usecase/registry"
	"github.com/talentwire/interview-orchestrator/internal/usecase/signaling"
)

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entities.InterviewSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entities.InterviewSession)}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *entities.InterviewSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.InterviewSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, s *entities.InterviewSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]*entities.InterviewSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.InterviewSession
	for _, s := range f.sessions {
		if s.CandidateID == candidateID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*entities.SessionReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*entities.SessionReport)}
}

func (f *fakeReportRepo) Create(_ context.Context, r *entities.SessionReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[r.SessionID] = r
	return nil
}

func (f *fakeReportRepo) FindBySessionID(_ context.Context, sessionID uuid.UUID) (*entities.SessionReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[sessionID]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return r, nil
}

type fakeQuestionRepo struct {
	questions []*entities.Question
}

func (f *fakeQuestionRepo) ListByJob(_ context.Context, _ uuid.UUID, _ entities.QuestionCategory) ([]*entities.Question, error) {
	return f.questions, nil
}

type fakeSynth struct {
	prompts chan string
}

func (f *fakeSynth) Dispatch(_ context.Context, _ uuid.UUID, text string) error {
	f.prompts <- text
	return nil
}

type delivery struct {
	session *entities.InterviewSession
	report  *entities.SessionReport
}

type fakeSink struct {
	delivered chan delivery
}

func (f *fakeSink) Deliver(_ context.Context, s *entities.InterviewSession, r *entities.SessionReport) error {
	f.delivered <- delivery{session: s, report: r}
	return nil
}

func testQuestions(n, allottedSeconds int) []*entities.Question {
	jobID := uuid.New()
	qs := make([]*entities.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, &entities.Question{
			ID:              uuid.New(),
			JobID:           jobID,
			Prompt:          "Describe a system you built and the tradeoffs involved",
			Category:        entities.CategoryTechnical,
			AllottedSeconds: allottedSeconds,
			Position:        i,
		})
	}
	return qs
}

func newTestOrchestrator(cfg Config, questions []*entities.Question) (*Orchestrator, *signaling.Manager, *fakeSynth, *fakeSink) {
	rooms := signaling.NewManager(registry.New[*signaling.Room](), signaling.Config{}, zap.NewNop())
	synth := &fakeSynth{prompts: make(chan string, 8)}
	sink := &fakeSink{delivered: make(chan delivery, 1)}
	o := NewOrchestrator(cfg, rooms,
		newFakeSessionRepo(), newFakeReportRepo(), &fakeQuestionRepo{questions: questions},
		synth, sink, zap.NewNop())
	return o, rooms, synth, sink
}

func joinBoth(t *testing.T, m *signaling.Manager, roomID string) {
	t.Helper()
	if err := m.Join(roomID, "candidate-1", entities.PeerRoleCandidate); err != nil {
		t.Fatalf("candidate join failed: %v", err)
	}
	if err := m.Join(roomID, "interviewer-1", entities.PeerRoleInterviewer); err != nil {
		t.Fatalf("interviewer join failed: %v", err)
	}
}

func awaitPrompt(t *testing.T, synth *fakeSynth) string {
	t.Helper()
	select {
	case p := <-synth.prompts:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for question dispatch")
		return ""
	}
}

func awaitDelivery(t *testing.T, sink *fakeSink) delivery {
	t.Helper()
	select {
	case d := <-sink.delivered:
		return d
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for report handoff")
		return delivery{}
	}
}

// ingestWhenOpen retries until the capture window for the question opens
func ingestWhenOpen(t *testing.T, o *Orchestrator, sessionID uuid.UUID, c CapturedResponse) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		err := o.IngestCapture(sessionID, c)
		if err == nil {
			return
		}
		if err != entities.ErrLateResponse {
			t.Fatalf("unexpected ingest error: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("capture window never opened")
}

func TestSession_CompletesWithQuestionsInOrder(t *testing.T) {
	questions := testQuestions(2, 60)
	o, rooms, synth, sink := newTestOrchestrator(Config{}, questions)

	session, room, err := o.StartSession(context.Background(), uuid.New(), questions[0].JobID, entities.CategoryTechnical)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	joinBoth(t, rooms, room.ID())

	for i, q := range questions {
		prompt := awaitPrompt(t, synth)
		if prompt != q.Prompt {
			t.Fatalf("question %d: wrong prompt dispatched: %q", i, prompt)
		}
		o.SignalReady(session.ID)
		ingestWhenOpen(t, o, session.ID, CapturedResponse{
			QuestionID:      q.ID,
			Transcript:      "I built a distributed system and improved the team deployment process significantly",
			DurationSeconds: 20,
			CaptureComplete: false,
		})
	}

	d := awaitDelivery(t, sink)
	if d.session.Phase != entities.SessionPhaseCompleted {
		t.Fatalf("expected completed session, got %s", d.session.Phase)
	}
	if d.report.IsPartial {
		t.Fatal("completed session must not produce a partial report")
	}
	if len(d.session.Responses) != 2 {
		t.Fatalf("expected 2 scored responses, got %d", len(d.session.Responses))
	}
	if d.report.OverallScore == nil {
		t.Fatal("completed session must carry an overall score")
	}
	for i, resp := range d.session.Responses {
		if resp.QuestionID != questions[i].ID {
			t.Fatalf("response %d answered out of order", i)
		}
		if resp.Score == nil {
			t.Fatalf("response %d was never scored", i)
		}
	}
}

func TestSession_SetupTimeoutAbortsWithPartialReport(t *testing.T) {
	questions := testQuestions(3, 60)
	o, _, _, sink := newTestOrchestrator(Config{SetupTimeout: 50 * time.Millisecond}, questions)

	_, _, err := o.StartSession(context.Background(), uuid.New(), questions[0].JobID, entities.CategoryTechnical)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	d := awaitDelivery(t, sink)
	if d.session.Phase != entities.SessionPhaseAborted {
		t.Fatalf("expected aborted session, got %s", d.session.Phase)
	}
	if d.session.AbortedFor == nil || *d.session.AbortedFor != entities.AbortReasonSetupTimeout {
		t.Fatalf("expected setup_timeout abort reason, got %v", d.session.AbortedFor)
	}
	if !d.report.IsPartial {
		t.Fatal("aborted session must produce a partial report")
	}
	if d.report.OverallScore != nil {
		t.Fatal("no responses were scored, overall score must be null")
	}
}

func TestSession_SilenceScoresZeroAndContinues(t *testing.T) {
	questions := testQuestions(1, 1)
	o, rooms, synth, sink := newTestOrchestrator(Config{ReadyTimeout: 5 * time.Second}, questions)

	session, room, err := o.StartSession(context.Background(), uuid.New(), questions[0].JobID, entities.CategoryTechnical)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	joinBoth(t, rooms, room.ID())
	awaitPrompt(t, synth)
	o.SignalReady(session.ID)

	// no capture arrives; the 1s allotted window lapses
	d := awaitDelivery(t, sink)
	if d.session.Phase != entities.SessionPhaseCompleted {
		t.Fatalf("silence must not abort the session, got %s", d.session.Phase)
	}
	if len(d.session.Responses) != 1 {
		t.Fatalf("expected 1 synthesized response, got %d", len(d.session.Responses))
	}
	resp := d.session.Responses[0]
	if !resp.NoResponse {
		t.Fatal("expected no_response flag on a lapsed window")
	}
	if resp.Score == nil || resp.Score.Overall != 0 {
		t.Fatalf("silence must score zero, got %+v", resp.Score)
	}
}

func TestSession_CancelDuringCaptureWindow(t *testing.T) {
	questions := testQuestions(2, 60)
	o, rooms, synth, sink := newTestOrchestrator(Config{}, questions)

	session, room, err := o.StartSession(context.Background(), uuid.New(), questions[0].JobID, entities.CategoryTechnical)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	joinBoth(t, rooms, room.ID())
	awaitPrompt(t, synth)
	o.SignalReady(session.ID)

	// give the capture window a moment to open, then cancel mid-capture
	time.Sleep(50 * time.Millisecond)
	if err := o.Cancel(session.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	d := awaitDelivery(t, sink)
	if d.session.AbortedFor == nil || *d.session.AbortedFor != entities.AbortReasonCancelled {
		t.Fatalf("expected cancelled abort reason, got %v", d.session.AbortedFor)
	}
	if len(d.session.Responses) != 0 {
		t.Fatal("the open capture window must be discarded, not scored")
	}
	if !d.report.IsPartial {
		t.Fatal("cancelled session must produce a partial report")
	}
}

func TestIngestCapture_WrongQuestionIsLate(t *testing.T) {
	questions := testQuestions(1, 60)
	o, rooms, synth, _ := newTestOrchestrator(Config{}, questions)

	session, room, err := o.StartSession(context.Background(), uuid.New(), questions[0].JobID, entities.CategoryTechnical)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer o.Cancel(session.ID)

	joinBoth(t, rooms, room.ID())
	awaitPrompt(t, synth)

	// before the window opens, any capture is late
	if err := o.IngestCapture(session.ID, CapturedResponse{QuestionID: questions[0].ID}); err != entities.ErrLateResponse {
		t.Fatalf("expected ErrLateResponse before window opens, got %v", err)
	}

	if err := o.IngestCapture(uuid.New(), CapturedResponse{}); err != entities.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound for unknown session, got %v", err)
	}
}

func awaitReplacementRoom(t *testing.T, m *signaling.Manager, sessionID uuid.UUID, oldRoomID string) *signaling.Room {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if room, ok := m.RoomForSession(sessionID); ok && room.ID() != oldRoomID {
			return room
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("replacement room never opened")
	return nil
}

func TestSession_ConnectionLostRetriesOnceAudioOnly(t *testing.T) {
	questions := testQuestions(1, 60)
	o, rooms, synth, sink := newTestOrchestrator(Config{SetupTimeout: 5 * time.Second}, questions)

	session, room, err := o.StartSession(context.Background(), uuid.New(), questions[0].JobID, entities.CategoryTechnical)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	joinBoth(t, rooms, room.ID())
	awaitPrompt(t, synth)

	// drop the connection while the runner waits on the first question
	rooms.CloseRoom(room.ID())

	replacement := awaitReplacementRoom(t, rooms, session.ID, room.ID())
	if !replacement.AudioOnly() {
		t.Fatal("retry room must be audio-only")
	}
	joinBoth(t, rooms, replacement.ID())

	// the current question is re-asked on the replacement room
	awaitPrompt(t, synth)
	o.SignalReady(session.ID)
	ingestWhenOpen(t, o, session.ID, CapturedResponse{
		QuestionID:      questions[0].ID,
		Transcript:      "I built a production system that served many users reliably",
		DurationSeconds: 15,
	})

	d := awaitDelivery(t, sink)
	if d.session.Phase != entities.SessionPhaseCompleted {
		t.Fatalf("session should survive one connection loss, got %s", d.session.Phase)
	}
	if !d.session.AudioOnlyRetry {
		t.Fatal("retry must be recorded on the session")
	}
}

func TestSession_SecondConnectionLossAborts(t *testing.T) {
	questions := testQuestions(1, 60)
	o, rooms, synth, sink := newTestOrchestrator(Config{SetupTimeout: 5 * time.Second}, questions)

	session, room, err := o.StartSession(context.Background(), uuid.New(), questions[0].JobID, entities.CategoryTechnical)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	joinBoth(t, rooms, room.ID())
	awaitPrompt(t, synth)

	rooms.CloseRoom(room.ID())
	replacement := awaitReplacementRoom(t, rooms, session.ID, room.ID())
	joinBoth(t, rooms, replacement.ID())
	awaitPrompt(t, synth)

	// the single retry is spent; a second loss is final
	rooms.CloseRoom(replacement.ID())

	d := awaitDelivery(t, sink)
	if d.session.Phase != entities.SessionPhaseAborted {
		t.Fatalf("expected aborted session, got %s", d.session.Phase)
	}
	if d.session.AbortedFor == nil || *d.session.AbortedFor != entities.AbortReasonConnectionLost {
		t.Fatalf("expected connection_lost abort reason, got %v", d.session.AbortedFor)
	}
	if !d.report.IsPartial {
		t.Fatal("expected partial report after connection loss")
	}
}

func TestStartSession_NoQuestions(t *testing.T) {
	o, _, _, _ := newTestOrchestrator(Config{}, nil)

	_, _, err := o.StartSession(context.Background(), uuid.New(), uuid.New(), entities.CategoryTechnical)
	if err != entities.ErrNoQuestions {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}
