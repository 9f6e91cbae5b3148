package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/talentwire/interview-orchestrator/errors"
	sessiondto "github.com/talentwire/interview-orchestrator/internal/adapter/dto/session"
	"github.com/talentwire/interview-orchestrator/internal/adapter/presenter"
	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
	"github.com/talentwire/interview-orchestrator/internal/usecase/interview"
	"github.com/talentwire/interview-orchestrator/pkg/jwt"
)

// Session handles the interview session API
type Session struct {
	orchestrator *interview.Orchestrator
	tokens       *jwt.Manager
	logger       *zap.Logger
}

// NewSession creates a new session handler
func NewSession(orchestrator *interview.Orchestrator, tokens *jwt.Manager, logger *zap.Logger) *Session {
	return &Session{
		orchestrator: orchestrator,
		tokens:       tokens,
		logger:       logger,
	}
}

// Start creates a session, opens its signaling room and returns peer tokens
func (h *Session) Start(c echo.Context) error {
	var req sessiondto.StartSessionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("malformed request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("candidate_id must be a valid UUID"))
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("job_id must be a valid UUID"))
	}

	session, room, err := h.orchestrator.StartSession(c.Request().Context(), candidateID, jobID, entities.QuestionCategory(req.Category))
	if err != nil {
		switch {
		case stdErrors.Is(err, entities.ErrNoQuestions):
			return HandleError(h.logger, c, apperrors.ErrNoQuestions(req.JobID))
		case stdErrors.Is(err, entities.ErrDuplicateRoom):
			return HandleError(h.logger, c, apperrors.ErrDuplicateRoom(req.JobID))
		default:
			return HandleError(h.logger, c, apperrors.ErrInternal(err))
		}
	}

	candidateToken, err := h.signPeerToken(session.ID, room.ID(), "candidate-"+candidateID.String(), string(entities.PeerRoleCandidate))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	interviewerToken, err := h.signPeerToken(session.ID, room.ID(), "interviewer-"+session.ID.String(), string(entities.PeerRoleInterviewer))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, &sessiondto.StartSessionResponse{
		Session:          presenter.ToSessionResponse(session),
		RoomID:           room.ID(),
		CandidateToken:   candidateToken,
		InterviewerToken: interviewerToken,
	})
}

func (h *Session) signPeerToken(sessionID uuid.UUID, roomID, peerID, role string) (*sessiondto.PeerToken, error) {
	token, err := h.tokens.GenerateRoomToken(sessionID, roomID, peerID, role)
	if err != nil {
		return nil, err
	}
	return &sessiondto.PeerToken{PeerID: peerID, Role: role, Token: token}, nil
}

// Get returns one session by id
func (h *Session) Get(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("session id must be a valid UUID"))
	}

	session, err := h.orchestrator.Session(c.Request().Context(), sessionID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrSessionNotFound) {
			return HandleError(h.logger, c, apperrors.ErrSessionNotFound(sessionID.String()))
		}
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(session))
}

// ListByCandidate returns a candidate's sessions
func (h *Session) ListByCandidate(c echo.Context) error {
	candidateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("candidate id must be a valid UUID"))
	}

	sessions, err := h.orchestrator.SessionsByCandidate(c.Request().Context(), candidateID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionListResponse(sessions))
}

// Report returns the aggregated report for a finished session
func (h *Session) Report(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("session id must be a valid UUID"))
	}

	report, err := h.orchestrator.Report(c.Request().Context(), sessionID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrSessionNotFound) {
			return HandleError(h.logger, c, apperrors.ErrNotFound("report"))
		}
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToReportResponse(report))
}

// Ready forwards the client's ready-to-capture ack for the current question
func (h *Session) Ready(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("session id must be a valid UUID"))
	}

	if err := h.orchestrator.SignalReady(sessionID); err != nil {
		return HandleError(h.logger, c, apperrors.ErrSessionNotFound(sessionID.String()))
	}
	return HandleSuccess(h.logger, c, nil)
}

// Cancel aborts a live session
func (h *Session) Cancel(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("session id must be a valid UUID"))
	}

	if err := h.orchestrator.Cancel(sessionID); err != nil {
		return HandleError(h.logger, c, apperrors.ErrSessionNotFound(sessionID.String()))
	}
	return HandleSuccess(h.logger, c, nil)
}
