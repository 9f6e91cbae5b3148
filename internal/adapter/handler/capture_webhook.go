package handler

import (
	"encoding/json"
	stdErrors "errors"
	"io"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/talentwire/interview-orchestrator/errors"
	sessiondto "github.com/talentwire/interview-orchestrator/internal/adapter/dto/session"
	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
	"github.com/talentwire/interview-orchestrator/internal/usecase/interview"
	"github.com/talentwire/interview-orchestrator/pkg/speech"
)

// signatureHeader carries the HMAC of the webhook body
const signatureHeader = "X-Capture-Signature"

// CaptureWebhook receives finished captures from the speech-capture service
type CaptureWebhook struct {
	orchestrator *interview.Orchestrator
	secret       string
	logger       *zap.Logger
}

// NewCaptureWebhook creates a new capture webhook handler
func NewCaptureWebhook(orchestrator *interview.Orchestrator, secret string, logger *zap.Logger) *CaptureWebhook {
	return &CaptureWebhook{
		orchestrator: orchestrator,
		secret:       secret,
		logger:       logger,
	}
}

// Handle ingests one captured response
func (h *CaptureWebhook) Handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("unreadable request body"))
	}

	if !speech.VerifyHMAC(h.secret, body, c.Request().Header.Get(signatureHeader)) {
		h.logger.Warn("capture webhook signature rejected",
			zap.String("request_id", getRequestID(c)),
		)
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated())
	}

	var req sessiondto.CaptureWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("malformed capture payload"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("session_id must be a valid UUID"))
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("question_id must be a valid UUID"))
	}

	words := make([]entities.WordTimestamp, len(req.Words))
	for i, w := range req.Words {
		words[i] = entities.WordTimestamp{
			Word:       w.Word,
			Start:      w.Start,
			End:        w.End,
			Confidence: w.Confidence,
		}
	}

	err = h.orchestrator.IngestCapture(sessionID, interview.CapturedResponse{
		QuestionID:      questionID,
		Transcript:      req.Transcript,
		DurationSeconds: req.DurationSeconds,
		Words:           words,
		CaptureComplete: req.CaptureComplete,
	})
	if err != nil {
		switch {
		case stdErrors.Is(err, entities.ErrSessionNotFound):
			return HandleError(h.logger, c, apperrors.ErrSessionNotFound(req.SessionID))
		case stdErrors.Is(err, entities.ErrLateResponse):
			return HandleError(h.logger, c, apperrors.ErrLateResponse(req.QuestionID))
		case stdErrors.Is(err, entities.ErrCaptureRefused):
			return HandleError(h.logger, c, apperrors.ErrCaptureRefused(req.SessionID))
		default:
			return HandleError(h.logger, c, apperrors.ErrInternal(err))
		}
	}
	return HandleSuccess(h.logger, c, nil)
}
