package handler

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/talentwire/interview-orchestrator/errors"
	sessiondto "github.com/talentwire/interview-orchestrator/internal/adapter/dto/session"
	"github.com/talentwire/interview-orchestrator/internal/infrastructure/external/capture"
	"github.com/talentwire/interview-orchestrator/pkg/speech"
)

// transcriptTokenHeader authenticates AssemblyAI completion callbacks
const transcriptTokenHeader = "X-Transcript-Token"

// TranscriptWebhook handles the audio-based capture path: recording handover
// from capture collaborators and completion callbacks from AssemblyAI.
type TranscriptWebhook struct {
	adapter *capture.Adapter
	secret  string
	token   string
	logger  *zap.Logger
}

// NewTranscriptWebhook creates a new transcription webhook handler
func NewTranscriptWebhook(adapter *capture.Adapter, secret, token string, logger *zap.Logger) *TranscriptWebhook {
	return &TranscriptWebhook{
		adapter: adapter,
		secret:  secret,
		token:   token,
		logger:  logger,
	}
}

// SubmitAudio accepts an answer recording URL and submits it for
// transcription. Signed with the same HMAC secret as the capture webhook.
func (h *TranscriptWebhook) SubmitAudio(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("unreadable request body"))
	}
	if !speech.VerifyHMAC(h.secret, body, c.Request().Header.Get(signatureHeader)) {
		h.logger.Warn("audio webhook signature rejected",
			zap.String("request_id", getRequestID(c)),
		)
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated())
	}

	var req sessiondto.SubmitAudioRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("malformed audio payload"))
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

	jobID, err := h.adapter.SubmitAudio(c.Request().Context(), sessionID, questionID, req.AudioURL)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, map[string]string{"transcript_id": jobID})
}

// HandleCompleted receives AssemblyAI's completion callback and routes the
// finished transcript to its session.
func (h *TranscriptWebhook) HandleCompleted(c echo.Context) error {
	if h.token != "" && c.Request().Header.Get(transcriptTokenHeader) != h.token {
		h.logger.Warn("transcript webhook token rejected",
			zap.String("request_id", getRequestID(c)),
		)
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated())
	}

	var req sessiondto.TranscriptWebhookRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("malformed transcript payload"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	if req.Status != "completed" {
		h.logger.Info("transcript webhook ignored",
			zap.String("transcript_id", req.TranscriptID),
			zap.String("status", req.Status),
		)
		return HandleSuccess(h.logger, c, nil)
	}

	if err := h.adapter.HandleCompleted(c.Request().Context(), req.TranscriptID); err != nil {
		h.logger.Error("transcript webhook handler error", zap.Error(err))
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, nil)
}
