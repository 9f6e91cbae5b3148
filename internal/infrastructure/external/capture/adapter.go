package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
	"github.com/talentwire/interview-orchestrator/internal/usecase/interview"
	"github.com/talentwire/interview-orchestrator/pkg/speech"
)

// jobTTL bounds how long a submitted transcription may stay outstanding
const jobTTL = time.Hour

// Ingestor accepts a finished capture for a live session
type Ingestor interface {
	IngestCapture(sessionID uuid.UUID, capture interview.CapturedResponse) error
}

// pendingJob maps an AssemblyAI transcript id back to its capture window
type pendingJob struct {
	SessionID  uuid.UUID `json:"session_id"`
	QuestionID uuid.UUID `json:"question_id"`
}

// Adapter turns an answer recording URL into a captured response. Deployments
// whose capture layer produces raw audio submit it here; transcription runs at
// AssemblyAI and the completed transcript is fed into the same ingestion entry
// point the direct capture webhook uses.
type Adapter struct {
	submitter   *speech.AssemblyAIClient
	transcripts *aai.Client
	ingestor    Ingestor
	rdb         *redis.Client
	webhookURL   string
	webhookToken string
	logger       *zap.Logger
}

// NewAdapter creates a transcription adapter. webhookURL is the public
// address AssemblyAI calls back on completion; webhookToken authenticates
// those callbacks.
func NewAdapter(apiKey, webhookURL, webhookToken string, ingestor Ingestor, rdb *redis.Client, logger *zap.Logger) *Adapter {
	return &Adapter{
		submitter:    speech.NewAssemblyAIClient(apiKey),
		transcripts:  aai.NewClient(apiKey),
		ingestor:     ingestor,
		rdb:          rdb,
		webhookURL:   webhookURL,
		webhookToken: webhookToken,
		logger:       logger,
	}
}

// SubmitAudio sends an answer recording for transcription. Returns the
// transcript job id; the result arrives through HandleCompleted.
func (a *Adapter) SubmitAudio(ctx context.Context, sessionID, questionID uuid.UUID, audioURL string) (string, error) {
	jobID, err := a.submitter.TranscribeAudio(ctx, audioURL, a.webhookURL, "X-Transcript-Token", a.webhookToken, map[string]string{
		"session_id":  sessionID.String(),
		"question_id": questionID.String(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to submit audio for transcription: %w", err)
	}

	payload, err := json.Marshal(pendingJob{SessionID: sessionID, QuestionID: questionID})
	if err != nil {
		return "", err
	}
	if err := a.rdb.Set(ctx, jobKey(jobID), payload, jobTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to record pending transcription job: %w", err)
	}

	a.logger.Info("audio submitted for transcription",
		zap.String("session_id", sessionID.String()),
		zap.String("question_id", questionID.String()),
		zap.String("transcript_id", jobID),
	)
	return jobID, nil
}

// HandleCompleted fetches a finished transcript and routes it to the session
// that submitted it. Unknown transcript ids are rejected; the pending mapping
// is removed only after a successful handoff.
func (a *Adapter) HandleCompleted(ctx context.Context, transcriptID string) error {
	raw, err := a.rdb.Get(ctx, jobKey(transcriptID)).Bytes()
	if err == redis.Nil {
		return fmt.Errorf("unknown transcript job %s", transcriptID)
	}
	if err != nil {
		return fmt.Errorf("failed to load pending transcription job: %w", err)
	}
	var job pendingJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return fmt.Errorf("corrupt pending transcription job %s: %w", transcriptID, err)
	}

	transcript, err := a.transcripts.Transcripts.Get(ctx, transcriptID)
	if err != nil {
		return fmt.Errorf("failed to fetch transcript: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return fmt.Errorf("assemblyai error for transcript %s: %s", transcriptID, msg)
	}
	if transcript.Status != aai.TranscriptStatusCompleted {
		return fmt.Errorf("transcript %s not completed yet: %s", transcriptID, transcript.Status)
	}

	capture := interview.CapturedResponse{
		QuestionID:      job.QuestionID,
		CaptureComplete: true,
	}
	if transcript.Text != nil {
		capture.Transcript = *transcript.Text
	}
	if transcript.AudioDuration != nil {
		capture.DurationSeconds = *transcript.AudioDuration
	}
	if len(transcript.Words) > 0 {
		words := make([]entities.WordTimestamp, 0, len(transcript.Words))
		for _, w := range transcript.Words {
			word := entities.WordTimestamp{}
			if w.Text != nil {
				word.Word = *w.Text
			}
			if w.Start != nil {
				word.Start = float64(*w.Start) / 1000.0 // ms to seconds
			}
			if w.End != nil {
				word.End = float64(*w.End) / 1000.0
			}
			if w.Confidence != nil {
				word.Confidence = *w.Confidence
			}
			words = append(words, word)
		}
		capture.Words = words
	}

	if err := a.ingestor.IngestCapture(job.SessionID, capture); err != nil {
		return err
	}

	if err := a.rdb.Del(ctx, jobKey(transcriptID)).Err(); err != nil {
		a.logger.Warn("failed to clear pending transcription job",
			zap.String("transcript_id", transcriptID),
			zap.Error(err),
		)
	}

	a.logger.Info("transcription ingested",
		zap.String("session_id", job.SessionID.String()),
		zap.String("question_id", job.QuestionID.String()),
		zap.String("transcript_id", transcriptID),
	)
	return nil
}

func jobKey(transcriptID string) string {
	return "capture:job:" + transcriptID
}
