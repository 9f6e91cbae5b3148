package session

// StartSessionRequest starts a new interview session
type StartSessionRequest struct {
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
	JobID       string `json:"job_id" validate:"required,uuid"`
	Category    string `json:"category" validate:"omitempty,oneof=introduction behavioral technical situational career"`
}

// CaptureWord is one transcribed word with timing, in seconds
type CaptureWord struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// CaptureWebhookRequest is the payload the speech-capture collaborator posts
// when a capture window ends on the client side.
type CaptureWebhookRequest struct {
	SessionID       string        `json:"session_id" validate:"required,uuid"`
	QuestionID      string        `json:"question_id" validate:"required,uuid"`
	Transcript      string        `json:"transcript"`
	DurationSeconds float64       `json:"duration_seconds" validate:"gte=0"`
	Words           []CaptureWord `json:"words,omitempty"`
	CaptureComplete bool          `json:"capture_complete"`
}

// SubmitAudioRequest hands over a raw answer recording for transcription,
// for capture collaborators that cannot transcribe on their own.
type SubmitAudioRequest struct {
	SessionID  string `json:"session_id" validate:"required,uuid"`
	QuestionID string `json:"question_id" validate:"required,uuid"`
	AudioURL   string `json:"audio_url" validate:"required,url"`
}

// TranscriptWebhookRequest is AssemblyAI's completion callback payload
type TranscriptWebhookRequest struct {
	TranscriptID string `json:"transcript_id" validate:"required"`
	Status       string `json:"status" validate:"required"`
}
