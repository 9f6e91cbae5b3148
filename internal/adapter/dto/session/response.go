package session

import "time"

// SessionResponse describes one interview session
type SessionResponse struct {
	ID             string     `json:"id"`
	CandidateID    string     `json:"candidate_id"`
	JobID          string     `json:"job_id"`
	Category       string     `json:"category"`
	Phase          string     `json:"phase"`
	QuestionIndex  int        `json:"question_index"`
	QuestionCount  int        `json:"question_count"`
	OverallScore   *float64   `json:"overall_score,omitempty"`
	AbortedFor     *string    `json:"aborted_for,omitempty"`
	AudioOnlyRetry bool       `json:"audio_only_retry"`
	CreatedAt      time.Time  `json:"created_at"`
	ActivatedAt    *time.Time `json:"activated_at,omitempty"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

// PeerToken is the credential a peer presents to the signaling transport
type PeerToken struct {
	PeerID string `json:"peer_id"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}

// StartSessionResponse carries the new session plus signaling credentials
type StartSessionResponse struct {
	Session          *SessionResponse `json:"session"`
	RoomID           string           `json:"room_id"`
	CandidateToken   *PeerToken       `json:"candidate_token"`
	InterviewerToken *PeerToken       `json:"interviewer_token"`
}

// MetricAveragesResponse holds session-wide sub-metric averages
type MetricAveragesResponse struct {
	Relevance       float64 `json:"relevance"`
	Clarity         float64 `json:"clarity"`
	Completeness    float64 `json:"completeness"`
	Professionalism float64 `json:"professionalism"`
}

// ResponseScoreResponse is one scored answer within a report
type ResponseScoreResponse struct {
	Relevance       float64  `json:"relevance"`
	Clarity         float64  `json:"clarity"`
	Completeness    float64  `json:"completeness"`
	Professionalism float64  `json:"professionalism"`
	Overall         float64  `json:"overall"`
	FillerCount     int      `json:"filler_count"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
}

// ReportResponse is the aggregated session report
type ReportResponse struct {
	ID              string                  `json:"id"`
	SessionID       string                  `json:"session_id"`
	OverallScore    *float64                `json:"overall_score"`
	Averages        MetricAveragesResponse  `json:"averages"`
	Trend           string                  `json:"trend"`
	TopStrength     string                  `json:"top_strength"`
	TopWeakness     string                  `json:"top_weakness"`
	Recommendations []string                `json:"recommendations"`
	ResponseScores  []ResponseScoreResponse `json:"response_scores"`
	IsPartial       bool                    `json:"is_partial"`
	ScoredResponses int                     `json:"scored_responses"`
	CreatedAt       time.Time               `json:"created_at"`
}
