package presenter

import (
	"encoding/json"

	"github.com/talentwire/interview-orchestrator/internal/adapter/dto/session"
	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// ToSessionResponse converts an InterviewSession entity to its DTO
func ToSessionResponse(s *entities.InterviewSession) *session.SessionResponse {
	if s == nil {
		return nil
	}

	resp := &session.SessionResponse{
		ID:             s.ID.String(),
		CandidateID:    s.CandidateID.String(),
		JobID:          s.JobID.String(),
		Category:       s.Category,
		Phase:          string(s.Phase),
		QuestionIndex:  s.QuestionIndex,
		QuestionCount:  s.QuestionCount,
		OverallScore:   s.OverallScore,
		AudioOnlyRetry: s.AudioOnlyRetry,
		CreatedAt:      s.CreatedAt,
		ActivatedAt:    s.ActivatedAt,
		FinishedAt:     s.FinishedAt,
	}
	if s.AbortedFor != nil {
		reason := string(*s.AbortedFor)
		resp.AbortedFor = &reason
	}
	return resp
}

// ToSessionListResponse converts a slice of sessions to DTOs
func ToSessionListResponse(sessions []*entities.InterviewSession) []*session.SessionResponse {
	out := make([]*session.SessionResponse, len(sessions))
	for i, s := range sessions {
		out[i] = ToSessionResponse(s)
	}
	return out
}

// ToReportResponse converts a SessionReport entity to its DTO
func ToReportResponse(r *entities.SessionReport) *session.ReportResponse {
	if r == nil {
		return nil
	}

	resp := &session.ReportResponse{
		ID:           r.ID.String(),
		SessionID:    r.SessionID.String(),
		OverallScore: r.OverallScore,
		Averages: session.MetricAveragesResponse{
			Relevance:       r.Averages.Relevance,
			Clarity:         r.Averages.Clarity,
			Completeness:    r.Averages.Completeness,
			Professionalism: r.Averages.Professionalism,
		},
		Trend:           string(r.Trend),
		TopStrength:     r.TopStrength,
		TopWeakness:     r.TopWeakness,
		IsPartial:       r.IsPartial,
		ScoredResponses: r.ScoredResponses,
		CreatedAt:       r.CreatedAt,
	}

	if len(r.Recommendations) > 0 {
		json.Unmarshal(r.Recommendations, &resp.Recommendations)
	}
	if len(r.ResponseScores) > 0 {
		var scores []entities.ResponseScore
		if err := json.Unmarshal(r.ResponseScores, &scores); err == nil {
			resp.ResponseScores = make([]session.ResponseScoreResponse, len(scores))
			for i, sc := range scores {
				resp.ResponseScores[i] = session.ResponseScoreResponse{
					Relevance:       sc.Relevance,
					Clarity:         sc.Clarity,
					Completeness:    sc.Completeness,
					Professionalism: sc.Professionalism,
					Overall:         sc.Overall,
					FillerCount:     sc.FillerCount,
					Strengths:       sc.Strengths,
					Improvements:    sc.Improvements,
				}
			}
		}
	}
	return resp
}
