package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MetricBundle holds the independent signals extracted from one response.
// It is derived, never persisted on its own, and recomputing it from the same
// response always yields identical values.
type MetricBundle struct {
	WordCount       int     `json:"word_count"`
	WordsPerMinute  float64 `json:"words_per_minute"`
	FillerCount     int     `json:"filler_count"`
	FillerRatio     float64 `json:"filler_ratio"`
	Polarity        float64 `json:"polarity"`     // -1..1
	Subjectivity    float64 `json:"subjectivity"` // 0..1
	StructureScore  float64 `json:"structure_score"`
	ConfidenceRatio float64 `json:"confidence_ratio"`
}

// ResponseScore is the scored result for one response. Scoring runs exactly
// once per response; the score is never recomputed.
type ResponseScore struct {
	Relevance       float64  `json:"relevance"`
	Clarity         float64  `json:"clarity"`
	Completeness    float64  `json:"completeness"`
	Professionalism float64  `json:"professionalism"`
	Overall         float64  `json:"overall"`
	FillerCount     int      `json:"filler_count"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
}

// TrendDirection describes how response quality moved across a session
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendFlat      TrendDirection = "flat"
)

// MetricAverages holds session-wide averages per sub-metric
type MetricAverages struct {
	Relevance       float64 `json:"relevance"`
	Clarity         float64 `json:"clarity"`
	Completeness    float64 `json:"completeness"`
	Professionalism float64 `json:"professionalism"`
}

// SessionReport is the final aggregate artifact handed to the persistence
// collaborator when a session completes or aborts.
type SessionReport struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID       uuid.UUID      `json:"session_id" gorm:"type:uuid;not null;uniqueIndex"`
	OverallScore    *float64       `json:"overall_score"` // nil when no responses were scored
	Averages        MetricAverages `json:"averages" gorm:"type:jsonb;serializer:json"`
	Trend           TrendDirection `json:"trend" gorm:"type:varchar(20)"`
	TopStrength     string         `json:"top_strength" gorm:"type:varchar(40)"`
	TopWeakness     string         `json:"top_weakness" gorm:"type:varchar(40)"`
	Recommendations datatypes.JSON `json:"recommendations" gorm:"type:jsonb"`
	ResponseScores  datatypes.JSON `json:"response_scores" gorm:"type:jsonb"`
	IsPartial       bool           `json:"is_partial" gorm:"default:false"`
	ScoredResponses int            `json:"scored_responses"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for SessionReport
func (SessionReport) TableName() string {
	return "session_reports"
}
