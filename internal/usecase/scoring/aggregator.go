package scoring

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// trendThreshold is the minimum gap between session halves before the trend
// is reported as anything other than flat
const trendThreshold = 5.0

// averageFloor below which a sub-metric earns a recommendation
const recommendationFloor = 60.0

var recommendations = map[string]string{
	"relevance":       "Practice restating the question before answering to stay on topic.",
	"clarity":         "Work on pacing and reducing filler words; short pauses beat fillers.",
	"completeness":    "Use a structure like situation-action-result to give fuller answers.",
	"professionalism": "Swap casual phrasing for neutral, workplace-appropriate language.",
}

const partialNote = "The session did not complete; results cover only the questions answered."

// Aggregator combines per-response scores into a session report
type Aggregator struct{}

// NewAggregator creates a session aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate produces the session report for an ordered list of response
// scores. An empty list yields a report with a nil overall score so "no data"
// stays distinguishable from "scored zero".
func (a *Aggregator) Aggregate(sessionID uuid.UUID, scores []entities.ResponseScore, isPartial bool) *entities.SessionReport {
	report := &entities.SessionReport{
		ID:              uuid.New(),
		SessionID:       sessionID,
		Trend:           entities.TrendFlat,
		IsPartial:       isPartial,
		ScoredResponses: len(scores),
	}

	recs := []string{}
	if len(scores) > 0 {
		overall := meanOverall(scores)
		report.OverallScore = &overall
		report.Averages = metricAverages(scores)
		report.Trend = trend(scores)
		report.TopStrength, report.TopWeakness = extremes(report.Averages)
		recs = recommend(report.Averages, report.TopWeakness)
	}
	if isPartial {
		recs = append(recs, partialNote)
	}

	report.Recommendations = mustJSON(recs)
	report.ResponseScores = mustJSON(scores)
	return report
}

func meanOverall(scores []entities.ResponseScore) float64 {
	sum := 0.0
	for _, s := range scores {
		sum += s.Overall
	}
	return sum / float64(len(scores))
}

func metricAverages(scores []entities.ResponseScore) entities.MetricAverages {
	var avg entities.MetricAverages
	for _, s := range scores {
		avg.Relevance += s.Relevance
		avg.Clarity += s.Clarity
		avg.Completeness += s.Completeness
		avg.Professionalism += s.Professionalism
	}
	n := float64(len(scores))
	avg.Relevance /= n
	avg.Clarity /= n
	avg.Completeness /= n
	avg.Professionalism /= n
	return avg
}

// trend compares the first half of the session against the second
func trend(scores []entities.ResponseScore) entities.TrendDirection {
	if len(scores) < 2 {
		return entities.TrendFlat
	}
	mid := len(scores) / 2
	first := meanOverall(scores[:mid])
	second := meanOverall(scores[mid:])
	switch {
	case second-first > trendThreshold:
		return entities.TrendImproving
	case first-second > trendThreshold:
		return entities.TrendDeclining
	default:
		return entities.TrendFlat
	}
}

// extremes returns the highest and lowest averaged sub-metrics. Ties resolve
// in a fixed metric order so aggregation stays deterministic.
func extremes(avg entities.MetricAverages) (best, worst string) {
	type metric struct {
		name  string
		value float64
	}
	ordered := []metric{
		{"relevance", avg.Relevance},
		{"clarity", avg.Clarity},
		{"completeness", avg.Completeness},
		{"professionalism", avg.Professionalism},
	}
	best, worst = ordered[0].name, ordered[0].name
	bestV, worstV := ordered[0].value, ordered[0].value
	for _, m := range ordered[1:] {
		if m.value > bestV {
			best, bestV = m.name, m.value
		}
		if m.value < worstV {
			worst, worstV = m.name, m.value
		}
	}
	return best, worst
}

// recommend maps weak sub-metrics to recommendation text. The weakest metric
// always gets its recommendation; other metrics only when below the floor.
func recommend(avg entities.MetricAverages, weakest string) []string {
	values := map[string]float64{
		"relevance":       avg.Relevance,
		"clarity":         avg.Clarity,
		"completeness":    avg.Completeness,
		"professionalism": avg.Professionalism,
	}
	recs := []string{recommendations[weakest]}
	for _, name := range []string{"relevance", "clarity", "completeness", "professionalism"} {
		if name == weakest {
			continue
		}
		if values[name] < recommendationFloor {
			recs = append(recs, recommendations[name])
		}
	}
	return recs
}

func mustJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(b)
}
