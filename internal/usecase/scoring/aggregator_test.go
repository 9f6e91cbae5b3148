package scoring

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

func scoreWithOverall(overall float64) entities.ResponseScore {
	return entities.ResponseScore{
		Relevance:       overall,
		Clarity:         overall,
		Completeness:    overall,
		Professionalism: overall,
		Overall:         overall,
	}
}

func TestAggregate_EmptyScores(t *testing.T) {
	report := NewAggregator().Aggregate(uuid.New(), nil, false)

	if report.OverallScore != nil {
		t.Fatalf("expected nil overall for empty session, got %v", *report.OverallScore)
	}
	if report.Trend != entities.TrendFlat {
		t.Fatalf("expected flat trend, got %s", report.Trend)
	}
	if report.ScoredResponses != 0 {
		t.Fatalf("expected zero scored responses, got %d", report.ScoredResponses)
	}
}

func TestAggregate_MeanOverall(t *testing.T) {
	scores := []entities.ResponseScore{
		scoreWithOverall(60),
		scoreWithOverall(70),
		scoreWithOverall(80),
	}
	report := NewAggregator().Aggregate(uuid.New(), scores, false)

	if report.OverallScore == nil || *report.OverallScore != 70 {
		t.Fatalf("expected overall 70, got %v", report.OverallScore)
	}
}

func TestAggregate_DecliningTrend(t *testing.T) {
	scores := []entities.ResponseScore{
		scoreWithOverall(85),
		scoreWithOverall(85),
		scoreWithOverall(55),
		scoreWithOverall(55),
		scoreWithOverall(55),
	}
	report := NewAggregator().Aggregate(uuid.New(), scores, false)

	if report.Trend != entities.TrendDeclining {
		t.Fatalf("expected declining trend, got %s", report.Trend)
	}
}

func TestAggregate_ImprovingTrend(t *testing.T) {
	scores := []entities.ResponseScore{
		scoreWithOverall(50),
		scoreWithOverall(55),
		scoreWithOverall(75),
		scoreWithOverall(80),
	}
	report := NewAggregator().Aggregate(uuid.New(), scores, false)

	if report.Trend != entities.TrendImproving {
		t.Fatalf("expected improving trend, got %s", report.Trend)
	}
}

func TestAggregate_FlatWithinThreshold(t *testing.T) {
	scores := []entities.ResponseScore{
		scoreWithOverall(70),
		scoreWithOverall(72),
	}
	report := NewAggregator().Aggregate(uuid.New(), scores, false)

	if report.Trend != entities.TrendFlat {
		t.Fatalf("expected flat trend, got %s", report.Trend)
	}
}

func TestAggregate_StrengthAndWeakness(t *testing.T) {
	scores := []entities.ResponseScore{
		{Relevance: 90, Clarity: 60, Completeness: 75, Professionalism: 80, Overall: 76},
		{Relevance: 88, Clarity: 50, Completeness: 70, Professionalism: 85, Overall: 73},
	}
	report := NewAggregator().Aggregate(uuid.New(), scores, false)

	if report.TopStrength != "relevance" {
		t.Fatalf("expected relevance as top strength, got %s", report.TopStrength)
	}
	if report.TopWeakness != "clarity" {
		t.Fatalf("expected clarity as top weakness, got %s", report.TopWeakness)
	}

	var recs []string
	if err := json.Unmarshal(report.Recommendations, &recs); err != nil {
		t.Fatalf("failed to decode recommendations: %v", err)
	}
	if len(recs) == 0 || recs[0] != recommendations["clarity"] {
		t.Fatalf("expected clarity recommendation first, got %v", recs)
	}
}

func TestAggregate_PartialSession(t *testing.T) {
	scores := []entities.ResponseScore{scoreWithOverall(65)}
	report := NewAggregator().Aggregate(uuid.New(), scores, true)

	if !report.IsPartial {
		t.Fatalf("expected partial report")
	}
	var recs []string
	if err := json.Unmarshal(report.Recommendations, &recs); err != nil {
		t.Fatalf("failed to decode recommendations: %v", err)
	}
	found := false
	for _, r := range recs {
		if r == partialNote {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected partial note in recommendations %v", recs)
	}
}
