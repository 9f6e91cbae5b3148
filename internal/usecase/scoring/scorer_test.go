package scoring

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

func technicalQuestion(prompt string) entities.Question {
	return entities.Question{
		ID:              uuid.New(),
		Prompt:          prompt,
		Category:        entities.CategoryTechnical,
		AllottedSeconds: 120,
	}
}

func response(transcript string, duration float64) entities.Response {
	return entities.Response{
		QuestionID:      uuid.New(),
		Transcript:      transcript,
		DurationSeconds: duration,
		CapturedAt:      time.Now(),
	}
}

func TestScore_Deterministic(t *testing.T) {
	scorer := NewScorer()
	q := technicalQuestion("Describe a production incident you resolved")
	r := response("I resolved a production incident by tracing the failure to a slow database query and fixing the index", 40)

	first := scorer.Score(r, q)
	second := scorer.Score(r, q)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scoring is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestScore_RangeInvariant(t *testing.T) {
	scorer := NewScorer()
	q := technicalQuestion("Explain how you scale a web service")
	transcripts := []string{
		"",
		"um uh um uh um uh",
		"yeah whatever dude it was cool",
		strings.TrimSpace(strings.Repeat("scaling the web service with caching and sharding ", 60)),
		"I scale web services with horizontal sharding, caching layers and load balancing across regions",
	}

	for _, tr := range transcripts {
		score := scorer.Score(response(tr, 30), q)
		for name, v := range map[string]float64{
			"relevance":       score.Relevance,
			"clarity":         score.Clarity,
			"completeness":    score.Completeness,
			"professionalism": score.Professionalism,
			"overall":         score.Overall,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("%s out of range for %q: %f", name, tr, v)
			}
		}
	}
}

func TestScore_FillerMonotonicity(t *testing.T) {
	scorer := NewScorer()
	q := technicalQuestion("Describe your deployment pipeline")
	base := "our deployment pipeline builds the service runs the tests and ships containers to production"

	prevClarity := 101.0
	prevOverall := 101.0
	for fillers := 0; fillers <= 10; fillers += 2 {
		transcript := base + strings.Repeat(" um", fillers)
		score := scorer.Score(response(transcript, 30), q)
		if score.Clarity > prevClarity {
			t.Fatalf("clarity increased with %d fillers: %f > %f", fillers, score.Clarity, prevClarity)
		}
		if score.Overall > prevOverall {
			t.Fatalf("overall increased with %d fillers: %f > %f", fillers, score.Overall, prevOverall)
		}
		prevClarity = score.Clarity
		prevOverall = score.Overall
	}
}

func TestScore_EmptyTranscript(t *testing.T) {
	scorer := NewScorer()
	score := scorer.Score(response("", 0), technicalQuestion("Anything"))

	if score.Overall != 0 || score.Relevance != 0 || score.Clarity != 0 ||
		score.Completeness != 0 || score.Professionalism != 0 {
		t.Fatalf("expected all-zero score, got %+v", score)
	}
	found := false
	for _, imp := range score.Improvements {
		if imp == improvementNoResponse {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q in improvements %v", improvementNoResponse, score.Improvements)
	}
}

// Short but highly relevant technical answer: relevance high, completeness
// dragged down by the low word count, overall lands mid-band.
func TestScore_ShortRelevantTechnicalAnswer(t *testing.T) {
	scorer := NewScorer()
	q := technicalQuestion("Describe your experience with production systems serving users")
	r := response("I have three years of experience with a production e-commerce system serving thousands of users daily", 30)

	score := scorer.Score(r, q)
	if score.Relevance < 70 {
		t.Fatalf("expected high relevance, got %f", score.Relevance)
	}
	if score.Completeness >= 50 {
		t.Fatalf("expected low completeness for 16 words, got %f", score.Completeness)
	}
	if score.Overall < 50 || score.Overall > 70 {
		t.Fatalf("expected overall in 50-70 band, got %f", score.Overall)
	}
}

func TestScore_StrengthsForStrongAnswer(t *testing.T) {
	scorer := NewScorer()
	q := technicalQuestion("Describe the architecture of a service you built and how you scaled it in production")

	// ~90 content words at a pace inside the ideal band
	answer := "I designed the architecture of a payments service and scaled it in production. " +
		"First I split the service into stateless workers so deployment stayed simple. " +
		"Then I added caching in front of the database because read traffic dominated. " +
		"For example one endpoint dropped from two hundred milliseconds to twenty. " +
		"Finally I added monitoring for throughput and latency so regressions surfaced quickly. " +
		"The result was a service that scaled to ten times the traffic with the same infrastructure budget."
	words := len(tokenize(answer))
	duration := float64(words) / 140.0 * 60.0 // 140 wpm

	score := scorer.Score(response(answer, duration), q)
	if len(score.Strengths) == 0 {
		t.Fatalf("expected strengths for a strong answer, got none (score %+v)", score)
	}
	if score.Overall < 70 {
		t.Fatalf("expected strong overall, got %f", score.Overall)
	}
}

func TestScore_InformalLanguagePenalized(t *testing.T) {
	scorer := NewScorer()
	q := technicalQuestion("Describe how you work with a team")

	formal := scorer.Score(response("I coordinate closely with the team and communicate requirements early", 20), q)
	informal := scorer.Score(response("yeah dude it was cool whatever we just did stuff", 20), q)

	if informal.Professionalism >= formal.Professionalism {
		t.Fatalf("informal %f should score below formal %f", informal.Professionalism, formal.Professionalism)
	}
}
