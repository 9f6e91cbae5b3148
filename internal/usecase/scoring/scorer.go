package scoring

import (
	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// Scoring policy. Everything that tunes the score lives here so the policy
// can change without touching extraction logic.
const (
	weightRelevance       = 0.35
	weightClarity         = 0.25
	weightCompleteness    = 0.25
	weightProfessionalism = 0.15

	// relevance
	relevanceFloor = 20.0 // any overlap at all earns at least this

	// clarity
	fillerPenaltyFactor = 1.5
	idealWPMLow         = 120.0
	idealWPMHigh        = 160.0
	wpmBonus            = 5.0
	wpmPenaltySlope     = 0.25 // penalty points per WPM outside the band
	wpmPenaltyCap       = 30.0

	// completeness
	completenessRangeBase = 80.0 // score at the bottom of the expected range
	completenessRangeSpan = 20.0 // spread across the expected range
	verbosityPenaltyCap   = 20.0

	// professionalism
	informalTokenPenalty   = 8.0
	professionalTermBonus  = 2.0
	professionalBonusCap   = 10.0

	// overall
	fillerOverallPerWord = 2.0
	fillerOverallCap     = 20.0

	// strength / improvement thresholds
	strengthThreshold           = 80.0
	professionalismStrengthMin  = 85.0
	improvementThreshold        = 50.0
	professionalismImprovement  = 60.0
)

// expected word-count range per question category
type wordRange struct {
	min, max int
}

var categoryWordRanges = map[entities.QuestionCategory]wordRange{
	entities.CategoryIntroduction: {50, 150},
	entities.CategoryBehavioral:   {80, 200},
	entities.CategoryTechnical:    {80, 250},
	entities.CategorySituational:  {70, 200},
	entities.CategoryCareer:       {50, 150},
}

var defaultWordRange = wordRange{60, 200}

var informalTokens = map[string]struct{}{
	"gonna": {}, "wanna": {}, "gotta": {}, "dunno": {}, "yeah": {}, "nah": {},
	"cool": {}, "awesome": {}, "dude": {}, "crap": {}, "stuff": {},
	"whatever": {}, "ok": {}, "okay": {},
}

var professionalTerms = map[string]struct{}{
	"architecture": {}, "implementation": {}, "infrastructure": {},
	"scalability": {}, "deployment": {}, "optimization": {}, "production": {},
	"stakeholder": {}, "collaboration": {}, "methodology": {}, "requirement": {},
	"maintainability": {}, "observability": {}, "throughput": {}, "latency": {},
}

// Scorer turns a captured response into a response score. It holds no state;
// scoring the same response twice yields an identical result.
type Scorer struct{}

// NewScorer creates a response scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the full response score for one response against its
// question. Degenerate input never fails: an empty transcript produces a
// valid all-zero score.
func (s *Scorer) Score(resp entities.Response, question entities.Question) entities.ResponseScore {
	bundle := Extract(resp.Transcript, resp.DurationSeconds)
	if bundle.WordCount == 0 {
		return entities.ResponseScore{
			Strengths:    []string{},
			Improvements: []string{improvementNoResponse},
		}
	}

	relevance := s.relevance(resp.Transcript, question.Prompt)
	clarity := s.clarity(bundle)
	completeness := s.completeness(bundle, question.Category)
	professionalism := s.professionalism(resp.Transcript)

	overall := weightRelevance*relevance +
		weightClarity*clarity +
		weightCompleteness*completeness +
		weightProfessionalism*professionalism

	fillerPenalty := float64(bundle.FillerCount) * fillerOverallPerWord
	if fillerPenalty > fillerOverallCap {
		fillerPenalty = fillerOverallCap
	}
	overall = clampScore(overall - fillerPenalty)

	score := entities.ResponseScore{
		Relevance:       relevance,
		Clarity:         clarity,
		Completeness:    completeness,
		Professionalism: professionalism,
		Overall:         overall,
		FillerCount:     bundle.FillerCount,
	}
	score.Strengths, score.Improvements = feedback(score)
	return score
}

// relevance scores keyword overlap between question and response
func (s *Scorer) relevance(transcript, prompt string) float64 {
	questionKeywords := ExtractKeywords(prompt)
	if len(questionKeywords) == 0 {
		return 0
	}
	overlap := keywordOverlap(questionKeywords, ExtractKeywords(transcript))
	if overlap == 0 {
		return 0
	}
	score := float64(overlap) / float64(len(questionKeywords)) * 100
	if score < relevanceFloor {
		score = relevanceFloor
	}
	return clampScore(score)
}

// clarity penalizes filler density and pacing outside the ideal band. Pacing
// is measured on non-filler words so filler padding cannot buy the bonus.
func (s *Scorer) clarity(bundle entities.MetricBundle) float64 {
	score := 100 - bundle.FillerRatio*100*fillerPenaltyFactor

	contentWPM := bundle.WordsPerMinute * (1 - bundle.FillerRatio)
	switch {
	case contentWPM >= idealWPMLow && contentWPM <= idealWPMHigh:
		score += wpmBonus
	case contentWPM < idealWPMLow:
		score -= wpmPenalty(idealWPMLow - contentWPM)
	default:
		score -= wpmPenalty(contentWPM - idealWPMHigh)
	}

	return clampScore(score)
}

func wpmPenalty(distance float64) float64 {
	p := distance * wpmPenaltySlope
	if p > wpmPenaltyCap {
		p = wpmPenaltyCap
	}
	return p
}

// completeness scores non-filler word count against the category's expected
// range
func (s *Scorer) completeness(bundle entities.MetricBundle, category entities.QuestionCategory) float64 {
	r, ok := categoryWordRanges[category]
	if !ok {
		r = defaultWordRange
	}

	words := bundle.WordCount - bundle.FillerCount
	switch {
	case words < r.min:
		return clampScore(completenessRangeBase * float64(words) / float64(r.min))
	case words <= r.max:
		position := float64(words-r.min) / float64(r.max-r.min)
		return clampScore(completenessRangeBase + completenessRangeSpan*position)
	default:
		excess := float64(words-r.max) / float64(r.max)
		penalty := excess * verbosityPenaltyCap
		if penalty > verbosityPenaltyCap {
			penalty = verbosityPenaltyCap
		}
		return clampScore(100 - penalty)
	}
}

// professionalism penalizes informal tokens and rewards domain terminology
func (s *Scorer) professionalism(transcript string) float64 {
	informal := 0
	professional := 0
	for _, tok := range tokenize(transcript) {
		if _, ok := informalTokens[tok]; ok {
			informal++
		}
		if _, ok := professionalTerms[normalizeToken(tok)]; ok {
			professional++
		}
	}

	score := 100 - float64(informal)*informalTokenPenalty
	bonus := float64(professional) * professionalTermBonus
	if bonus > professionalBonusCap {
		bonus = professionalBonusCap
	}
	return clampScore(score + bonus)
}

// Feedback labels
const (
	strengthRelevance       = "clearly addressed the question"
	strengthClarity         = "clear and articulate delivery"
	strengthCompleteness    = "well-developed answer"
	strengthProfessionalism = "professional tone"

	improvementRelevance       = "address the question more directly"
	improvementClarity         = "reduce filler words and steady your pacing"
	improvementCompleteness    = "expand your answer with more detail"
	improvementProfessionalism = "use more professional language"
	improvementNoResponse      = "no response captured"
)

func feedback(score entities.ResponseScore) (strengths, improvements []string) {
	strengths = []string{}
	improvements = []string{}

	if score.Relevance >= strengthThreshold {
		strengths = append(strengths, strengthRelevance)
	}
	if score.Clarity >= strengthThreshold {
		strengths = append(strengths, strengthClarity)
	}
	if score.Completeness >= strengthThreshold {
		strengths = append(strengths, strengthCompleteness)
	}
	if score.Professionalism >= professionalismStrengthMin {
		strengths = append(strengths, strengthProfessionalism)
	}

	if score.Relevance < improvementThreshold {
		improvements = append(improvements, improvementRelevance)
	}
	if score.Clarity < improvementThreshold {
		improvements = append(improvements, improvementClarity)
	}
	if score.Completeness < improvementThreshold {
		improvements = append(improvements, improvementCompleteness)
	}
	if score.Professionalism < professionalismImprovement {
		improvements = append(improvements, improvementProfessionalism)
	}
	return strengths, improvements
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
