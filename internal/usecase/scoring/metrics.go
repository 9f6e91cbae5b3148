package scoring

import (
	"strings"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// Word lists for the metric extractors. These are deliberately small, fixed
// lexicons: the pipeline trades semantic depth for reproducibility.
var (
	fillerWords = map[string]struct{}{
		"um": {}, "uh": {}, "erm": {}, "hmm": {}, "like": {},
		"actually": {}, "basically": {}, "literally": {},
		"kinda": {}, "sorta": {},
	}

	positiveWords = map[string]struct{}{
		"good": {}, "great": {}, "excellent": {}, "success": {}, "successful": {},
		"improved": {}, "improve": {}, "achieved": {}, "enjoy": {}, "enjoyed": {},
		"love": {}, "strong": {}, "effective": {}, "efficient": {}, "reliable": {},
		"proud": {}, "positive": {}, "best": {}, "win": {}, "won": {},
	}

	negativeWords = map[string]struct{}{
		"bad": {}, "poor": {}, "fail": {}, "failed": {}, "failure": {},
		"problem": {}, "difficult": {}, "hard": {}, "wrong": {}, "hate": {},
		"worst": {}, "broken": {}, "slow": {}, "weak": {}, "negative": {},
		"issue": {}, "bug": {}, "mistake": {},
	}

	subjectiveWords = map[string]struct{}{
		"think": {}, "feel": {}, "believe": {}, "opinion": {}, "personally": {},
		"prefer": {}, "seems": {}, "probably": {}, "maybe": {}, "hope": {},
		"guess": {}, "suppose": {},
	}

	confidentWords = map[string]struct{}{
		"confident": {}, "certainly": {}, "definitely": {}, "absolutely": {},
		"sure": {}, "clearly": {}, "always": {}, "proven": {}, "delivered": {},
		"led": {}, "built": {}, "achieved": {},
	}

	hedgeWords = map[string]struct{}{
		"maybe": {}, "perhaps": {}, "might": {}, "possibly": {}, "probably": {},
		"guess": {}, "hopefully": {}, "somewhat": {}, "unsure": {},
	}

	// discourse markers rewarded by the structure score
	structureMarkers = map[string]struct{}{
		"first": {}, "firstly": {}, "second": {}, "secondly": {}, "third": {},
		"then": {}, "next": {}, "finally": {}, "because": {}, "therefore": {},
		"however": {}, "example": {}, "instance": {}, "result": {},
		"conclusion": {}, "overall": {},
	}
)

const (
	// structure scoring
	structureBase          = 40.0
	structureMarkerValue   = 15.0
	structureSentenceValue = 10.0
	structureMax           = 100.0

	// sentence length band considered well-formed
	minSentenceWords = 5
	maxSentenceWords = 30

	// neutral confidence when no confidence language is present
	neutralConfidenceRatio = 0.5
)

// Extract computes the metric bundle for a transcript and spoken duration.
// It is a pure function: the same inputs always produce the same bundle.
func Extract(transcript string, durationSeconds float64) entities.MetricBundle {
	tokens := tokenize(transcript)
	wordCount := len(tokens)

	bundle := entities.MetricBundle{WordCount: wordCount}
	if wordCount == 0 {
		return bundle
	}

	if durationSeconds > 0 {
		bundle.WordsPerMinute = float64(wordCount) / (durationSeconds / 60.0)
	}

	fillers := 0
	positives := 0
	negatives := 0
	subjectives := 0
	confident := 0
	hedges := 0
	markers := 0
	for _, tok := range tokens {
		if _, ok := fillerWords[tok]; ok {
			fillers++
		}
		if _, ok := positiveWords[tok]; ok {
			positives++
		}
		if _, ok := negativeWords[tok]; ok {
			negatives++
		}
		if _, ok := subjectiveWords[tok]; ok {
			subjectives++
		}
		if _, ok := confidentWords[tok]; ok {
			confident++
		}
		if _, ok := hedgeWords[tok]; ok {
			hedges++
		}
		if _, ok := structureMarkers[tok]; ok {
			markers++
		}
	}

	bundle.FillerCount = fillers
	bundle.FillerRatio = float64(fillers) / float64(wordCount)

	if positives+negatives > 0 {
		bundle.Polarity = float64(positives-negatives) / float64(positives+negatives)
	}
	bundle.Subjectivity = clamp01(float64(subjectives+positives+negatives) / float64(wordCount) * 5)

	if confident+hedges > 0 {
		bundle.ConfidenceRatio = float64(confident) / float64(confident+hedges)
	} else {
		bundle.ConfidenceRatio = neutralConfidenceRatio
	}

	bundle.StructureScore = structureScore(transcript, wordCount, markers)

	return bundle
}

// structureScore rewards discourse markers and well-formed sentence lengths
func structureScore(transcript string, wordCount, markers int) float64 {
	score := structureBase
	score += float64(markers) * structureMarkerValue

	sentences := splitSentences(transcript)
	for _, s := range sentences {
		n := len(tokenize(s))
		if n >= minSentenceWords && n <= maxSentenceWords {
			score += structureSentenceValue
		}
	}

	if score > structureMax {
		score = structureMax
	}
	return score
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
