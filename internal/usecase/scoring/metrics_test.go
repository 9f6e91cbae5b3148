package scoring

import (
	"strings"
	"testing"
)

func TestExtract_WordCountAndWPM(t *testing.T) {
	transcript := strings.TrimSpace(strings.Repeat("word ", 30))
	bundle := Extract(transcript, 15)

	if bundle.WordCount != 30 {
		t.Fatalf("expected 30 words got %d", bundle.WordCount)
	}
	if bundle.WordsPerMinute != 120 {
		t.Fatalf("expected 120 wpm got %f", bundle.WordsPerMinute)
	}
}

func TestExtract_FillerRatio(t *testing.T) {
	bundle := Extract("um I built um the service like really fast um today", 10)

	if bundle.FillerCount != 4 {
		t.Fatalf("expected 4 fillers got %d", bundle.FillerCount)
	}
	if bundle.FillerRatio <= 0.3 || bundle.FillerRatio >= 0.45 {
		t.Fatalf("unexpected filler ratio %f", bundle.FillerRatio)
	}
}

func TestExtract_PolarityDirection(t *testing.T) {
	positive := Extract("it was a great success and the team achieved excellent results", 10)
	negative := Extract("the project failed badly and the rollout was a mistake", 10)

	if positive.Polarity <= 0 {
		t.Fatalf("expected positive polarity got %f", positive.Polarity)
	}
	if negative.Polarity >= 0 {
		t.Fatalf("expected negative polarity got %f", negative.Polarity)
	}
}

func TestExtract_ConfidenceRatio(t *testing.T) {
	neutral := Extract("the system processes requests and stores records", 10)
	if neutral.ConfidenceRatio != 0.5 {
		t.Fatalf("expected neutral confidence 0.5 got %f", neutral.ConfidenceRatio)
	}

	confident := Extract("I definitely delivered the project and I am absolutely sure it worked", 10)
	if confident.ConfidenceRatio <= 0.5 {
		t.Fatalf("expected confident ratio above 0.5 got %f", confident.ConfidenceRatio)
	}
}

func TestExtract_StructureRewardsMarkers(t *testing.T) {
	structured := Extract("First I analyzed the problem carefully. Then I designed a solution with the team. Finally we shipped the result to production.", 30)
	rambling := Extract("stuff happened and and and more and more and and and and", 30)

	if structured.StructureScore <= rambling.StructureScore {
		t.Fatalf("structured %f should beat rambling %f", structured.StructureScore, rambling.StructureScore)
	}
}

func TestExtract_EmptyTranscript(t *testing.T) {
	bundle := Extract("", 10)
	if bundle.WordCount != 0 || bundle.WordsPerMinute != 0 || bundle.FillerRatio != 0 {
		t.Fatalf("expected zero bundle got %+v", bundle)
	}
}

func TestExtract_ZeroDuration(t *testing.T) {
	bundle := Extract("a few words here", 0)
	if bundle.WordsPerMinute != 0 {
		t.Fatalf("expected zero wpm with zero duration got %f", bundle.WordsPerMinute)
	}
}

func TestExtractKeywords_SkipsStopwordsAndFillers(t *testing.T) {
	keywords := ExtractKeywords("um tell me about the distributed systems you like built")
	for _, k := range keywords {
		if k == "um" || k == "the" || k == "like" || k == "tell" {
			t.Fatalf("keyword list contains excluded token %q", k)
		}
	}
	found := false
	for _, k := range keywords {
		if k == "distributed" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'distributed' in keywords %v", keywords)
	}
}
