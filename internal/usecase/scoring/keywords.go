package scoring

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords excluded from keyword extraction
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "can": {}, "did": {}, "do": {}, "for": {}, "from": {},
	"had": {}, "has": {}, "have": {}, "how": {}, "i": {}, "if": {}, "in": {},
	"is": {}, "it": {}, "its": {}, "me": {}, "my": {}, "not": {}, "of": {},
	"on": {}, "or": {}, "our": {}, "so": {}, "tell": {}, "that": {}, "the": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "they": {}, "this": {},
	"to": {}, "us": {}, "was": {}, "we": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "who": {}, "why": {}, "will": {}, "with": {},
	"would": {}, "you": {}, "your": {}, "about": {}, "please": {},
}

// tokenize lowercases text and splits it into words, stripping punctuation
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\'' && r != '-'
	})
}

// normalizeToken trims a trivial plural suffix so "systems" and "system"
// count as the same keyword
func normalizeToken(tok string) string {
	if len(tok) > 3 && strings.HasSuffix(tok, "s") && !strings.HasSuffix(tok, "ss") {
		return tok[:len(tok)-1]
	}
	return tok
}

// ExtractKeywords returns the sorted set of content words in text
func ExtractKeywords(text string) []string {
	seen := make(map[string]struct{})
	for _, tok := range tokenize(text) {
		if len(tok) < 3 {
			continue
		}
		if _, skip := stopwords[tok]; skip {
			continue
		}
		if _, skip := fillerWords[tok]; skip {
			continue
		}
		seen[normalizeToken(tok)] = struct{}{}
	}
	keywords := make([]string, 0, len(seen))
	for k := range seen {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return keywords
}

// keywordOverlap returns how many of the question keywords appear in the
// response keyword set
func keywordOverlap(questionKeywords, responseKeywords []string) int {
	set := make(map[string]struct{}, len(responseKeywords))
	for _, k := range responseKeywords {
		set[k] = struct{}{}
	}
	overlap := 0
	for _, k := range questionKeywords {
		if _, ok := set[k]; ok {
			overlap++
		}
	}
	return overlap
}
