package formweld

import (
	"strings"
	"unicode"
)

// Confidence thresholds for automatic placeholder-to-column matching.
const (
	// minMatchConfidence is the floor below which no match is reported.
	minMatchConfidence = 0.5
	// reviewConfidence flags accepted matches below this score for review.
	reviewConfidence = 0.7
)

// MatchStrategy identifies which scoring strategy produced a match
type MatchStrategy int

const (
	StrategyNone MatchStrategy = iota
	StrategyExact
	StrategyContainment
	StrategyWordOverlap
	StrategyEditDistance
	StrategyAcronym
)

func (s MatchStrategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategyContainment:
		return "containment"
	case StrategyWordOverlap:
		return "word-overlap"
	case StrategyEditDistance:
		return "edit-distance"
	case StrategyAcronym:
		return "acronym"
	default:
		return "none"
	}
}

// MatchResult is the outcome of matching one placeholder name against a set
// of candidate column names. ColumnIndex is -1 when no candidate reached the
// acceptance threshold.
type MatchResult struct {
	ColumnIndex int
	Confidence  float64
	Strategy    MatchStrategy
}

// Found reports whether a column was matched
func (m MatchResult) Found() bool {
	return m.ColumnIndex >= 0
}

// NeedsReview reports whether an accepted match scored below the review
// threshold. Advisory only; it never blocks the mapping.
func (m MatchResult) NeedsReview() bool {
	return m.Found() && m.Confidence < reviewConfidence
}

// fieldNameDelimiters are stripped during normalization and used for word
// splitting.
func isFieldNameDelimiter(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}

// normalizeFieldName lowercases a name and strips delimiter characters
func normalizeFieldName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if isFieldNameDelimiter(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitFieldWords splits a name on delimiters into lowercased words longer
// than two characters.
func splitFieldWords(name string) []string {
	fields := strings.FieldsFunc(name, isFieldNameDelimiter)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			words = append(words, strings.ToLower(f))
		}
	}
	return words
}

// acronymOf collects the uppercase letters of the original, unnormalized name
func acronymOf(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FindBestMatch scores a placeholder name against every candidate column
// name using a cascade of strategies and returns the highest-confidence
// candidate. Exact ties go to the strategy declared first, then to the
// earlier column. Pure and deterministic for identical inputs.
func FindBestMatch(placeholderName string, columns []string) MatchResult {
	return findBestMatch(placeholderName, columns, minMatchConfidence)
}

func findBestMatch(placeholderName string, columns []string, minConfidence float64) MatchResult {
	best := MatchResult{ColumnIndex: -1, Strategy: StrategyNone}

	strategies := []struct {
		strategy MatchStrategy
		score    func(placeholder, column string) float64
	}{
		{StrategyExact, scoreExact},
		{StrategyContainment, scoreContainment},
		{StrategyWordOverlap, scoreWordOverlap},
		{StrategyEditDistance, scoreEditDistance},
		{StrategyAcronym, scoreAcronym},
	}

	for _, s := range strategies {
		for i, column := range columns {
			confidence := s.score(placeholderName, column)
			if confidence > best.Confidence {
				best = MatchResult{
					ColumnIndex: i,
					Confidence:  confidence,
					Strategy:    s.strategy,
				}
			}
		}
	}

	if best.Confidence < minConfidence {
		return MatchResult{ColumnIndex: -1, Strategy: StrategyNone}
	}

	return best
}

// scoreExact returns 1.0 when both names normalize to the same string
func scoreExact(placeholder, column string) float64 {
	if normalizeFieldName(placeholder) == normalizeFieldName(column) {
		return 1.0
	}
	return 0
}

// scoreContainment scores one normalized name containing the other. The base
// score decays with the length difference and is floored, so a short token
// buried in a long header still scores but never outranks a tight fit.
func scoreContainment(placeholder, column string) float64 {
	p := normalizeFieldName(placeholder)
	c := normalizeFieldName(column)
	if p == "" || c == "" || p == c {
		return 0
	}

	if strings.Contains(c, p) {
		confidence := 0.9 - 0.05*float64(len(c)-len(p))
		if confidence < 0.8 {
			confidence = 0.8
		}
		return confidence
	}

	if len(c) > 2 && strings.Contains(p, c) {
		confidence := 0.85 - 0.03*float64(len(p)-len(c))
		if confidence < 0.75 {
			confidence = 0.75
		}
		return confidence
	}

	return 0
}

// scoreWordOverlap scores shared words between the two names. Each
// placeholder word contributes the weight of its best counterpart: 1.0 for
// an exact word, 0.7 for a substring word, 0.6 for a near word by edit
// similarity.
func scoreWordOverlap(placeholder, column string) float64 {
	pWords := splitFieldWords(placeholder)
	cWords := splitFieldWords(column)
	if len(pWords) == 0 || len(cWords) == 0 {
		return 0
	}

	var sum float64
	for _, pw := range pWords {
		var bestWeight float64
		for _, cw := range cWords {
			var weight float64
			switch {
			case pw == cw:
				weight = 1.0
			case strings.Contains(cw, pw) || strings.Contains(pw, cw):
				weight = 0.7
			case levenshteinSimilarity(pw, cw) > 0.8:
				weight = 0.6
			}
			if weight > bestWeight {
				bestWeight = weight
			}
		}
		sum += bestWeight
	}

	denominator := len(pWords)
	if len(cWords) > denominator {
		denominator = len(cWords)
	}

	confidence := sum / float64(denominator) * 0.8
	if confidence <= 0.4 {
		return 0
	}
	return confidence
}

// scoreEditDistance scores whole-name similarity on the normalized forms
func scoreEditDistance(placeholder, column string) float64 {
	p := normalizeFieldName(placeholder)
	c := normalizeFieldName(column)
	if p == "" || c == "" {
		return 0
	}

	similarity := levenshteinSimilarity(p, c)
	if similarity <= 0.5 {
		return 0
	}
	return similarity * 0.7
}

// scoreAcronym compares the uppercase-letter acronyms of the original names
func scoreAcronym(placeholder, column string) float64 {
	pAcr := acronymOf(placeholder)
	cAcr := acronymOf(column)
	if len(pAcr) < 2 || len(cAcr) < 2 {
		return 0
	}
	if pAcr == cAcr {
		return 0.75
	}
	return 0
}
