package title

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers from titles (e.g., "2", "3")
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// MatchConfidence represents the confidence level of a title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult represents the result of a fuzzy title match.
type MatchResult struct {
	Title      string          // The matched candidate title
	Index      int             // Index into the candidates slice, -1 when no match
	Score      float64         // Jaro-Winkler similarity score (0.0-1.0)
	Confidence MatchConfidence // Confidence level based on score
}

// Match finds the best match for a wanted title against candidate titles.
// Uses Jaro-Winkler similarity which favors prefix matches (good for media
// titles), with a bonus when sequence numbers agree so "Shrek 2" never matches
// "Shrek" over "Shrek 2".
func Match(wanted string, candidates []string) MatchResult {
	if len(candidates) == 0 {
		return MatchResult{Index: -1, Confidence: ConfidenceNone}
	}

	normalizedWanted := Clean(wanted)
	wantedNumbers := extractNumbers(normalizedWanted)

	best := MatchResult{Index: -1, Confidence: ConfidenceNone}

	for i, candidate := range candidates {
		normalizedCandidate := Clean(candidate)

		score := float64(edlib.JaroWinklerSimilarity(normalizedWanted, normalizedCandidate))

		candidateNumbers := extractNumbers(normalizedCandidate)
		score = adjustScoreForNumbers(score, wantedNumbers, candidateNumbers)

		if score > best.Score {
			best.Title = candidate
			best.Index = i
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Confidence = ConfidenceNone
		best.Title = ""
		best.Index = -1
	}

	return best
}

func extractNumbers(title string) []string {
	return numberRegex.FindAllString(title, -1)
}

// adjustScoreForNumbers modifies the similarity score based on sequence number
// matching. Matching numbers get a small bonus, mismatched numbers a penalty.
func adjustScoreForNumbers(score float64, wanted, candidate []string) float64 {
	if len(wanted) == 0 && len(candidate) == 0 {
		return score
	}
	if numbersEqual(wanted, candidate) {
		score += 0.05
		if score > 1.0 {
			score = 1.0
		}
		return score
	}
	return score * 0.8
}

func numbersEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
