package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// SuggestThreshold is the lowest score Suggest accepts.
const SuggestThreshold = 45

type MatchResult struct {
	Text  string
	Score int
	Index int
}

// Match scores how well pattern matches text as a case-insensitive
// subsequence, from 0 (no match) to 100 (equal).
func Match(pattern, text string) int {
	p := []rune(strings.ToLower(strings.TrimSpace(pattern)))
	t := []rune(strings.ToLower(strings.TrimSpace(text)))
	if len(p) == 0 || len(t) == 0 {
		return 0
	}
	if string(p) == string(t) {
		return 100
	}
	if len(p) > len(t) {
		return 0
	}

	positions := subsequence(p, t)
	if positions == nil {
		return 0
	}

	score := 40.0
	score += 20.0 * float64(len(p)) / float64(len(t))

	if positions[0] == 0 {
		score += 15.0
	}

	run := longestRun(positions)
	score += 20.0 * float64(run) / float64(len(p))

	if boundaryRatio(t, positions) >= 0.3 {
		score += 8.0
	}

	// gaps between matched runes
	spread := positions[len(positions)-1] - positions[0] + 1 - len(p)
	score -= 2.0 * float64(spread)

	switch {
	case score > 99:
		return 99
	case score < 1:
		return 1
	}
	return int(score)
}

// MatchMany scores every text and keeps those at or above threshold, best first.
func MatchMany(pattern string, texts []string, threshold int) []MatchResult {
	results := make([]MatchResult, 0, len(texts))
	for i, text := range texts {
		if score := Match(pattern, text); score > 0 && score >= threshold {
			results = append(results, MatchResult{Text: text, Score: score, Index: i})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Suggest returns the closest candidate to pattern, if any is close enough.
func Suggest(pattern string, candidates []string) (string, bool) {
	results := MatchMany(pattern, candidates, SuggestThreshold)
	if len(results) == 0 {
		return "", false
	}
	return results[0].Text, true
}

// subsequence returns the text positions of each pattern rune, matched
// greedily left to right, or nil when pattern is not a subsequence.
func subsequence(pattern, text []rune) []int {
	positions := make([]int, 0, len(pattern))
	pi := 0
	for ti := 0; ti < len(text) && pi < len(pattern); ti++ {
		if text[ti] == pattern[pi] {
			positions = append(positions, ti)
			pi++
		}
	}
	if pi < len(pattern) {
		return nil
	}
	return positions
}

func longestRun(positions []int) int {
	best, cur := 1, 1
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 1
		}
	}
	return best
}

// boundaryRatio is the share of matched runes that start a word.
func boundaryRatio(text []rune, positions []int) float64 {
	n := 0
	for _, pos := range positions {
		if pos == 0 || !unicode.IsLetter(text[pos-1]) && !unicode.IsDigit(text[pos-1]) {
			n++
		}
	}
	return float64(n) / float64(len(positions))
}
