package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		text     string
		minScore int
		maxScore int
	}{
		{"exact", "Project A", "Project A", 100, 100},
		{"exact ignoring case", "general", "General", 100, 100},
		{"exact ignoring surrounding spaces", " General ", "General", 100, 100},
		{"prefix", "Proj", "Project A", 70, 99},
		{"typo by omission", "Genral", "General", 70, 99},
		{"acronym", "lr", "Leave Requests", 45, 80},
		{"scattered", "gl", "General", 1, 75},
		{"not a subsequence", "xyz", "General", 0, 0},
		{"longer than text", "Generally", "General", 0, 0},
		{"empty pattern", "", "General", 0, 0},
		{"empty text", "abc", "", 0, 0},
		{"unicode", "업무", "업무 보고", 70, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Match(tt.pattern, tt.text)
			assert.GreaterOrEqual(t, score, tt.minScore)
			assert.LessOrEqual(t, score, tt.maxScore)
		})
	}
}

func TestMatchPrefersPrefixAndContiguity(t *testing.T) {
	assert.Greater(t, Match("rep", "Reports"), Match("rep", "Leave Requests"))
	assert.Greater(t, Match("alex", "Alex Kim"), Match("alex", "Morgan Alexander Yoon"))
	assert.Greater(t, Match("work", "Work"), Match("work", "Workshop"))
}

func TestMatchMany(t *testing.T) {
	texts := []string{"General", "Leave Requests", "Project A", "Project B"}

	results := MatchMany("proj", texts, 50)
	if assert.Len(t, results, 2) {
		assert.Equal(t, "Project A", results[0].Text)
		assert.Equal(t, 2, results[0].Index)
		assert.Equal(t, "Project B", results[1].Text)
		assert.Equal(t, results[0].Score, results[1].Score)
	}

	assert.Empty(t, MatchMany("zzz", texts, 0))
}

func TestSuggest(t *testing.T) {
	candidates := []string{"General", "Leave Requests", "Project A"}

	got, ok := Suggest("Genral", candidates)
	assert.True(t, ok)
	assert.Equal(t, "General", got)

	got, ok = Suggest("leave", candidates)
	assert.True(t, ok)
	assert.Equal(t, "Leave Requests", got)

	_, ok = Suggest("Finance", candidates)
	assert.False(t, ok)

	_, ok = Suggest("General", nil)
	assert.False(t, ok)
}
