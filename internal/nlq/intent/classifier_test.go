package intent

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectflow-workers/internal/nlq/vocabulary"
)

// ==========================
// Test Helper Functions
// ==========================

func fixtureWords() []vocabulary.ActionWord {
	return []vocabulary.ActionWord{
		{ID: "overdue_tasks", Category: vocabulary.CategoryTasks, Keywords: []string{"overdue tasks", "late tasks"}},
		{ID: "list_tasks", Category: vocabulary.CategoryTasks, Keywords: []string{"my tasks"}, Aliases: []string{"todo"}},
		{ID: "alias_only", Category: vocabulary.CategoryStatus, Keywords: []string{"never present"}, Aliases: []string{"status"}},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestClassifier_VocabularyTier(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name  string
		input string
		words []vocabulary.ActionWord
		want  string
	}{
		{"first supplied entry wins", "my tasks that are overdue tasks", fixtureWords(), "overdue_tasks"},
		{"case insensitive", "LIST MY TASKS", fixtureWords(), "list_tasks"},
		{"order of supplied slice decides", "my tasks and overdue tasks", []vocabulary.ActionWord{fixtureWords()[1], fixtureWords()[0]}, "list_tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.input, tt.words)
			assert.Equal(t, tt.want, got.Intent)
			assert.Equal(t, VocabularyConfidence, got.Confidence)
			assert.Equal(t, SourceVocabulary, got.Source)
		})
	}
}

func TestClassifier_AliasMatchClassifies(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("what is the status", fixtureWords())

	assert.Equal(t, "alias_only", got.Intent)
	assert.Equal(t, VocabularyConfidence, got.Confidence)
	assert.Equal(t, SourceVocabulary, got.Source)
}

func TestClassifier_KeywordBeatsEarlierAlias(t *testing.T) {
	c := NewClassifier()
	words := []vocabulary.ActionWord{fixtureWords()[2], fixtureWords()[0]}

	got := c.Classify("status of the overdue tasks", words)

	assert.Equal(t, "overdue_tasks", got.Intent)
}

func TestClassifier_PatternTier(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		input      string
		want       string
		confidence float64
	}{
		{"tell me about the apollo project", PatternProjectDetails, 0.9},
		{"project overview please", PatternProjectDetails, 0.9},
		{"anything late?", PatternOverdueItems, 0.85},
		{"is the team overloaded", PatternResourceStatus, 0.8},
		{"what is due tomorrow", PatternTimeBased, 0.75},
		{"projects", PatternListProjects, 0.7},
		{"open todos", PatternListTasks, 0.7},
		// earlier patterns beat later ones
		{"late projects", PatternOverdueItems, 0.85},
		{"tasks due today", PatternTimeBased, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := c.Classify(tt.input, nil)
			assert.Equal(t, tt.want, got.Intent)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.Equal(t, SourcePattern, got.Source)
		})
	}
}

func TestClassifier_Unknown(t *testing.T) {
	c := NewClassifier()

	for _, input := range []string{"asdfqwerty nonsense", "", "   ", "hello there"} {
		got := c.Classify(input, vocabulary.DefaultTable().Entries())
		assert.Equal(t, Intent{Intent: Unknown, Confidence: 0, Source: SourceNone}, got, input)
		assert.True(t, got.IsUnknown())
	}
}

func TestDefaultPatterns_ConfidenceRange(t *testing.T) {
	patterns := DefaultPatterns().Patterns()
	require.Len(t, patterns, 6)

	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.Name
		assert.GreaterOrEqual(t, p.Confidence, 0.7)
		assert.LessOrEqual(t, p.Confidence, 0.9)
		assert.Less(t, p.Confidence, VocabularyConfidence)
	}
	assert.Equal(t, []string{
		PatternProjectDetails, PatternOverdueItems, PatternResourceStatus,
		PatternTimeBased, PatternListProjects, PatternListTasks,
	}, names)
}

// Inputs that hit both tiers always resolve through the vocabulary.
func TestClassifier_VocabularyBeatsPatternsRandomized(t *testing.T) {
	c := NewClassifier()
	entries := vocabulary.DefaultTable().Entries()
	fillers := []string{"project details", "overdue", "team", "due today", "projects", "tasks", "please", "now"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		aw := entries[rng.Intn(len(entries))]
		triggers := append(append([]string(nil), aw.Keywords...), aw.Aliases...)
		trigger := triggers[rng.Intn(len(triggers))]
		input := fillers[rng.Intn(len(fillers))] + " " + trigger + " " + fillers[rng.Intn(len(fillers))]

		var matched []vocabulary.ActionWord
		var ids []string
		for _, e := range entries {
			if e.MatchesAny(input) {
				matched = append(matched, e)
				ids = append(ids, e.ID)
			}
		}

		got := c.Classify(input, matched)
		require.Equal(t, VocabularyConfidence, got.Confidence, input)
		require.Equal(t, SourceVocabulary, got.Source, input)
		require.Contains(t, ids, got.Intent, input)
	}
}

type fuzzyStub struct{}

func (fuzzyStub) Source() Source { return "fuzzy" }
func (fuzzyStub) Resolve(input string, _ []vocabulary.ActionWord) (Intent, bool) {
	return Intent{Intent: "fuzzy_guess", Confidence: 0.5, Source: "fuzzy"}, input != ""
}

func TestClassifier_ExtraTier(t *testing.T) {
	c := NewClassifier(VocabularyStrategy{}, DefaultPatterns(), fuzzyStub{})

	assert.Equal(t, "fuzzy_guess", c.Classify("asdfqwerty", nil).Intent)
	assert.Equal(t, PatternListTasks, c.Classify("tasks", nil).Intent)
	assert.Equal(t, Unknown, c.Classify("", nil).Intent)
	assert.Len(t, c.Strategies(), 3)
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkClassify_Vocabulary(b *testing.B) {
	c := NewClassifier()
	entries := vocabulary.DefaultTable().Entries()
	for i := 0; i < b.N; i++ {
		_ = c.Classify("list my overdue tasks", entries)
	}
}

func BenchmarkClassify_Fallback(b *testing.B) {
	c := NewClassifier()
	for i := 0; i < b.N; i++ {
		_ = c.Classify("anything due tomorrow for the team", nil)
	}
}
