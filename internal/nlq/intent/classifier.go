// Package intent resolves a question to a single intent with a confidence
// score. Resolution walks an ordered list of strategies; the first one that
// produces a result wins.
package intent

import (
	"projectflow-workers/internal/nlq/vocabulary"
)

const (
	Unknown = "unknown"

	// VocabularyConfidence is reported for every vocabulary hit and is
	// above every pattern confidence.
	VocabularyConfidence = 0.95
)

// Source identifies which tier produced an Intent.
type Source string

const (
	SourceVocabulary Source = "vocabulary"
	SourcePattern    Source = "pattern"
	SourceNone       Source = "none"
)

type Intent struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

func (i Intent) IsUnknown() bool {
	return i.Intent == Unknown
}

// Strategy is one resolution tier.
type Strategy interface {
	Source() Source
	Resolve(input string, actionWords []vocabulary.ActionWord) (Intent, bool)
}

// VocabularyStrategy picks the first supplied action word with a keyword in
// the input. When no keyword matches, the first one with a matching alias
// wins, so every supplied match classifies at VocabularyConfidence.
type VocabularyStrategy struct{}

func (VocabularyStrategy) Source() Source { return SourceVocabulary }

func (VocabularyStrategy) Resolve(input string, actionWords []vocabulary.ActionWord) (Intent, bool) {
	for _, aw := range actionWords {
		if aw.MatchesKeyword(input) {
			return vocabularyIntent(aw), true
		}
	}
	for _, aw := range actionWords {
		if aw.MatchesAny(input) {
			return vocabularyIntent(aw), true
		}
	}
	return Intent{}, false
}

func vocabularyIntent(aw vocabulary.ActionWord) Intent {
	return Intent{Intent: aw.ID, Confidence: VocabularyConfidence, Source: SourceVocabulary}
}

type Classifier struct {
	strategies []Strategy
}

// NewClassifier evaluates strategies in the order given. With none it uses
// the vocabulary tier followed by DefaultPatterns.
func NewClassifier(strategies ...Strategy) *Classifier {
	if len(strategies) == 0 {
		strategies = []Strategy{VocabularyStrategy{}, DefaultPatterns()}
	}
	return &Classifier{strategies: strategies}
}

func (c *Classifier) Classify(input string, actionWords []vocabulary.ActionWord) Intent {
	for _, s := range c.strategies {
		if in, ok := s.Resolve(input, actionWords); ok {
			return in
		}
	}
	return Intent{Intent: Unknown, Confidence: 0, Source: SourceNone}
}

// Strategies returns the tiers in evaluation order.
func (c *Classifier) Strategies() []Strategy {
	return append([]Strategy(nil), c.strategies...)
}
