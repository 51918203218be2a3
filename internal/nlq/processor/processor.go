// Package processor turns a raw question into a ProcessedQuery: the matched
// action words, the classified intent and any extracted entities.
package processor

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"projectflow-workers/internal/nlq/entity"
	"projectflow-workers/internal/nlq/intent"
	"projectflow-workers/internal/nlq/vocabulary"
)

type ProcessedQuery struct {
	OriginalInput string                  `json:"originalInput"`
	ActionWords   []vocabulary.ActionWord `json:"actionWords"`
	Intent        intent.Intent           `json:"intent"`
	Entities      []entity.Entity         `json:"entities"`
}

// Compact returns a copy whose action words carry no trigger lists, for
// handing the query to another process.
func (q ProcessedQuery) Compact() ProcessedQuery {
	out := q
	out.ActionWords = make([]vocabulary.ActionWord, len(q.ActionWords))
	for i, aw := range q.ActionWords {
		out.ActionWords[i] = vocabulary.ActionWord{
			ID:          aw.ID,
			Category:    aw.Category,
			Description: aw.Description,
		}
	}
	return out
}

// ActionIDs returns the ids of the matched action words in precedence order.
func (q ProcessedQuery) ActionIDs() []string {
	ids := make([]string, len(q.ActionWords))
	for i, aw := range q.ActionWords {
		ids[i] = aw.ID
	}
	return ids
}

type Option func(*Processor)

func WithClassifier(c *intent.Classifier) Option {
	return func(p *Processor) { p.classifier = c }
}

// Processor is safe for concurrent use; nothing it holds changes after New.
type Processor struct {
	entries    []vocabulary.ActionWord
	classifier *intent.Classifier
	extractor  *entity.Extractor
}

// New builds a Processor over table. A nil table means the default vocabulary.
func New(table *vocabulary.Table, opts ...Option) *Processor {
	if table == nil {
		table = vocabulary.DefaultTable()
	}

	p := &Processor{
		entries:    table.Entries(),
		classifier: intent.NewClassifier(),
		extractor:  entity.NewExtractor(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process never fails; unrecognised input yields the unknown intent.
func (p *Processor) Process(input string) ProcessedQuery {
	cleaned := Clean(input)

	matched := make([]vocabulary.ActionWord, 0)
	for _, aw := range p.entries {
		if aw.MatchesAny(cleaned) {
			matched = append(matched, aw.Clone())
		}
	}

	return ProcessedQuery{
		OriginalInput: input,
		ActionWords:   matched,
		Intent:        p.classifier.Classify(cleaned, matched),
		Entities:      p.extractor.Extract(cleaned),
	}
}

// Clean applies NFC normalization, trims the input and folds runs of
// whitespace into single spaces.
func Clean(input string) string {
	return strings.Join(strings.Fields(norm.NFC.String(input)), " ")
}
