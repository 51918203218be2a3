// Package vocabulary holds the action-word registry used to recognise what a
// user is asking for. A Table is built once and never mutated afterwards.
package vocabulary

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidActionWord   = errors.New("INVALID_ACTION_WORD")
	ErrDuplicateActionWord = errors.New("DUPLICATE_ACTION_WORD")
)

// Category groups action words by the kind of record they talk about.
type Category string

const (
	CategoryProjects     Category = "projects"
	CategoryTasks        Category = "tasks"
	CategoryResources    Category = "resources"
	CategoryStakeholders Category = "stakeholders"
	CategoryStatus       Category = "status"
	CategoryTime         Category = "time"
)

// Categories in table order.
var Categories = []Category{
	CategoryProjects,
	CategoryTasks,
	CategoryResources,
	CategoryStakeholders,
	CategoryStatus,
	CategoryTime,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ActionWord maps a canonical intent id to the phrases that trigger it.
type ActionWord struct {
	ID          string   `json:"id" yaml:"id"`
	Category    Category `json:"category" yaml:"category"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description string   `json:"description" yaml:"description"`
}

// Matches reports whether trigger occurs in input, ignoring case. Every
// trigger comparison in the pipeline goes through here.
func Matches(trigger, input string) bool {
	if trigger == "" {
		return false
	}
	return strings.Contains(strings.ToLower(input), strings.ToLower(trigger))
}

// MatchesKeyword reports whether one of the primary keywords occurs in input.
func (a ActionWord) MatchesKeyword(input string) bool {
	for _, kw := range a.Keywords {
		if Matches(kw, input) {
			return true
		}
	}
	return false
}

// MatchesAny reports whether a keyword or an alias occurs in input.
func (a ActionWord) MatchesAny(input string) bool {
	if a.MatchesKeyword(input) {
		return true
	}
	for _, alias := range a.Aliases {
		if Matches(alias, input) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with a.
func (a ActionWord) Clone() ActionWord {
	out := a
	out.Keywords = append([]string(nil), a.Keywords...)
	if a.Aliases != nil {
		out.Aliases = append([]string(nil), a.Aliases...)
	}
	return out
}

func (a ActionWord) validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidActionWord)
	}
	if !a.Category.Valid() {
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidActionWord, a.ID, a.Category)
	}
	if len(a.Keywords) == 0 {
		return fmt.Errorf("%w: %s has no keywords", ErrInvalidActionWord, a.ID)
	}
	return nil
}

// Table is an ordered, immutable list of action words.
type Table struct {
	entries []ActionWord
	index   map[string]int
}

// New validates entries and returns them as a Table in the given order.
// Keywords and aliases are lower-cased and de-duplicated.
func New(entries ...ActionWord) (*Table, error) {
	t := &Table{
		entries: make([]ActionWord, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, err
		}
		if _, exists := t.index[e.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateActionWord, e.ID)
		}

		e = e.Clone()
		e.Keywords = dedupe(e.Keywords)
		if e.Aliases != nil {
			e.Aliases = dedupe(e.Aliases)
		}

		t.index[e.ID] = len(t.entries)
		t.entries = append(t.entries, e)
	}

	return t, nil
}

func mustNew(entries ...ActionWord) *Table {
	t, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the table in precedence order.
func (t *Table) Entries() []ActionWord {
	out := make([]ActionWord, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Clone()
	}
	return out
}

func (t *Table) Lookup(id string) (ActionWord, bool) {
	i, ok := t.index[id]
	if !ok {
		return ActionWord{}, false
	}
	return t.entries[i].Clone(), true
}

func (t *Table) Len() int {
	return len(t.entries)
}

// TriggerCount is the total number of keywords and aliases in the table.
func (t *Table) TriggerCount() int {
	n := 0
	for _, e := range t.entries {
		n += len(e.Keywords) + len(e.Aliases)
	}
	return n
}
