package intent

import (
	"regexp"

	"projectflow-workers/internal/nlq/vocabulary"
)

// Pattern names used by the fallback tier.
const (
	PatternProjectDetails = "project_details"
	PatternOverdueItems   = "overdue_items"
	PatternResourceStatus = "resource_status"
	PatternTimeBased      = "time_based"
	PatternListProjects   = "list_projects"
	PatternListTasks      = "list_tasks"
)

type Pattern struct {
	Name       string
	Confidence float64
	re         *regexp.Regexp
}

func NewPattern(name string, confidence float64, expr string) Pattern {
	return Pattern{Name: name, Confidence: confidence, re: regexp.MustCompile(expr)}
}

func (p Pattern) Match(input string) bool {
	return p.re.MatchString(input)
}

// PatternStrategy tests regexes in order and returns the first hit with its
// own confidence.
type PatternStrategy struct {
	patterns []Pattern
}

func NewPatternStrategy(patterns ...Pattern) PatternStrategy {
	return PatternStrategy{patterns: patterns}
}

// DefaultPatterns is the built-in fallback tier.
func DefaultPatterns() PatternStrategy {
	return NewPatternStrategy(
		NewPattern(PatternProjectDetails, 0.9,
			`(?i)\b(details?|info(rmation)?|overview|summary|about)\b.*\bprojects?\b|\bprojects?\b.*\b(details?|info(rmation)?|overview|summary)\b`),
		NewPattern(PatternOverdueItems, 0.85,
			`(?i)\b(overdue|late|past[\s-]due|delayed|behind)\b`),
		NewPattern(PatternResourceStatus, 0.8,
			`(?i)\b(resources?|team|people|staff|members?|capacity|availability|available|workload|busy)\b`),
		NewPattern(PatternTimeBased, 0.75,
			`(?i)\b(today|tomorrow|yesterday|this\s+(week|month)|next\s+(week|month)|deadlines?|due)\b`),
		NewPattern(PatternListProjects, 0.7,
			`(?i)\bprojects?\b`),
		NewPattern(PatternListTasks, 0.7,
			`(?i)\b(tasks?|todos?|to-dos?)\b`),
	)
}

func (PatternStrategy) Source() Source { return SourcePattern }

func (s PatternStrategy) Resolve(input string, _ []vocabulary.ActionWord) (Intent, bool) {
	for _, p := range s.patterns {
		if p.Match(input) {
			return Intent{Intent: p.Name, Confidence: p.Confidence, Source: SourcePattern}, true
		}
	}
	return Intent{}, false
}

func (s PatternStrategy) Patterns() []Pattern {
	return append([]Pattern(nil), s.patterns...)
}
