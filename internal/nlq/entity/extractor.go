// Package entity pulls typed values (statuses, relative dates, named
// projects and people) out of a free-text question.
package entity

import (
	"regexp"
	"strings"
)

type Type string

const (
	TypeProject  Type = "project"
	TypeResource Type = "resource"
	TypeStatus   Type = "status"
	TypeDate     Type = "date"
)

// Date entity values.
const (
	DateToday     = "today"
	DateThisWeek  = "this_week"
	DateThisMonth = "this_month"
)

type Entity struct {
	Type  Type   `json:"type"`
	Value string `json:"value"`
}

type rule struct {
	value string
	re    *regexp.Regexp
}

// Statuses are reported in this order regardless of where they appear.
var statusRules = []rule{
	{"active", regexp.MustCompile(`(?i)\bactive\b`)},
	{"completed", regexp.MustCompile(`(?i)\bcompleted\b`)},
	{"pending", regexp.MustCompile(`(?i)\bpending\b`)},
	{"overdue", regexp.MustCompile(`(?i)\boverdue\b`)},
	{"in progress", regexp.MustCompile(`(?i)\bin[\s_-]+progress\b`)},
}

var dateRules = []rule{
	{DateToday, regexp.MustCompile(`(?i)\btoday\b`)},
	{DateThisWeek, regexp.MustCompile(`(?i)\bthis\s+week\b`)},
	{DateThisMonth, regexp.MustCompile(`(?i)\bthis\s+month\b`)},
}

var (
	quotedProject = regexp.MustCompile(`(?i)\bproject\s+"([^"]+)"`)
	mention       = regexp.MustCompile(`(?:^|\s)@([\w.-]*\w)`)
)

type Extractor struct {
	statuses []rule
	dates    []rule
}

func NewExtractor() *Extractor {
	return &Extractor{
		statuses: statusRules,
		dates:    dateRules,
	}
}

// Extract returns statuses first, then dates, then quoted project names and
// @mentions. The result is empty, never nil, when nothing matches.
func (e *Extractor) Extract(input string) []Entity {
	out := make([]Entity, 0, 2)

	for _, r := range e.statuses {
		if r.re.MatchString(input) {
			out = append(out, Entity{Type: TypeStatus, Value: r.value})
		}
	}
	for _, r := range e.dates {
		if r.re.MatchString(input) {
			out = append(out, Entity{Type: TypeDate, Value: r.value})
		}
	}

	for _, m := range quotedProject.FindAllStringSubmatch(input, -1) {
		if name := strings.TrimSpace(m[1]); name != "" {
			out = append(out, Entity{Type: TypeProject, Value: name})
		}
	}
	for _, m := range mention.FindAllStringSubmatch(input, -1) {
		out = append(out, Entity{Type: TypeResource, Value: m[1]})
	}

	return out
}

// Values returns the values of all entities of type t, in order.
func Values(entities []Entity, t Type) []string {
	var out []string
	for _, e := range entities {
		if e.Type == t {
			out = append(out, e.Value)
		}
	}
	return out
}
