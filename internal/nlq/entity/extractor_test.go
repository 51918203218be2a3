package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Entity
	}{
		{
			name:  "status then date",
			input: "Show overdue tasks for this week",
			want: []Entity{
				{Type: TypeStatus, Value: "overdue"},
				{Type: TypeDate, Value: DateThisWeek},
			},
		},
		{
			name:  "statuses follow fixed order not input order",
			input: "in progress or pending or completed items",
			want: []Entity{
				{Type: TypeStatus, Value: "completed"},
				{Type: TypeStatus, Value: "pending"},
				{Type: TypeStatus, Value: "in progress"},
			},
		},
		{
			name:  "dates in priority order",
			input: "due this month, this week or TODAY",
			want: []Entity{
				{Type: TypeDate, Value: DateToday},
				{Type: TypeDate, Value: DateThisWeek},
				{Type: TypeDate, Value: DateThisMonth},
			},
		},
		{
			name:  "in-progress spelled with a hyphen",
			input: "in-progress work",
			want:  []Entity{{Type: TypeStatus, Value: "in progress"}},
		},
		{
			name:  "word boundaries",
			input: "inactive accounts from thisweek",
			want:  []Entity{},
		},
		{
			name:  "quoted project and mention",
			input: `overdue tasks in project "Apollo Launch" for @maria.k`,
			want: []Entity{
				{Type: TypeStatus, Value: "overdue"},
				{Type: TypeProject, Value: "Apollo Launch"},
				{Type: TypeResource, Value: "maria.k"},
			},
		},
		{
			name:  "nothing",
			input: "asdfqwerty nonsense",
			want:  []Entity{},
		},
		{
			name:  "empty input",
			input: "",
			want:  []Entity{},
		},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.input)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValues(t *testing.T) {
	entities := []Entity{
		{Type: TypeStatus, Value: "active"},
		{Type: TypeDate, Value: DateToday},
		{Type: TypeStatus, Value: "overdue"},
	}

	assert.Equal(t, []string{"active", "overdue"}, Values(entities, TypeStatus))
	assert.Nil(t, Values(entities, TypeProject))
}

func BenchmarkExtract(b *testing.B) {
	e := NewExtractor()
	for i := 0; i < b.N; i++ {
		_ = e.Extract("show me overdue and in progress tasks due this week for @sam")
	}
}
