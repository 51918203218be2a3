package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testFixtures = `
projects:
  - id: p1
    name: Apollo
    status: Active
    end_date: 2025-03-10T00:00:00Z
    workspace_id: W1
  - id: p2
    name: Borealis
    status: Completed
    end_date: 2025-03-01T00:00:00Z
    workspace_id: W1
tasks:
  - id: t1
    project_id: p1
    status: In Progress
    priority: Critical
    end_date: 2025-03-12T00:00:00Z
    updated_at: 2025-03-13T09:00:00Z
  - id: t2
    project_id: p1
    status: Completed
    priority: High
    end_date: 2025-03-05T00:00:00Z
    updated_at: 2025-03-05T17:00:00Z
resources:
  - id: r1
    name: Ana
    availability: 80
    workspace_id: W1
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// ==========================
// parse
// ==========================

func TestParseCmd(t *testing.T) {
	out, err := execute(t, "parse", "list", "my", "overdue", "tasks")
	require.NoError(t, err)

	var got struct {
		OriginalInput string `json:"originalInput"`
		Intent        struct {
			Intent string `json:"intent"`
			Source string `json:"source"`
		} `json:"intent"`
		Entities []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"entities"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "list my overdue tasks", got.OriginalInput)
	assert.Equal(t, "overdue_tasks", got.Intent.Intent)
	assert.Equal(t, "vocabulary", got.Intent.Source)
	require.Len(t, got.Entities, 1)
	assert.Equal(t, "overdue", got.Entities[0].Value)
}

func TestParseCmd_RequiresQuestion(t *testing.T) {
	_, err := execute(t, "parse")
	assert.Error(t, err)
}

// ==========================
// run
// ==========================

func TestRunCmd_Fixtures(t *testing.T) {
	fixtures := writeFile(t, "fixtures.yaml", testFixtures)

	tests := []struct {
		question string
		plan     string
		rows     int
	}{
		{"list my overdue tasks", "overdue_tasks", 1},
		{"show me all projects", "list_projects", 2},
		{"which projects are overdue? show late projects", "overdue_projects", 1},
		{"list available team members", "available_resources", 1},
		{"asdfqwerty nonsense", "general", 2},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			out, err := execute(t, "run", "--workspace", "W1", "--fixtures", fixtures, "--today", "2025-03-14", tt.question)
			require.NoError(t, err)

			var got struct {
				QueryResult struct {
					PlanUsed string `json:"planUsed"`
				} `json:"queryResult"`
				RowCount int `json:"rowCount"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.plan, got.QueryResult.PlanUsed)
			assert.Equal(t, tt.rows, got.RowCount)
		})
	}
}

func TestRunCmd_Errors(t *testing.T) {
	fixtures := writeFile(t, "fixtures.yaml", testFixtures)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing workspace", []string{"run", "--fixtures", fixtures, "list tasks"}, "workspace"},
		{"no data source", []string{"run", "--workspace", "W1", "list tasks"}, "no data source"},
		{"bad date", []string{"run", "--workspace", "W1", "--fixtures", fixtures, "--today", "14/03/2025", "list tasks"}, "--today"},
		{"both sources", []string{"run", "--workspace", "W1", "--fixtures", fixtures, "--dsn", "postgres://x", "list tasks"}, "fixtures"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// ==========================
// vocab
// ==========================

func TestVocabCmd_DumpsDefaultTable(t *testing.T) {
	out, err := execute(t, "vocab")
	require.NoError(t, err)

	var doc struct {
		ActionWords []struct {
			ID string `yaml:"id"`
		} `yaml:"actionWords"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.NotEmpty(t, doc.ActionWords)
}

func TestVocabCmd_RoundTripsThroughFile(t *testing.T) {
	dumped, err := execute(t, "vocab")
	require.NoError(t, err)
	path := writeFile(t, "vocab.yaml", dumped)

	again, err := execute(t, "vocab", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, dumped, again)

	out, err := execute(t, "--vocabulary", path, "parse", "show me urgent tasks")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `"urgent_tasks"`))
}

func TestVocabCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "vocab", "--file", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VOCABULARY_LOAD_FAILED")
}

func TestRootCmd_BadConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "parse", "tasks")
	assert.Error(t, err)
}
