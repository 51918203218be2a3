// internal/workers/assistant/execute-query-plan/models.go
package executequeryplan

import (
	"projectflow-workers/internal/nlq/processor"
	"projectflow-workers/internal/nlq/querybuilder"
)

// Input carries either the output of parse-user-query or a raw question.
// ProcessedQuery wins when both are set.
type Input struct {
	Question       string                    `json:"question,omitempty"`
	ProcessedQuery *processor.ProcessedQuery `json:"processedQuery,omitempty"`
	WorkspaceID    string                    `json:"workspaceId"`
}

type Output struct {
	QueryResult querybuilder.QueryResult `json:"queryResult"`
	RowCount    int                      `json:"rowCount"`
	Cached      bool                     `json:"cached"`
	QueryRunID  string                   `json:"queryRunId"`
}
