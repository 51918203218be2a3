// internal/workers/assistant/parse-user-query/models.go
package parseuserquery

import (
	"projectflow-workers/internal/nlq/entity"
	"projectflow-workers/internal/nlq/processor"
)

type Input struct {
	Question    string `json:"question"`
	WorkspaceID string `json:"workspaceId"`
}

// Output carries the processed query without trigger lists; matchedActions
// names the matched entries.
type Output struct {
	ProcessedQuery processor.ProcessedQuery `json:"processedQuery"`
	IntentAnalysis IntentAnalysis           `json:"intentAnalysis"`
	Entities       []entity.Entity          `json:"entities"`
	MatchedActions []string                 `json:"matchedActions"`
}

type IntentAnalysis struct {
	PrimaryIntent string  `json:"primaryIntent"`
	Confidence    float64 `json:"confidence"`
	Source        string  `json:"source"`
}
