package match

import "github.com/hirestack/beacon/pkg/kernel"

// MatchResult is one scored recommendation. Results are ordered descending
// by relevance score and every JobID references a posting in the catalog
// that was scored.
type MatchResult struct {
	JobID          kernel.JobID `json:"job_id"`
	RelevanceScore int          `json:"relevance_score"`
	Reasons        string       `json:"reasons"`
}
