package jobmatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hirestack/beacon/internal/ai/completion"
)

// Config holds the tunable matching bounds. Defaults mirror the reference
// behavior.
type Config struct {
	MaxDescriptionChars int
	DefaultTopN         int
	Temperature         float64
	MaxTokens           int64
}

// DefaultConfig returns the reference matching settings
func DefaultConfig() Config {
	return Config{
		MaxDescriptionChars: 200,
		DefaultTopN:         5,
		Temperature:         0.3,
		MaxTokens:           1500,
	}
}

// JobListing is the catalog entry the matcher scores against
type JobListing struct {
	ID             string
	Title          string
	CompanyName    string
	RequiredSkills []string
	Description    string
}

// CandidateSummary is the profile slice embedded in the matching prompt
type CandidateSummary struct {
	Skills     []string
	Experience string
	Education  string
}

// Match is one scored recommendation returned by the model
type Match struct {
	JobID          string `json:"jobId"`
	RelevanceScore int    `json:"relevanceScore"`
	Reasons        string `json:"reasons"`
}

// Matcher scores a job catalog against a candidate profile in a single
// batched completion call, bounding external calls to one per request
// regardless of catalog size
type Matcher struct {
	client completion.Client
	cfg    Config
}

// NewMatcher creates a matcher backed by the given completion client
func NewMatcher(client completion.Client, cfg Config) *Matcher {
	if cfg.MaxDescriptionChars <= 0 {
		cfg.MaxDescriptionChars = DefaultConfig().MaxDescriptionChars
	}
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = DefaultConfig().DefaultTopN
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultConfig().Temperature
	}
	return &Matcher{
		client: client,
		cfg:    cfg,
	}
}

const matchingSystemPrompt = `You are a job matching assistant. Analyze candidate profiles and job listings to find the best matches. Return only valid JSON.`

// Recommend returns up to topN matches ordered by descending relevance.
// An empty catalog short-circuits without any external call. Entries
// referencing unknown job ids and entries with out-of-range or non-numeric
// scores are dropped rather than failing the batch.
func (m *Matcher) Recommend(ctx context.Context, candidate CandidateSummary, jobs []JobListing, topN int) ([]Match, error) {
	if len(jobs) == 0 {
		return []Match{}, nil
	}
	if topN <= 0 {
		topN = m.cfg.DefaultTopN
	}

	content, err := m.client.Complete(ctx, completion.Request{
		System:      matchingSystemPrompt,
		Prompt:      m.buildPrompt(candidate, jobs, topN),
		Temperature: m.cfg.Temperature,
		MaxTokens:   m.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("completion call: %w", err)
	}

	return filterMatches(parseMatches(content), jobs, topN), nil
}

func (m *Matcher) buildPrompt(candidate CandidateSummary, jobs []JobListing, topN int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `Given this candidate's profile:
- Skills: %s
- Experience: %s
- Education: %s

Match them with the most relevant job postings from this list:
`,
		strings.Join(candidate.Skills, ", "),
		orNotProvided(candidate.Experience),
		orNotProvided(candidate.Education),
	)

	for i, job := range jobs {
		desc := job.Description
		if len(desc) > m.cfg.MaxDescriptionChars {
			desc = desc[:m.cfg.MaxDescriptionChars] + "..."
		}
		fmt.Fprintf(&sb, `
Job %d:
- Title: %s
- Company: %s
- Required Skills: %s
- Description: %s
- ID: %s
`, i+1, job.Title, job.CompanyName, strings.Join(job.RequiredSkills, ", "), desc, job.ID)
	}

	fmt.Fprintf(&sb, `
Return a JSON array with the top %d job matches, each containing:
1. jobId: The ID of the job
2. relevanceScore: A score from 0-100 indicating how well the candidate matches the job
3. reasons: A brief explanation of why this job is a good match

Only return the JSON array, no other text.`, topN)

	return sb.String()
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

type rawMatch struct {
	JobID          string      `json:"jobId"`
	RelevanceScore json.Number `json:"relevanceScore"`
	Reasons        string      `json:"reasons"`
}

// parseMatches decodes the model's JSON array; an unparseable body degrades
// to zero matches rather than an error, favoring partial availability
func parseMatches(content string) []rawMatch {
	cleaned := stripCodeFences(content)

	var raw []rawMatch
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil
	}
	return raw
}

// filterMatches resolves ids against the catalog, applies the defensive
// score policy, and produces the final ranked list
func filterMatches(raw []rawMatch, jobs []JobListing, topN int) []Match {
	known := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		known[job.ID] = struct{}{}
	}

	matches := make([]Match, 0, len(raw))
	for _, r := range raw {
		if _, ok := known[r.JobID]; !ok {
			continue
		}
		score, ok := validScore(r.RelevanceScore)
		if !ok {
			continue
		}
		matches = append(matches, Match{
			JobID:          r.JobID,
			RelevanceScore: score,
			Reasons:        r.Reasons,
		})
	}

	// Stable sort keeps the model's order between equal scores, so repeated
	// calls against a deterministic model rank identically
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RelevanceScore > matches[j].RelevanceScore
	})

	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

// validScore accepts only numeric scores within [0,100]; the model is not a
// trusted numeric source
func validScore(n json.Number) (int, bool) {
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < 0 || f > 100 {
		return 0, false
	}
	return int(math.Round(f)), true
}

func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
