package cvparser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hirestack/beacon/internal/ai/completion"
)

// Config holds the tunable extraction bounds. The defaults mirror the
// reference behavior; neither value is an architectural constraint.
type Config struct {
	MaxInputChars int
	Temperature   float64
	MaxTokens     int64
}

// DefaultConfig returns the reference extraction settings
func DefaultConfig() Config {
	return Config{
		MaxInputChars: 4000,
		Temperature:   0.3,
		MaxTokens:     1500,
	}
}

// Parser extracts a structured candidate profile from raw CV text
type Parser struct {
	client completion.Client
	cfg    Config
}

// NewParser creates a parser backed by the given completion client
func NewParser(client completion.Client, cfg Config) *Parser {
	if cfg.MaxInputChars <= 0 {
		cfg.MaxInputChars = DefaultConfig().MaxInputChars
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultConfig().Temperature
	}
	return &Parser{
		client: client,
		cfg:    cfg,
	}
}

// ParseMode records which response-parsing strategy produced the profile
type ParseMode int

const (
	// ModeStructured - the completion body was a JSON object
	ModeStructured ParseMode = iota + 1
	// ModeLabeled - the completion body used labeled text sections
	ModeLabeled
	// ModeUnparseable - neither strategy matched; the profile is empty
	ModeUnparseable
)

// ContactInfo holds extracted contact details
type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// WorkHistoryEntry is a single structured work-history item
type WorkHistoryEntry struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	DurationText string `json:"duration"`
}

// ProfileData is the extraction result. Skills is always non-nil; every
// other field degrades to its zero value when the model omits it.
type ProfileData struct {
	Name              string
	Contact           ContactInfo
	Skills            []string
	ExperienceSummary *string
	EducationSummary  *string
	WorkHistory       []WorkHistoryEntry
	// RawWorkHistory holds the unstructured section text when the work
	// history could not be parsed into entries.
	RawWorkHistory string
	Mode           ParseMode
	SourceChars    int
}

const extractionSystemPrompt = `You are a CV analysis assistant. Extract structured information from CVs accurately. Return a JSON object with this exact shape:
{
  "name": string,
  "contact": {"email": string, "phone": string},
  "skills": string[],
  "experience_summary": string (1-2 sentences),
  "education_summary": string (1-2 sentences),
  "work_history": [{"title": string, "company": string, "duration": string}]
}
If a field is not present in the CV, use an empty string or empty array. Return ONLY the JSON, no other text.`

// ExtractProfile sends the CV text to the model and parses the response.
// Input beyond the configured character bound is invisible to extraction.
// Partial output is not an error: missing fields resolve to empty values.
func (p *Parser) ExtractProfile(ctx context.Context, rawText string) (*ProfileData, error) {
	truncated := rawText
	if len(truncated) > p.cfg.MaxInputChars {
		truncated = truncated[:p.cfg.MaxInputChars]
	}

	prompt := fmt.Sprintf(`Extract the following information from this CV:
1. Skills (as a list of keywords)
2. Experience summary (1-2 sentences)
3. Education summary (1-2 sentences)
4. Work history (as structured data)

CV Content:
%s`, truncated)

	content, err := p.client.Complete(ctx, completion.Request{
		System:      extractionSystemPrompt,
		Prompt:      prompt,
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("completion call: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("completion returned empty content")
	}

	data := parseCompletion(content)
	data.SourceChars = len(truncated)
	return data, nil
}

// parseCompletion tries the structured strategy first and falls back to
// labeled sections. A body matching neither yields an empty profile.
func parseCompletion(content string) *ProfileData {
	if data, ok := parseStructured(content); ok {
		return data
	}
	if data, ok := parseLabeledSections(content); ok {
		return data
	}
	return &ProfileData{
		Skills: []string{},
		Mode:   ModeUnparseable,
	}
}

// dedupeSkills drops empty and repeated entries while preserving order
func dedupeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
