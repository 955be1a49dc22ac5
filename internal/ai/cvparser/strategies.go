package cvparser

import (
	"encoding/json"
	"regexp"
	"strings"
)

// stripCodeFences removes a ```json ... ``` wrapper some models insist on
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

type rawProfileJSON struct {
	Name    string `json:"name"`
	Contact struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"contact"`
	Skills            []string           `json:"skills"`
	ExperienceSummary string             `json:"experience_summary"`
	Experience        string             `json:"experience"`
	EducationSummary  string             `json:"education_summary"`
	Education         string             `json:"education"`
	WorkHistory       []WorkHistoryEntry `json:"work_history"`
}

// parseStructured handles the JSON-object response shape, tolerating missing
// keys and the common alternate key spellings
func parseStructured(content string) (*ProfileData, bool) {
	cleaned := stripCodeFences(content)

	var raw rawProfileJSON
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, false
	}

	experience := raw.ExperienceSummary
	if experience == "" {
		experience = raw.Experience
	}
	education := raw.EducationSummary
	if education == "" {
		education = raw.Education
	}

	return &ProfileData{
		Name: strings.TrimSpace(raw.Name),
		Contact: ContactInfo{
			Email: strings.TrimSpace(raw.Contact.Email),
			Phone: strings.TrimSpace(raw.Contact.Phone),
		},
		Skills:            dedupeSkills(raw.Skills),
		ExperienceSummary: optionalText(experience),
		EducationSummary:  optionalText(education),
		WorkHistory:       raw.WorkHistory,
		Mode:              ModeStructured,
	}, true
}

// Section regexes mirror the labeled response format: each section runs from
// its header to the next recognized header or end of text.
var (
	skillsSection      = regexp.MustCompile(`(?is)skills:\s*(.*?)\s*(?:experience:|education:|work history:|$)`)
	experienceSection  = regexp.MustCompile(`(?is)experience:\s*(.*?)\s*(?:education:|work history:|$)`)
	educationSection   = regexp.MustCompile(`(?is)education:\s*(.*?)\s*(?:work history:|$)`)
	workHistorySection = regexp.MustCompile(`(?is)work history:\s*(.*)$`)

	skillSplitter = regexp.MustCompile(`[-•*\n,]`)

	// "Company: Position (Duration)" lines inside the work-history section
	workHistoryLine = regexp.MustCompile(`^(.+?):\s*(.+?)\s*\((.+?)\)\s*$`)
)

// parseLabeledSections handles the free-text response shape with literal
// Skills:/Experience:/Education:/Work history: headers
func parseLabeledSections(content string) (*ProfileData, bool) {
	skillsText := matchSection(skillsSection, content)
	experienceText := matchSection(experienceSection, content)
	educationText := matchSection(educationSection, content)
	workHistoryText := matchSection(workHistorySection, content)

	if skillsText == "" && experienceText == "" && educationText == "" && workHistoryText == "" {
		return nil, false
	}

	data := &ProfileData{
		Skills:            dedupeSkills(skillSplitter.Split(skillsText, -1)),
		ExperienceSummary: optionalText(experienceText),
		EducationSummary:  optionalText(educationText),
		Mode:              ModeLabeled,
	}

	if workHistoryText != "" {
		entries := parseWorkHistoryLines(workHistoryText)
		if len(entries) > 0 {
			data.WorkHistory = entries
		} else {
			data.RawWorkHistory = workHistoryText
		}
	}

	return data, true
}

func matchSection(re *regexp.Regexp, content string) string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseWorkHistoryLines attempts the structured "Company: Position (Duration)"
// line format; responsibility bullets and unrecognized lines are skipped
func parseWorkHistoryLines(text string) []WorkHistoryEntry {
	var entries []WorkHistoryEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
			continue
		}
		m := workHistoryLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entries = append(entries, WorkHistoryEntry{
			Company:      strings.TrimSpace(m[1]),
			Title:        strings.TrimSpace(m[2]),
			DurationText: strings.TrimSpace(m[3]),
		})
	}
	return entries
}
