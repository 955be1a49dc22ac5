package profile

import (
	"time"

	"github.com/hirestack/beacon/pkg/kernel"
)

// CandidateProfile is the structured data derived from a candidate's CV.
// A profile is created fresh on every upload and replaced wholesale; there
// is no incremental merge.
type CandidateProfile struct {
	ID          kernel.ProfileID   `db:"id" json:"id"`
	CandidateID kernel.CandidateID `db:"candidate_id" json:"candidate_id"`

	// Extracted fields. Skills is always present, possibly empty; the
	// summaries degrade to nil when extraction found nothing.
	Name              string             `db:"name" json:"name,omitempty"`
	Contact           Contact            `db:"contact" json:"contact"`
	Skills            []string           `db:"skills" json:"skills"`
	ExperienceSummary *string            `db:"experience_summary" json:"experience_summary"`
	EducationSummary  *string            `db:"education_summary" json:"education_summary"`
	WorkHistory       []WorkHistoryEntry `db:"work_history" json:"work_history,omitempty"`

	// RawWorkHistory keeps the unstructured section text when the work
	// history could not be parsed into entries.
	RawWorkHistory string `db:"raw_work_history" json:"raw_work_history,omitempty"`

	// Source document metadata
	CVURL           string `db:"cv_url" json:"cv_url"`
	FileName        string `db:"file_name" json:"file_name"`
	SourceCharCount int    `db:"source_char_count" json:"source_char_count"`

	ExtractedAt time.Time `db:"extracted_at" json:"extracted_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Contact holds extracted contact details
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// WorkHistoryEntry is a single structured work-history item
type WorkHistoryEntry struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	DurationText string `json:"duration_text"`
}

// HasSkills reports whether extraction found any skills
func (p *CandidateProfile) HasSkills() bool {
	return len(p.Skills) > 0
}

// IsEmpty reports whether extraction produced no usable fields at all.
// An empty profile is a soft-empty success, not a failure.
func (p *CandidateProfile) IsEmpty() bool {
	return len(p.Skills) == 0 &&
		p.ExperienceSummary == nil &&
		p.EducationSummary == nil &&
		len(p.WorkHistory) == 0 &&
		p.RawWorkHistory == ""
}

// ExperienceText returns the experience summary or an empty string
func (p *CandidateProfile) ExperienceText() string {
	if p.ExperienceSummary == nil {
		return ""
	}
	return *p.ExperienceSummary
}

// EducationText returns the education summary or an empty string
func (p *CandidateProfile) EducationText() string {
	if p.EducationSummary == nil {
		return ""
	}
	return *p.EducationSummary
}
