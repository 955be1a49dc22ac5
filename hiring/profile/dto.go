package profile

import (
	"time"

	"github.com/hirestack/beacon/pkg/kernel"
)

// ============================================================================
// Request DTOs
// ============================================================================

// UploadCVRequest - Request to process an uploaded CV into a profile
type UploadCVRequest struct {
	CandidateID kernel.CandidateID
	FileName    string
	MIMEType    string
	Data        []byte
}

// ============================================================================
// Response DTOs
// ============================================================================

// ProfileResponse - Full profile response
type ProfileResponse struct {
	ID                kernel.ProfileID   `json:"id"`
	CandidateID       kernel.CandidateID `json:"candidate_id"`
	Name              string             `json:"name,omitempty"`
	Contact           Contact            `json:"contact"`
	Skills            []string           `json:"skills"`
	ExperienceSummary *string            `json:"experience_summary"`
	EducationSummary  *string            `json:"education_summary"`
	WorkHistory       []WorkHistoryEntry `json:"work_history,omitempty"`
	RawWorkHistory    string             `json:"raw_work_history,omitempty"`
	CVURL             string             `json:"cv_url"`
	FileName          string             `json:"file_name"`
	ExtractedAt       time.Time          `json:"extracted_at"`
}

// ToProfileResponse converts a CandidateProfile to its response DTO
func ToProfileResponse(p *CandidateProfile) *ProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return &ProfileResponse{
		ID:                p.ID,
		CandidateID:       p.CandidateID,
		Name:              p.Name,
		Contact:           p.Contact,
		Skills:            skills,
		ExperienceSummary: p.ExperienceSummary,
		EducationSummary:  p.EducationSummary,
		WorkHistory:       p.WorkHistory,
		RawWorkHistory:    p.RawWorkHistory,
		CVURL:             p.CVURL,
		FileName:          p.FileName,
		ExtractedAt:       p.ExtractedAt,
	}
}
