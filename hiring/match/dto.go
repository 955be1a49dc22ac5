package match

import (
	"github.com/hirestack/beacon/hiring/job"
	"github.com/hirestack/beacon/pkg/kernel"
)

// RecommendedJob is a published posting annotated with its relevance to
// a candidate.
type RecommendedJob struct {
	ID             kernel.JobID `json:"id"`
	Title          string       `json:"title"`
	CompanyName    string       `json:"company_name"`
	Location       string       `json:"location,omitempty"`
	Description    string       `json:"description"`
	RequiredSkills []string     `json:"required_skills"`
	SalaryMin      *float64     `json:"salary_min,omitempty"`
	SalaryMax      *float64     `json:"salary_max,omitempty"`
	RelevanceScore int          `json:"relevance_score"`
	Reasons        string       `json:"reasons"`
}

type RecommendationsResponse struct {
	CandidateID     kernel.CandidateID `json:"candidate_id"`
	Recommendations []RecommendedJob   `json:"recommendations"`
}

func ToRecommendedJob(posting job.JobPosting, result MatchResult) RecommendedJob {
	skills := posting.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return RecommendedJob{
		ID:             posting.ID,
		Title:          posting.Title,
		CompanyName:    posting.CompanyName,
		Location:       posting.Location,
		Description:    posting.Description,
		RequiredSkills: skills,
		SalaryMin:      posting.SalaryMin,
		SalaryMax:      posting.SalaryMax,
		RelevanceScore: result.RelevanceScore,
		Reasons:        result.Reasons,
	}
}
