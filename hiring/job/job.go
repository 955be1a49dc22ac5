package job

import (
	"time"

	"github.com/hirestack/beacon/pkg/kernel"
)

// JobStatus represents the status of a job posting
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"     // Created but not published
	JobStatusPublished JobStatus = "PUBLISHED" // Visible to candidates and the matcher
	JobStatusClosed    JobStatus = "CLOSED"    // No longer accepting applications
	JobStatusArchived  JobStatus = "ARCHIVED"  // Archived
)

// JobPosting is a position in the catalog. The matcher consumes postings
// read-only; it never mutates them.
type JobPosting struct {
	ID             kernel.JobID `db:"id" json:"id"`
	Title          string       `db:"title" json:"title"`
	CompanyName    string       `db:"company_name" json:"company_name"`
	Location       string       `db:"location" json:"location"`
	Description    string       `db:"description" json:"description"`
	RequiredSkills []string     `db:"required_skills" json:"required_skills"`
	SalaryMin      *float64     `db:"salary_min" json:"salary_min,omitempty"`
	SalaryMax      *float64     `db:"salary_max" json:"salary_max,omitempty"`
	Status         JobStatus    `db:"status" json:"status"`
	PublishedAt    *time.Time   `db:"published_at" json:"published_at,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

// IsPublished checks if the posting is currently published
func (j *JobPosting) IsPublished() bool {
	return j.Status == JobStatusPublished
}

// Publish marks the posting as published
func (j *JobPosting) Publish() {
	now := time.Now()
	j.Status = JobStatusPublished
	j.PublishedAt = &now
	j.UpdatedAt = now
}

// Close marks the posting as closed
func (j *JobPosting) Close() {
	j.Status = JobStatusClosed
	j.UpdatedAt = time.Now()
}
