package jobinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hirestack/beacon/hiring/job"
	"github.com/hirestack/beacon/pkg/kernel"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID             string          `db:"id"`
	Title          string          `db:"title"`
	CompanyName    string          `db:"company_name"`
	Location       string          `db:"location"`
	Description    string          `db:"description"`
	RequiredSkills json.RawMessage `db:"required_skills"`
	SalaryMin      *float64        `db:"salary_min"`
	SalaryMax      *float64        `db:"salary_max"`
	Status         string          `db:"status"`
	PublishedAt    *time.Time      `db:"published_at"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (m *jobModel) toEntity() (*job.JobPosting, error) {
	skills := []string{}
	if len(m.RequiredSkills) > 0 {
		if err := json.Unmarshal(m.RequiredSkills, &skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal required skills: %w", err)
		}
	}

	return &job.JobPosting{
		ID:             kernel.JobID(m.ID),
		Title:          m.Title,
		CompanyName:    m.CompanyName,
		Location:       m.Location,
		Description:    m.Description,
		RequiredSkills: skills,
		SalaryMin:      m.SalaryMin,
		SalaryMax:      m.SalaryMax,
		Status:         job.JobStatus(m.Status),
		PublishedAt:    m.PublishedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

func fromEntity(j *job.JobPosting) (*jobModel, error) {
	skills, err := json.Marshal(j.RequiredSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal required skills: %w", err)
	}

	return &jobModel{
		ID:             string(j.ID),
		Title:          j.Title,
		CompanyName:    j.CompanyName,
		Location:       j.Location,
		Description:    j.Description,
		RequiredSkills: skills,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		Status:         string(j.Status),
		PublishedAt:    j.PublishedAt,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create adds a posting to the catalog
func (r *PostgresJobRepository) Create(ctx context.Context, posting *job.JobPosting) error {
	model, err := fromEntity(posting)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO job_postings (
			id, title, company_name, location, description,
			required_skills, salary_min, salary_max, status,
			published_at, created_at, updated_at
		) VALUES (
			:id, :title, :company_name, :location, :description,
			:required_skills, :salary_min, :salary_max, :status,
			:published_at, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return job.ErrJobAlreadyExists()
		}
		return fmt.Errorf("failed to create job posting: %w", err)
	}
	return nil
}

// GetByID retrieves a posting by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.JobPosting, error) {
	var model jobModel
	query := `SELECT * FROM job_postings WHERE id = $1`

	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}

	return model.toEntity()
}

// ListPublished retrieves every published posting in publish order
func (r *PostgresJobRepository) ListPublished(ctx context.Context) ([]job.JobPosting, error) {
	var models []jobModel
	query := `SELECT * FROM job_postings WHERE status = $1 ORDER BY published_at DESC NULLS LAST, created_at DESC`

	if err := r.db.SelectContext(ctx, &models, query, string(job.JobStatusPublished)); err != nil {
		return nil, fmt.Errorf("failed to list published postings: %w", err)
	}

	postings := make([]job.JobPosting, 0, len(models))
	for i := range models {
		entity, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		postings = append(postings, *entity)
	}
	return postings, nil
}
