package profileinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hirestack/beacon/hiring/profile"
	"github.com/hirestack/beacon/pkg/kernel"
)

// PostgresProfileRepository implements profile.Repository using PostgreSQL
type PostgresProfileRepository struct {
	db *sqlx.DB
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository
func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type profileModel struct {
	ID                string          `db:"id"`
	CandidateID       string          `db:"candidate_id"`
	Name              string          `db:"name"`
	Contact           json.RawMessage `db:"contact"`
	Skills            json.RawMessage `db:"skills"`
	ExperienceSummary sql.NullString  `db:"experience_summary"`
	EducationSummary  sql.NullString  `db:"education_summary"`
	WorkHistory       json.RawMessage `db:"work_history"`
	RawWorkHistory    string          `db:"raw_work_history"`
	CVURL             string          `db:"cv_url"`
	FileName          string          `db:"file_name"`
	SourceCharCount   int             `db:"source_char_count"`
	ExtractedAt       time.Time       `db:"extracted_at"`
	CreatedAt         time.Time       `db:"created_at"`
}

func (m *profileModel) toEntity() (*profile.CandidateProfile, error) {
	var contact profile.Contact
	if len(m.Contact) > 0 {
		if err := json.Unmarshal(m.Contact, &contact); err != nil {
			return nil, fmt.Errorf("failed to unmarshal contact: %w", err)
		}
	}

	skills := []string{}
	if len(m.Skills) > 0 {
		if err := json.Unmarshal(m.Skills, &skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
		}
	}

	var history []profile.WorkHistoryEntry
	if len(m.WorkHistory) > 0 {
		if err := json.Unmarshal(m.WorkHistory, &history); err != nil {
			return nil, fmt.Errorf("failed to unmarshal work history: %w", err)
		}
	}

	entity := &profile.CandidateProfile{
		ID:              kernel.ProfileID(m.ID),
		CandidateID:     kernel.CandidateID(m.CandidateID),
		Name:            m.Name,
		Contact:         contact,
		Skills:          skills,
		WorkHistory:     history,
		RawWorkHistory:  m.RawWorkHistory,
		CVURL:           m.CVURL,
		FileName:        m.FileName,
		SourceCharCount: m.SourceCharCount,
		ExtractedAt:     m.ExtractedAt,
		CreatedAt:       m.CreatedAt,
	}

	if m.ExperienceSummary.Valid {
		v := m.ExperienceSummary.String
		entity.ExperienceSummary = &v
	}
	if m.EducationSummary.Valid {
		v := m.EducationSummary.String
		entity.EducationSummary = &v
	}

	return entity, nil
}

func fromEntity(p *profile.CandidateProfile) (*profileModel, error) {
	contact, err := json.Marshal(p.Contact)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contact: %w", err)
	}

	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	history, err := json.Marshal(p.WorkHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal work history: %w", err)
	}

	model := &profileModel{
		ID:              string(p.ID),
		CandidateID:     string(p.CandidateID),
		Name:            p.Name,
		Contact:         contact,
		Skills:          skillsJSON,
		WorkHistory:     history,
		RawWorkHistory:  p.RawWorkHistory,
		CVURL:           p.CVURL,
		FileName:        p.FileName,
		SourceCharCount: p.SourceCharCount,
		ExtractedAt:     p.ExtractedAt,
		CreatedAt:       p.CreatedAt,
	}

	if p.ExperienceSummary != nil {
		model.ExperienceSummary = sql.NullString{String: *p.ExperienceSummary, Valid: true}
	}
	if p.EducationSummary != nil {
		model.EducationSummary = sql.NullString{String: *p.EducationSummary, Valid: true}
	}

	return model, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Upsert creates the profile or replaces the candidate's existing one.
// A new upload replaces the profile wholesale; there is no field merge.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, p *profile.CandidateProfile) error {
	model, err := fromEntity(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO candidate_profiles (
			id, candidate_id, name, contact, skills,
			experience_summary, education_summary, work_history, raw_work_history,
			cv_url, file_name, source_char_count, extracted_at, created_at
		) VALUES (
			:id, :candidate_id, :name, :contact, :skills,
			:experience_summary, :education_summary, :work_history, :raw_work_history,
			:cv_url, :file_name, :source_char_count, :extracted_at, :created_at
		)
		ON CONFLICT (candidate_id) DO UPDATE SET
			id = EXCLUDED.id,
			name = EXCLUDED.name,
			contact = EXCLUDED.contact,
			skills = EXCLUDED.skills,
			experience_summary = EXCLUDED.experience_summary,
			education_summary = EXCLUDED.education_summary,
			work_history = EXCLUDED.work_history,
			raw_work_history = EXCLUDED.raw_work_history,
			cv_url = EXCLUDED.cv_url,
			file_name = EXCLUDED.file_name,
			source_char_count = EXCLUDED.source_char_count,
			extracted_at = EXCLUDED.extracted_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetByCandidateID retrieves the candidate's current profile
func (r *PostgresProfileRepository) GetByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*profile.CandidateProfile, error) {
	var model profileModel
	query := `SELECT * FROM candidate_profiles WHERE candidate_id = $1`

	if err := r.db.GetContext(ctx, &model, query, candidateID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profile.ErrProfileNotFound()
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return model.toEntity()
}

// Delete removes the candidate's profile
func (r *PostgresProfileRepository) Delete(ctx context.Context, candidateID kernel.CandidateID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM candidate_profiles WHERE candidate_id = $1`, candidateID.String())
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return profile.ErrProfileNotFound()
	}
	return nil
}
