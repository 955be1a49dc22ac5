package profilesrv

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hirestack/beacon/hiring/profile"
	"github.com/hirestack/beacon/internal/ai/cvparser"
	"github.com/hirestack/beacon/internal/document"
	"github.com/hirestack/beacon/pkg/fsx"
	"github.com/hirestack/beacon/pkg/kernel"
	"github.com/hirestack/beacon/pkg/logx"
)

type Service struct {
	repo   profile.Repository
	parser *cvparser.Parser
	files  fsx.FileSystem
}

// NewService creates a new profile service
func NewService(repo profile.Repository, parser *cvparser.Parser, files fsx.FileSystem) *Service {
	return &Service{
		repo:   repo,
		parser: parser,
		files:  files,
	}
}

// UploadCV runs the full pipeline for one uploaded CV: store the file,
// extract its text, extract a structured profile, and replace the
// candidate's stored profile. Each stage fully succeeds or fails the
// request; no partial state is persisted between stages.
func (s *Service) UploadCV(ctx context.Context, req profile.UploadCVRequest) (*profile.ProfileResponse, error) {
	logx.Infof("Processing CV upload for candidate %s: %s (%d bytes)", req.CandidateID, req.FileName, len(req.Data))

	// Stage 1: document text
	text, err := document.ExtractText(document.File{
		Data:     req.Data,
		MIMEType: req.MIMEType,
	})
	if err != nil {
		return nil, err
	}

	// Store the original document alongside the profile
	cvURL, err := s.files.WriteFile(ctx, s.storagePath(req), req.Data, req.MIMEType)
	if err != nil {
		return nil, profile.ErrFileStoreFailed().
			WithDetail("candidate_id", req.CandidateID.String()).
			WithDetail("file_name", req.FileName).
			WithDetails(map[string]any{"error": err.Error()})
	}

	// Stage 2: structured profile
	parsed, err := s.parser.ExtractProfile(ctx, text)
	if err != nil {
		return nil, profile.ErrRegistry.NewWithCause(profile.CodeExtractionFailed, err).
			WithDetail("candidate_id", req.CandidateID.String()).
			WithDetail("file_name", req.FileName)
	}

	prof := toDomain(parsed, req, cvURL)

	logx.Infof("Profile extracted for candidate %s: %d skills, mode=%d", req.CandidateID, len(prof.Skills), parsed.Mode)

	// Stage 3: replace the candidate's profile
	if err := s.repo.Upsert(ctx, prof); err != nil {
		return nil, profile.ErrRegistry.NewWithCause(profile.CodeProfileSaveFailed, err).
			WithDetail("candidate_id", req.CandidateID.String())
	}

	return profile.ToProfileResponse(prof), nil
}

// GetProfile retrieves the candidate's current profile
func (s *Service) GetProfile(ctx context.Context, candidateID kernel.CandidateID) (*profile.ProfileResponse, error) {
	prof, err := s.repo.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, profile.ErrProfileNotFound().
			WithDetail("candidate_id", candidateID.String())
	}
	return profile.ToProfileResponse(prof), nil
}

// DeleteProfile removes the candidate's profile
func (s *Service) DeleteProfile(ctx context.Context, candidateID kernel.CandidateID) error {
	if err := s.repo.Delete(ctx, candidateID); err != nil {
		return profile.ErrProfileNotFound().
			WithDetail("candidate_id", candidateID.String())
	}
	return nil
}

func (s *Service) storagePath(req profile.UploadCVRequest) string {
	ext := filepath.Ext(req.FileName)
	if ext == "" {
		if req.MIMEType == document.MIMETypePDF {
			ext = ".pdf"
		} else {
			ext = ".docx"
		}
	}
	return fmt.Sprintf("cvs/%s/%s%s", req.CandidateID, uuid.NewString(), ext)
}

// toDomain converts parser output to the domain model
func toDomain(parsed *cvparser.ProfileData, req profile.UploadCVRequest, cvURL string) *profile.CandidateProfile {
	skills := parsed.Skills
	if skills == nil {
		skills = []string{}
	}

	history := make([]profile.WorkHistoryEntry, 0, len(parsed.WorkHistory))
	for _, entry := range parsed.WorkHistory {
		history = append(history, profile.WorkHistoryEntry{
			Title:        entry.Title,
			Company:      entry.Company,
			DurationText: entry.DurationText,
		})
	}

	now := time.Now()
	return &profile.CandidateProfile{
		ID:          kernel.NewProfileID(uuid.NewString()),
		CandidateID: req.CandidateID,
		Name:        parsed.Name,
		Contact: profile.Contact{
			Email: parsed.Contact.Email,
			Phone: parsed.Contact.Phone,
		},
		Skills:            skills,
		ExperienceSummary: parsed.ExperienceSummary,
		EducationSummary:  parsed.EducationSummary,
		WorkHistory:       history,
		RawWorkHistory:    parsed.RawWorkHistory,
		CVURL:             cvURL,
		FileName:          req.FileName,
		SourceCharCount:   parsed.SourceChars,
		ExtractedAt:       now,
		CreatedAt:         now,
	}
}
