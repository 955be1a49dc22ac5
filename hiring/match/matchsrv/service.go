package matchsrv

import (
	"context"
	"fmt"

	"github.com/hirestack/beacon/hiring/job"
	"github.com/hirestack/beacon/hiring/match"
	"github.com/hirestack/beacon/hiring/profile"
	"github.com/hirestack/beacon/internal/ai/jobmatcher"
	"github.com/hirestack/beacon/pkg/kernel"
	"github.com/hirestack/beacon/pkg/logx"
)

type Service struct {
	profiles profile.Repository
	jobs     job.Repository
	matcher  *jobmatcher.Matcher
	limiter  match.RateLimiter
	topN     int
}

// NewService creates a new recommendation service. topN <= 0 falls back
// to the matcher's default.
func NewService(profiles profile.Repository, jobs job.Repository, matcher *jobmatcher.Matcher, limiter match.RateLimiter, topN int) *Service {
	return &Service{
		profiles: profiles,
		jobs:     jobs,
		matcher:  matcher,
		limiter:  limiter,
		topN:     topN,
	}
}

// Recommend scores the full published catalog against the candidate's
// profile and returns the top matches. The whole catalog goes through a
// single completion call per request; the rate limiter bounds how often
// a single candidate can trigger that call.
func (s *Service) Recommend(ctx context.Context, candidateID kernel.CandidateID) (*match.RecommendationsResponse, error) {
	if err := s.checkRateLimit(ctx, candidateID); err != nil {
		return nil, err
	}

	prof, err := s.profiles.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, profile.ErrProfileNotFound().
			WithDetail("candidate_id", candidateID.String())
	}

	postings, err := s.jobs.ListPublished(ctx)
	if err != nil {
		return nil, match.ErrRegistry.NewWithCause(match.CodeRecommendationFailed, err).
			WithDetail("candidate_id", candidateID.String())
	}
	if len(postings) == 0 {
		return emptyResponse(candidateID), nil
	}

	catalog := make(map[kernel.JobID]job.JobPosting, len(postings))
	listings := make([]jobmatcher.JobListing, 0, len(postings))
	for _, posting := range postings {
		catalog[posting.ID] = posting
		listings = append(listings, jobmatcher.JobListing{
			ID:             posting.ID.String(),
			Title:          posting.Title,
			CompanyName:    posting.CompanyName,
			RequiredSkills: posting.RequiredSkills,
			Description:    posting.Description,
		})
	}

	matches, err := s.matcher.Recommend(ctx, jobmatcher.CandidateSummary{
		Skills:     prof.Skills,
		Experience: prof.ExperienceText(),
		Education:  prof.EducationText(),
	}, listings, s.topN)
	if err != nil {
		return nil, match.ErrRegistry.NewWithCause(match.CodeRecommendationFailed, err).
			WithDetail("candidate_id", candidateID.String())
	}

	logx.Infof("Matched candidate %s against %d postings: %d recommendations", candidateID, len(postings), len(matches))

	recommended := make([]match.RecommendedJob, 0, len(matches))
	for _, m := range matches {
		posting, ok := catalog[kernel.JobID(m.JobID)]
		if !ok {
			continue
		}
		recommended = append(recommended, match.ToRecommendedJob(posting, match.MatchResult{
			JobID:          posting.ID,
			RelevanceScore: m.RelevanceScore,
			Reasons:        m.Reasons,
		}))
	}

	return &match.RecommendationsResponse{
		CandidateID:     candidateID,
		Recommendations: recommended,
	}, nil
}

// checkRateLimit fails open: a limiter backend outage degrades to
// unlimited requests rather than taking recommendations down with it.
func (s *Service) checkRateLimit(ctx context.Context, candidateID kernel.CandidateID) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.Allow(ctx, fmt.Sprintf("recommend:%s", candidateID))
	if err != nil {
		logx.Warnf("Rate limiter unavailable, allowing request for candidate %s: %v", candidateID, err)
		return nil
	}
	if !allowed {
		return match.ErrRateLimited().
			WithDetail("candidate_id", candidateID.String())
	}
	return nil
}

func emptyResponse(candidateID kernel.CandidateID) *match.RecommendationsResponse {
	return &match.RecommendationsResponse{
		CandidateID:     candidateID,
		Recommendations: []match.RecommendedJob{},
	}
}
