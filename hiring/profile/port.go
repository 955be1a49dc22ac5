package profile

import (
	"context"

	"github.com/hirestack/beacon/pkg/kernel"
)

type Repository interface {
	// Upsert creates the profile or replaces the candidate's existing one
	Upsert(ctx context.Context, profile *CandidateProfile) error

	// GetByCandidateID retrieves the candidate's current profile
	GetByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*CandidateProfile, error)

	// Delete removes the candidate's profile
	Delete(ctx context.Context, candidateID kernel.CandidateID) error
}
