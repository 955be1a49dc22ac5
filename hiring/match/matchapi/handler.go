package matchapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hirestack/beacon/hiring/match/matchsrv"
	"github.com/hirestack/beacon/hiring/profile"
	"github.com/hirestack/beacon/pkg/kernel"
)

// Handlers provides HTTP handlers for job recommendations
type Handlers struct {
	service *matchsrv.Service
}

// NewHandlers creates a new match handlers instance
func NewHandlers(service *matchsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// RegisterRoutes wires the recommendation endpoint
func RegisterRoutes(app *fiber.App, h *Handlers) {
	candidates := app.Group("/api/candidates/:candidate_id")

	candidates.Get("/recommendations", h.GetRecommendations)
}

// GetRecommendations returns the candidate's ranked job matches
// GET /api/candidates/:candidate_id/recommendations
func (h *Handlers) GetRecommendations(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("candidate_id"))
	if candidateID.IsEmpty() {
		return profile.ErrProfileNotFound().WithDetail("candidate_id", "missing or empty")
	}

	resp, err := h.service.Recommend(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
