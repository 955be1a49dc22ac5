package profileapi

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hirestack/beacon/hiring/profile"
	"github.com/hirestack/beacon/hiring/profile/profilesrv"
	"github.com/hirestack/beacon/internal/document"
	"github.com/hirestack/beacon/pkg/kernel"
)

// MaxCVSizeBytes is the upload cap enforced at this boundary
const MaxCVSizeBytes = 5 * 1024 * 1024

// Handlers provides HTTP handlers for candidate profile operations
type Handlers struct {
	service *profilesrv.Service
}

// NewHandlers creates a new profile handlers instance
func NewHandlers(service *profilesrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// RegisterRoutes wires the profile endpoints. Candidate identity arrives as
// a path parameter; authentication lives upstream of this service.
func RegisterRoutes(app *fiber.App, h *Handlers) {
	candidates := app.Group("/api/candidates/:candidate_id")

	candidates.Post("/profile/cv", h.UploadCV)
	candidates.Get("/profile", h.GetProfile)
	candidates.Delete("/profile", h.DeleteProfile)
}

// UploadCV accepts a CV document and replaces the candidate's profile
// POST /api/candidates/:candidate_id/profile/cv
func (h *Handlers) UploadCV(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("candidate_id"))
	if candidateID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_id is required",
		})
	}

	file, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv file is required",
		})
	}

	if file.Size > MaxCVSizeBytes {
		return profile.ErrFileTooLarge().
			WithDetail("size", file.Size).
			WithDetail("max_size", MaxCVSizeBytes)
	}

	mimeType := resolveMIMEType(file.Filename, file.Header.Get("Content-Type"))
	if mimeType == "" {
		return document.ErrUnsupportedFormat().
			WithDetail("detected_type", file.Header.Get("Content-Type")).
			WithDetail("file_extension", filepath.Ext(file.Filename)).
			WithDetail("supported_types", []string{document.MIMETypePDF, document.MIMETypeDOCX})
	}

	uploaded, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer uploaded.Close()

	data, err := io.ReadAll(uploaded)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	resp, err := h.service.UploadCV(c.Context(), profile.UploadCVRequest{
		CandidateID: candidateID,
		FileName:    file.Filename,
		MIMEType:    mimeType,
		Data:        data,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetProfile returns the candidate's current profile
// GET /api/candidates/:candidate_id/profile
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("candidate_id"))
	if candidateID.IsEmpty() {
		return profile.ErrProfileNotFound().WithDetail("candidate_id", "missing or empty")
	}

	resp, err := h.service.GetProfile(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DeleteProfile removes the candidate's profile
// DELETE /api/candidates/:candidate_id/profile
func (h *Handlers) DeleteProfile(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("candidate_id"))
	if candidateID.IsEmpty() {
		return profile.ErrProfileNotFound().WithDetail("candidate_id", "missing or empty")
	}

	if err := h.service.DeleteProfile(c.Context(), candidateID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// resolveMIMEType maps the declared content type or file extension to one
// of the supported document types; empty means unsupported
func resolveMIMEType(filename, contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return document.MIMETypePDF
	case strings.Contains(ct, "wordprocessingml"):
		return document.MIMETypeDOCX
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return document.MIMETypePDF
	case ".docx":
		return document.MIMETypeDOCX
	}

	return ""
}
