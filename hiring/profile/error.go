package profile

import (
	"net/http"

	"github.com/hirestack/beacon/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("PROFILE")

var (
	CodeProfileNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Profile not found")
	CodeExtractionFailed = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeUnavailable, http.StatusBadGateway, "Failed to extract profile from CV")
	CodeFileTooLarge     = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "CV file exceeds the maximum allowed size")
	CodeFileStoreFailed  = ErrRegistry.Register("FILE_STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store CV file")
	CodeProfileSaveFailed = ErrRegistry.Register("SAVE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to save profile")
)

func ErrProfileNotFound() *errx.Error {
	return ErrRegistry.New(CodeProfileNotFound)
}

// ErrExtractionFailed - the completion call failed or returned unusable
// content. Partial extraction is never escalated to this error.
func ErrExtractionFailed() *errx.Error {
	return ErrRegistry.New(CodeExtractionFailed)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrFileStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeFileStoreFailed)
}

func ErrProfileSaveFailed() *errx.Error {
	return ErrRegistry.New(CodeProfileSaveFailed)
}
