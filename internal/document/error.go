package document

import (
	"net/http"

	"github.com/hirestack/beacon/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("DOCUMENT")

var (
	CodeUnsupportedFormat = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Document format is not supported")
	CodeCorruptDocument   = ErrRegistry.Register("CORRUPT_DOCUMENT", errx.TypeValidation, http.StatusUnprocessableEntity, "Document could not be read")
)

func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat)
}

func ErrCorruptDocument() *errx.Error {
	return ErrRegistry.New(CodeCorruptDocument)
}
