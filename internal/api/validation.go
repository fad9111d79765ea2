package api

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const maxDocumentsPerRequest = 50

// ValidateConsolidateRequest checks a consolidation request before processing.
func ValidateConsolidateRequest(req ConsolidateRequest) error {
	if len(req.Documents) == 0 {
		return ValidationError{Field: "documents", Message: "at least one document extraction is required"}
	}

	if len(req.Documents) > maxDocumentsPerRequest {
		return ValidationError{Field: "documents", Message: fmt.Sprintf("at most %d documents per request", maxDocumentsPerRequest)}
	}

	return nil
}

// ValidateExtractRequest checks an extraction request before processing.
func ValidateExtractRequest(req ExtractRequest) error {
	if strings.TrimSpace(req.Document) == "" {
		return ValidationError{Field: "document", Message: "document text is required"}
	}

	return nil
}
