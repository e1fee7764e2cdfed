// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port
// interfaces. They contain NO framework code - just the conversation
// lifecycle logic.
package usecases

import (
	"errors"
	"strings"
)

// ErrUnsupportedType is the stable rejection reason for the upload gate.
var ErrUnsupportedType = errors.New("unsupported file type")

const pdfContentType = "application/pdf"

// Suffixes are matched as given, without case folding, mirroring the
// backend's own endswith checks.
var allowedSuffixes = []string{".pdf", ".txt"}

// ValidateUpload is the upload gate: a pure predicate deciding whether a
// locally selected file is eligible for submission. Accepts when the
// declared content type indicates PDF, or the name carries an allowed
// suffix. Everything else is rejected with ErrUnsupportedType.
func ValidateUpload(name, contentType string) error {
	if contentType == pdfContentType {
		return nil
	}
	for _, suffix := range allowedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return nil
		}
	}
	return ErrUnsupportedType
}
