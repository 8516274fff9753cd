package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable identifier for an operation run.
// Format: {operation}-{unitSlug}-{8charHexUUID}
//
// Example:
//   - Input: operation="reconcile", unitName="Atlas AS7-D"
//   - Output: "reconcile-atlas-as7-d-a3f8e2b1"
func GenerateRunID(operation, unitName string) string {
	slug := slugify(unitName)
	if slug == "" {
		return operation + "-" + generateShortUUID()
	}
	return operation + "-" + slug + "-" + generateShortUUID()
}

// slugify lowercases the name and collapses anything that is not a letter or
// digit into single hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
