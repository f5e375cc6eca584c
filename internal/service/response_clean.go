package service

import (
	"regexp"
	"strings"
)

var (
	reFenceStart = regexp.MustCompile("(?is)^\\s*```(?:json|yaml|text)?\\s*")
	reFenceEnd   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// cleanModelResponse quita fences ```...``` y BOM, dejando el contenido usable.
func cleanModelResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// BOM (por si acaso)
	s = strings.TrimPrefix(s, "\uFEFF")

	s = reFenceStart.ReplaceAllString(s, "")
	s = reFenceEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
