package services

import "strings"

// NormalizeResponse strips the wrapping artifacts LLM backends add around
// JSON payloads: surrounding whitespace and fenced code blocks with an
// optional language tag. The result is a best-effort JSON-shaped string;
// whether it parses is the validator's call. Absence of fences is the
// common case and a no-op.
func NormalizeResponse(raw string) string {
	if raw == "" {
		return ""
	}

	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx != -1 {
			cleaned = cleaned[idx+1:]
		} else {
			cleaned = cleaned[3:]
		}
	}

	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, "```")

	// A language tag left on its own line ("json\n{...}") survives the
	// fence strip when the fence and tag were not newline-separated.
	if strings.HasPrefix(cleaned, "json") {
		cleaned = strings.TrimSpace(cleaned[4:])
	}

	return strings.TrimSpace(cleaned)
}
