package logging

// tokenPrefixLen is how many characters of a bearer token survive in log output.
const tokenPrefixLen = 8

// FormatToken formats a session token for logging. Bearer credentials are never
// written in full, not even at DEBUG level; only a short prefix is kept so
// operators can tell two sessions apart.
//
// Usage: logging.Debug("Submitting batch for %s", logging.FormatToken(token))
func FormatToken(token string) string {
	if token == "" {
		return "<none>"
	}
	if len(token) <= tokenPrefixLen {
		return "****"
	}
	return token[:tokenPrefixLen] + "…"
}
