package validate

import (
	"fmt"
	"regexp"
)

// maxIdentifierLen bounds identifiers accepted from the command line.
const maxIdentifierLen = 128

var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IdentifierFormat validates task and user identifiers before they are placed
// into request bodies or query strings. Backend identifiers are opaque, so only
// the character set and length are checked.
func IdentifierFormat(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	if len(id) > maxIdentifierLen {
		return fmt.Errorf("%s '%s...' exceeds %d characters", kind, id[:16], maxIdentifierLen)
	}
	if !identifierRegex.MatchString(id) {
		return fmt.Errorf("%s '%s' must contain only letters, numbers, hyphens (-), and underscores (_)", kind, id)
	}
	return nil
}
