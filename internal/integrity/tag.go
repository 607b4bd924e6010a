// Package integrity builds and checks the integrity tag attached to click
// submissions.
//
// The tag is HMAC-SHA256 over "{timestamp}:{token}" keyed with a shared
// application secret, hex encoded. It binds a fresh timestamp to the bearer
// credential so the backend can reject stale or replayed submissions.
//
// The secret ships inside the client, so the tag is tamper evidence against
// casual replay and nothing more. It is not an authentication boundary; the
// bearer token is.
package integrity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DefaultSecret is the fallback used when CLICKER_SECRET is unset.
const DefaultSecret = "defaultSecret"

var (
	// ErrTagMismatch is returned when a tag does not match the expected digest.
	ErrTagMismatch = errors.New("integrity tag mismatch")

	// ErrStale is returned when the signed timestamp is outside the tolerance window.
	ErrStale = errors.New("integrity timestamp outside tolerance window")
)

// Message returns the signed message for a timestamp (ms since epoch) and token.
func Message(timestampMs int64, token string) []byte {
	return []byte(strconv.FormatInt(timestampMs, 10) + ":" + token)
}

// Sign returns the hex encoded HMAC-SHA256 of message keyed with secret.
func Sign(secret string, message []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// Tag computes the integrity tag for a click submission.
func Tag(secret string, timestampMs int64, token string) string {
	return Sign(secret, Message(timestampMs, token))
}

// Verify checks a submitted tag against the expected digest and checks that
// the timestamp lies within tolerance of now in either direction. The digest
// comparison is constant time.
func Verify(secret string, timestampMs int64, token, tag string, now time.Time, tolerance time.Duration) error {
	got, err := hex.DecodeString(tag)
	if err != nil {
		return fmt.Errorf("%w: not hex encoded", ErrTagMismatch)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(Message(timestampMs, token))
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrTagMismatch
	}

	skew := now.Sub(time.UnixMilli(timestampMs))
	if skew < 0 {
		skew = -skew
	}
	if skew > tolerance {
		return fmt.Errorf("%w: skew %s exceeds %s", ErrStale, skew, tolerance)
	}

	return nil
}
