package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// DefaultCacheKey is used for an empty identifier.
const DefaultCacheKey = "profile_default.json"

const (
	linkedInMarker = "linkedin.com/in/"

	// maxUserLen keeps escaped usernames well inside file name limits.
	maxUserLen = 200
)

var validKey = regexp.MustCompile(`^profile_[A-Za-z0-9_.%@+-]+\.json$`)

// CacheKey canonicalizes a profile identifier into a file name.
// For ".../linkedin.com/in/jane-doe/" it returns "profile_jane-doe.json";
// slashes left inside the username become underscores and other bytes
// outside the key alphabet are percent-encoded. Any other non-empty
// identifier maps to "profile_id_<hex>.json", a digest of the trimmed
// identifier. Every key returned passes ValidateKey.
func CacheKey(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return DefaultCacheKey
	}
	if user := linkedInUser(identifier); user != "" {
		escaped := escapeKeyPart(strings.ReplaceAll(user, "/", "_"))
		if len(escaped) <= maxUserLen {
			return "profile_" + escaped + ".json"
		}
	}
	sum := sha256.Sum256([]byte(identifier))
	return "profile_id_" + hex.EncodeToString(sum[:8]) + ".json"
}

func linkedInUser(identifier string) string {
	i := strings.LastIndex(identifier, linkedInMarker)
	if i < 0 {
		return ""
	}
	user := strings.Trim(identifier[i+len(linkedInMarker):], "/")
	if j := strings.IndexAny(user, "?#"); j >= 0 {
		user = strings.Trim(user[:j], "/")
	}
	return user
}

func escapeKeyPart(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '_', c == '.', c == '@', c == '+', c == '-':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// ValidateKey rejects keys that CacheKey could not have produced, such as
// keys containing path separators.
func ValidateKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("%w: cache key %q", ErrInvalidInput, key)
	}
	return nil
}
