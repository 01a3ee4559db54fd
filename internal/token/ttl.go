package token

import (
	"regexp"
	"strconv"
	"time"
)

// DefaultTTL is used when a TTL string does not match the grammar.
const DefaultTTL = 24 * time.Hour

var ttlPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseTTL parses a compact duration string: an integer followed by one of
// s, m, h or d. An unparsable string falls back to DefaultTTL. The same
// grammar configures both access and refresh token lifetimes.
func ParseTTL(s string) time.Duration {
	match := ttlPattern.FindStringSubmatch(s)
	if match == nil {
		return DefaultTTL
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return DefaultTTL
	}

	switch match[2] {
	case "s":
		return time.Duration(n) * time.Second
	case "m":
		return time.Duration(n) * time.Minute
	case "h":
		return time.Duration(n) * time.Hour
	case "d":
		return time.Duration(n) * 24 * time.Hour
	default:
		return DefaultTTL
	}
}
