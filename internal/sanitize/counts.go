package sanitize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

// EngagementCount coerces a likes/comments value to a non-negative integer.
// Integers pass through; digit-only strings are parsed; anything else is 0.
func EngagementCount(v any) int {
	switch n := v.(type) {
	case int:
		return nonNegative(n)
	case int32:
		return nonNegative(int(n))
	case int64:
		return nonNegative(int(n))
	case float64:
		// JSON numbers decode as float64; only whole numbers are integers.
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0
		}
		return nonNegative(int(n))
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return nonNegative(int(i))
	case string:
		s := strings.TrimSpace(n)
		if s == "" || !isDigits(s) {
			return 0
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

// ConnectionCount coerces a connection count. Integers pass through; for
// strings such as "500+" the first digit run is parsed. Anything else is 0.
func ConnectionCount(v any) int {
	switch n := v.(type) {
	case string:
		run := digitRun.FindString(n)
		if run == "" {
			return 0
		}
		i, err := strconv.Atoi(run)
		if err != nil {
			return 0
		}
		return i
	default:
		return EngagementCount(v)
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func nonNegative(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
