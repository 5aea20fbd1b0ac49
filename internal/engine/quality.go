package engine

import (
	"fmt"
	"time"

	"github.com/scrypster/navigator/internal/sanitize"
	"github.com/scrypster/navigator/pkg/types"
)

// Quality is the multi-factor confidence of a briefing.
type Quality struct {
	// Overall is the weighted average of all factors (0.0 to 1.0).
	Overall float64

	// ProfileScore is the share of profile fields the scraper supplied.
	ProfileScore float64

	// ContentScore reflects how many posts survived ranking.
	ContentScore float64

	// ThemeScore is 1 when themes came from real content, 0 otherwise.
	ThemeScore float64

	// SourceScore is 1 for model-backed analysis and 0.5 for the fallback.
	SourceScore float64
}

var profileFields = [][]string{{"name"}, {"headline"}, {"current_role", "role"}, {"company"}, {"location"}}

// AssessQuality scores a briefing's inputs.
// Weights: Profile=0.4, Content=0.3, Theme=0.1, Source=0.2
func AssessQuality(rawProfile sanitize.Record, ranked []types.ContentItem, themes types.ThemeProfile, enhanced bool, maxPosts int) Quality {
	var q Quality

	present := 0
	for _, keys := range profileFields {
		if sanitize.FirstString(rawProfile, keys...).IsPresent() {
			present++
		}
	}
	q.ProfileScore = float64(present) / float64(len(profileFields))

	if maxPosts <= 0 {
		maxPosts = DefaultMaxPosts
	}
	q.ContentScore = float64(min(len(ranked), maxPosts)) / float64(maxPosts)

	if themes.Primary != "" && themes.Primary != DefaultPrimaryTheme {
		q.ThemeScore = 1
	}

	q.SourceScore = 0.5
	if enhanced {
		q.SourceScore = 1
	}

	q.Overall = round2(0.4*q.ProfileScore + 0.3*q.ContentScore + 0.1*q.ThemeScore + 0.2*q.SourceScore)
	return q
}

// Label maps the overall score to high, medium or low.
func (q Quality) Label() string {
	switch {
	case q.Overall >= 0.8:
		return types.DataQualityHigh
	case q.Overall >= 0.5:
		return types.DataQualityMedium
	default:
		return types.DataQualityLow
	}
}

// formatElapsed renders durations like "1.2s".
func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
