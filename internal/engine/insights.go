package engine

import (
	"fmt"
	"math"

	"github.com/scrypster/navigator/pkg/types"
)

// DeriveInsights turns a theme and sentiment profile into short
// observations. Evidence cites the ranked posts that mention each theme.
func DeriveInsights(themes types.ThemeProfile, sentiment types.SentimentProfile, posts []types.ContentItem) []types.Insight {
	insights := []types.Insight{}
	if themes.Primary == "" {
		return insights
	}

	share := themes.FrequencyBreakdown[themes.Primary]
	text := fmt.Sprintf("Most of their content centers on %s", themes.Primary)
	if len(themes.Secondary) > 0 {
		if next := themes.FrequencyBreakdown[themes.Secondary[0]]; next > 0 && share/next >= 2 {
			text = fmt.Sprintf("Posts about %s %.0fx more than anything else", themes.Primary, share/next)
		}
	}
	insights = append(insights, types.Insight{
		Insight:    text,
		Confidence: round2(math.Min(0.95, 0.6+0.35*share)),
		Evidence:   nonNil(postRefs(posts, themes.Primary)),
	})

	if len(themes.Secondary) >= 2 {
		a, b := themes.Secondary[0], themes.Secondary[1]
		insights = append(insights, types.Insight{
			Insight:    fmt.Sprintf("Also engages with %s and %s", a, b),
			Confidence: 0.7,
			Evidence:   nonNil(union(postRefs(posts, a), postRefs(posts, b))),
		})
	}

	tone := fmt.Sprintf("Tone is mostly %s with a %s communication style", sentiment.Overall, sentiment.CommunicationStyle)
	if len(sentiment.Concerns) > 0 {
		tone += fmt.Sprintf("; expect concerns about %s", sentiment.Concerns[0])
	}
	insights = append(insights, types.Insight{
		Insight:    tone,
		Confidence: 0.6,
		Evidence:   []string{},
	})
	return insights
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(a, b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
