package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scrypster/navigator/internal/sanitize"
	"github.com/scrypster/navigator/pkg/types"
)

const (
	// MaxPriorityScore caps every priority score.
	MaxPriorityScore = 0.99

	// DefaultMaxPosts is how many content items the prioritizer surfaces.
	DefaultMaxPosts = 5

	baseScore        = 0.5
	keywordBonus     = 0.3
	highEngagement   = 100
	viralEngagement  = 500
	highBonus        = 0.2
	viralBonus       = 0.4
	reasonEngagement = "High community engagement"
	reasonGeneral    = "General professional update"
)

// keywordRule selects a keyword set when the meeting context mentions trigger.
type keywordRule struct {
	trigger  string
	keywords []string
}

// keywordRules are evaluated top to bottom. A context that mentions several
// triggers gets the union of their keyword sets, in rule order.
var keywordRules = []keywordRule{
	{trigger: "partnership", keywords: []string{"collaboration", "partner", "growth", "strategy"}},
	{trigger: "technical", keywords: []string{"architecture", "scale", "performance", "ai", "engineering"}},
}

var defaultKeywords = []string{"vision", "culture", "team", "future"}

// KeywordsFor returns the relevance keywords for a meeting context.
func KeywordsFor(meetingContext string) []string {
	ctx := strings.ToLower(meetingContext)
	var out []string
	seen := make(map[string]bool)
	for _, rule := range keywordRules {
		if !strings.Contains(ctx, rule.trigger) {
			continue
		}
		for _, k := range rule.keywords {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	if len(out) == 0 {
		out = append(out, defaultKeywords...)
	}
	return out
}

// Prioritizer scores content items against a meeting context and keeps the
// highest scoring ones. It holds no state between calls.
type Prioritizer struct {
	limit int
}

// NewPrioritizer creates a prioritizer that surfaces at most limit items.
// A non-positive limit uses DefaultMaxPosts.
func NewPrioritizer(limit int) *Prioritizer {
	if limit <= 0 {
		limit = DefaultMaxPosts
	}
	return &Prioritizer{limit: limit}
}

// RankRaw sanitizes raw scraped content and ranks it. Null and non-object
// entries are dropped.
func (p *Prioritizer) RankRaw(raw []any, meetingContext string) []types.ContentItem {
	return p.Rank(sanitize.ContentItems(raw), meetingContext)
}

// Rank scores every item, sorts by score descending (stable, so ties keep
// input order) and returns at most the configured number of items. The
// input slice is not modified.
func (p *Prioritizer) Rank(items []types.ContentItem, meetingContext string) []types.ContentItem {
	keywords := KeywordsFor(meetingContext)

	scored := make([]types.ContentItem, len(items))
	for i, item := range items {
		item.PriorityScore, item.PriorityReason = Score(item, keywords)
		scored[i] = item
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PriorityScore > scored[j].PriorityScore
	})

	if len(scored) > p.limit {
		scored = scored[:p.limit]
	}
	return scored
}

// Score computes the priority score and reason of one item.
func Score(item types.ContentItem, keywords []string) (float64, string) {
	score := baseScore

	engagement := item.Engagement.Weighted()
	switch {
	case engagement > viralEngagement:
		score += viralBonus
	case engagement > highEngagement:
		score += highBonus
	}

	matches := matchKeywords(item.Content, keywords)
	score += keywordBonus * float64(len(matches))

	if score > MaxPriorityScore {
		score = MaxPriorityScore
	}
	return score, reason(matches, engagement)
}

func matchKeywords(content string, keywords []string) []string {
	text := strings.ToLower(content)
	var matches []string
	for _, k := range keywords {
		if strings.Contains(text, k) {
			matches = append(matches, k)
		}
	}
	return matches
}

func reason(matches []string, engagement int) string {
	var parts []string
	if len(matches) > 0 {
		parts = append(parts, fmt.Sprintf("Aligns with meeting context (%s)", strings.Join(matches, ", ")))
	}
	if engagement > highEngagement {
		parts = append(parts, reasonEngagement)
	}
	if len(parts) == 0 {
		return reasonGeneral
	}
	return strings.Join(parts, " & ")
}

// Rationale returns one explanation per ranked item, in order.
func Rationale(ranked []types.ContentItem) []string {
	out := make([]string, 0, len(ranked))
	for _, item := range ranked {
		out = append(out, fmt.Sprintf("Selected post from %s due to %s", item.Date, item.PriorityReason))
	}
	return out
}
