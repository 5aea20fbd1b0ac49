package engine

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/scrypster/navigator/internal/llm"
	"github.com/scrypster/navigator/pkg/types"
)

const (
	// DefaultPrimaryTheme is used when no content token survives filtering.
	DefaultPrimaryTheme = "general technology"

	// DefaultMaxLLMPosts bounds how many texts go into an analysis prompt.
	DefaultMaxLLMPosts = 20

	topThemes      = 5
	minTokenLength = 4
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var stopWords = toSet(
	"the", "and", "a", "to", "of", "in", "is", "for", "on", "with", "my", "at", "it", "this", "that", "are", "was", "be", "as",
	"about", "from", "have", "would", "will", "just", "like", "more", "wanted", "share", "something", "thanks", "please",
	"what", "when", "where", "who", "which", "why", "how", "can", "could", "should", "your", "their", "our", "been", "has",
	"there", "here", "really", "very", "much", "also", "some", "other", "into", "over", "after", "before", "out", "only",
	"want", "need", "good", "great", "best", "better", "know", "think", "make", "take", "time", "work", "people", "years",
)

var (
	positiveWords = toSet("excited", "happy", "great", "love", "amazing", "proud", "grateful", "best", "good")
	concernWords  = toSet("challenge", "problem", "issue", "debt", "complex", "hard", "difficult", "struggle")
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Analysis is the output of the theme/sentiment stage.
type Analysis struct {
	Themes    types.ThemeProfile
	Sentiment types.SentimentProfile
	// Enhanced is true when the result came from the LLM path.
	Enhanced bool
}

// ThemeAnalyzer derives themes and sentiment from content. With a text
// generator it asks the model first; without one, or when the model fails,
// it uses word frequency and keyword sentiment.
type ThemeAnalyzer struct {
	gen      llm.TextGenerator
	maxPosts int
}

// NewThemeAnalyzer creates an analyzer. gen may be nil.
func NewThemeAnalyzer(gen llm.TextGenerator, maxPosts int) *ThemeAnalyzer {
	if maxPosts <= 0 {
		maxPosts = DefaultMaxLLMPosts
	}
	return &ThemeAnalyzer{gen: gen, maxPosts: maxPosts}
}

// Analyze never fails. Callers cannot tell a model failure from a missing
// model except through Analysis.Enhanced.
func (a *ThemeAnalyzer) Analyze(ctx context.Context, items []types.ContentItem) Analysis {
	texts := contentTexts(items)

	var enhanced enhancer[Analysis]
	if a.gen != nil {
		enhanced = func(ctx context.Context) (Analysis, error) {
			resp, err := a.gen.Complete(ctx, llm.ThemeAnalysisPrompt(texts, a.maxPosts))
			if err != nil {
				return Analysis{}, fmt.Errorf("theme analysis: %w", err)
			}
			parsed, err := llm.ParseThemeAnalysisResponse(resp)
			if err != nil {
				return Analysis{}, err
			}
			return Analysis{Themes: parsed.Themes, Sentiment: parsed.Sentiment, Enhanced: true}, nil
		}
	}

	out, _ := withFallback(ctx, "themes", enhanced, func() Analysis {
		return Analysis{Themes: FrequencyThemes(texts), Sentiment: KeywordSentiment(texts)}
	})
	return out
}

func contentTexts(items []types.ContentItem) []string {
	texts := make([]string, 0, len(items))
	for _, item := range items {
		if item.Content != "" {
			texts = append(texts, item.Content)
		}
	}
	return texts
}

// FrequencyThemes ranks the most frequent meaningful words. Stop words and
// words of three characters or fewer are ignored. Shares are relative to
// every kept token, so the top five need not sum to 1.
func FrequencyThemes(texts []string) types.ThemeProfile {
	text := strings.ToLower(strings.Join(texts, " "))

	counts := make(map[string]int)
	var order []string
	total := 0
	for _, w := range wordPattern.FindAllString(text, -1) {
		if _, stop := stopWords[w]; stop || utf8.RuneCountInString(w) < minTokenLength {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
		total++
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topThemes {
		order = order[:topThemes]
	}

	profile := types.ThemeProfile{
		Primary:            DefaultPrimaryTheme,
		Secondary:          []string{},
		FrequencyBreakdown: make(map[string]float64, len(order)),
	}
	for i, w := range order {
		profile.FrequencyBreakdown[w] = float64(counts[w]) / float64(total)
		if i == 0 {
			profile.Primary = w
		} else {
			profile.Secondary = append(profile.Secondary, w)
		}
	}
	return profile
}

// KeywordSentiment counts whole-word positive and concern terms.
func KeywordSentiment(texts []string) types.SentimentProfile {
	pos, neg := 0, 0
	for _, w := range strings.Fields(strings.ToLower(strings.Join(texts, " "))) {
		if _, ok := positiveWords[w]; ok {
			pos++
		}
		if _, ok := concernWords[w]; ok {
			neg++
		}
	}

	sentiment := types.SentimentProfile{
		Overall:            types.SentimentPositive,
		PassionTopics:      []string{"technology", "growth"},
		Concerns:           []string{},
		CommunicationStyle: "professional",
	}
	if pos < neg {
		sentiment.Overall = types.SentimentConcerned
	}
	if neg > 0 {
		sentiment.Concerns = append(sentiment.Concerns, "complexity")
	}
	return sentiment
}
