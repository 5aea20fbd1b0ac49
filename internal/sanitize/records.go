// Package sanitize coerces untrusted, partially missing upstream data into
// the canonical shapes of pkg/types. Nothing here returns an error: absent,
// null or mistyped fields resolve to fixed defaults, and every list or map
// in the output is non-nil.
package sanitize

import (
	"math"

	"github.com/scrypster/navigator/pkg/types"
)

// Placeholders for missing profile and company fields.
const (
	UnknownName      = "Unknown Candidate"
	UnknownHeadline  = "No headline available"
	UnknownRole      = "Unknown Role"
	UnknownCompany   = "Unknown Company"
	UnknownLocation  = "Unknown Location"
	UnknownIndustry  = "Unknown Industry"
	UnknownDate      = "Unknown"
	DefaultSentiment = "neutral"
	DefaultStyle     = "professional"
)

// maxPriorityScore mirrors the prioritizer's cap.
const maxPriorityScore = 0.99

// Profile sanitizes a scraped profile record. Both "current_role" and
// "role" are accepted for the role.
func Profile(r Record) types.Profile {
	return types.Profile{
		Name:        String(r, "name").OrElse(UnknownName),
		Headline:    String(r, "headline").OrElse(UnknownHeadline),
		CurrentRole: FirstString(r, "current_role", "role").OrElse(UnknownRole),
		Company:     String(r, "company").OrElse(UnknownCompany),
		Location:    String(r, "location").OrElse(UnknownLocation),
		Connections: ConnectionCount(Field(r, "connections").OrElse(nil)),
	}
}

// Engagement sanitizes an engagement mapping.
func Engagement(r Record) types.Engagement {
	return types.Engagement{
		Likes:    EngagementCount(Field(r, "likes").OrElse(nil)),
		Comments: EngagementCount(Field(r, "comments").OrElse(nil)),
	}
}

// ContentItems sanitizes a raw content list. Null and non-mapping entries
// are dropped; order of the survivors is preserved.
func ContentItems(raw []any) []types.ContentItem {
	records := Records(raw)
	items := make([]types.ContentItem, 0, len(records))
	for _, r := range records {
		items = append(items, ContentItem(r))
	}
	return items
}

// ContentItem sanitizes a single content record. A priority annotation that
// is already present is kept so sanitizing ranked output is a no-op.
func ContentItem(r Record) types.ContentItem {
	item := types.ContentItem{
		Content:    rawString(r, "content"),
		Date:       String(r, "date").OrElse(UnknownDate),
		Engagement: Engagement(Nested(r, "engagement")),
		Source:     String(r, "source").OrElse(""),
	}
	if score, ok := Number(r, "priority_score").Get(); ok {
		item.PriorityScore = math.Max(0, math.Min(maxPriorityScore, score))
	}
	item.PriorityReason = String(r, "priority_reason").OrElse("")
	return item
}

// Person sanitizes the extraction-stage person block.
func Person(r Record) types.Person {
	return types.Person{
		Name:                 String(r, "name").OrElse(UnknownName),
		Role:                 FirstString(r, "role", "current_role").OrElse(UnknownRole),
		Company:              String(r, "company").OrElse(UnknownCompany),
		ProfessionalIdentity: String(r, "professional_identity").OrElse(""),
		CareerTrajectory:     String(r, "career_trajectory").OrElse(""),
	}
}

// Company sanitizes a company research record.
func Company(r Record) types.CompanyContext {
	funding := Nested(r, "funding")
	return types.CompanyContext{
		Name:     String(r, "name").OrElse(UnknownCompany),
		Industry: String(r, "industry").OrElse(UnknownIndustry),
		Funding: types.Funding{
			Stage:  String(funding, "stage").OrElse(""),
			Amount: String(funding, "amount").OrElse(""),
		},
		RecentNews:         Strings(r, "recent_news"),
		Competitors:        Strings(r, "competitors"),
		RelevanceScore:     unit(Number(r, "relevance_score").OrElse(0)),
		KeyFacts:           Strings(r, "key_facts"),
		RecentDevelopments: Strings(r, "recent_developments"),
	}
}

// Themes sanitizes an upstream theme block. A missing primary stays empty
// rather than taking a placeholder, so no talking point is invented for it.
func Themes(r Record) types.ThemeProfile {
	themes := types.ThemeProfile{
		Primary:            String(r, "primary").OrElse(""),
		Secondary:          Strings(r, "secondary"),
		FrequencyBreakdown: map[string]float64{},
	}
	for k, v := range Nested(r, "frequency_breakdown") {
		if share, ok := Float(v).Get(); ok && k != "" {
			themes.FrequencyBreakdown[k] = share
		}
	}
	return themes
}

// Sentiment sanitizes an upstream sentiment block.
func Sentiment(r Record) types.SentimentProfile {
	return types.SentimentProfile{
		Overall:            FirstString(r, "overall", "overall_sentiment").OrElse(DefaultSentiment),
		PassionTopics:      Strings(r, "passion_topics"),
		Concerns:           Strings(r, "concerns"),
		CommunicationStyle: String(r, "communication_style").OrElse(DefaultStyle),
	}
}

// Insights sanitizes an insight list, dropping entries without text.
func Insights(raw []any) []types.Insight {
	records := Records(raw)
	out := make([]types.Insight, 0, len(records))
	for _, r := range records {
		text, ok := String(r, "insight").Get()
		if !ok {
			continue
		}
		out = append(out, types.Insight{
			Insight:    text,
			Confidence: unit(Number(r, "confidence").OrElse(0)),
			Evidence:   Strings(r, "evidence"),
		})
	}
	return out
}

// Extraction sanitizes a whole extraction payload. A nil payload yields an
// extraction with placeholder person fields and empty containers.
func Extraction(r Record) types.Extraction {
	return types.Extraction{
		Person:    Person(Nested(r, "person")),
		Themes:    Themes(Nested(r, "themes")),
		Sentiment: Sentiment(Nested(r, "sentiment")),
		Insights:  Insights(List(r, "insights")),
		Posts:     ContentItems(List(r, "posts")),
	}
}

// rawString returns the string at key without trimming, or "".
func rawString(r Record, key string) string {
	v, ok := Field(r, key).Get()
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func unit(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
