package engine

import (
	"fmt"
	"strings"

	"github.com/scrypster/navigator/pkg/types"
)

// EnrichCompany fills the derived company fields: relevance to the meeting
// context, key facts and recent developments. Fields already supplied are
// kept.
func EnrichCompany(c types.CompanyContext, meetingContext string) types.CompanyContext {
	if c.RelevanceScore == 0 {
		c.RelevanceScore = companyRelevance(c, meetingContext)
	}
	if len(c.KeyFacts) == 0 {
		c.KeyFacts = companyFacts(c)
	}
	if len(c.RecentDevelopments) == 0 {
		c.RecentDevelopments = append([]string{}, c.RecentNews...)
	}
	return c
}

// companyRelevance starts at 0.5 and adds 0.1 per meeting keyword found in
// the company's name, industry or news, capped like a priority score.
func companyRelevance(c types.CompanyContext, meetingContext string) float64 {
	text := strings.ToLower(strings.Join(append([]string{c.Name, c.Industry}, c.RecentNews...), " "))
	score := 0.5
	for _, k := range KeywordsFor(meetingContext) {
		if strings.Contains(text, k) {
			score += 0.1
		}
	}
	return round2(min(score, MaxPriorityScore))
}

func companyFacts(c types.CompanyContext) []string {
	facts := []string{fmt.Sprintf("Industry: %s", c.Industry)}
	switch {
	case c.Funding.Stage != "" && c.Funding.Amount != "":
		facts = append(facts, fmt.Sprintf("Funding: %s (%s)", c.Funding.Stage, c.Funding.Amount))
	case c.Funding.Stage != "":
		facts = append(facts, fmt.Sprintf("Funding: %s", c.Funding.Stage))
	}
	if len(c.Competitors) > 0 {
		facts = append(facts, fmt.Sprintf("Competes with %s", strings.Join(c.Competitors, ", ")))
	}
	return facts
}
