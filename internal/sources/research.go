package sources

import (
	"context"
	"fmt"

	"github.com/scrypster/navigator/internal/sanitize"
)

// StaticResearcher answers every company lookup with a generic profile:
// a Series B AI company with two headline news items. It stands in for a
// research service in demos.
type StaticResearcher struct{}

// Research returns the static company profile for company.
func (StaticResearcher) Research(ctx context.Context, company, role string) (sanitize.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sanitize.Record{
		"name":     company,
		"industry": "Artificial Intelligence",
		"funding":  sanitize.Record{"stage": "Series B", "amount": "$50M"},
		"recent_news": []any{
			fmt.Sprintf("%s raises Series B led by Sequoia", company),
			fmt.Sprintf("%s launches new enterprise product", company),
		},
		"competitors": []any{"OpenAI", "Anthropic"},
	}, nil
}

var _ CompanyResearcher = StaticResearcher{}
