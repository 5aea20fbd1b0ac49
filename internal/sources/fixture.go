package sources

import (
	"context"
	"fmt"
	"os"

	"github.com/scrypster/navigator/internal/sanitize"
)

// Fixture is a scraping run captured as JSON:
//
//	{"profile": {...}, "posts": [...], "company_context": {...}, "extraction": {...}}
//
// It serves the same data for every identifier.
type Fixture struct {
	Profile        sanitize.Record `json:"profile"`
	Posts          []any           `json:"posts"`
	CompanyContext sanitize.Record `json:"company_context"`
	Extraction     sanitize.Record `json:"extraction"`
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sources: failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture JSON. Numbers are kept as json.Number so
// sanitization sees them as the scraper produced them.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := decodeJSON(data, &f); err != nil {
		return nil, fmt.Errorf("sources: invalid fixture: %w", err)
	}
	return &f, nil
}

// Scrape returns the fixture profile and posts.
func (f *Fixture) Scrape(ctx context.Context, identifier string) (*ScrapeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(f.Profile) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, identifier)
	}
	return &ScrapeResult{Profile: f.Profile, Posts: f.Posts, Extraction: f.Extraction}, nil
}

// Research returns the fixture company context, or ErrNoData.
func (f *Fixture) Research(ctx context.Context, company, role string) (sanitize.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(f.CompanyContext) == 0 {
		return nil, fmt.Errorf("%w: company %s", ErrNoData, company)
	}
	return f.CompanyContext, nil
}

var (
	_ Scraper           = (*Fixture)(nil)
	_ CompanyResearcher = (*Fixture)(nil)
)
