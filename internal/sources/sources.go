// Package sources defines the upstream collaborators that feed the briefing
// pipeline (profile scraping and company research) and provides a JSON
// fixture implementation of both for offline runs and tests.
package sources

import (
	"context"
	"errors"

	"github.com/scrypster/navigator/internal/sanitize"
)

// ErrNoData is returned when a source has nothing for an identifier.
var ErrNoData = errors.New("no data for identifier")

// ScrapeResult is the raw, unsanitized output of a scraping run.
type ScrapeResult struct {
	// Profile is the scraped profile record. Nil means nothing was found.
	Profile sanitize.Record

	// Posts are raw content records, possibly null or malformed.
	Posts []any

	// Extraction optionally carries upstream themes, sentiment and insights.
	Extraction sanitize.Record
}

// Scraper fetches a profile and its recent content.
type Scraper interface {
	Scrape(ctx context.Context, identifier string) (*ScrapeResult, error)
}

// CompanyResearcher looks up context about a company.
type CompanyResearcher interface {
	Research(ctx context.Context, company, role string) (sanitize.Record, error)
}
