// Package engine turns scraped profile data into a meeting briefing. It
// ranks content against the meeting context, derives themes and sentiment,
// classifies the person, and synthesizes talking points with a reasoning
// chain. Every model-backed step has a deterministic fallback, so a briefing
// is produced whenever a profile is available.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scrypster/navigator/internal/config"
	"github.com/scrypster/navigator/internal/llm"
	"github.com/scrypster/navigator/internal/logging"
	"github.com/scrypster/navigator/internal/sanitize"
	"github.com/scrypster/navigator/internal/sources"
	"github.com/scrypster/navigator/internal/storage"
	"github.com/scrypster/navigator/pkg/types"
)

// ErrNoProfile is returned when no profile data could be extracted. It is
// the only failure a briefing run reports; everything else degrades to a
// fallback.
var ErrNoProfile = errors.New("could not extract profile")

// Request describes one briefing.
type Request struct {
	// Identifier is the profile URL or handle; it also keys the cache.
	Identifier string

	// MeetingContext is free text such as "technical partnership".
	MeetingContext string

	// Pitch opens the rehearsal pitch simulation. Optional.
	Pitch string

	// Refresh skips the cache read. The result is still cached.
	Refresh bool
}

// Options wires collaborators into a pipeline. Only Scraper is needed by
// Run; every other collaborator is optional.
type Options struct {
	Generator  llm.TextGenerator
	Scraper    sources.Scraper
	Researcher sources.CompanyResearcher
	Cache      storage.BriefingCache
	Config     config.PipelineConfig

	// Now defaults to time.Now.
	Now func() time.Time
}

// BriefingPipeline runs the briefing stages in order for one request at a
// time. It holds no per-request state, so one pipeline may serve concurrent
// requests.
type BriefingPipeline struct {
	opts        Options
	prioritizer *Prioritizer
	analyzer    *ThemeAnalyzer
	synthesizer *Synthesizer
	rehearsal   *RehearsalBuilder
}

// NewBriefingPipeline creates a pipeline. Zero config values take the
// package defaults.
func NewBriefingPipeline(opts Options) *BriefingPipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Config.ThemeSource == "" {
		opts.Config.ThemeSource = config.ThemeSourceRanked
	}
	return &BriefingPipeline{
		opts:        opts,
		prioritizer: NewPrioritizer(opts.Config.MaxPosts),
		analyzer:    NewThemeAnalyzer(opts.Generator, opts.Config.MaxLLMPosts),
		synthesizer: NewSynthesizer(NewTalkingPointGenerator(opts.Generator, opts.Config.MaxTalkingPoints)),
		rehearsal:   NewRehearsalBuilder(opts.Generator),
	}
}

// Run returns the cached briefing for the request or builds a new one.
// It fails only with ErrNoProfile or when ctx is already done.
func (p *BriefingPipeline) Run(ctx context.Context, req Request) (*types.BriefingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logging.For("pipeline").With("identifier", req.Identifier)
	key := storage.CacheKey(req.Identifier)

	if p.opts.Cache != nil && !req.Refresh {
		cached, err := p.opts.Cache.Get(ctx, key)
		switch {
		case err == nil:
			log.Info("briefing served from cache", "key", key)
			emitToContext(ctx, EventCacheHit(key))
			return cached, nil
		case !errors.Is(err, storage.ErrNotFound):
			log.Warn("cache read failed, rebuilding", "key", key, "err", err)
		}
	}

	if p.opts.Scraper == nil {
		return nil, fmt.Errorf("%w: no scraper configured", ErrNoProfile)
	}
	scraped, err := runRecovered(ctx, func(ctx context.Context) (*sources.ScrapeResult, error) {
		return p.opts.Scraper.Scrape(ctx, req.Identifier)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoProfile, err)
	}

	record, err := p.Assemble(ctx, req, scraped)
	if err != nil {
		return nil, err
	}

	if p.opts.Cache != nil {
		if err := p.opts.Cache.Put(ctx, key, record); err != nil {
			log.Warn("cache write failed", "key", key, "err", err)
		}
	}
	return record, nil
}

// Assemble builds a briefing from an already scraped result. The returned
// record has every slice and map non-nil.
func (p *BriefingPipeline) Assemble(ctx context.Context, req Request, scraped *sources.ScrapeResult) (*types.BriefingRecord, error) {
	if scraped == nil || len(scraped.Profile) == 0 {
		return nil, ErrNoProfile
	}
	started := p.opts.Now()
	log := logging.For("pipeline").With("identifier", req.Identifier)

	meetingContext := strings.TrimSpace(req.MeetingContext)
	if meetingContext == "" {
		meetingContext = DefaultMeetingContext
	}

	profile := sanitize.Profile(scraped.Profile)
	upstream := sanitize.Extraction(scraped.Extraction)

	mark := time.Now()
	stageDone := func(stage string, count int) {
		emitToContext(ctx, EventStageCompleted(stage, count, time.Since(mark)))
		mark = time.Now()
	}

	posts := sanitize.ContentItems(scraped.Posts)
	ranked := p.prioritizer.Rank(posts, meetingContext)
	log.Debug("content ranked", "found", len(posts), "surfaced", len(ranked))
	stageDone("rank", len(ranked))

	analysis := Analysis{Themes: upstream.Themes, Sentiment: upstream.Sentiment}
	if analysis.Themes.Primary == "" {
		source := ranked
		if p.opts.Config.ThemeSource == config.ThemeSourceRaw {
			source = posts
		}
		analysis = p.analyzer.Analyze(ctx, source)
	}
	log.Debug("themes analyzed", "primary", analysis.Themes.Primary, "enhanced", analysis.Enhanced)
	stageDone("themes", len(analysis.Themes.Ranked()))

	insights := upstream.Insights
	if len(insights) == 0 {
		insights = DeriveInsights(analysis.Themes, analysis.Sentiment, ranked)
	}
	stageDone("insights", len(insights))

	person := types.Person{
		Name:                 profile.Name,
		Role:                 profile.CurrentRole,
		Company:              profile.Company,
		ProfessionalIdentity: upstream.Person.ProfessionalIdentity,
		CareerTrajectory:     upstream.Person.CareerTrajectory,
	}
	if person.ProfessionalIdentity == "" {
		person.ProfessionalIdentity = fmt.Sprintf("Professional focused on %s", analysis.Themes.Primary)
	}
	if person.CareerTrajectory == "" {
		person.CareerTrajectory = profile.Headline
	}

	synthesis := p.synthesizer.Synthesize(ctx, &types.Extraction{
		Person:    person,
		Themes:    analysis.Themes,
		Sentiment: analysis.Sentiment,
		Insights:  insights,
		Posts:     ranked,
	}, meetingContext)
	stageDone("synthesis", len(synthesis.TalkingPoints))

	rehearsal := types.Rehearsal{
		LikelyQuestions:       []types.ResponseStrategy{},
		PitchSimulation:       []types.DialogueLine{},
		ConversationScenarios: map[string]types.Scenario{},
	}
	if p.opts.Config.Rehearsal {
		rehearsal = p.rehearsal.Build(ctx, person, synthesis.PersonType, meetingContext, req.Pitch)
		stageDone("rehearsal", len(rehearsal.LikelyQuestions))
	}

	company := p.company(ctx, profile, meetingContext)
	stageDone("company", len(company.KeyFacts))

	quality := AssessQuality(scraped.Profile, ranked, analysis.Themes, analysis.Enhanced, p.prioritizer.limit)
	now := p.opts.Now()

	return &types.BriefingRecord{
		Person:  person,
		Profile: profile,
		Posts:   ranked,
		DecisionMetadata: types.DecisionMetadata{
			TotalDataPointsFound: len(posts),
			DataPointsSurfaced:   len(ranked),
			DecisionRationale:    Rationale(ranked),
		},
		Themes:         analysis.Themes,
		Sentiment:      analysis.Sentiment,
		Insights:       insights,
		CompanyContext: company,
		ExtractionMetadata: types.ExtractionMetadata{
			BriefingID:      uuid.NewString(),
			GeneratedAt:     now.UTC().Format(time.RFC3339),
			ConfidenceScore: quality.Overall,
			DataQuality:     quality.Label(),
			ExtractionTime:  formatElapsed(now.Sub(started)),
			LLMEnhanced:     analysis.Enhanced,
		},
		Synthesis:         synthesis,
		MockConversations: rehearsal,
	}, nil
}

// company researches the employer. A failed lookup yields a context that
// only carries the company name.
func (p *BriefingPipeline) company(ctx context.Context, profile types.Profile, meetingContext string) types.CompanyContext {
	var research enhancer[sanitize.Record]
	if p.opts.Researcher != nil {
		research = func(ctx context.Context) (sanitize.Record, error) {
			rec, err := p.opts.Researcher.Research(ctx, profile.Company, profile.CurrentRole)
			if err != nil {
				return nil, fmt.Errorf("company research for %s: %w", profile.Company, err)
			}
			if len(rec) == 0 {
				return nil, sources.ErrNoData
			}
			return rec, nil
		}
	}
	raw, _ := withFallback(ctx, "company", research, func() sanitize.Record {
		return sanitize.Record{"name": profile.Company}
	})
	return EnrichCompany(sanitize.Company(raw), meetingContext)
}
