package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/scrypster/navigator/internal/config"
	"github.com/scrypster/navigator/internal/llm/llmtest"
	"github.com/scrypster/navigator/internal/sanitize"
	"github.com/scrypster/navigator/internal/sources"
	"github.com/scrypster/navigator/internal/storage"
	"github.com/scrypster/navigator/internal/storage/filecache"
	"github.com/scrypster/navigator/pkg/types"
)

func TestMain(m *testing.M) {
	// genai pulls in opencensus, which starts a stats worker at init.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

const ctoFixture = `{
  "profile": {
    "name": "Dana Reyes",
    "headline": "CTO building AI infrastructure",
    "current_role": "CTO",
    "company": "Acme AI",
    "location": "Austin, TX",
    "connections": "500+"
  },
  "posts": [
    {"content": "Our architecture lets inference scale to millions of users", "date": "2025-03-01", "engagement": {"likes": 420, "comments": 35}},
    {"content": "Hiring engineers who care about performance", "date": "2025-02-20", "engagement": {"likes": "12", "comments": null}},
    null,
    "not a post",
    {"content": "Weekend hike photos", "date": "2025-02-10", "engagement": {"likes": 3, "comments": 0}}
  ],
  "company_context": {
    "name": "Acme AI",
    "industry": "Artificial Intelligence",
    "funding": {"stage": "Series A", "amount": "$12M"},
    "recent_news": ["Acme AI ships a new inference architecture"],
    "competitors": ["Globex"]
  }
}`

func loadFixture(t *testing.T, raw string) *sources.Fixture {
	t.Helper()
	f, err := sources.ParseFixture([]byte(raw))
	require.NoError(t, err)
	return f
}

func newTestPipeline(opts Options) *BriefingPipeline {
	opts.Now = func() time.Time { return fixedNow }
	return NewBriefingPipeline(opts)
}

// countingScraper counts Scrape calls and serves one result per identifier.
type countingScraper struct {
	calls   atomic.Int32
	results map[string]*sources.ScrapeResult
}

func (s *countingScraper) Scrape(_ context.Context, identifier string) (*sources.ScrapeResult, error) {
	s.calls.Add(1)
	r, ok := s.results[identifier]
	if !ok {
		return nil, sources.ErrNoData
	}
	return r, nil
}

func TestRun_BuildsCompleteBriefing(t *testing.T) {
	fx := loadFixture(t, ctoFixture)
	p := newTestPipeline(Options{
		Scraper:    fx,
		Researcher: fx,
		Config:     config.PipelineConfig{Rehearsal: true},
	})

	record, err := p.Run(context.Background(), Request{
		Identifier:     "https://www.linkedin.com/in/dana-reyes/",
		MeetingContext: "technical partnership",
	})
	require.NoError(t, err)

	assert.Equal(t, "Dana Reyes", record.Person.Name)
	assert.Equal(t, "CTO", record.Person.Role)
	assert.Equal(t, "CTO building AI infrastructure", record.Person.CareerTrajectory)
	assert.Equal(t, 500, record.Profile.Connections)

	require.Len(t, record.Posts, 3)
	assert.Equal(t, "Our architecture lets inference scale to millions of users", record.Posts[0].Content)
	for i := 1; i < len(record.Posts); i++ {
		assert.GreaterOrEqual(t, record.Posts[i-1].PriorityScore, record.Posts[i].PriorityScore)
	}
	assert.Equal(t, 3, record.DecisionMetadata.TotalDataPointsFound)
	assert.Equal(t, 3, record.DecisionMetadata.DataPointsSurfaced)
	assert.Len(t, record.DecisionMetadata.DecisionRationale, 3)

	assert.NotEmpty(t, record.Themes.Primary)
	assert.Equal(t, "Professional focused on "+record.Themes.Primary, record.Person.ProfessionalIdentity)
	assert.Len(t, record.Insights, 3)

	assert.Equal(t, types.PersonExecutive, record.Synthesis.PersonType)
	assert.NotEmpty(t, record.Synthesis.TalkingPoints)
	assert.Len(t, record.Synthesis.ReasoningChain, len(record.Synthesis.TalkingPoints))

	assert.Equal(t, "Acme AI", record.CompanyContext.Name)
	assert.Contains(t, record.CompanyContext.KeyFacts, "Funding: Series A ($12M)")
	assert.Greater(t, record.CompanyContext.RelevanceScore, 0.5)

	assert.Len(t, record.MockConversations.LikelyQuestions, 4)
	assert.Len(t, record.MockConversations.PitchSimulation, 5)
	assert.Len(t, record.MockConversations.ConversationScenarios, 4)

	meta := record.ExtractionMetadata
	_, err = uuid.Parse(meta.BriefingID)
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-14T09:30:00Z", meta.GeneratedAt)
	assert.Equal(t, "0.0s", meta.ExtractionTime)
	assert.False(t, meta.LLMEnhanced)
	assert.Contains(t, []string{types.DataQualityHigh, types.DataQualityMedium, types.DataQualityLow}, meta.DataQuality)
}

func TestRun_NoProfile(t *testing.T) {
	ctx := context.Background()

	empty := loadFixture(t, `{"posts": [{"content": "orphan"}]}`)
	_, err := newTestPipeline(Options{Scraper: empty}).Run(ctx, Request{Identifier: "x"})
	assert.ErrorIs(t, err, ErrNoProfile)

	_, err = newTestPipeline(Options{}).Run(ctx, Request{Identifier: "x"})
	assert.ErrorIs(t, err, ErrNoProfile)

	_, err = newTestPipeline(Options{}).Assemble(ctx, Request{}, nil)
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(Options{Scraper: loadFixture(t, ctoFixture)}).Run(ctx, Request{Identifier: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_EmptyPostsStillBriefs(t *testing.T) {
	fx := loadFixture(t, `{"profile": {"name": "Lee", "current_role": "Product Designer"}}`)
	record, err := newTestPipeline(Options{Scraper: fx}).Run(context.Background(), Request{Identifier: "lee"})
	require.NoError(t, err)

	assert.Empty(t, record.Posts)
	assert.NotNil(t, record.Posts)
	assert.Equal(t, DefaultPrimaryTheme, record.Themes.Primary)
	assert.Equal(t, types.PersonDesigner, record.Synthesis.PersonType)
	assert.NotNil(t, record.Insights)
	assert.NotNil(t, record.CompanyContext.KeyFacts)
	assert.NotNil(t, record.MockConversations.ConversationScenarios)
	assert.Equal(t, sanitize.UnknownCompany, record.CompanyContext.Name)
}

func TestAssemble_BlankMeetingContextUsesDefault(t *testing.T) {
	fx := loadFixture(t, ctoFixture)
	scraped := &sources.ScrapeResult{Profile: fx.Profile, Posts: fx.Posts}
	p := newTestPipeline(Options{Config: config.PipelineConfig{Rehearsal: true}})
	ctx := context.Background()

	blank, err := p.Assemble(ctx, Request{MeetingContext: "   "}, scraped)
	require.NoError(t, err)
	def, err := p.Assemble(ctx, Request{MeetingContext: DefaultMeetingContext}, scraped)
	require.NoError(t, err)

	assert.Equal(t, def.Posts, blank.Posts)
	assert.Equal(t, def.Synthesis.TalkingPoints, blank.Synthesis.TalkingPoints)
	assert.Equal(t, def.MockConversations.LikelyQuestions, blank.MockConversations.LikelyQuestions)
	assert.Equal(t, def.MockConversations.PitchSimulation, blank.MockConversations.PitchSimulation)
}

func TestRun_CacheHitAndRefresh(t *testing.T) {
	cache, err := filecache.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	fx := loadFixture(t, ctoFixture)
	scraper := &countingScraper{results: map[string]*sources.ScrapeResult{
		"linkedin.com/in/dana": {Profile: fx.Profile, Posts: fx.Posts},
	}}
	p := newTestPipeline(Options{Scraper: scraper, Cache: cache})
	ctx := context.Background()
	req := Request{Identifier: "linkedin.com/in/dana", MeetingContext: "technical"}

	first, err := p.Run(ctx, req)
	require.NoError(t, err)

	second, err := p.Run(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int32(1), scraper.calls.Load())
	assert.Equal(t, first.ExtractionMetadata.BriefingID, second.ExtractionMetadata.BriefingID)

	entries, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, storage.CacheKey(req.Identifier), entries[0].Key)

	req.Refresh = true
	third, err := p.Run(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int32(2), scraper.calls.Load())
	assert.NotEqual(t, first.ExtractionMetadata.BriefingID, third.ExtractionMetadata.BriefingID)
}

func TestRun_DistinctIdentifiersDoNotShareCache(t *testing.T) {
	cache, err := filecache.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	alice := loadFixture(t, `{"profile": {"name": "Alice", "current_role": "Product Designer"}}`)
	bob := loadFixture(t, `{"profile": {"name": "Bob", "current_role": "Angel Investor"}}`)
	scraper := &countingScraper{results: map[string]*sources.ScrapeResult{
		"https://twitter.com/alice": {Profile: alice.Profile},
		"https://twitter.com/bob":   {Profile: bob.Profile},
	}}
	p := newTestPipeline(Options{Scraper: scraper, Cache: cache})
	ctx := context.Background()

	a, err := p.Run(ctx, Request{Identifier: "https://twitter.com/alice"})
	require.NoError(t, err)
	b, err := p.Run(ctx, Request{Identifier: "https://twitter.com/bob"})
	require.NoError(t, err)

	assert.Equal(t, "Alice", a.Person.Name)
	assert.Equal(t, "Bob", b.Person.Name)
	assert.Equal(t, types.PersonInvestor, b.Synthesis.PersonType)
	assert.Equal(t, int32(2), scraper.calls.Load())

	entries, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

// brokenCache fails every operation with a non-miss error.
type brokenCache struct{ puts atomic.Int32 }

var errDiskFull = errors.New("disk full")

func (c *brokenCache) Get(context.Context, string) (*types.BriefingRecord, error) {
	return nil, errDiskFull
}

func (c *brokenCache) Put(context.Context, string, *types.BriefingRecord) error {
	c.puts.Add(1)
	return errDiskFull
}

func (c *brokenCache) Delete(context.Context, string) error           { return errDiskFull }
func (c *brokenCache) List(context.Context) ([]storage.Entry, error) { return nil, errDiskFull }
func (c *brokenCache) Close() error                                  { return nil }

func TestRun_CacheFailuresDoNotFailBriefing(t *testing.T) {
	cache := &brokenCache{}
	p := newTestPipeline(Options{Scraper: loadFixture(t, ctoFixture), Cache: cache})

	record, err := p.Run(context.Background(), Request{Identifier: "dana"})
	require.NoError(t, err)
	assert.Equal(t, "Dana Reyes", record.Person.Name)
	assert.Equal(t, int32(1), cache.puts.Load())
}

func TestRun_GeneratorFailureMatchesNoGenerator(t *testing.T) {
	fx := loadFixture(t, ctoFixture)
	req := Request{Identifier: "dana", MeetingContext: "technical partnership"}
	ctx := context.Background()

	plain, err := newTestPipeline(Options{Scraper: fx, Researcher: fx}).Run(ctx, req)
	require.NoError(t, err)

	failing := &llmtest.Failing{}
	degraded, err := newTestPipeline(Options{Scraper: fx, Researcher: fx, Generator: failing}).Run(ctx, req)
	require.NoError(t, err)

	assert.Positive(t, failing.Calls())
	assert.Equal(t, plain.Themes, degraded.Themes)
	assert.Equal(t, plain.Sentiment, degraded.Sentiment)
	assert.Equal(t, plain.Insights, degraded.Insights)
	assert.Equal(t, plain.Synthesis, degraded.Synthesis)
	assert.Equal(t, plain.ExtractionMetadata.ConfidenceScore, degraded.ExtractionMetadata.ConfidenceScore)
	assert.False(t, degraded.ExtractionMetadata.LLMEnhanced)
}

func TestRun_PanickingCollaborators(t *testing.T) {
	fx := loadFixture(t, ctoFixture)
	record, err := newTestPipeline(Options{
		Scraper:    fx,
		Researcher: panickingResearcher{},
		Generator:  llmtest.Panicking{},
	}).Run(context.Background(), Request{Identifier: "dana"})
	require.NoError(t, err)

	assert.Equal(t, "Acme AI", record.CompanyContext.Name)
	assert.Equal(t, sanitize.UnknownIndustry, record.CompanyContext.Industry)
	assert.NotEmpty(t, record.Synthesis.TalkingPoints)
}

type panickingResearcher struct{}

func (panickingResearcher) Research(context.Context, string, string) (sanitize.Record, error) {
	panic("research backend exploded")
}

func TestAssemble_ThemeSource(t *testing.T) {
	scraped := &sources.ScrapeResult{
		Profile: sanitize.Record{"name": "Ari", "current_role": "Staff Engineer"},
		Posts: []any{
			map[string]any{"content": "kubernetes kubernetes kubernetes", "engagement": map[string]any{"likes": 1}},
			map[string]any{"content": "architecture architecture", "engagement": map[string]any{"likes": 900}},
		},
	}
	req := Request{Identifier: "ari", MeetingContext: "technical review"}
	ctx := context.Background()

	ranked, err := newTestPipeline(Options{Config: config.PipelineConfig{MaxPosts: 1}}).Assemble(ctx, req, scraped)
	require.NoError(t, err)
	assert.Equal(t, "architecture", ranked.Themes.Primary)

	raw, err := newTestPipeline(Options{Config: config.PipelineConfig{MaxPosts: 1, ThemeSource: config.ThemeSourceRaw}}).Assemble(ctx, req, scraped)
	require.NoError(t, err)
	assert.Equal(t, "kubernetes", raw.Themes.Primary)
	assert.Equal(t, 2, raw.DecisionMetadata.TotalDataPointsFound)
	assert.Equal(t, 1, raw.DecisionMetadata.DataPointsSurfaced)
}

func TestAssemble_UsesUpstreamExtraction(t *testing.T) {
	scraped := &sources.ScrapeResult{
		Profile: sanitize.Record{"name": "Kim", "current_role": "General Partner"},
		Posts:   []any{map[string]any{"content": "climate climate climate"}},
		Extraction: sanitize.Record{
			"themes": map[string]any{"primary": "robotics", "secondary": []any{"hardware"}},
			"insights": []any{
				map[string]any{"insight": "Backs hardware founders early", "evidence": []any{"post_1"}, "confidence": 0.8},
			},
			"person": map[string]any{"professional_identity": "Deep tech investor"},
		},
	}

	record, err := newTestPipeline(Options{}).Assemble(context.Background(), Request{Identifier: "kim"}, scraped)
	require.NoError(t, err)

	assert.Equal(t, "robotics", record.Themes.Primary)
	require.Len(t, record.Insights, 1)
	assert.Equal(t, "Backs hardware founders early", record.Insights[0].Insight)
	assert.Equal(t, "Deep tech investor", record.Person.ProfessionalIdentity)
	assert.Equal(t, types.PersonInvestor, record.Synthesis.PersonType)
	assert.Empty(t, record.MockConversations.LikelyQuestions)
	assert.NotNil(t, record.MockConversations.LikelyQuestions)
}

func TestBriefMany(t *testing.T) {
	fx := loadFixture(t, ctoFixture)
	scraper := &countingScraper{results: map[string]*sources.ScrapeResult{
		"a": {Profile: sanitize.Record{"name": "Alpha"}},
		"c": {Profile: fx.Profile, Posts: fx.Posts},
	}}
	p := newTestPipeline(Options{Scraper: scraper})

	reqs := []Request{{Identifier: "a"}, {Identifier: "b"}, {Identifier: "c"}}
	results := p.BriefMany(context.Background(), reqs, 2)

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, reqs[i], r.Request)
	}
	require.NoError(t, results[0].Err)
	assert.Equal(t, "Alpha", results[0].Record.Person.Name)

	assert.ErrorIs(t, results[1].Err, ErrNoProfile)
	assert.ErrorIs(t, results[1].Err, sources.ErrNoData)
	assert.Nil(t, results[1].Record)

	require.NoError(t, results[2].Err)
	assert.Equal(t, "Dana Reyes", results[2].Record.Person.Name)
	assert.Equal(t, int32(3), scraper.calls.Load())
}
