package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scrypster/navigator/internal/engine"
	"github.com/scrypster/navigator/internal/llm"
	"github.com/scrypster/navigator/internal/logging"
	"github.com/scrypster/navigator/internal/sources"
)

type briefOptions struct {
	fixture     string
	identifiers []string
	context     string
	pitch       string
	refresh     bool
	parallel    int
	trace       bool
}

func newBriefCmd(global *globalOptions) *cobra.Command {
	opts := &briefOptions{}
	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Build a meeting briefing and print it as JSON",
		Long: `Build a meeting briefing from a scraped profile fixture.

The fixture is a JSON document with "profile", "posts" and optionally
"company_context" and "extraction" keys. Each --identifier produces one
briefing; briefings are cached by identifier unless --refresh is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runBrief(ctx, global, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.fixture, "fixture", "f", "", "Path to scraped profile fixture (required)")
	cmd.Flags().StringSliceVarP(&opts.identifiers, "identifier", "i", nil, "Profile URL or handle; repeat for a batch")
	cmd.Flags().StringVarP(&opts.context, "context", "c", engine.DefaultMeetingContext, "Meeting context, e.g. \"technical partnership\"")
	cmd.Flags().StringVar(&opts.pitch, "pitch", "", "Opening line for the pitch simulation")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "Ignore cached briefings")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 2, "Maximum briefings built at once")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Print a stage trace summary to stderr")
	_ = cmd.MarkFlagRequired("fixture")

	return cmd
}

func runBrief(ctx context.Context, global *globalOptions, opts *briefOptions, out, errOut io.Writer) error {
	cfg, err := global.load()
	if err != nil {
		return err
	}
	log := logging.For("cli")

	fixture, err := sources.LoadFixture(opts.fixture)
	if err != nil {
		return err
	}

	gen, err := llm.NewTextGenerator(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create text generator: %w", err)
	}
	if gen == nil {
		log.Info("no LLM provider configured, using deterministic analysis")
	} else {
		log.Info("LLM provider ready", "model", gen.GetModel())
	}

	cache, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if cache != nil {
		defer func() { _ = cache.Close() }()
	}

	pipeline := engine.NewBriefingPipeline(engine.Options{
		Generator:  gen,
		Scraper:    fixture,
		Researcher: researcherFor(fixture),
		Cache:      cache,
		Config:     cfg.Pipeline,
	})

	if opts.trace {
		tc := engine.NewTraceCollector()
		ctx = engine.WithTraceCollector(ctx, tc)
		defer func() {
			_ = writeJSON(errOut, engine.BuildTraceSummary(tc.Events(), tc.ElapsedMS()))
		}()
	}

	reqs := briefRequests(opts)
	if len(reqs) == 1 {
		record, err := pipeline.Run(ctx, reqs[0])
		if err != nil {
			return err
		}
		return writeJSON(out, record)
	}

	results := pipeline.BriefMany(ctx, reqs, opts.parallel)
	var errs []error
	records := make(map[string]any, len(results))
	for _, r := range results {
		if r.Err != nil {
			log.Error("briefing failed", "identifier", r.Request.Identifier, "err", r.Err)
			errs = append(errs, fmt.Errorf("%s: %w", r.Request.Identifier, r.Err))
			continue
		}
		records[r.Request.Identifier] = r.Record
	}
	if err := writeJSON(out, records); err != nil {
		return err
	}
	return errors.Join(errs...)
}

func briefRequests(opts *briefOptions) []engine.Request {
	ids := opts.identifiers
	if len(ids) == 0 {
		ids = []string{""}
	}
	reqs := make([]engine.Request, 0, len(ids))
	for _, id := range ids {
		reqs = append(reqs, engine.Request{
			Identifier:     id,
			MeetingContext: opts.context,
			Pitch:          opts.pitch,
			Refresh:        opts.refresh,
		})
	}
	return reqs
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
