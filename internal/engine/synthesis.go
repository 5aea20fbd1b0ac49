package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/scrypster/navigator/internal/sanitize"
	"github.com/scrypster/navigator/pkg/types"
)

// DefaultMeetingContext replaces an empty meeting context.
const DefaultMeetingContext = "General meeting"

// Synthesizer adapts talking points and their reasoning to the person type.
type Synthesizer struct {
	points *TalkingPointGenerator
}

// NewSynthesizer creates a synthesizer around a talking point generator.
func NewSynthesizer(points *TalkingPointGenerator) *Synthesizer {
	if points == nil {
		points = NewTalkingPointGenerator(nil, DefaultMaxTalkingPoints)
	}
	return &Synthesizer{points: points}
}

// Synthesize classifies the person, generates talking points and their
// reasoning chain, and assembles the synthesis summary. A nil extraction
// and an empty meeting context are both accepted. Key insights are passed
// through unchanged.
func (s *Synthesizer) Synthesize(ctx context.Context, ext *types.Extraction, meetingContext string) types.Synthesis {
	if ext == nil {
		empty := sanitize.Extraction(nil)
		ext = &empty
	}
	if strings.TrimSpace(meetingContext) == "" {
		meetingContext = DefaultMeetingContext
	}

	pt := Classify(ext.Person.Role)
	cfg := ConfigFor(pt)

	name := orDefault(ext.Person.Name, sanitize.UnknownName)
	points, _ := s.points.Generate(ctx, ext.Themes, pt, meetingContext, name)

	insights := ext.Insights
	if insights == nil {
		insights = []types.Insight{}
	}

	return types.Synthesis{
		PersonType: pt,
		SynthesisConfig: types.SynthesisSummary{
			FocusAreas:        cfg.Focus,
			TalkingPointStyle: cfg.TalkingPointStyle,
		},
		TalkingPoints:   points,
		KeyInsights:     insights,
		ReasoningChain:  ReasoningChain(points, ext.Themes.Ranked(), ext.Posts),
		BriefingSummary: fmt.Sprintf("Briefing prepared for %s (%s). Focus on %s.", name, pt, strings.Join(cfg.Focus, ", ")),
	}
}
