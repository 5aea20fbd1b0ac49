package engine

import (
	"context"
	"fmt"

	"github.com/scrypster/navigator/internal/llm"
	"github.com/scrypster/navigator/pkg/types"
)

// DefaultMaxTalkingPoints bounds talking points per briefing.
const DefaultMaxTalkingPoints = 3

// TalkingPointGenerator turns ranked themes into conversation topics.
type TalkingPointGenerator struct {
	gen llm.TextGenerator
	max int
}

// NewTalkingPointGenerator creates a generator. gen may be nil.
func NewTalkingPointGenerator(gen llm.TextGenerator, max int) *TalkingPointGenerator {
	if max <= 0 {
		max = DefaultMaxTalkingPoints
	}
	return &TalkingPointGenerator{gen: gen, max: max}
}

// Generate returns at most one talking point per ranked theme, up to the
// configured maximum. The boolean reports whether the model produced them.
func (g *TalkingPointGenerator) Generate(ctx context.Context, themes types.ThemeProfile, pt types.PersonType, meetingContext, name string) ([]types.TalkingPoint, bool) {
	top := themes.Ranked()
	if len(top) > g.max {
		top = top[:g.max]
	}
	if len(top) == 0 {
		return []types.TalkingPoint{}, false
	}

	var enhanced enhancer[[]types.TalkingPoint]
	if g.gen != nil {
		enhanced = func(ctx context.Context) ([]types.TalkingPoint, error) {
			style := ConfigFor(pt).TalkingPointStyle
			resp, err := g.gen.Complete(ctx, llm.TalkingPointsPrompt(name, meetingContext, string(pt), style, top, len(top)))
			if err != nil {
				return nil, fmt.Errorf("talking points: %w", err)
			}
			points, err := llm.ParseTalkingPointsResponse(resp)
			if err != nil {
				return nil, err
			}
			if len(points) > len(top) {
				points = points[:len(top)]
			}
			return points, nil
		}
	}

	return withFallback(ctx, "talking_points", enhanced, func() []types.TalkingPoint {
		return TemplatePoints(top, pt, meetingContext)
	})
}

// TemplatePoints builds one deterministic talking point per theme.
func TemplatePoints(themes []string, pt types.PersonType, meetingContext string) []types.TalkingPoint {
	points := make([]types.TalkingPoint, 0, len(themes))
	for _, theme := range themes {
		points = append(points, types.TalkingPoint{
			Point:              fmt.Sprintf("Discuss approach to %s", theme),
			Context:            fmt.Sprintf("Relevant to their interest in %s and your meeting about %s", theme, meetingContext),
			WhySelected:        fmt.Sprintf("High engagement topic for this %s", pt),
			ConversationOpener: fmt.Sprintf("I noticed you've been writing a lot about %s lately...", theme),
			ExpectedReaction:   "Likely to share strong opinions and recent experiences",
		})
	}
	return points
}
