package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/scrypster/navigator/internal/sanitize"
	"github.com/scrypster/navigator/pkg/types"
)

// ErrNoJSON is returned when a response holds no decodable JSON payload.
var ErrNoJSON = errors.New("no JSON payload in response")

// ErrIncomplete is returned when the JSON decodes but lacks required fields.
var ErrIncomplete = errors.New("incomplete JSON payload")

// stripFences returns the body of the first Markdown code fence, preferring
// a ```json fence. Text without fences is returned trimmed.
func stripFences(text string) string {
	if i := strings.Index(text, "```json"); i >= 0 {
		rest := text[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}
	if i := strings.Index(text, "```"); i >= 0 {
		rest := text[i+3:]
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		// Drop a language tag on the fence line.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && !strings.ContainsAny(rest[:nl], "{[") {
			rest = rest[nl+1:]
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}

// extractJSON returns the first balanced JSON object or array in text,
// ignoring brackets inside strings. Models often add prose around the JSON
// despite instructions. Text with no balanced value is returned as-is.
func extractJSON(text string) string {
	text = stripFences(text)

	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return text
	}

	depth := 0
	inString := false
	escape := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escape {
			escape = false
			continue
		}
		if c == '\\' {
			escape = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return text
}

// decode extracts and unmarshals the JSON payload of a response.
func decode(text string, out any) error {
	payload := extractJSON(text)
	if payload == "" {
		return ErrNoJSON
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("%w: %v", ErrNoJSON, err)
	}
	return nil
}

// ThemeAnalysis is a parsed theme and sentiment response.
type ThemeAnalysis struct {
	Themes    types.ThemeProfile
	Sentiment types.SentimentProfile
}

// ParseThemeAnalysisResponse parses the response to ThemeAnalysisPrompt.
// The payload passes through the same sanitization as upstream data, so
// missing lists come back empty. A missing primary theme is an error.
func ParseThemeAnalysisResponse(text string) (*ThemeAnalysis, error) {
	var raw sanitize.Record
	if err := decode(text, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse theme analysis: %w", err)
	}

	themes := sanitize.Themes(sanitize.Nested(raw, "themes"))
	if themes.Primary == "" {
		return nil, fmt.Errorf("theme analysis: %w: missing primary theme", ErrIncomplete)
	}
	for k, v := range themes.FrequencyBreakdown {
		if v < 0 || v > 1 {
			delete(themes.FrequencyBreakdown, k)
		}
	}

	return &ThemeAnalysis{
		Themes:    themes,
		Sentiment: sanitize.Sentiment(sanitize.Nested(raw, "sentiment")),
	}, nil
}

// ParseTalkingPointsResponse parses the response to TalkingPointsPrompt.
// Both a bare array and {"talking_points": [...]} are accepted. Entries
// without a point are skipped; an empty result is an error.
func ParseTalkingPointsResponse(text string) ([]types.TalkingPoint, error) {
	var raw any
	if err := decode(text, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse talking points: %w", err)
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case map[string]any:
		items = sanitize.List(v, "talking_points")
	}

	points := make([]types.TalkingPoint, 0, len(items))
	for _, r := range sanitize.Records(items) {
		point, ok := sanitize.String(r, "point").Get()
		if !ok {
			continue
		}
		points = append(points, types.TalkingPoint{
			Point:              point,
			Context:            sanitize.String(r, "context").OrElse(""),
			WhySelected:        sanitize.String(r, "why_selected").OrElse(""),
			ConversationOpener: sanitize.String(r, "conversation_opener").OrElse(""),
			ExpectedReaction:   sanitize.String(r, "expected_reaction").OrElse(""),
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("talking points: %w: no usable entries", ErrIncomplete)
	}
	return points, nil
}

// ParseResponseStrategyResponse parses the response to ResponseStrategyPrompt.
// The question is always the one that was asked, whatever the model echoes.
func ParseResponseStrategyResponse(text, question string) (*types.ResponseStrategy, error) {
	var raw sanitize.Record
	if err := decode(text, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse response strategy: %w", err)
	}
	framework, ok := sanitize.String(raw, "response_framework").Get()
	if !ok {
		return nil, fmt.Errorf("response strategy: %w: missing response_framework", ErrIncomplete)
	}
	return &types.ResponseStrategy{
		Question:          question,
		ResponseFramework: framework,
		Emphasize:         sanitize.Strings(raw, "emphasize"),
		Avoid:             sanitize.Strings(raw, "avoid"),
		PivotOptions:      sanitize.Strings(raw, "pivot_options"),
		FollowUpPrepared:  sanitize.Strings(raw, "follow_up_prepared"),
	}, nil
}
