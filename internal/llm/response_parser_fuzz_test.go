package llm

import (
	"testing"
)

func FuzzParseThemeAnalysisResponse(f *testing.F) {
	f.Add(`{"themes": {"primary": "ai", "secondary": ["scale"], "frequency_breakdown": {"ai": 0.6}}}`)
	f.Add(``)
	f.Add(`{"themes": null}`)
	f.Add(`not json at all`)
	f.Add("```json\n{\"themes\": {\"primary\": \"ai\"}}\n```")
	f.Add(`{"themes": {"primary": "truncated"`)
	f.Add(`{"themes": {"primary": 42, "frequency_breakdown": {"ai": "high", "ml": -3}}}`)
	f.Add(`{"themes": {"primary": "ai"}, "sentiment": {"overall": ["positive"], "concerns": "none"}}`)
	f.Add(`{"themes": {"primary": "José García"}, "sentiment": {"passion_topics": [null, 1, "robotics"]}}`)

	f.Fuzz(func(t *testing.T, input string) {
		got, err := ParseThemeAnalysisResponse(input)
		if err != nil {
			return
		}
		if got.Themes.Primary == "" {
			t.Fatal("success with empty primary theme")
		}
		if got.Themes.Secondary == nil || got.Sentiment.PassionTopics == nil || got.Sentiment.Concerns == nil {
			t.Fatal("nil list in parsed analysis")
		}
		for k, v := range got.Themes.FrequencyBreakdown {
			if v < 0 || v > 1 {
				t.Fatalf("share out of range for %q: %v", k, v)
			}
		}
	})
}

func FuzzParseTalkingPointsResponse(f *testing.F) {
	f.Add(`[{"point": "Discuss scaling", "context": "recent post"}]`)
	f.Add(`{"talking_points": [{"point": "A"}, {"point": ""}, null, 3]}`)
	f.Add(`[]`)
	f.Add(`{"talking_points": "nope"}`)
	f.Add("Here you go:\n```\n[{\"point\": \"B\"}]\n```")
	f.Add(`[{"point": "unterminated`)

	f.Fuzz(func(t *testing.T, input string) {
		points, err := ParseTalkingPointsResponse(input)
		if err != nil {
			return
		}
		if len(points) == 0 {
			t.Fatal("success with no points")
		}
		for _, p := range points {
			if p.Point == "" {
				t.Fatal("empty point accepted")
			}
		}
	})
}

func FuzzParseResponseStrategyResponse(f *testing.F) {
	f.Add(`{"response_framework": "STAR", "emphasize": ["metrics"]}`)
	f.Add(`{"question": "other", "response_framework": ""}`)
	f.Add(`[]`)

	f.Fuzz(func(t *testing.T, input string) {
		s, err := ParseResponseStrategyResponse(input, "Q?")
		if err != nil {
			return
		}
		if s.Question != "Q?" || s.ResponseFramework == "" {
			t.Fatalf("unexpected strategy %+v", s)
		}
	})
}
