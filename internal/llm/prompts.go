// Package llm provides the generative-text collaborator used to enrich
// briefings: provider clients, circuit breaking, rate limiting, prompt
// templates and lenient parsers for the JSON those prompts request.
package llm

import (
	"fmt"
	"strings"
)

// ThemeAnalysisPrompt asks for themes and sentiment over up to maxPosts
// content texts. Blank texts are skipped.
func ThemeAnalysisPrompt(texts []string, maxPosts int) string {
	var b strings.Builder
	n := 0
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if n == maxPosts {
			break
		}
		n++
		fmt.Fprintf(&b, "%d. %s\n", n, Excerpt(t, MaxPostTokens))
	}

	return fmt.Sprintf(`TASK: Analyze the professional social media posts below.
Identify the dominant professional themes and the author's sentiment.

POSTS:
%s
OUTPUT: ONLY valid JSON. No commentary.
{
  "themes": {
    "primary": "most dominant theme",
    "secondary": ["second theme", "third theme"],
    "frequency_breakdown": {"most dominant theme": 0.5, "second theme": 0.3}
  },
  "sentiment": {
    "overall": "one of: positive, enthusiastic, analytical, concerned, neutral",
    "passion_topics": ["topic"],
    "concerns": ["concern"],
    "communication_style": "short description, e.g. direct, technical"
  }
}

RULES:
1. frequency_breakdown values are shares between 0.0 and 1.0
2. secondary has at most 4 entries, most important first
3. Use empty arrays rather than null`, b.String())
}

// TalkingPointsPrompt asks for count talking points as a JSON array.
func TalkingPointsPrompt(name, meetingContext, personType, style string, themes []string, count int) string {
	return fmt.Sprintf(`TASK: Generate %d strategic talking points for a meeting with %s.
Meeting context: %s
Person archetype: %s (preferred style: %s)
Identified themes in their content: %s

For each talking point provide:
1. point: the actionable topic
2. context: why it matters
3. why_selected: the connection to their profile
4. conversation_opener: a natural question or statement
5. expected_reaction: how they are likely to respond

OUTPUT: ONLY a valid JSON array, one object per talking point:
[
  {"point": "...", "context": "...", "why_selected": "...", "conversation_opener": "...", "expected_reaction": "..."}
]`, count, name, meetingContext, personType, style, strings.Join(themes, ", "))
}

// ResponseStrategyPrompt asks for coaching on answering one question.
func ResponseStrategyPrompt(name, role, question string) string {
	return fmt.Sprintf(`You are an executive negotiation coach.
The person asking the question is %s, a %s.

The question is: %q

Generate a response strategy.
OUTPUT: ONLY valid JSON:
{
  "question": %q,
  "response_framework": "name of framework, e.g. STAR",
  "emphasize": ["key point"],
  "avoid": ["pitfall"],
  "pivot_options": ["pivot phrase"],
  "follow_up_prepared": ["follow up"]
}`, name, role, question, question)
}
