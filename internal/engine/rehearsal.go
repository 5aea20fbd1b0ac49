package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/scrypster/navigator/internal/llm"
	"github.com/scrypster/navigator/pkg/types"
)

var questionFrameworks = map[types.PersonType]types.QuestionFramework{
	types.PersonExecutive: {
		Categories:      []string{"strategic_impact", "roi", "team_resources", "timeline"},
		Style:           "high-level, outcome-focused",
		TypicalConcerns: []string{"budget", "team capacity", "strategic fit"},
	},
	types.PersonEngineer: {
		Categories:      []string{"technical_architecture", "scalability", "integration", "maintenance"},
		Style:           "detailed, specific examples",
		TypicalConcerns: []string{"tech debt", "complexity", "team expertise"},
	},
	types.PersonInvestor: {
		Categories:      []string{"market_size", "traction", "team", "competition", "unit_economics"},
		Style:           "metrics-driven, thesis-validation",
		TypicalConcerns: []string{"defensibility", "growth rate", "capital efficiency"},
	},
	types.PersonDesigner: {
		Categories:      []string{"user_research", "design_process", "iteration", "metrics"},
		Style:           "user-centric, process-oriented",
		TypicalConcerns: []string{"user needs", "design debt", "team collaboration"},
	},
}

// categoryQuestions phrase one question per framework category. %s is the
// meeting context.
var categoryQuestions = map[string]string{
	"strategic_impact":       "How does %s move the needle on our strategic priorities?",
	"roi":                    "What return should we expect from %s, and how soon?",
	"team_resources":         "What would %s require from my team?",
	"timeline":               "What does a realistic timeline for %s look like?",
	"technical_architecture": "What does the architecture behind %s look like?",
	"scalability":            "How does %s hold up at ten times today's load?",
	"integration":            "How would %s integrate with our existing stack?",
	"maintenance":            "Who maintains %s once it ships?",
	"market_size":            "How big is the market for %s really?",
	"traction":               "What traction do you have on %s so far?",
	"team":                   "Why is your team the right one to deliver %s?",
	"competition":            "How does %s compare to existing solutions in the market?",
	"unit_economics":         "What do the unit economics of %s look like?",
	"user_research":          "What user research backs %s?",
	"design_process":         "How did you arrive at the design for %s?",
	"iteration":              "How will %s evolve after the first release?",
	"metrics":                "Which metrics tell you %s is working?",
}

// Scenario contexts rehearsed for every briefing.
var scenarioContexts = []string{"first_meeting", "pitch", "advice_seeking", "partnership"}

// QuestionFrameworkFor returns a copy of the question framework for a person
// type. Founders and unknown types use the executive framework.
func QuestionFrameworkFor(pt types.PersonType) types.QuestionFramework {
	fw, ok := questionFrameworks[pt]
	if !ok {
		fw = questionFrameworks[types.PersonExecutive]
	}
	fw.Categories = append([]string(nil), fw.Categories...)
	fw.TypicalConcerns = append([]string(nil), fw.TypicalConcerns...)
	return fw
}

// RehearsalBuilder prepares mock conversations: the questions a person is
// likely to ask, coaching for each, a pitch simulation, and scenarios.
type RehearsalBuilder struct {
	gen llm.TextGenerator
}

// NewRehearsalBuilder creates a builder. gen may be nil.
func NewRehearsalBuilder(gen llm.TextGenerator) *RehearsalBuilder {
	return &RehearsalBuilder{gen: gen}
}

// Build never fails; coaching falls back per question.
func (b *RehearsalBuilder) Build(ctx context.Context, person types.Person, pt types.PersonType, meetingContext, pitch string) types.Rehearsal {
	questions := LikelyQuestions(person, QuestionFrameworkFor(pt), meetingContext)
	return types.Rehearsal{
		LikelyQuestions:       b.ResponseStrategies(ctx, questions, person),
		PitchSimulation:       PitchSimulation(person.Name, pitch, meetingContext),
		ConversationScenarios: Scenarios(person.Name),
	}
}

// LikelyQuestions derives one question per framework category.
func LikelyQuestions(person types.Person, fw types.QuestionFramework, meetingContext string) []types.LikelyQuestion {
	topic := strings.TrimSpace(meetingContext)
	if topic == "" {
		topic = "this"
	}
	name := orDefault(person.Name, "They")
	role := orDefault(person.Role, "professional")

	followUps := make([]string, 0, len(fw.TypicalConcerns))
	for _, c := range fw.TypicalConcerns {
		followUps = append(followUps, fmt.Sprintf("What about %s?", c))
	}

	out := make([]types.LikelyQuestion, 0, len(fw.Categories))
	for _, cat := range fw.Categories {
		tmpl, ok := categoryQuestions[cat]
		if !ok {
			tmpl = "How does %s address your priorities?"
		}
		out = append(out, types.LikelyQuestion{
			Question:          fmt.Sprintf(tmpl, topic),
			Category:          cat,
			WhyLikely:         fmt.Sprintf("As a %s, %s tends to probe %s (%s).", role, name, strings.ReplaceAll(cat, "_", " "), fw.Style),
			FollowUpQuestions: append([]string(nil), followUps...),
		})
	}
	return out
}

// ResponseStrategies coaches an answer to each question. Without a model
// every question gets a generic listening framework; a failed model call
// degrades only that question to a direct-answer strategy.
func (b *RehearsalBuilder) ResponseStrategies(ctx context.Context, questions []types.LikelyQuestion, person types.Person) []types.ResponseStrategy {
	out := make([]types.ResponseStrategy, 0, len(questions))
	for _, q := range questions {
		if b.gen == nil {
			out = append(out, listeningStrategy(q.Question))
			continue
		}
		question := q.Question
		s, _ := withFallback(ctx, "rehearsal", func(ctx context.Context) (types.ResponseStrategy, error) {
			resp, err := b.gen.Complete(ctx, llm.ResponseStrategyPrompt(orDefault(person.Name, "They"), orDefault(person.Role, "professional"), question))
			if err != nil {
				return types.ResponseStrategy{}, fmt.Errorf("response strategy: %w", err)
			}
			parsed, err := llm.ParseResponseStrategyResponse(resp, question)
			if err != nil {
				return types.ResponseStrategy{}, err
			}
			return *parsed, nil
		}, func() types.ResponseStrategy {
			return directAnswerStrategy(question)
		})
		out = append(out, s)
	}
	return out
}

func listeningStrategy(question string) types.ResponseStrategy {
	return types.ResponseStrategy{
		Question:          question,
		ResponseFramework: "Listen -> Acknowledge -> Solve",
		Emphasize:         []string{"Value"},
		Avoid:             []string{"Jargon"},
		PivotOptions:      []string{"Let's focus on results."},
		FollowUpPrepared:  []string{"Does that make sense?"},
	}
}

func directAnswerStrategy(question string) types.ResponseStrategy {
	return types.ResponseStrategy{
		Question:          question,
		ResponseFramework: "Direct Answer",
		Emphasize:         []string{"Clarity"},
		Avoid:             []string{"Ambiguity"},
		PivotOptions:      []string{},
		FollowUpPrepared:  []string{},
	}
}

// PitchSimulation scripts a five-turn exchange opening with pitch.
func PitchSimulation(name, pitch, meetingContext string) []types.DialogueLine {
	name = orDefault(name, "Partner")
	if strings.TrimSpace(pitch) == "" {
		pitch = fmt.Sprintf("I'd like to share what we're building around %s.", orDefault(meetingContext, DefaultMeetingContext))
	}
	return []types.DialogueLine{
		{Speaker: "You", Message: pitch, Context: "Opening pitch"},
		{Speaker: name, Message: "That sounds interesting. How does it specifically address [Specific Pain Point]?", Context: "Probing for relevance"},
		{Speaker: "You", Message: "It addresses [Specific Pain Point] by [Solution Mechanism].", Context: "Direct answer"},
		{Speaker: name, Message: "I see. And what kind of resources would be required on our end?", Context: "Evaluating feasibility"},
		{Speaker: "You", Message: "Minimal resources. We handle the heavy lifting via...", Context: "Reassurance"},
	}
}

// Scenarios builds one rehearsal per standard meeting context.
func Scenarios(name string) map[string]types.Scenario {
	name = orDefault(name, "They")
	out := make(map[string]types.Scenario, len(scenarioContexts))
	for _, c := range scenarioContexts {
		out[c] = types.Scenario{
			Context:               c,
			LikelyOpener:          fmt.Sprintf("Thanks for meeting. I'm interested to hear about your work in %s.", strings.ReplaceAll(c, "_", " ")),
			QuestionsTheyMightAsk: []string{"Can you elaborate on your experience?", "How does this apply to our current situation?"},
			TopicsToAvoid:         []string{"Internal politics", "Competitor pricing"},
			TopicsToLeanInto:      []string{"Innovation", "Efficiency"},
			SampleDialogue: []types.DialogueLine{
				{Speaker: "You", Message: "Hi, thanks for the time."},
				{Speaker: name, Message: "Glad to meet you. What's on your mind?"},
			},
		}
	}
	return out
}
