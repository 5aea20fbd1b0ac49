package types

// QuestionFramework guides question generation for a person type.
type QuestionFramework struct {
	Categories      []string `json:"categories"`
	Style           string   `json:"style"`
	TypicalConcerns []string `json:"typical_concerns"`
}

// LikelyQuestion is a question the person is expected to ask.
type LikelyQuestion struct {
	Question          string   `json:"question"`
	Category          string   `json:"category"`
	WhyLikely         string   `json:"why_likely"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

// ResponseStrategy is coaching for answering one likely question.
type ResponseStrategy struct {
	Question          string   `json:"question"`
	ResponseFramework string   `json:"response_framework"`
	Emphasize         []string `json:"emphasize"`
	Avoid             []string `json:"avoid"`
	PivotOptions      []string `json:"pivot_options"`
	FollowUpPrepared  []string `json:"follow_up_prepared"`
}

// DialogueLine is one turn of a sample conversation.
type DialogueLine struct {
	Speaker string `json:"speaker"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// Scenario is a rehearsal for one kind of meeting.
type Scenario struct {
	Context               string         `json:"context"`
	LikelyOpener          string         `json:"likely_opener"`
	QuestionsTheyMightAsk []string       `json:"questions_they_might_ask"`
	TopicsToAvoid         []string       `json:"topics_to_avoid"`
	TopicsToLeanInto      []string       `json:"topics_to_lean_into"`
	SampleDialogue        []DialogueLine `json:"sample_dialogue"`
}

// Rehearsal is the mock-conversation section of a briefing.
type Rehearsal struct {
	LikelyQuestions       []ResponseStrategy  `json:"likely_questions"`
	PitchSimulation       []DialogueLine      `json:"pitch_simulation"`
	ConversationScenarios map[string]Scenario `json:"conversation_scenarios"`
}
