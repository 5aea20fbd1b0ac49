package types

// ThemeProfile summarizes what a person talks about.
// Secondary is in rank order. FrequencyBreakdown shares need not sum to 1.0.
type ThemeProfile struct {
	Primary            string             `json:"primary"`
	Secondary          []string           `json:"secondary"`
	FrequencyBreakdown map[string]float64 `json:"frequency_breakdown"`
}

// Ranked returns the primary theme followed by the secondary themes,
// skipping empty labels.
func (t ThemeProfile) Ranked() []string {
	ranked := make([]string, 0, len(t.Secondary)+1)
	if t.Primary != "" {
		ranked = append(ranked, t.Primary)
	}
	for _, s := range t.Secondary {
		if s != "" {
			ranked = append(ranked, s)
		}
	}
	return ranked
}

// SentimentProfile summarizes how a person talks.
type SentimentProfile struct {
	Overall            string   `json:"overall"`
	PassionTopics      []string `json:"passion_topics"`
	Concerns           []string `json:"concerns"`
	CommunicationStyle string   `json:"communication_style"`
}

// Insight is a single observation about the person with supporting evidence.
type Insight struct {
	Insight    string   `json:"insight"`
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence"`
}

// TalkingPoint is a prepared conversation topic. Never mutated after creation.
type TalkingPoint struct {
	Point              string `json:"point"`
	Context            string `json:"context"`
	WhySelected        string `json:"why_selected"`
	ConversationOpener string `json:"conversation_opener"`
	ExpectedReaction   string `json:"expected_reaction"`
}

// ReasoningStep explains one talking point. Steps pair 1:1 with talking
// points, in the same order.
type ReasoningStep struct {
	Decision               string   `json:"decision"`
	Reason                 string   `json:"reason"`
	Evidence               string   `json:"evidence"`
	AlternativesConsidered []string `json:"alternatives_considered"`
	Confidence             float64  `json:"confidence"`
	ExplanationForUser     string   `json:"explanation_for_user"`
}

// SynthesisSummary is the subset of SynthesisConfig surfaced in a briefing.
type SynthesisSummary struct {
	FocusAreas        []string `json:"focus_areas"`
	TalkingPointStyle string   `json:"talking_point_style"`
}

// Synthesis is the output of the adaptive synthesis stage.
type Synthesis struct {
	PersonType      PersonType       `json:"person_type"`
	SynthesisConfig SynthesisSummary `json:"synthesis_config"`
	TalkingPoints   []TalkingPoint   `json:"talking_points"`
	KeyInsights     []Insight        `json:"key_insights"`
	ReasoningChain  []ReasoningStep  `json:"reasoning_chain"`
	BriefingSummary string           `json:"briefing_summary"`
}

// ExtractionMetadata describes how trustworthy a briefing is.
type ExtractionMetadata struct {
	BriefingID      string  `json:"briefing_id"`
	GeneratedAt     string  `json:"generated_at"`
	ConfidenceScore float64 `json:"confidence_score"`
	DataQuality     string  `json:"data_quality"`
	ExtractionTime  string  `json:"extraction_time"`
	LLMEnhanced     bool    `json:"llm_enhanced"`
}

// BriefingRecord is the aggregate root produced once per pipeline run.
// Synthesis is embedded so its fields sit at the top level of the JSON.
// Every slice and map is non-nil once the pipeline returns it.
type BriefingRecord struct {
	Person             Person             `json:"person"`
	Profile            Profile            `json:"profile"`
	Posts              []ContentItem      `json:"posts"`
	DecisionMetadata   DecisionMetadata   `json:"decision_metadata"`
	Themes             ThemeProfile       `json:"themes"`
	Sentiment          SentimentProfile   `json:"sentiment"`
	Insights           []Insight          `json:"insights"`
	CompanyContext     CompanyContext     `json:"company_context"`
	ExtractionMetadata ExtractionMetadata `json:"extraction_metadata"`
	Synthesis
	MockConversations Rehearsal `json:"mock_conversations"`
}

// Extraction is the payload handed from the extraction stage to synthesis.
type Extraction struct {
	Person    Person           `json:"person"`
	Themes    ThemeProfile     `json:"themes"`
	Sentiment SentimentProfile `json:"sentiment"`
	Insights  []Insight        `json:"insights"`
	Posts     []ContentItem    `json:"posts"`
}
