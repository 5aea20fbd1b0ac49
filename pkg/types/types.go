// Package types defines the core data structures for the Navigator briefing
// system. These types represent scraped content, the person and company being
// briefed on, the derived theme and sentiment profiles, and the synthesized
// briefing record handed to output consumers.
package types

// PersonType is a coarse role archetype that drives synthesis style.
type PersonType string

// Person type constants
const (
	// PersonExecutive covers C-level, VP, director and head-of roles.
	// It is also the default when no rule matches.
	PersonExecutive PersonType = "executive"

	// PersonEngineer covers engineers, developers, architects and programmers
	PersonEngineer PersonType = "engineer"

	// PersonDesigner covers designers, UX/UI and creative roles
	PersonDesigner PersonType = "designer"

	// PersonFounder covers founders, co-founders and owners
	PersonFounder PersonType = "founder"

	// PersonInvestor covers investors, partners, VCs and angels
	PersonInvestor PersonType = "investor"
)

// ValidPersonTypes lists every person type in classification priority order.
var ValidPersonTypes = []PersonType{
	PersonExecutive,
	PersonEngineer,
	PersonDesigner,
	PersonFounder,
	PersonInvestor,
}

// IsValidPersonType checks if the given string is a valid person type.
func IsValidPersonType(personType string) bool {
	for _, pt := range ValidPersonTypes {
		if string(pt) == personType {
			return true
		}
	}
	return false
}

// SynthesisConfig is the synthesis strategy bound to a PersonType.
type SynthesisConfig struct {
	// Focus is the ordered list of focus-area labels (2-3 entries).
	Focus []string `json:"focus"`

	// TalkingPointStyle describes how talking points should be phrased.
	TalkingPointStyle string `json:"talking_point_style"`

	// MockConversationDepth describes how deep rehearsal conversations go.
	MockConversationDepth string `json:"mock_conversation_depth"`
}

// Data quality labels attached to extraction metadata.
const (
	DataQualityHigh   = "high"
	DataQualityMedium = "medium"
	DataQualityLow    = "low"
)

// Sentiment labels produced by the deterministic analyzer. The LLM path may
// return other labels from the same small vocabulary (e.g. "enthusiastic").
const (
	SentimentPositive  = "positive"
	SentimentConcerned = "concerned"
)
