package engine

import (
	"strings"

	"github.com/scrypster/navigator/pkg/types"
)

// roleRule maps a role string to a person type when match reports true.
type roleRule struct {
	label types.PersonType
	match func(role string) bool
}

func mentionsAny(terms ...string) func(string) bool {
	return func(role string) bool {
		for _, t := range terms {
			if strings.Contains(role, t) {
				return true
			}
		}
		return false
	}
}

// roleRules are evaluated top to bottom; the first match wins.
var roleRules = []roleRule{
	{types.PersonExecutive, mentionsAny("ceo", "cto", "cpo", "vp", "director", "head of", "chief")},
	{types.PersonEngineer, mentionsAny("engineer", "developer", "architect", "programmer")},
	{types.PersonDesigner, mentionsAny("designer", "ux", "ui", "creative", "artist")},
	{types.PersonFounder, mentionsAny("founder", "co-founder", "owner")},
	{types.PersonInvestor, mentionsAny("investor", "partner", "vc", "angel")},
}

var synthesisConfigs = map[types.PersonType]types.SynthesisConfig{
	types.PersonExecutive: {
		Focus:                 []string{"strategy", "business_impact", "leadership"},
		TalkingPointStyle:     "high-level, outcome-focused",
		MockConversationDepth: "strategic",
	},
	types.PersonEngineer: {
		Focus:                 []string{"technical_depth", "architecture", "tools"},
		TalkingPointStyle:     "technical, specific examples",
		MockConversationDepth: "detailed implementation",
	},
	types.PersonDesigner: {
		Focus:                 []string{"user_experience", "aesthetics", "process"},
		TalkingPointStyle:     "visual, user-centric",
		MockConversationDepth: "design rationale",
	},
	types.PersonFounder: {
		Focus:                 []string{"vision", "traction", "team"},
		TalkingPointStyle:     "story-driven, ambitious",
		MockConversationDepth: "vision and execution",
	},
	types.PersonInvestor: {
		Focus:                 []string{"market_size", "differentiation", "team"},
		TalkingPointStyle:     "metrics-driven, thesis-aligned",
		MockConversationDepth: "due diligence",
	},
}

// Classify maps a role to a person type. It never fails: an empty or
// unmatched role is classified as an executive.
func Classify(role string) types.PersonType {
	role = strings.ToLower(role)
	for _, rule := range roleRules {
		if rule.match(role) {
			return rule.label
		}
	}
	return types.PersonExecutive
}

// ConfigFor returns a copy of the synthesis config for a person type.
// Unknown types get the executive config.
func ConfigFor(pt types.PersonType) types.SynthesisConfig {
	cfg, ok := synthesisConfigs[pt]
	if !ok {
		cfg = synthesisConfigs[types.PersonExecutive]
	}
	cfg.Focus = append([]string(nil), cfg.Focus...)
	return cfg
}
