package types

// Engagement holds normalized engagement counts for a content item.
// Both counts are non-negative after sanitization.
type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// Weighted returns likes plus twice the comments.
func (e Engagement) Weighted() int {
	return e.Likes + 2*e.Comments
}

// ContentItem is a unit of social content (a post or tweet).
// It is created unranked by a scraping collaborator, annotated once by the
// prioritizer, and read-only afterward.
type ContentItem struct {
	Content        string     `json:"content"`
	Date           string     `json:"date"`
	Engagement     Engagement `json:"engagement"`
	Source         string     `json:"source,omitempty"`
	PriorityScore  float64    `json:"priority_score"`
	PriorityReason string     `json:"priority_reason"`
}

// Profile is the scraped profile summary of the person being briefed on.
type Profile struct {
	Name        string `json:"name"`
	Headline    string `json:"headline"`
	CurrentRole string `json:"current_role"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Connections int    `json:"connections"`
}

// Person is the extraction-stage view of the profile consumed by synthesis.
type Person struct {
	Name                 string `json:"name"`
	Role                 string `json:"role"`
	Company              string `json:"company"`
	ProfessionalIdentity string `json:"professional_identity"`
	CareerTrajectory     string `json:"career_trajectory"`
}

// Funding describes a company's most recent funding round.
type Funding struct {
	Stage  string `json:"stage"`
	Amount string `json:"amount"`
}

// CompanyContext is the company research snapshot attached to a briefing.
type CompanyContext struct {
	Name               string   `json:"name"`
	Industry           string   `json:"industry"`
	Funding            Funding  `json:"funding"`
	RecentNews         []string `json:"recent_news"`
	Competitors        []string `json:"competitors"`
	RelevanceScore     float64  `json:"relevance_score"`
	KeyFacts           []string `json:"key_facts"`
	RecentDevelopments []string `json:"recent_developments"`
}

// DecisionMetadata records what the prioritizer saw and what it kept.
type DecisionMetadata struct {
	TotalDataPointsFound int      `json:"total_data_points_found"`
	DataPointsSurfaced   int      `json:"data_points_surfaced"`
	DecisionRationale    []string `json:"decision_rationale"`
}
