package model

// Market represents a prediction market from the Gamma discovery API.
type Market struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Icon        string   `json:"icon"`
	Active      bool     `json:"active"`
	Closed      bool     `json:"closed"`
	Archived    bool     `json:"archived"`
	Liquidity   string   `json:"liquidity"`
	Volume      string   `json:"volume"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Outcomes    []string `json:"outcomes"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// MarketFilter selects markets from the discovery API. Nil pointer fields
// and zero values are omitted from the outbound query rather than defaulted.
type MarketFilter struct {
	Active   *bool
	Closed   *bool
	Archived *bool
	Limit    int
	Offset   int
	Category string
}
