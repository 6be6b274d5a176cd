package entity

// Company holds what the researcher learned about a prospect. The name is the
// unique key for one pipeline run; everything else is best-effort and may stay
// empty when research degrades. Trigger events and recent news are attached by
// later enrichment calls.
type Company struct {
	Name          string   `json:"name"`
	Industry      string   `json:"industry,omitempty"`
	Headcount     int      `json:"headcount,omitempty"`
	Website       string   `json:"website,omitempty"`
	Location      string   `json:"location,omitempty"`
	Description   string   `json:"description,omitempty"`
	RecentNews    []string `json:"recent_news,omitempty"`
	TriggerEvents []string `json:"trigger_events,omitempty"`
}
