package models

// Age categories for the three fixed leaderboards, plus the independent
// top-100 list.
const (
	CategoryAdult     = "adult"
	CategoryChildren  = "children"
	CategoryPreschool = "preschool"
	CategoryTop100    = "top100"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryAdult, CategoryChildren, CategoryPreschool, CategoryTop100:
		return true
	}
	return false
}

// ResultSet is one published batch of results for an event type and
// season. At most one set per event type carries IsLatest.
type ResultSet struct {
	ID          int    `json:"id"`
	EventType   string `json:"event_type"`
	Season      string `json:"season"`
	IsLatest    bool   `json:"is_latest"`
	PublishedAt string `json:"published_at"`
	EntryCount  int    `json:"entry_count,omitempty"`
}

type ResultEntry struct {
	ID              int     `json:"id"`
	ResultSetID     int     `json:"result_set_id"`
	ContestantID    string  `json:"contestant_id"`
	ParticipantName string  `json:"participant_name"`
	Category        string  `json:"category"`
	Position        int     `json:"position"`
	Score           float64 `json:"score"`
	Remarks         string  `json:"remarks,omitempty"`

	// Joined from the result set for search and certificates.
	EventType string `json:"event_type,omitempty"`
	Season    string `json:"season,omitempty"`
}

// Leaderboards is the results-browser payload: three fixed age-category
// lists and the separate top-100 list, each ordered by stored position.
type Leaderboards struct {
	EventType string        `json:"event_type"`
	Season    string        `json:"season"`
	Adult     []ResultEntry `json:"adult"`
	Children  []ResultEntry `json:"children"`
	Preschool []ResultEntry `json:"preschool"`
	Top100    []ResultEntry `json:"top100"`
}
