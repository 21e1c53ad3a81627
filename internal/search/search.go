package search

// ResultType identifies the kind of entity in a search result.
type ResultType string

const (
	ResultMeeting ResultType = "meeting"
	ResultTask    ResultType = "task"
)

// Result is a single search hit returned to the caller.
type Result struct {
	Type      ResultType `json:"type"`
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Snippet   string     `json:"snippet"`
	MeetingID string     `json:"meeting_id,omitempty"`
	Status    string     `json:"status,omitempty"`
}

// Query describes a search request.
type Query struct {
	Text       string
	FilterType ResultType // empty = all types
	Limit      int
	Offset     int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// Searcher can execute a full-text search.
type Searcher interface {
	Search(q Query) ([]Result, int, error)
	Healthy() bool
}

// Indexer can push entities into a search index.
type Indexer interface {
	IndexMeeting(m MeetingRecord) error
	IndexTask(t TaskRecord) error
	DeleteMeeting(id string) error
	DeleteTask(id string) error
}

// MeetingRecord is the data we index for a meeting.
type MeetingRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Attendees string `json:"attendees"`
	Notes     string `json:"notes"`
}

// TaskRecord is the data we index for a task.
type TaskRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Assignee     string `json:"assignee"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
	AgendaItemID string `json:"agenda_item_id"`
}
