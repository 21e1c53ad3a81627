package store

// Field names and enum spellings below are part of the persisted and
// HTTP-visible contract; do not rename.

const (
	AgendaStatusPending = "pending"

	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"

	EventTypeMeeting  = "meeting"
	EventTypeFollowUp = "follow-up"
)

type Meeting struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Date        string       `json:"date"`
	Attendees   []string     `json:"attendees"`
	AgendaItems []AgendaItem `json:"agenda_items"`
	Notes       string       `json:"notes"`
}

type AgendaItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	MeetingID   string `json:"meeting_id"`
	Status      string `json:"status"`
	Tasks       []Task `json:"tasks"`
	// Blank until the scheduler assigns a follow-up date.
	ScheduledDate string `json:"scheduled_date"`
}

type Task struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Assignee     string `json:"assignee"`
	Deadline     string `json:"deadline"`
	AgendaItemID string `json:"agenda_item_id"`
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	Notes        string `json:"notes"`
}

type CalendarEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Duration  int    `json:"duration"`
	EventType string `json:"event_type"`
	RelatedID string `json:"related_id"`
	Notes     string `json:"notes"`
}

// Document is the whole persisted dataset. Tasks appear twice: nested under
// their agenda item and flattened in Tasks. Both copies are kept in step by
// the service layer.
type Document struct {
	Meetings       []Meeting       `json:"meetings"`
	CalendarEvents []CalendarEvent `json:"calendar_events"`
	Tasks          []Task          `json:"tasks"`
}

// NewDocument returns the empty default document used before anything has
// been persisted.
func NewDocument() Document {
	return Document{
		Meetings:       []Meeting{},
		CalendarEvents: []CalendarEvent{},
		Tasks:          []Task{},
	}
}
