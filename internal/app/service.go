package app

import (
	"context"
	"log"
	"strings"
	"sync"

	"minutes/api/internal/cache"
	"minutes/api/internal/config"
	"minutes/api/internal/history"
	"minutes/api/internal/search"
	"minutes/api/internal/store"
	"minutes/api/internal/util"
)

type CreateMeetingInput struct {
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Attendees []string `json:"attendees"`
}

type CreateAgendaItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	MeetingID   string `json:"meeting_id"`
}

type CreateTaskInput struct {
	Title        string `json:"title"`
	Assignee     string `json:"assignee"`
	Deadline     string `json:"deadline"`
	AgendaItemID string `json:"agenda_item_id"`
}

// UpdateTaskInput carries partial-update fields; nil means leave unchanged.
type UpdateTaskInput struct {
	Status   *string `json:"status"`
	Progress *int    `json:"progress"`
	Notes    *string `json:"notes"`
}

type TaskFilter struct {
	Status   string
	Assignee string
}

// Service owns the load → mutate → save cycle for every operation. The
// persisted document tolerates exactly one logical writer at a time, so a
// process-wide mutex serializes all cycles.
type Service struct {
	cfg     config.Config
	store   store.Store
	search  *search.Service
	history *history.Service
	cache   *cache.SummaryCache
	mu      sync.Mutex
}

func New(cfg config.Config, dataStore store.Store, searchService *search.Service, historyService *history.Service, summaryCache *cache.SummaryCache) *Service {
	return &Service{
		cfg:     cfg,
		store:   dataStore,
		search:  searchService,
		history: historyService,
		cache:   summaryCache,
	}
}

// Bootstrap pushes the current dataset into the search indexes so a fresh
// Meilisearch instance catches up with whatever the data file already holds.
func (s *Service) Bootstrap(ctx context.Context) error {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	meetings := make([]search.MeetingRecord, 0, len(doc.Meetings))
	var tasks []search.TaskRecord
	for _, meeting := range doc.Meetings {
		meetings = append(meetings, meetingRecord(meeting))
		for _, item := range meeting.AgendaItems {
			for _, task := range item.Tasks {
				tasks = append(tasks, taskRecord(task))
			}
		}
	}
	s.search.Reindex(meetings, tasks)
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) ListMeetings(ctx context.Context) ([]store.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Meetings, nil
}

func (s *Service) CreateMeeting(ctx context.Context, in CreateMeetingInput) (store.Meeting, error) {
	if strings.TrimSpace(in.Title) == "" {
		return store.Meeting{}, validationError("title is required")
	}
	if strings.TrimSpace(in.Date) == "" {
		return store.Meeting{}, validationError("date is required")
	}
	attendees := in.Attendees
	if attendees == nil {
		attendees = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return store.Meeting{}, err
	}

	meeting := store.Meeting{
		ID:          util.NewID("meeting"),
		Title:       in.Title,
		Date:        in.Date,
		Attendees:   attendees,
		AgendaItems: []store.AgendaItem{},
		Notes:       "",
	}
	doc.Meetings = append(doc.Meetings, meeting)

	if err := s.store.Save(ctx, doc); err != nil {
		return store.Meeting{}, err
	}
	s.afterMutation(ctx, doc, "create meeting "+meeting.ID)
	s.search.IndexMeeting(meetingRecord(meeting))
	return meeting, nil
}

func (s *Service) GetMeeting(ctx context.Context, meetingID string) (store.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return store.Meeting{}, err
	}
	for _, meeting := range doc.Meetings {
		if meeting.ID == meetingID {
			return meeting, nil
		}
	}
	return store.Meeting{}, notFound("Meeting not found")
}

// DeleteMeeting removes the meeting and cascades: its tasks leave the flat
// task list and its calendar events are dropped alongside the nested record.
func (s *Service) DeleteMeeting(ctx context.Context, meetingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	index := -1
	for i, meeting := range doc.Meetings {
		if meeting.ID == meetingID {
			index = i
			break
		}
	}
	if index == -1 {
		return notFound("Meeting not found")
	}

	removed := doc.Meetings[index]
	doc.Meetings = append(doc.Meetings[:index], doc.Meetings[index+1:]...)

	ownedAgendaItems := map[string]bool{}
	ownedTasks := map[string]bool{}
	for _, item := range removed.AgendaItems {
		ownedAgendaItems[item.ID] = true
		for _, task := range item.Tasks {
			ownedTasks[task.ID] = true
		}
	}

	flat := doc.Tasks[:0]
	for _, task := range doc.Tasks {
		if !ownedAgendaItems[task.AgendaItemID] {
			flat = append(flat, task)
		}
	}
	doc.Tasks = flat

	events := doc.CalendarEvents[:0]
	for _, event := range doc.CalendarEvents {
		if event.RelatedID == meetingID || ownedAgendaItems[event.RelatedID] {
			continue
		}
		events = append(events, event)
	}
	doc.CalendarEvents = events

	if err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	s.afterMutation(ctx, doc, "delete meeting "+meetingID)
	s.search.RemoveMeeting(meetingID)
	for taskID := range ownedTasks {
		s.search.RemoveTask(taskID)
	}
	return nil
}

func (s *Service) CreateAgendaItem(ctx context.Context, in CreateAgendaItemInput) (store.AgendaItem, error) {
	if strings.TrimSpace(in.Title) == "" {
		return store.AgendaItem{}, validationError("title is required")
	}
	if strings.TrimSpace(in.MeetingID) == "" {
		return store.AgendaItem{}, validationError("meeting_id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return store.AgendaItem{}, err
	}

	for i := range doc.Meetings {
		meeting := &doc.Meetings[i]
		if meeting.ID != in.MeetingID {
			continue
		}
		item := store.AgendaItem{
			ID:            util.NewID("agenda"),
			Title:         in.Title,
			Description:   in.Description,
			Duration:      in.Duration,
			MeetingID:     in.MeetingID,
			Status:        store.AgendaStatusPending,
			Tasks:         []store.Task{},
			ScheduledDate: "",
		}
		meeting.AgendaItems = append(meeting.AgendaItems, item)
		if err := s.store.Save(ctx, doc); err != nil {
			return store.AgendaItem{}, err
		}
		s.afterMutation(ctx, doc, "create agenda item "+item.ID)
		return item, nil
	}
	return store.AgendaItem{}, notFound("Meeting not found")
}

// ListAgendaItems returns one meeting's items when meetingID is set, or the
// union across all meetings in meeting order then item order.
func (s *Service) ListAgendaItems(ctx context.Context, meetingID string) ([]store.AgendaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	items := []store.AgendaItem{}
	for _, meeting := range doc.Meetings {
		if meetingID != "" && meeting.ID != meetingID {
			continue
		}
		items = append(items, meeting.AgendaItems...)
	}
	return items, nil
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (store.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return store.Task{}, validationError("title is required")
	}
	if strings.TrimSpace(in.AgendaItemID) == "" {
		return store.Task{}, validationError("agenda_item_id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return store.Task{}, err
	}

	for i := range doc.Meetings {
		for j := range doc.Meetings[i].AgendaItems {
			item := &doc.Meetings[i].AgendaItems[j]
			if item.ID != in.AgendaItemID {
				continue
			}
			task := store.Task{
				ID:           util.NewID("task"),
				Title:        in.Title,
				Assignee:     in.Assignee,
				Deadline:     in.Deadline,
				AgendaItemID: in.AgendaItemID,
				Status:       store.TaskStatusTodo,
				Progress:     0,
				Notes:        "",
			}
			// Both copies are written together: nested under the agenda
			// item and in the flat document-level list.
			item.Tasks = append(item.Tasks, task)
			doc.Tasks = append(doc.Tasks, task)
			if err := s.store.Save(ctx, doc); err != nil {
				return store.Task{}, err
			}
			s.afterMutation(ctx, doc, "create task "+task.ID)
			s.search.IndexTask(taskRecord(task))
			return task, nil
		}
	}
	return store.Task{}, notFound("Agenda item not found")
}

// ListTasks flattens the nested copies on every call; the flat document list
// is never consulted on the read path. Filters compose with logical AND.
func (s *Service) ListTasks(ctx context.Context, filter TaskFilter) ([]store.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	tasks := []store.Task{}
	for _, meeting := range doc.Meetings {
		for _, item := range meeting.AgendaItems {
			for _, task := range item.Tasks {
				if filter.Status != "" && task.Status != filter.Status {
					continue
				}
				if filter.Assignee != "" && task.Assignee != filter.Assignee {
					continue
				}
				tasks = append(tasks, task)
			}
		}
	}
	return tasks, nil
}

func (s *Service) UpdateTask(ctx context.Context, taskID string, in UpdateTaskInput) (store.Task, error) {
	if in.Progress != nil && (*in.Progress < 0 || *in.Progress > 100) {
		return store.Task{}, validationError("progress must be between 0 and 100")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return store.Task{}, err
	}

	for i := range doc.Meetings {
		for j := range doc.Meetings[i].AgendaItems {
			item := &doc.Meetings[i].AgendaItems[j]
			for k := range item.Tasks {
				task := &item.Tasks[k]
				if task.ID != taskID {
					continue
				}
				if in.Status != nil {
					task.Status = *in.Status
				}
				if in.Progress != nil {
					task.Progress = *in.Progress
				}
				if in.Notes != nil {
					task.Notes = *in.Notes
				}
				syncFlatTask(&doc, *task)
				if err := s.store.Save(ctx, doc); err != nil {
					return store.Task{}, err
				}
				s.afterMutation(ctx, doc, "update task "+taskID)
				s.search.IndexTask(taskRecord(*task))
				return *task, nil
			}
		}
	}
	return store.Task{}, notFound("Task not found")
}

func (s *Service) ListCalendarEvents(ctx context.Context) ([]store.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.CalendarEvents, nil
}

func (s *Service) Search(ctx context.Context, q search.Query) search.Response {
	return s.search.Search(ctx, q)
}

func (s *Service) History(ctx context.Context, limit int) ([]history.Entry, error) {
	if s.history == nil {
		return []history.Entry{}, nil
	}
	return s.history.List(limit)
}

func (s *Service) HistoryEnabled() bool {
	return s.history != nil
}

// syncFlatTask copies an updated nested task over its flat-list twin so the
// two denormalized copies cannot drift.
func syncFlatTask(doc *store.Document, task store.Task) {
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == task.ID {
			doc.Tasks[i] = task
			return
		}
	}
}

// afterMutation runs the bookkeeping every successful save shares: the
// summary cache is stale and the snapshot belongs in the audit trail.
// Failures here are logged, never surfaced; the mutation already succeeded.
func (s *Service) afterMutation(ctx context.Context, doc store.Document, message string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("cache: invalidate summary: %v", err)
		}
	}
	if s.history != nil {
		if err := s.history.Record(doc, message); err != nil {
			log.Printf("history: record snapshot: %v", err)
		}
	}
}

func meetingRecord(meeting store.Meeting) search.MeetingRecord {
	return search.MeetingRecord{
		ID:        meeting.ID,
		Title:     meeting.Title,
		Date:      meeting.Date,
		Attendees: strings.Join(meeting.Attendees, " "),
		Notes:     meeting.Notes,
	}
}

func taskRecord(task store.Task) search.TaskRecord {
	return search.TaskRecord{
		ID:           task.ID,
		Title:        task.Title,
		Assignee:     task.Assignee,
		Status:       task.Status,
		Notes:        task.Notes,
		AgendaItemID: task.AgendaItemID,
	}
}
