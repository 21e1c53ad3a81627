package app

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"time"

	"minutes/api/internal/store"
	"minutes/api/internal/util"
)

const (
	meetingDateLayout       = "2006-01-02"
	followUpDefaultDuration = 30
)

// ScheduleResult reports one auto-schedule run. TotalEvents counts every
// calendar event now stored, not only the ones this call created.
type ScheduleResult struct {
	Created     []store.CalendarEvent
	TotalEvents int
}

type Summary struct {
	TotalMeetings       int     `json:"total_meetings"`
	TotalCalendarEvents int     `json:"total_calendar_events"`
	TotalTasks          int     `json:"total_tasks"`
	TasksCompleted      int     `json:"tasks_completed"`
	TasksInProgress     int     `json:"tasks_in_progress"`
	TasksTodo           int     `json:"tasks_todo"`
	CompletionRate      float64 `json:"completion_rate"`
}

// AutoSchedule derives calendar events from a meeting's agenda: one
// "meeting" event whose duration is the agenda total, then one "follow-up"
// event per agenda item at meeting date + item position days. The follow-up
// date is also written back into the item's scheduled_date. Events are
// append-only; scheduling the same meeting again accumulates duplicates.
func (s *Service) AutoSchedule(ctx context.Context, meetingID string) (ScheduleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return ScheduleResult{}, err
	}

	var meeting *store.Meeting
	for i := range doc.Meetings {
		if doc.Meetings[i].ID == meetingID {
			meeting = &doc.Meetings[i]
			break
		}
	}
	if meeting == nil {
		return ScheduleResult{}, notFound("Meeting not found")
	}

	base, err := time.Parse(meetingDateLayout, meeting.Date)
	if err != nil {
		return ScheduleResult{}, validationError("meeting date must be YYYY-MM-DD")
	}

	totalDuration := 0
	for _, item := range meeting.AgendaItems {
		totalDuration += item.Duration
	}

	created := []store.CalendarEvent{
		{
			ID:        util.NewID("event"),
			Title:     "Meeting: " + meeting.Title,
			Date:      meeting.Date,
			Duration:  totalDuration,
			EventType: store.EventTypeMeeting,
			RelatedID: meetingID,
			Notes:     "",
		},
	}

	for i := range meeting.AgendaItems {
		item := &meeting.AgendaItems[i]
		followUpDate := base.AddDate(0, 0, i+1).Format(meetingDateLayout)
		item.ScheduledDate = followUpDate

		duration := item.Duration
		if duration == 0 {
			duration = followUpDefaultDuration
		}
		created = append(created, store.CalendarEvent{
			ID:        util.NewID("event"),
			Title:     "Follow-up: " + item.Title,
			Date:      followUpDate,
			Duration:  duration,
			EventType: store.EventTypeFollowUp,
			RelatedID: item.ID,
			Notes:     "",
		})
	}

	doc.CalendarEvents = append(doc.CalendarEvents, created...)
	if err := s.store.Save(ctx, doc); err != nil {
		return ScheduleResult{}, err
	}
	s.afterMutation(ctx, doc, "auto-schedule meeting "+meetingID)
	return ScheduleResult{Created: created, TotalEvents: len(doc.CalendarEvents)}, nil
}

// Summary aggregates task rollups over the nested task copies, the same walk
// ListTasks uses. Tasks with an unknown status count toward the total but
// land in no bucket.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx); err == nil && raw != nil {
			var cached Summary
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.store.Load(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		TotalMeetings:       len(doc.Meetings),
		TotalCalendarEvents: len(doc.CalendarEvents),
	}
	for _, meeting := range doc.Meetings {
		for _, item := range meeting.AgendaItems {
			for _, task := range item.Tasks {
				summary.TotalTasks++
				switch task.Status {
				case store.TaskStatusCompleted:
					summary.TasksCompleted++
				case store.TaskStatusInProgress:
					summary.TasksInProgress++
				case store.TaskStatusTodo:
					summary.TasksTodo++
				}
			}
		}
	}
	if summary.TotalTasks > 0 {
		rate := float64(summary.TasksCompleted) / float64(summary.TotalTasks) * 100
		summary.CompletionRate = math.Round(rate*10) / 10
	}

	if s.cache != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, payload); err != nil {
				log.Printf("cache: store summary: %v", err)
			}
		}
	}
	return summary, nil
}
