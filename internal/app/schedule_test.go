package app

import (
	"context"
	"errors"
	"testing"

	"minutes/api/internal/store"
)

func TestAutoScheduleCreatesEvents(t *testing.T) {
	doc := store.NewDocument()
	service := newMemService(&doc)
	ctx := context.Background()

	meeting, err := service.CreateMeeting(ctx, CreateMeetingInput{Title: "Roadmap", Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}
	service.CreateAgendaItem(ctx, CreateAgendaItemInput{Title: "Goals", Duration: 30, MeetingID: meeting.ID})
	service.CreateAgendaItem(ctx, CreateAgendaItemInput{Title: "Budget", Duration: 45, MeetingID: meeting.ID})

	result, err := service.AutoSchedule(ctx, meeting.ID)
	if err != nil {
		t.Fatalf("AutoSchedule failed: %v", err)
	}
	if len(result.Created) != 3 {
		t.Fatalf("expected 3 created events, got %d", len(result.Created))
	}
	if result.TotalEvents != 3 {
		t.Errorf("TotalEvents = %d, want 3", result.TotalEvents)
	}

	main := result.Created[0]
	if main.Title != "Meeting: Roadmap" || main.Date != "2024-01-01" {
		t.Errorf("unexpected meeting event: %+v", main)
	}
	if main.Duration != 75 {
		t.Errorf("meeting event duration = %d, want 75", main.Duration)
	}
	if main.EventType != store.EventTypeMeeting || main.RelatedID != meeting.ID {
		t.Errorf("unexpected meeting event linkage: %+v", main)
	}

	wantFollowUps := []struct {
		title    string
		date     string
		duration int
	}{
		{"Follow-up: Goals", "2024-01-02", 30},
		{"Follow-up: Budget", "2024-01-03", 45},
	}
	for i, want := range wantFollowUps {
		got := result.Created[i+1]
		if got.Title != want.title || got.Date != want.date || got.Duration != want.duration {
			t.Errorf("follow-up %d = %+v, want %+v", i, got, want)
		}
		if got.EventType != store.EventTypeFollowUp {
			t.Errorf("follow-up %d event type = %q", i, got.EventType)
		}
	}

	// Follow-up dates are written back onto the agenda items.
	items := doc.Meetings[0].AgendaItems
	if items[0].ScheduledDate != "2024-01-02" || items[1].ScheduledDate != "2024-01-03" {
		t.Errorf("scheduled dates not set: %q, %q", items[0].ScheduledDate, items[1].ScheduledDate)
	}
}

func TestAutoScheduleDefaultsFollowUpDuration(t *testing.T) {
	doc := store.NewDocument()
	service := newMemService(&doc)
	ctx := context.Background()

	meeting, _ := service.CreateMeeting(ctx, CreateMeetingInput{Title: "Sync", Date: "2024-02-10"})
	service.CreateAgendaItem(ctx, CreateAgendaItemInput{Title: "Open floor", Duration: 0, MeetingID: meeting.ID})

	result, err := service.AutoSchedule(ctx, meeting.ID)
	if err != nil {
		t.Fatalf("AutoSchedule failed: %v", err)
	}
	if result.Created[1].Duration != 30 {
		t.Errorf("zero-duration item should default to 30, got %d", result.Created[1].Duration)
	}
}

func TestAutoScheduleTwiceAccumulates(t *testing.T) {
	doc := store.NewDocument()
	service := newMemService(&doc)
	ctx := context.Background()

	meeting, _ := service.CreateMeeting(ctx, CreateMeetingInput{Title: "Weekly", Date: "2024-01-01"})
	service.CreateAgendaItem(ctx, CreateAgendaItemInput{Title: "Updates", Duration: 20, MeetingID: meeting.ID})

	first, err := service.AutoSchedule(ctx, meeting.ID)
	if err != nil {
		t.Fatalf("first AutoSchedule failed: %v", err)
	}
	second, err := service.AutoSchedule(ctx, meeting.ID)
	if err != nil {
		t.Fatalf("second AutoSchedule failed: %v", err)
	}

	if first.TotalEvents != 2 {
		t.Errorf("first run total = %d, want 2", first.TotalEvents)
	}
	if second.TotalEvents != 4 {
		t.Errorf("second run total = %d, want 4", second.TotalEvents)
	}
	if len(doc.CalendarEvents) != 4 {
		t.Errorf("stored events = %d, want 4", len(doc.CalendarEvents))
	}
}

func TestAutoScheduleMeetingNotFound(t *testing.T) {
	doc := store.NewDocument()
	service := newMemService(&doc)

	_, err := service.AutoSchedule(context.Background(), "meeting-missing")
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Status != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
	if len(doc.CalendarEvents) != 0 {
		t.Error("failed schedule must not store events")
	}
}

func TestSummaryCounts(t *testing.T) {
	doc := store.NewDocument()
	service := newMemService(&doc)
	ctx := context.Background()

	meeting, _ := service.CreateMeeting(ctx, CreateMeetingInput{Title: "Planning", Date: "2024-01-15"})
	item, _ := service.CreateAgendaItem(ctx, CreateAgendaItemInput{Title: "Work", Duration: 60, MeetingID: meeting.ID})

	var ids []string
	for _, title := range []string{"a", "b", "c", "d"} {
		task, _ := service.CreateTask(ctx, CreateTaskInput{Title: title, AgendaItemID: item.ID})
		ids = append(ids, task.ID)
	}
	done := store.TaskStatusCompleted
	inProgress := store.TaskStatusInProgress
	service.UpdateTask(ctx, ids[0], UpdateTaskInput{Status: &done})
	service.UpdateTask(ctx, ids[1], UpdateTaskInput{Status: &inProgress})

	summary, err := service.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalMeetings != 1 {
		t.Errorf("TotalMeetings = %d, want 1", summary.TotalMeetings)
	}
	if summary.TotalTasks != 4 {
		t.Errorf("TotalTasks = %d, want 4", summary.TotalTasks)
	}
	if summary.TasksCompleted != 1 || summary.TasksInProgress != 1 || summary.TasksTodo != 2 {
		t.Errorf("unexpected buckets: %+v", summary)
	}
	if summary.CompletionRate != 25.0 {
		t.Errorf("CompletionRate = %v, want 25.0", summary.CompletionRate)
	}
}

func TestSummaryEmptyDataset(t *testing.T) {
	doc := store.NewDocument()
	service := newMemService(&doc)

	summary, err := service.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalTasks != 0 || summary.CompletionRate != 0 {
		t.Errorf("empty dataset summary = %+v", summary)
	}
}

func TestSummaryRounding(t *testing.T) {
	doc := store.NewDocument()
	service := newMemService(&doc)
	ctx := context.Background()

	meeting, _ := service.CreateMeeting(ctx, CreateMeetingInput{Title: "Rounding", Date: "2024-01-20"})
	item, _ := service.CreateAgendaItem(ctx, CreateAgendaItemInput{Title: "Work", Duration: 30, MeetingID: meeting.ID})

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		task, _ := service.CreateTask(ctx, CreateTaskInput{Title: title, AgendaItemID: item.ID})
		ids = append(ids, task.ID)
	}
	done := store.TaskStatusCompleted
	service.UpdateTask(ctx, ids[0], UpdateTaskInput{Status: &done})

	summary, err := service.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	// 1/3 completed rounds to one decimal place.
	if summary.CompletionRate != 33.3 {
		t.Errorf("CompletionRate = %v, want 33.3", summary.CompletionRate)
	}
}
