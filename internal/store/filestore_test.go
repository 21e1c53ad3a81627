package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStoreMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minutes.json")
	fileStore := NewFileStore(path)

	doc, err := fileStore.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Meetings == nil || doc.CalendarEvents == nil || doc.Tasks == nil {
		t.Errorf("missing file should yield an empty document, got %+v", doc)
	}
	if len(doc.Meetings) != 0 {
		t.Errorf("expected no meetings, got %d", len(doc.Meetings))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minutes.json")
	fileStore := NewFileStore(path)
	ctx := context.Background()

	doc := NewDocument()
	doc.Meetings = append(doc.Meetings, Meeting{
		ID:        "meeting-1",
		Title:     "Kickoff",
		Date:      "2024-03-01",
		Attendees: []string{"alice"},
		AgendaItems: []AgendaItem{{
			ID:        "agenda-1",
			MeetingID: "meeting-1",
			Title:     "Scope",
			Duration:  30,
			Status:    AgendaStatusPending,
			Tasks: []Task{{
				ID:           "task-1",
				AgendaItemID: "agenda-1",
				Title:        "write brief",
				Status:       TaskStatusTodo,
			}},
		}},
	})
	doc.Tasks = append(doc.Tasks, doc.Meetings[0].AgendaItems[0].Tasks[0])

	if err := fileStore.Save(ctx, doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := fileStore.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Meetings) != 1 || loaded.Meetings[0].ID != "meeting-1" {
		t.Fatalf("unexpected meetings: %+v", loaded.Meetings)
	}
	if len(loaded.Meetings[0].AgendaItems[0].Tasks) != 1 {
		t.Error("nested tasks lost in round trip")
	}
	if len(loaded.Tasks) != 1 {
		t.Error("flat tasks lost in round trip")
	}
}

func TestFileStoreUsesSnakeCaseKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minutes.json")
	fileStore := NewFileStore(path)
	ctx := context.Background()

	doc := NewDocument()
	doc.CalendarEvents = append(doc.CalendarEvents, CalendarEvent{
		ID:        "event-1",
		Title:     "Meeting: Kickoff",
		Date:      "2024-03-01",
		EventType: EventTypeMeeting,
		RelatedID: "meeting-1",
	})
	if err := fileStore.Save(ctx, doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	for _, key := range []string{`"calendar_events"`, `"event_type"`, `"related_id"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("persisted file missing key %s", key)
		}
	}
}

func TestFileStoreNormalizesNilSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minutes.json")
	if err := os.WriteFile(path, []byte(`{"meetings":[{"id":"meeting-1","title":"Old","date":"2024-01-01"}]}`), 0o644); err != nil {
		t.Fatalf("seed data file: %v", err)
	}

	loaded, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.CalendarEvents == nil || loaded.Tasks == nil {
		t.Error("absent lists should be normalized to empty slices")
	}
	if loaded.Meetings[0].Attendees == nil || loaded.Meetings[0].AgendaItems == nil {
		t.Error("absent meeting lists should be normalized to empty slices")
	}
}
