package search

import (
	"context"
	"testing"

	"minutes/api/internal/store"
)

type staticStore struct {
	doc store.Document
}

func (s *staticStore) Load(context.Context) (store.Document, error) { return s.doc, nil }
func (s *staticStore) Save(context.Context, store.Document) error { return nil }
func (s *staticStore) Ping(context.Context) error { return nil }

func fixtureStore() *staticStore {
	doc := store.NewDocument()
	doc.Meetings = []store.Meeting{
		{
			ID:        "meeting-1",
			Title:     "Security review",
			Date:      "2024-03-01",
			Attendees: []string{"alice", "bob"},
			AgendaItems: []store.AgendaItem{{
				ID:        "agenda-1",
				MeetingID: "meeting-1",
				Title:     "Audit findings",
				Tasks: []store.Task{
					{ID: "task-1", Title: "patch login service", Assignee: "alice", Status: store.TaskStatusTodo},
					{ID: "task-2", Title: "rotate credentials", Assignee: "bob", Status: store.TaskStatusInProgress},
				},
			}},
		},
		{
			ID:    "meeting-2",
			Title: "Budget planning",
			Date:  "2024-03-02",
		},
	}
	return &staticStore{doc: doc}
}

func TestMemorySearchMatchesMeetingsAndTasks(t *testing.T) {
	memory := NewMemory(fixtureStore())

	results, total, err := memory.Search(context.Background(), Query{Text: "security"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 1 || len(results) != 1 {
		t.Fatalf("expected 1 hit, got %d (%+v)", total, results)
	}
	if results[0].Type != ResultMeeting || results[0].ID != "meeting-1" {
		t.Errorf("unexpected hit: %+v", results[0])
	}

	results, total, err = memory.Search(context.Background(), Query{Text: "alice"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected meeting and task hits, got %d", total)
	}
}

func TestMemorySearchTypeFilter(t *testing.T) {
	memory := NewMemory(fixtureStore())

	results, _, err := memory.Search(context.Background(), Query{Text: "alice", FilterType: ResultTask})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Type != ResultTask {
		t.Errorf("type filter returned %+v", results)
	}
	if results[0].Status != store.TaskStatusTodo {
		t.Errorf("task hit missing status: %+v", results[0])
	}
}

func TestMemorySearchCaseInsensitive(t *testing.T) {
	memory := NewMemory(fixtureStore())

	_, total, err := memory.Search(context.Background(), Query{Text: "BUDGET"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 1 {
		t.Errorf("expected 1 hit, got %d", total)
	}
}

func TestMemorySearchLimitAndOffset(t *testing.T) {
	memory := NewMemory(fixtureStore())

	results, total, err := memory.Search(context.Background(), Query{Text: "e", Limit: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) > 2 {
		t.Errorf("limit ignored: %d results", len(results))
	}

	offsetResults, offsetTotal, err := memory.Search(context.Background(), Query{Text: "e", Offset: total})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if offsetTotal != total {
		t.Errorf("offset changed total: %d vs %d", offsetTotal, total)
	}
	if len(offsetResults) != 0 {
		t.Errorf("offset beyond total should return no results, got %d", len(offsetResults))
	}
}

func TestServiceFallsBackWithoutMeili(t *testing.T) {
	service := NewService(nil, NewMemory(fixtureStore()))

	response := service.Search(context.Background(), Query{Text: "budget"})
	if response.Total != 1 || len(response.Results) != 1 {
		t.Errorf("unexpected response: %+v", response)
	}
	if response.Query != "budget" {
		t.Errorf("Query echo = %q", response.Query)
	}
}
