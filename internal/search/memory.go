package search

import (
	"context"
	"fmt"
	"strings"

	"minutes/api/internal/store"
)

// Memory is the fallback searcher used when Meilisearch is not available.
// It scans the stored document on every query, which is fine at the data
// sizes a minutes dataset reaches.
type Memory struct {
	store store.Store
}

func NewMemory(dataStore store.Store) *Memory {
	return &Memory{store: dataStore}
}

// Healthy always reports true; the fallback has no external dependency.
func (m *Memory) Healthy() bool {
	return true
}

// Search walks meetings and their nested tasks, matching the query text
// case-insensitively against titles, notes, attendees and assignees.
func (m *Memory) Search(ctx context.Context, q Query) ([]Result, int, error) {
	doc, err := m.store.Load(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("search fallback: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(q.Text))
	limit := q.Limit
	if limit == 0 {
		limit = 20
	}

	var results []Result
	if q.FilterType == "" || q.FilterType == ResultMeeting {
		for _, meeting := range doc.Meetings {
			haystack := strings.ToLower(meeting.Title + " " + strings.Join(meeting.Attendees, " ") + " " + meeting.Notes)
			if !strings.Contains(haystack, needle) {
				continue
			}
			results = append(results, Result{
				Type:      ResultMeeting,
				ID:        meeting.ID,
				Title:     meeting.Title,
				Snippet:   snippet(meeting.Notes, strings.Join(meeting.Attendees, ", ")),
				MeetingID: meeting.ID,
			})
		}
	}
	if q.FilterType == "" || q.FilterType == ResultTask {
		for _, meeting := range doc.Meetings {
			for _, item := range meeting.AgendaItems {
				for _, task := range item.Tasks {
					haystack := strings.ToLower(task.Title + " " + task.Assignee + " " + task.Notes)
					if !strings.Contains(haystack, needle) {
						continue
					}
					results = append(results, Result{
						Type:    ResultTask,
						ID:      task.ID,
						Title:   task.Title,
						Snippet: snippet(task.Notes, task.Assignee),
						Status:  task.Status,
					})
				}
			}
		}
	}

	total := len(results)
	if q.Offset > 0 {
		if q.Offset >= total {
			return []Result{}, total, nil
		}
		results = results[q.Offset:]
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, total, nil
}

func snippet(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
