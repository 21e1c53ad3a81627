package search

import (
	"context"
	"log"
)

// Service is the facade that tries Meilisearch first and falls back to
// scanning the stored document.
type Service struct {
	meili  *Meili
	memory *Memory
}

// NewService creates a search service. meili may be nil if Meilisearch is not configured.
func NewService(meili *Meili, memory *Memory) *Service {
	return &Service{meili: meili, memory: memory}
}

// Search tries Meilisearch if healthy, otherwise falls back to the document scan.
func (s *Service) Search(ctx context.Context, q Query) Response {
	if s.meili != nil && s.meili.Healthy() {
		results, total, err := s.meili.Search(q)
		if err == nil {
			return Response{Results: nonNil(results), Total: total, Query: q.Text}
		}
		log.Printf("search: meilisearch error, falling back to scan: %v", err)
	}

	results, total, err := s.memory.Search(ctx, q)
	if err != nil {
		log.Printf("search: fallback error: %v", err)
		return Response{Results: []Result{}, Total: 0, Query: q.Text}
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text}
}

// IndexMeeting indexes a meeting (fire-and-forget to Meilisearch).
func (s *Service) IndexMeeting(rec MeetingRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexMeeting(rec); err != nil {
			log.Printf("search: index meeting %s: %v", rec.ID, err)
		}
	}()
}

// IndexTask indexes a task (fire-and-forget to Meilisearch).
func (s *Service) IndexTask(rec TaskRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexTask(rec); err != nil {
			log.Printf("search: index task %s: %v", rec.ID, err)
		}
	}()
}

// RemoveMeeting removes a meeting from the search index (fire-and-forget).
func (s *Service) RemoveMeeting(id string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteMeeting(id); err != nil {
			log.Printf("search: delete meeting %s: %v", id, err)
		}
	}()
}

// RemoveTask removes a task from the search index (fire-and-forget).
func (s *Service) RemoveTask(id string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteTask(id); err != nil {
			log.Printf("search: delete task %s: %v", id, err)
		}
	}()
}

// Reindex pushes the whole dataset into Meilisearch. Called at startup so
// the indexes reflect whatever the data file already holds.
func (s *Service) Reindex(meetings []MeetingRecord, tasks []TaskRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	if err := s.meili.IndexMeetings(meetings); err != nil {
		log.Printf("search: reindex meetings: %v", err)
	}
	if err := s.meili.IndexTasks(tasks); err != nil {
		log.Printf("search: reindex tasks: %v", err)
	}
}

func nonNil(r []Result) []Result {
	if r == nil {
		return []Result{}
	}
	return r
}
