package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the whole dataset as one document. Load returns the empty
// default document when nothing has been persisted yet; Save overwrites the
// entire document. I/O failures propagate to the caller unmodified.
type Store interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
	Ping(ctx context.Context) error
}

// FileStore keeps the document in a single JSON file. Writes go to a temp
// file in the same directory and are renamed into place so readers never see
// a partial document.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDocument(), nil
		}
		return Document{}, fmt.Errorf("read data file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode data file: %w", err)
	}
	normalize(&doc)
	return doc, nil
}

func (s *FileStore) Save(ctx context.Context, doc Document) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat data dir: %w", err)
	}
	return nil
}

// normalize replaces nil slices left by older or hand-edited files so the
// JSON contract always serializes arrays, never null.
func normalize(doc *Document) {
	if doc.Meetings == nil {
		doc.Meetings = []Meeting{}
	}
	if doc.CalendarEvents == nil {
		doc.CalendarEvents = []CalendarEvent{}
	}
	if doc.Tasks == nil {
		doc.Tasks = []Task{}
	}
	for i := range doc.Meetings {
		meeting := &doc.Meetings[i]
		if meeting.Attendees == nil {
			meeting.Attendees = []string{}
		}
		if meeting.AgendaItems == nil {
			meeting.AgendaItems = []AgendaItem{}
		}
		for j := range meeting.AgendaItems {
			if meeting.AgendaItems[j].Tasks == nil {
				meeting.AgendaItems[j].Tasks = []Task{}
			}
		}
	}
}
