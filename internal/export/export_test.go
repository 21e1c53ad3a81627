package export

import (
	"errors"
	"strings"
	"testing"

	"minutes/api/internal/store"
)

func fixtureMeeting() store.Meeting {
	return store.Meeting{
		ID:        "meeting-1",
		Title:     "Quarterly Planning",
		Date:      "2024-04-01",
		Attendees: []string{"alice", "bob"},
		Notes:     "Focus on the Q3 roadmap.",
		AgendaItems: []store.AgendaItem{{
			ID:            "agenda-1",
			MeetingID:     "meeting-1",
			Title:         "Roadmap review",
			Duration:      45,
			Status:        store.AgendaStatusPending,
			ScheduledDate: "2024-04-02",
			Tasks: []store.Task{{
				ID:       "task-1",
				Title:    "Publish roadmap doc",
				Assignee: "alice",
				Status:   store.TaskStatusInProgress,
				Progress: 60,
			}},
		}},
	}
}

func TestExportHTML(t *testing.T) {
	result, err := NewService().Export(fixtureMeeting(), FormatHTML)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if result.MimeType != "text/html; charset=utf-8" {
		t.Errorf("MimeType = %q", result.MimeType)
	}
	if result.Filename != "Quarterly-Planning.html" {
		t.Errorf("Filename = %q", result.Filename)
	}

	html := string(result.Data)
	for _, want := range []string{
		"Quarterly Planning",
		"2024-04-01",
		"alice",
		"Roadmap review",
		"Publish roadmap doc",
		"60%",
		"follow-up 2024-04-02",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestExportHTMLEscapesContent(t *testing.T) {
	meeting := fixtureMeeting()
	meeting.Title = `<script>alert("x")</script>`

	result, err := NewService().Export(meeting, FormatHTML)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if strings.Contains(string(result.Data), "<script>alert") {
		t.Error("meeting title was not escaped")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := NewService().Export(fixtureMeeting(), Format("docx"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Simple Title", "Simple-Title"},
		{"weird/chars:here!", "weirdcharshere"},
		{"", "meeting"},
		{strings.Repeat("a", 80), strings.Repeat("a", 50)},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPercentEncodeForDataURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a b&c", "a%20b%26c"},
		{"plain-text_1.0~ok", "plain-text_1.0~ok"},
		// Multi-byte runes must escape per UTF-8 byte.
		{"café", "caf%C3%A9"},
		{"日程", "%E6%97%A5%E7%A8%8B"},
		{"🙂", "%F0%9F%99%82"},
	}
	for _, tc := range cases {
		if got := percentEncodeForDataURL(tc.in); got != tc.want {
			t.Errorf("percentEncodeForDataURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
