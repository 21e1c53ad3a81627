package export

import (
	"fmt"
	"time"

	"minutes/api/internal/store"
)

// Service provides meeting export functionality
type Service struct{}

// NewService creates a new export service
func NewService() *Service {
	return &Service{}
}

// Export renders a meeting in the requested format.
func (s *Service) Export(meeting store.Meeting, format Format) (*Result, error) {
	data := TemplateData{
		Title:       meeting.Title,
		Date:        meeting.Date,
		Attendees:   meeting.Attendees,
		Notes:       meeting.Notes,
		GeneratedAt: time.Now(),
	}
	for _, item := range meeting.AgendaItems {
		tplItem := TemplateAgendaItem{
			Title:         item.Title,
			Duration:      item.Duration,
			Status:        item.Status,
			ScheduledDate: item.ScheduledDate,
		}
		for _, task := range item.Tasks {
			tplItem.Tasks = append(tplItem.Tasks, TemplateTask{
				Title:    task.Title,
				Assignee: task.Assignee,
				Status:   task.Status,
				Progress: task.Progress,
			})
		}
		data.AgendaItems = append(data.AgendaItems, tplItem)
	}

	html, err := RenderMinutesHTML(data)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	switch format {
	case FormatHTML:
		return &Result{
			Data:     []byte(html),
			Filename: sanitizeFilename(meeting.Title) + ".html",
			MimeType: "text/html; charset=utf-8",
		}, nil
	case FormatPDF:
		return exportPDF(html, meeting.Title)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
