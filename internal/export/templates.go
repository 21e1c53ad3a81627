package export

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var minutesTemplate *template.Template

func init() {
	funcMap := template.FuncMap{
		"lower": strings.ToLower,
		"formatDate": func(t time.Time, layout string) string {
			return t.Format(layout)
		},
	}

	templateContent, err := templateFS.ReadFile("templates/minutes.html")
	if err != nil {
		// Fallback to built-in template if file not found
		minutesTemplate = template.Must(template.New("minutes").Funcs(funcMap).Parse(fallbackTemplate))
		return
	}

	minutesTemplate = template.Must(template.New("minutes").Funcs(funcMap).Parse(string(templateContent)))
}

// TemplateData holds data for minutes template rendering
type TemplateData struct {
	Title       string
	Date        string
	Attendees   []string
	Notes       string
	AgendaItems []TemplateAgendaItem
	GeneratedAt time.Time
}

// TemplateAgendaItem holds agenda item data for the template
type TemplateAgendaItem struct {
	Title         string
	Duration      int
	Status        string
	ScheduledDate string
	Tasks         []TemplateTask
}

// TemplateTask holds task data for the template
type TemplateTask struct {
	Title    string
	Assignee string
	Status   string
	Progress int
}

// RenderMinutesHTML renders the minutes template with provided data
func RenderMinutesHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := minutesTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fallbackTemplate is used if the embedded template fails to load
const fallbackTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 800px; margin: 2rem auto; }
    h1 { border-bottom: 2px solid #333; padding-bottom: 0.5rem; }
    .meta { color: #666; font-size: 0.9em; margin-bottom: 2rem; }
    .agenda-item { background: #f5f5f5; padding: 1rem; margin: 1rem 0; border-left: 3px solid #333; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="meta">{{.Date}}</div>
  {{if .Notes}}<p>{{.Notes}}</p>{{end}}
  {{range .AgendaItems}}<div class="agenda-item">{{.Title}} ({{.Duration}} min)</div>{{end}}
</body>
</html>`
