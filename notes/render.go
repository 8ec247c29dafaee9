package notes

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/adamspd/StudyNotes/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	minIframeHeight = 2000
	rowHeight       = 180
)

// IframeHeight sizes the dashboard frame from the number of filtered rows.
func IframeHeight(rows int) int {
	if h := rows * rowHeight; h > minIframeHeight {
		return h
	}
	return minIframeHeight
}

type layout struct {
	HeaderDisplay        template.CSS
	ConceptWidth         template.CSS
	ProblemHeaderDisplay template.CSS
	ColumnBorder         template.CSS
	SectionBreak         template.CSS
}

func layoutFor(conceptOnly bool) layout {
	if conceptOnly {
		return layout{
			HeaderDisplay:        "none",
			ConceptWidth:         "100%",
			ProblemHeaderDisplay: "none",
			ColumnBorder:         "none",
			SectionBreak:         "break-inside: avoid-column; display: block; width: 100%;",
		}
	}
	return layout{
		HeaderDisplay:        "flex",
		ConceptWidth:         "60%",
		ProblemHeaderDisplay: "block",
		ColumnBorder:         "1px solid #edf2f7",
		SectionBreak:         "page-break-inside: auto;",
	}
}

type documentData struct {
	Title       string
	Layout      layout
	ConceptOnly bool
	PrintButton bool
	Sections    []models.Section
}

// DashboardData feeds the filter sidebar and the framed document.
type DashboardData struct {
	Title          string
	AllOption      string
	Filter         models.Filter
	Options        models.FilterOptions
	DocumentURL    string
	IframeHeight   int
	RowCount       int
	Error          string
	MissingColumns []string
	User           *models.Session
}

// Renderer executes the embedded page templates.
type Renderer struct {
	document  *template.Template
	dashboard *template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		// Fragments were sanitized by Markdown before reaching the template.
		"trusted": func(s string) template.HTML { return template.HTML(s) },
	}

	document, err := template.New("document.html").Funcs(funcs).ParseFS(templateFS, "templates/document.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse document template: %w", err)
	}
	dashboard, err := template.New("dashboard.html").ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	return &Renderer{document: document, dashboard: dashboard}, nil
}

// Document writes the full printable notes page.
func (r *Renderer) Document(w io.Writer, view *models.NotesView, printButton bool) error {
	return r.document.Execute(w, documentData{
		Title:       view.Title,
		Layout:      layoutFor(view.Filter.ConceptOnly),
		ConceptOnly: view.Filter.ConceptOnly,
		PrintButton: printButton,
		Sections:    view.Sections,
	})
}

func (r *Renderer) DocumentString(view *models.NotesView, printButton bool) (string, error) {
	var buf bytes.Buffer
	if err := r.Document(&buf, view, printButton); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) Dashboard(w io.Writer, data DashboardData) error {
	if data.AllOption == "" {
		data.AllOption = models.AllOption
	}
	return r.dashboard.Execute(w, data)
}
