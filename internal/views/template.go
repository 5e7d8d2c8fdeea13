package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	localcontext "github.com/rahul4469/truthguardian/context"
	"go.uber.org/zap"
)

// Template wraps a parsed template with helper methods for rendering.
type Template struct {
	tmpl *template.Template
}

// Notice variants
const (
	NoticeDefault     = "default"
	NoticeDestructive = "destructive"
)

// Notice is a transient message shown at the top of the page.
type Notice struct {
	Title   string
	Message string
	Variant string
}

// TemplateData is the standard data structure passed to all templates.
// It contains common fields that every page might need.
type TemplateData struct {
	// CSRF hidden input for forms
	CSRFField template.HTML

	// Toast-style notices, rendered in order
	Notices []Notice

	// Page-specific data
	Data interface{}

	// Additional metadata
	Title       string
	Description string

	// Request info (useful for active nav highlighting)
	CurrentPath string

	Year int
}

// AddNotice appends an informational notice.
func (d *TemplateData) AddNotice(title, message string) {
	d.Notices = append(d.Notices, Notice{Title: title, Message: message, Variant: NoticeDefault})
}

// AddError appends a destructive notice.
func (d *TemplateData) AddError(title, message string) {
	d.Notices = append(d.Notices, Notice{Title: title, Message: message, Variant: NoticeDestructive})
}

// DefaultFuncMap returns the template functions available in all templates.
func DefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Date/time formatting
		"formatDateTime": formatDateTime,

		// Navigation
		"navClass": navClass,

		// Credibility styling
		"credibilityText": credibilityText,
		"credibilityBar":  credibilityBar,
		"credibilityIcon": credibilityIcon,
		"noticeClass":     noticeClass,
	}
}

// ParseFS parses a page from fsys together with the base layout and all
// partials. Pages define {{define "content"}}; the layout is "base".
func ParseFS(fsys fs.FS, patterns ...string) (*Template, error) {
	tmpl := template.New("").Funcs(DefaultFuncMap())

	baseContent, err := fs.ReadFile(fsys, "layouts/base.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to read base template: %w", err)
	}
	tmpl, err = tmpl.Parse(string(baseContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}

	// Partials define their own names with {{define "name"}}
	partialMatches, err := fs.Glob(fsys, "partials/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to glob partials: %w", err)
	}
	for _, match := range partialMatches {
		content, err := fs.ReadFile(fsys, match)
		if err != nil {
			return nil, fmt.Errorf("failed to read partial %s: %w", match, err)
		}
		tmpl, err = tmpl.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse partial %s: %w", match, err)
		}
	}

	for _, pattern := range patterns {
		content, err := fs.ReadFile(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", pattern, err)
		}
		tmpl, err = tmpl.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", pattern, err)
		}
	}

	return &Template{tmpl: tmpl}, nil
}

// Execute renders the template to the given writer with the provided data.
func (t *Template) Execute(w io.Writer, data *TemplateData) error {
	return t.tmpl.ExecuteTemplate(w, "base", data)
}

// ExecuteHTTP renders the template as an HTTP response.
func (t *Template) ExecuteHTTP(w http.ResponseWriter, r *http.Request, data *TemplateData) {
	t.ExecuteHTTPWithStatus(w, r, http.StatusOK, data)
}

// ExecuteHTTPWithStatus renders the template with a custom HTTP status code.
// Rendering goes to a buffer first so a template error never produces a
// half-written page.
func (t *Template) ExecuteHTTPWithStatus(w http.ResponseWriter, r *http.Request, status int, data *TemplateData) {
	if data == nil {
		data = &TemplateData{}
	}
	data.CurrentPath = r.URL.Path
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	buf := &bytes.Buffer{}
	if err := t.Execute(buf, data); err != nil {
		localcontext.ContextGetLogger(r.Context()).Error("template execution failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Template function implementations

func formatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM MST")
}

func navClass(current, path string) string {
	if current == path {
		return "bg-gray-100 text-gray-900"
	}
	return "text-gray-600 hover:bg-gray-100 hover:text-gray-900"
}

func credibilityText(color string) string {
	switch color {
	case "green":
		return "text-green-600"
	case "amber":
		return "text-amber-500"
	case "red":
		return "text-red-600"
	default:
		return "text-gray-700"
	}
}

func credibilityBar(color string) string {
	switch color {
	case "green":
		return "bg-green-600"
	case "amber":
		return "bg-amber-500"
	case "red":
		return "bg-red-600"
	default:
		return "bg-gray-400"
	}
}

func credibilityIcon(icon string) string {
	switch icon {
	case "check":
		return "✓"
	case "alert":
		return "⚠"
	case "cross":
		return "✕"
	default:
		return ""
	}
}

func noticeClass(variant string) string {
	if variant == NoticeDestructive {
		return "border-red-300 bg-red-50 text-red-900"
	}
	return "border-gray-200 bg-white text-gray-900"
}
