package controllers

import (
	"net/http"

	"github.com/rahul4469/truthguardian/internal/models"
	"github.com/rahul4469/truthguardian/internal/views"
)

// StaticController handles pages with no per-request state.
type StaticController struct {
	templates StaticTemplates
}

// StaticTemplates holds templates for static pages.
type StaticTemplates struct {
	About *views.Template
}

// NewStaticController creates a new StaticController.
func NewStaticController(templates StaticTemplates) *StaticController {
	return &StaticController{
		templates: templates,
	}
}

// AboutData holds data for the about page template.
type AboutData struct {
	Levels []LevelInfo
}

// LevelInfo explains one credibility level on the about page.
type LevelInfo struct {
	Name    string
	Summary string
	Verdict models.Verdict
}

var levelSummaries = map[models.Credibility]struct{ name, summary string }{
	models.CredibilityHigh: {
		name:    "High",
		summary: "Content appears to be from reliable sources with verifiable facts and balanced reporting.",
	},
	models.CredibilityMedium: {
		name:    "Medium",
		summary: "Content may contain some accurate information but also misleading elements or lack of context.",
	},
	models.CredibilityLow: {
		name:    "Low",
		summary: "Content shows strong indicators of being false, misleading, or fabricated information.",
	},
}

// GetAbout renders the about page.
func (c *StaticController) GetAbout(w http.ResponseWriter, r *http.Request) {
	levels := make([]LevelInfo, 0, len(models.Credibilities))
	for _, level := range models.Credibilities {
		s := levelSummaries[level]
		levels = append(levels, LevelInfo{
			Name:    s.name,
			Summary: s.summary,
			Verdict: level.Verdict(),
		})
	}

	data := &views.TemplateData{
		Title:       "About",
		Description: "How TruthGuardian assesses news credibility",
		Data: AboutData{
			Levels: levels,
		},
	}

	c.templates.About.ExecuteHTTP(w, r, data)
}

// HealthCheck returns a simple health status for monitoring.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
