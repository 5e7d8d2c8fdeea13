package controllers

import (
	"net/http"

	"github.com/gorilla/csrf"
	localcontext "github.com/rahul4469/truthguardian/context"
	"github.com/rahul4469/truthguardian/internal/models"
	"github.com/rahul4469/truthguardian/internal/views"
	"go.uber.org/zap"
)

// ReportController handles the report page.
type ReportController struct {
	sink      models.ReportSink
	templates ReportTemplates
}

// ReportTemplates holds the templates for the report page.
type ReportTemplates struct {
	Page *views.Template
}

func NewReportController(sink models.ReportSink, templates ReportTemplates) *ReportController {
	return &ReportController{
		sink:      sink,
		templates: templates,
	}
}

// ReportPageData holds data for the report template.
type ReportPageData struct {
	Session    *models.ReportSession
	Categories []models.ReportCategory
}

// GetReport renders an empty report form.
func (c *ReportController) GetReport(w http.ResponseWriter, r *http.Request) {
	c.templates.Page.ExecuteHTTP(w, r, c.pageData(r, &models.ReportSession{}))
}

// PostReport validates and submits a report.
func (c *ReportController) PostReport(w http.ResponseWriter, r *http.Request) {
	logger := localcontext.ContextGetLogger(r.Context())

	if err := r.ParseForm(); err != nil {
		data := c.pageData(r, &models.ReportSession{})
		data.AddError("Invalid form data", "The submitted form could not be read.")
		c.templates.Page.ExecuteHTTPWithStatus(w, r, http.StatusBadRequest, data)
		return
	}

	session := &models.ReportSession{
		Form: models.ReportForm{
			URL:         r.FormValue("url"),
			Category:    r.FormValue("category"),
			Description: r.FormValue("description"),
		},
	}

	err := session.Submit(r.Context(), c.sink)
	data := c.pageData(r, session)

	if err != nil {
		if ve, ok := models.IsValidationError(err); ok {
			data.AddError(ve.Title, ve.Message)
			c.templates.Page.ExecuteHTTPWithStatus(w, r, http.StatusUnprocessableEntity, data)
			return
		}

		logger.Error("report submission failed", zap.Error(err))
		data.AddError("Submission failed", "Your report could not be submitted. Please try again later.")
		c.templates.Page.ExecuteHTTPWithStatus(w, r, http.StatusInternalServerError, data)
		return
	}

	data.AddNotice("Report submitted", "Thank you for helping us combat misinformation.")
	c.templates.Page.ExecuteHTTP(w, r, data)
}

// PostReset discards the confirmation and returns to an empty form.
func (c *ReportController) PostReset(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/report", http.StatusSeeOther)
}

func (c *ReportController) pageData(r *http.Request, session *models.ReportSession) *views.TemplateData {
	title := "Report"
	if session.Submitted {
		title = "Report Submitted"
	}
	return &views.TemplateData{
		Title:       title,
		Description: "Report suspicious content",
		CSRFField:   csrf.TemplateField(r),
		Data: ReportPageData{
			Session:    session,
			Categories: models.ReportCategories,
		},
	}
}
