package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/csrf"
	localcontext "github.com/rahul4469/truthguardian/context"
	"github.com/rahul4469/truthguardian/internal/models"
	"github.com/rahul4469/truthguardian/internal/views"
	"go.uber.org/zap"
)

// maxAnalysisBodyBytes bounds the request body of an analysis request.
const maxAnalysisBodyBytes = 64 << 10

// Analyzer produces a credibility verdict for news text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*models.AnalysisResult, error)
}

// AnalyzeController handles the analysis page, the landing route.
type AnalyzeController struct {
	analyzer  Analyzer
	templates AnalyzeTemplates
}

// AnalyzeTemplates holds the templates for analysis pages.
type AnalyzeTemplates struct {
	Page *views.Template
}

// NewAnalyzeController creates a new AnalyzeController.
func NewAnalyzeController(analyzer Analyzer, templates AnalyzeTemplates) *AnalyzeController {
	return &AnalyzeController{
		analyzer:  analyzer,
		templates: templates,
	}
}

// AnalyzePageData holds data for the analyze template.
type AnalyzePageData struct {
	Text      string
	MinLength int
	Result    *models.AnalysisResult
	Verdict   models.Verdict
	Tips      []string
}

// GetAnalyze renders the empty analysis form.
func (c *AnalyzeController) GetAnalyze(w http.ResponseWriter, r *http.Request) {
	data := c.pageData(r, models.NewAnalysisSession(), "")
	c.templates.Page.ExecuteHTTP(w, r, data)
}

// PostAnalyze runs one analysis and renders the verdict, or the form with
// a notice when validation or the remote call fails.
func (c *AnalyzeController) PostAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := localcontext.ContextGetLogger(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAnalysisBodyBytes)
	if err := r.ParseForm(); err != nil {
		data := c.pageData(r, models.NewAnalysisSession(), "")
		data.AddError("Invalid form data", "The submitted form could not be read.")
		c.templates.Page.ExecuteHTTPWithStatus(w, r, http.StatusBadRequest, data)
		return
	}

	text := r.FormValue("news_text")
	session := models.NewAnalysisSession()
	err := session.Run(r.Context(), text, c.analyzer.Analyze)
	data := c.pageData(r, session, text)

	if err != nil {
		if ve, ok := models.IsValidationError(err); ok {
			data.AddError(ve.Title, ve.Message)
			c.templates.Page.ExecuteHTTPWithStatus(w, r, http.StatusUnprocessableEntity, data)
			return
		}

		logger.Warn("analysis failed", zap.Error(err), zap.Duration("elapsed", session.Duration()))
		data.AddError("Analysis failed", "Unable to analyze the content. Please try again later.")
		c.templates.Page.ExecuteHTTPWithStatus(w, r, http.StatusBadGateway, data)
		return
	}

	result := session.Result()
	logger.Info("analysis completed",
		zap.String("credibility", result.Credibility.String()),
		zap.String("source", string(result.Source)),
		zap.Duration("elapsed", session.Duration()))

	c.templates.Page.ExecuteHTTP(w, r, data)
}

func (c *AnalyzeController) pageData(r *http.Request, session *models.AnalysisSession, text string) *views.TemplateData {
	page := AnalyzePageData{
		Text:      text,
		MinLength: models.MinAnalysisTextLength,
		Tips:      models.VerificationTips,
	}
	if result := session.Result(); result != nil {
		page.Result = result
		page.Verdict = result.Verdict()
	}

	return &views.TemplateData{
		Title:       "Verify",
		Description: "Paste news content to analyze its credibility using AI",
		CSRFField:   csrf.TemplateField(r),
		Data:        page,
	}
}

// AnalyzeResponse is the JSON body returned by the analysis API.
type AnalyzeResponse struct {
	Credibility models.Credibility  `json:"credibility"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Score       int                 `json:"score"`
	Explanation string              `json:"explanation,omitempty"`
	Source      models.ResultSource `json:"source"`
}

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PostAnalyzeAPI is the JSON form of PostAnalyze.
func (c *AnalyzeController) PostAnalyzeAPI(w http.ResponseWriter, r *http.Request) {
	logger := localcontext.ContextGetLogger(r.Context())

	var req models.AnalysisRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnalysisBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Message: "Body must be a JSON object with a text field."})
		return
	}

	session := models.NewAnalysisSession()
	if err := session.Run(r.Context(), req.Text, c.analyzer.Analyze); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ve.Title, Message: ve.Message})
			return
		}
		logger.Warn("analysis failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "Analysis failed", Message: "Unable to analyze the content. Please try again later."})
		return
	}

	result := session.Result()
	verdict := result.Verdict()
	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Credibility: result.Credibility,
		Title:       verdict.Title,
		Description: verdict.Description,
		Score:       verdict.Score,
		Explanation: result.Explanation,
		Source:      result.Source,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
