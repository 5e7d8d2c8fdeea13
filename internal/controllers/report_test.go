package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rahul4469/truthguardian/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportController(t *testing.T, sink models.ReportSink) *ReportController {
	t.Helper()
	return NewReportController(sink, ReportTemplates{
		Page: parsePage(t, "pages/report.gohtml"),
	})
}

func validReport() url.Values {
	return url.Values{
		"url":         {"https://example.com/article"},
		"category":    {"health"},
		"description": {"Claims a miracle cure"},
	}
}

func TestGetReport(t *testing.T) {
	c := newReportController(t, &fakeSink{})

	rec := httptest.NewRecorder()
	c.GetReport(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-state="editable"`)
	for _, category := range models.ReportCategories {
		assert.Contains(t, body, category.Label)
	}
}

func TestPostReportSuccess(t *testing.T) {
	sink := &fakeSink{receipt: &models.ReportReceipt{
		ID:          "7d9f3f4e-1c1a-4a57-9a43-1f1f5d6a2b10",
		SubmittedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
	c := newReportController(t, sink)

	rec := httptest.NewRecorder()
	c.PostReport(rec, postForm("/report", validReport()))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-state="submitted"`)
	assert.Contains(t, body, "Report submitted")
	assert.Contains(t, body, "Thank you for helping us combat misinformation.")
	assert.Contains(t, body, sink.receipt.ID)
	assert.Contains(t, body, "Category: Health Misinformation")
	require.Len(t, sink.forms, 1)
	assert.Equal(t, models.ReportForm{
		URL:         "https://example.com/article",
		Category:    "health",
		Description: "Claims a miracle cure",
	}, sink.forms[0])
}

func TestPostReportMissingField(t *testing.T) {
	for _, field := range []string{"url", "category", "description"} {
		t.Run(field, func(t *testing.T) {
			sink := &fakeSink{}
			c := newReportController(t, sink)

			values := validReport()
			values.Set(field, "  ")

			rec := httptest.NewRecorder()
			c.PostReport(rec, postForm("/report", values))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "Missing information")
			assert.Contains(t, body, "Please fill out all fields in the form.")
			assert.Contains(t, body, `data-state="editable"`)
			assert.Empty(t, sink.forms)
		})
	}
}

func TestPostReportKeepsInputOnError(t *testing.T) {
	c := newReportController(t, &fakeSink{})

	values := validReport()
	values.Set("description", "")

	rec := httptest.NewRecorder()
	c.PostReport(rec, postForm("/report", values))

	body := rec.Body.String()
	assert.Contains(t, body, `value="https://example.com/article"`)
	assert.Contains(t, body, `<option value="health" selected>`)
}

func TestPostReportSinkFailure(t *testing.T) {
	c := newReportController(t, &fakeSink{err: errors.New("queue unavailable")})

	rec := httptest.NewRecorder()
	c.PostReport(rec, postForm("/report", validReport()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Submission failed")
	assert.Contains(t, body, `data-state="editable"`)
}

func TestPostReset(t *testing.T) {
	c := newReportController(t, &fakeSink{})

	rec := httptest.NewRecorder()
	c.PostReset(rec, httptest.NewRequest(http.MethodPost, "/report/reset", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/report", rec.Header().Get("Location"))
}
