package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/rahul4469/truthguardian/internal/models"
	"github.com/rahul4469/truthguardian/internal/views"
	"github.com/rahul4469/truthguardian/templates"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	mu     sync.Mutex
	calls  []string
	result *models.AnalysisResult
	err    error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (*models.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	return f.result, f.err
}

type fakeSink struct {
	forms   []models.ReportForm
	receipt *models.ReportReceipt
	err     error
}

func (f *fakeSink) Submit(ctx context.Context, form models.ReportForm) (*models.ReportReceipt, error) {
	f.forms = append(f.forms, form)
	return f.receipt, f.err
}

func parsePage(t *testing.T, page string) *views.Template {
	t.Helper()
	tpl, err := views.ParseFS(templates.FS, page)
	require.NoError(t, err)
	return tpl
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
