package models

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// MinAnalysisTextLength is the minimum trimmed length, in characters, of
// text accepted for analysis.
const MinAnalysisTextLength = 20

type AnalysisStatus string

const (
	StatusIdle     AnalysisStatus = "idle"
	StatusPending  AnalysisStatus = "pending"
	StatusResolved AnalysisStatus = "resolved"
)

// ResultSource records which step of reply parsing produced a result.
type ResultSource string

const (
	SourceStructured ResultSource = "structured"
	SourceKeyword    ResultSource = "keyword"
	SourceDefault    ResultSource = "default"
)

// AnalysisRequest is the text a user submitted for analysis.
type AnalysisRequest struct {
	Text string `json:"text"`
}

// Validate checks the minimum length rule.
func (r AnalysisRequest) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(r.Text)) < MinAnalysisTextLength {
		return ErrNotEnoughText
	}
	return nil
}

// AnalysisResult is the outcome of one successful analysis.
type AnalysisResult struct {
	Credibility Credibility  `json:"credibility"`
	Explanation string       `json:"explanation,omitempty"`
	Source      ResultSource `json:"source"`
}

// Verdict returns the fixed display information for the result's level.
func (r *AnalysisResult) Verdict() Verdict {
	return r.Credibility.Verdict()
}

// AnalyzeFunc performs the actual credibility judgement.
type AnalyzeFunc func(ctx context.Context, text string) (*AnalysisResult, error)

// AnalysisSession tracks one analysis page's state:
// idle -> pending -> resolved, or back to idle on failure.
// The zero value is an idle session. A session is safe for concurrent use;
// while one call is pending every other Begin gets ErrAnalysisPending.
type AnalysisSession struct {
	mu        sync.Mutex
	status    AnalysisStatus
	text      string
	result    *AnalysisResult
	lastErr   error
	startedAt time.Time
	duration  time.Duration
}

func NewAnalysisSession() *AnalysisSession {
	return &AnalysisSession{status: StatusIdle}
}

// Begin validates text and moves the session to pending, clearing any
// previous result. Invalid text leaves the session untouched.
func (s *AnalysisSession) Begin(text string) error {
	if err := (AnalysisRequest{Text: text}).Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusPending {
		return ErrAnalysisPending
	}
	s.status = StatusPending
	s.text = text
	s.result = nil
	s.lastErr = nil
	s.startedAt = time.Now()
	return nil
}

// Resolve stores the result and leaves pending.
func (s *AnalysisSession) Resolve(result *AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPending {
		return
	}
	s.status = StatusResolved
	s.result = result
	s.duration = time.Since(s.startedAt)
}

// Fail returns the session to idle without a result.
func (s *AnalysisSession) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPending {
		return
	}
	s.status = StatusIdle
	s.result = nil
	s.lastErr = err
	s.duration = time.Since(s.startedAt)
}

// Run is the whole analysis action: Begin, call analyze, then Resolve or
// Fail. Validation errors are returned without any state change.
func (s *AnalysisSession) Run(ctx context.Context, text string, analyze AnalyzeFunc) error {
	if err := s.Begin(text); err != nil {
		return err
	}

	result, err := analyze(ctx, text)
	if err == nil && result == nil {
		err = ErrEmptyReply
	}
	if err != nil {
		s.Fail(err)
		return err
	}

	s.Resolve(result)
	return nil
}

func (s *AnalysisSession) Status() AnalysisStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == "" {
		return StatusIdle
	}
	return s.status
}

func (s *AnalysisSession) Pending() bool {
	return s.Status() == StatusPending
}

func (s *AnalysisSession) HasResult() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result != nil
}

func (s *AnalysisSession) Result() *AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Text is the text of the most recent accepted request.
func (s *AnalysisSession) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

func (s *AnalysisSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Duration is how long the last analysis was pending.
func (s *AnalysisSession) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}
