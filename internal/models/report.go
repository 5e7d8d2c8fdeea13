package models

import (
	"context"
	"strings"
	"time"
)

// ReportCategory is one option of the report form's category select.
type ReportCategory struct {
	Value string
	Label string
}

// ReportCategories are offered by the report form.
var ReportCategories = []ReportCategory{
	{Value: "political", Label: "Political Misinformation"},
	{Value: "health", Label: "Health Misinformation"},
	{Value: "financial", Label: "Financial Scam"},
	{Value: "scientific", Label: "Scientific Misinformation"},
	{Value: "other", Label: "Other"},
}

// ReportForm is a user's report of suspicious content.
type ReportForm struct {
	URL         string `json:"url"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Validate requires every field to be non-blank.
func (f ReportForm) Validate() error {
	if strings.TrimSpace(f.URL) == "" ||
		strings.TrimSpace(f.Category) == "" ||
		strings.TrimSpace(f.Description) == "" {
		return ErrMissingInformation
	}
	return nil
}

// IsEmpty reports whether all fields are empty.
func (f ReportForm) IsEmpty() bool {
	return f == ReportForm{}
}

// ReportReceipt acknowledges an accepted report.
type ReportReceipt struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ReportSink accepts validated reports.
type ReportSink interface {
	Submit(ctx context.Context, form ReportForm) (*ReportReceipt, error)
}

// ReportSession is the report page's state: an editable form, or a
// submitted confirmation.
type ReportSession struct {
	Form      ReportForm
	Submitted bool
	Receipt   *ReportReceipt
}

// Submit validates the form and hands it to sink. Only a successful sink
// call moves the session to submitted.
func (s *ReportSession) Submit(ctx context.Context, sink ReportSink) error {
	if err := s.Form.Validate(); err != nil {
		return err
	}

	receipt, err := sink.Submit(ctx, s.Form)
	if err != nil {
		return err
	}

	s.Submitted = true
	s.Receipt = receipt
	return nil
}

// Reset returns to an empty editable form.
func (s *ReportSession) Reset() {
	s.Form = ReportForm{}
	s.Submitted = false
	s.Receipt = nil
}

// CategoryLabel returns the display label for the form's category.
func (s *ReportSession) CategoryLabel() string {
	for _, c := range ReportCategories {
		if c.Value == s.Form.Category {
			return c.Label
		}
	}
	return s.Form.Category
}
