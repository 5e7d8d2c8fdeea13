package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rahul4469/truthguardian/internal/models"
	"go.uber.org/zap"
)

// CredibilityAnalyzer asks a generative model for a credibility verdict on
// news text and turns the reply into a models.AnalysisResult.
type CredibilityAnalyzer struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewCredibilityAnalyzer creates an analyzer backed by generator.
func NewCredibilityAnalyzer(generator TextGenerator, logger *zap.Logger) *CredibilityAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CredibilityAnalyzer{
		generator: generator,
		logger:    logger.Named("analyzer"),
	}
}

// Analyze validates text, sends one prompt and parses the reply.
// It returns a *models.ValidationError for short text and a
// *models.RemoteCallError for any failure of the remote call.
func (a *CredibilityAnalyzer) Analyze(ctx context.Context, text string) (*models.AnalysisResult, error) {
	if err := (models.AnalysisRequest{Text: text}).Validate(); err != nil {
		return nil, err
	}

	reply, err := a.generator.Generate(ctx, BuildPrompt(text))
	if err != nil {
		var rce *models.RemoteCallError
		if errors.As(err, &rce) {
			return nil, err
		}
		return nil, &models.RemoteCallError{Op: "generate", Err: err}
	}

	result := ParseReply(reply)
	a.logger.Debug("credibility reply parsed",
		zap.String("credibility", result.Credibility.String()),
		zap.String("source", string(result.Source)),
		zap.Int("reply_bytes", len(reply)))

	return result, nil
}

// BuildPrompt creates the verdict prompt for the given news text.
func BuildPrompt(text string) string {
	return fmt.Sprintf(`Analyze the following news content and determine if it's likely real news, potentially misleading, or likely fake news.
Provide a credibility assessment (high, medium, or low) and a brief explanation of your reasoning.
Be objective and focus on factual accuracy, source credibility, and potential bias.

News content: %q

Format your response as a JSON object with two fields:
1. "credibility": either "high", "medium", or "low"
2. "explanation": your detailed reasoning
`, text)
}

// reply payload requested by BuildPrompt
type verdictPayload struct {
	Credibility string `json:"credibility"`
	Explanation string `json:"explanation"`
}

// ParseReply turns a model reply into a result in three steps:
//
//  1. locate an embedded {...} payload; fails when there is none.
//  2. decode it as {credibility, explanation}; fails on invalid JSON or an
//     unknown credibility level.
//  3. scan the raw reply for verdict phrases, defaulting to medium.
//
// The last step never fails, so ParseReply always returns a result.
func ParseReply(reply string) *models.AnalysisResult {
	if span, ok := locatePayload(reply); ok {
		if result, err := decodePayload(span); err == nil {
			return result
		}
	}
	return scanKeywords(reply)
}

func locatePayload(reply string) (string, bool) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return "", false
	}
	return reply[start : end+1], true
}

func decodePayload(span string) (*models.AnalysisResult, error) {
	var payload verdictPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, fmt.Errorf("decode verdict payload: %w", err)
	}

	level, ok := models.ParseCredibility(payload.Credibility)
	if !ok {
		return nil, fmt.Errorf("unknown credibility %q", payload.Credibility)
	}

	return &models.AnalysisResult{
		Credibility: level,
		Explanation: strings.TrimSpace(payload.Explanation),
		Source:      models.SourceStructured,
	}, nil
}

var (
	highPhrases = []string{"high credibility", "likely real"}
	lowPhrases  = []string{"low credibility", "likely fake"}
)

func scanKeywords(reply string) *models.AnalysisResult {
	lower := strings.ToLower(reply)
	result := &models.AnalysisResult{
		Credibility: models.CredibilityMedium,
		Explanation: strings.TrimSpace(reply),
		Source:      models.SourceDefault,
	}

	switch {
	case containsAny(lower, highPhrases):
		result.Credibility = models.CredibilityHigh
		result.Source = models.SourceKeyword
	case containsAny(lower, lowPhrases):
		result.Credibility = models.CredibilityLow
		result.Source = models.SourceKeyword
	}
	return result
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
