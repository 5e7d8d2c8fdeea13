package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rahul4469/truthguardian/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		want        models.Credibility
		source      models.ResultSource
		explanation string
	}{
		{
			name:        "plain json",
			reply:       `{"credibility":"high","explanation":"Well sourced."}`,
			want:        models.CredibilityHigh,
			source:      models.SourceStructured,
			explanation: "Well sourced.",
		},
		{
			name:        "fenced json with upper case level",
			reply:       "Here you go:\n```json\n{\"credibility\": \"LOW\", \"explanation\": \"Fabricated quote.\"}\n```",
			want:        models.CredibilityLow,
			source:      models.SourceStructured,
			explanation: "Fabricated quote.",
		},
		{
			name:   "json without explanation",
			reply:  `{"credibility":"medium"}`,
			want:   models.CredibilityMedium,
			source: models.SourceStructured,
		},
		{
			name:   "undecodable payload falls back to keywords",
			reply:  "{not json} but this text has low credibility",
			want:   models.CredibilityLow,
			source: models.SourceKeyword,
		},
		{
			name:   "unknown level falls back to default",
			reply:  `{"credibility":"unclear","explanation":"hard to say"}`,
			want:   models.CredibilityMedium,
			source: models.SourceDefault,
		},
		{
			name:        "no payload, high phrase",
			reply:       "The story is likely real and well documented.",
			want:        models.CredibilityHigh,
			source:      models.SourceKeyword,
			explanation: "The story is likely real and well documented.",
		},
		{
			name:   "no payload, low phrase any case",
			reply:  "This is LIKELY FAKE.",
			want:   models.CredibilityLow,
			source: models.SourceKeyword,
		},
		{
			name:   "high phrase wins over low phrase",
			reply:  "Some would say low credibility, but overall high credibility.",
			want:   models.CredibilityHigh,
			source: models.SourceKeyword,
		},
		{
			name:        "nothing recognizable",
			reply:       "I cannot determine this.",
			want:        models.CredibilityMedium,
			source:      models.SourceDefault,
			explanation: "I cannot determine this.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseReply(tt.reply)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Credibility)
			assert.Equal(t, tt.source, got.Source)
			if tt.explanation != "" {
				assert.Equal(t, tt.explanation, got.Explanation)
			}
			if tt.source != models.SourceStructured {
				assert.Equal(t, strings.TrimSpace(tt.reply), got.Explanation)
			}
		})
	}
}

func TestBuildPromptEmbedsText(t *testing.T) {
	prompt := BuildPrompt(`Officials said "nothing happened" today.`)
	assert.Contains(t, prompt, `Officials said \"nothing happened\" today.`)
	assert.Contains(t, prompt, `"credibility"`)
	assert.Contains(t, prompt, `"explanation"`)
	assert.Contains(t, prompt, "high, medium, or low")
}

func TestAnalyzeSuccess(t *testing.T) {
	gen := &fakeGenerator{reply: `{"credibility":"low","explanation":"No sources."}`}
	a := NewCredibilityAnalyzer(gen, zaptest.NewLogger(t))

	result, err := a.Analyze(context.Background(), "The sky is blue and the sea is wide.")
	require.NoError(t, err)
	assert.Equal(t, models.CredibilityLow, result.Credibility)
	assert.Equal(t, "No sources.", result.Explanation)
	assert.Equal(t, 15, result.Verdict().Score)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "The sky is blue and the sea is wide.")
}

func TestAnalyzeRejectsShortText(t *testing.T) {
	gen := &fakeGenerator{}
	a := NewCredibilityAnalyzer(gen, nil)

	_, err := a.Analyze(context.Background(), "short")
	assert.ErrorIs(t, err, models.ErrNotEnoughText)
	assert.Empty(t, gen.prompts, "no outbound call for invalid input")
}

func TestAnalyzeWrapsGeneratorErrors(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("dial tcp: connection refused")}
	a := NewCredibilityAnalyzer(gen, nil)

	_, err := a.Analyze(context.Background(), "The sky is blue and the sea is wide.")

	var rce *models.RemoteCallError
	require.ErrorAs(t, err, &rce)
	assert.Equal(t, "generate", rce.Op)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAnalyzeKeepsRemoteCallErrors(t *testing.T) {
	orig := &models.RemoteCallError{Op: "generate content", Err: models.ErrEmptyReply}
	a := NewCredibilityAnalyzer(&fakeGenerator{err: orig}, nil)

	_, err := a.Analyze(context.Background(), "The sky is blue and the sea is wide.")
	assert.Same(t, orig, err)
	assert.ErrorIs(t, err, models.ErrEmptyReply)
}
