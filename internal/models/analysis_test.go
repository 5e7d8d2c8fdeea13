package models

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"empty", "", true},
		{"short", "short", true},
		{"nineteen chars", "abcdefghijklmnopqrs", true},
		{"twenty chars", "abcdefghijklmnopqrst", false},
		{"padded short", "      short text      \n\t", true},
		{"multibyte", "ニュースは本当ですか？ニュースは本当ですか？", false},
		{"sentence", "The sky is blue and the sea is wide.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AnalysisRequest{Text: tt.text}.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotEnoughText)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAnalysisSessionRejectsShortTextWithoutStateChange(t *testing.T) {
	s := NewAnalysisSession()
	require.NoError(t, s.Begin("The sky is blue and the sea is wide."))
	s.Resolve(&AnalysisResult{Credibility: CredibilityHigh})
	require.True(t, s.HasResult())

	called := false
	err := s.Run(context.Background(), "short", func(context.Context, string) (*AnalysisResult, error) {
		called = true
		return nil, nil
	})

	ve, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Not enough text", ve.Title)
	assert.False(t, called)
	assert.Equal(t, StatusResolved, s.Status())
	assert.Equal(t, CredibilityHigh, s.Result().Credibility)
}

func TestAnalysisSessionRunResolves(t *testing.T) {
	s := NewAnalysisSession()
	text := "The sky is blue and the sea is wide."

	err := s.Run(context.Background(), text, func(_ context.Context, got string) (*AnalysisResult, error) {
		assert.True(t, s.Pending(), "pending while the call is in flight")
		assert.False(t, s.HasResult())
		assert.Equal(t, text, got)
		return &AnalysisResult{Credibility: CredibilityMedium, Explanation: "mixed", Source: SourceStructured}, nil
	})
	require.NoError(t, err)

	assert.False(t, s.Pending())
	assert.Equal(t, StatusResolved, s.Status())
	assert.Equal(t, 50, s.Result().Verdict().Score)
	assert.Equal(t, text, s.Text())
}

func TestAnalysisSessionRunFailureReturnsToIdle(t *testing.T) {
	s := NewAnalysisSession()
	boom := &RemoteCallError{Op: "generate", Err: errors.New("connection refused")}

	err := s.Run(context.Background(), "The sky is blue and the sea is wide.", func(context.Context, string) (*AnalysisResult, error) {
		return nil, boom
	})

	var rce *RemoteCallError
	require.ErrorAs(t, err, &rce)
	assert.Equal(t, StatusIdle, s.Status())
	assert.False(t, s.HasResult())
	assert.Equal(t, boom, s.Err())
}

func TestAnalysisSessionNilResultIsFailure(t *testing.T) {
	s := NewAnalysisSession()
	err := s.Run(context.Background(), "The sky is blue and the sea is wide.", func(context.Context, string) (*AnalysisResult, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrEmptyReply)
	assert.Equal(t, StatusIdle, s.Status())
}

func TestAnalysisSessionSecondBeginWhilePending(t *testing.T) {
	s := NewAnalysisSession()
	require.NoError(t, s.Begin("The sky is blue and the sea is wide."))

	err := s.Begin("Another sufficiently long piece of text.")
	assert.ErrorIs(t, err, ErrAnalysisPending)
	assert.Equal(t, "The sky is blue and the sea is wide.", s.Text())
}

func TestAnalysisSessionConcurrentRunsSingleFlight(t *testing.T) {
	s := NewAnalysisSession()
	text := "The sky is blue and the sea is wide."
	release := make(chan struct{})
	var calls, rejected atomic.Int32

	var wg sync.WaitGroup
	require.NoError(t, s.Begin(text))
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Run(context.Background(), text, func(context.Context, string) (*AnalysisResult, error) {
				calls.Add(1)
				<-release
				return &AnalysisResult{Credibility: CredibilityHigh}, nil
			})
			if errors.Is(err, ErrAnalysisPending) {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()
	close(release)

	assert.Equal(t, int32(8), rejected.Load())
	assert.Zero(t, calls.Load())
	assert.True(t, s.Pending())

	s.Resolve(&AnalysisResult{Credibility: CredibilityLow})
	assert.Equal(t, StatusResolved, s.Status())
	assert.Equal(t, CredibilityLow, s.Result().Credibility)
}

func TestAnalysisSessionNewRunClearsPreviousResult(t *testing.T) {
	s := NewAnalysisSession()
	text := "The sky is blue and the sea is wide."
	require.NoError(t, s.Run(context.Background(), text, func(context.Context, string) (*AnalysisResult, error) {
		return &AnalysisResult{Credibility: CredibilityLow}, nil
	}))

	_ = s.Run(context.Background(), text, func(context.Context, string) (*AnalysisResult, error) {
		assert.Nil(t, s.Result(), "previous result cleared on start")
		return nil, errors.New("down")
	})
	assert.Nil(t, s.Result())
}

func TestZeroValueSessionIsIdle(t *testing.T) {
	var s AnalysisSession
	assert.Equal(t, StatusIdle, s.Status())
	assert.False(t, s.Pending())
}
