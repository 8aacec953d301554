package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/config"
	"taskboard/internal/core/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		description string
		want        domain.TaskPriority
	}{
		{"This is urgent", domain.TaskPriorityHigh},
		{"We should eventually fix this", domain.TaskPriorityLow},
		{"Update the docs", domain.TaskPriorityMedium},
		{"CRITICAL outage", domain.TaskPriorityHigh},
		{"Do it ASAP", domain.TaskPriorityHigh},
		{"Fix when you can, but it is important", domain.TaskPriorityHigh},
		{"", domain.TaskPriorityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.description))
		})
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		text string
		want domain.TaskPriority
	}{
		{`{"priority": "high"}`, domain.TaskPriorityHigh},
		{"```json\n{\"priority\": \"low\"}\n```", domain.TaskPriorityLow},
		{"Medium.", domain.TaskPriorityMedium},
	}
	for _, tt := range tests {
		got, err := parseAnswer(tt.text)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := parseAnswer("I think this one is pretty pressing")
	assert.ErrorIs(t, err, ErrUnrecognizedAnswer)
}

func TestAnthropic_Suggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Contains(t, req.Messages[0].Content, "fix the login page")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"priority\":\"high\"}"}]}`))
	}))
	defer server.Close()

	suggester := NewAnthropic("test-key", WithBaseURL(server.URL), WithModel("test-model"), WithHTTPClient(server.Client()))
	priority, err := suggester.Suggest(context.Background(), "fix the login page")

	require.NoError(t, err)
	assert.Equal(t, domain.TaskPriorityHigh, priority)
}

func TestAnthropic_SuggestDoesNotRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	suggester := NewAnthropic("test-key", WithBaseURL(server.URL))
	_, err := suggester.Suggest(context.Background(), "anything")

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestAnthropic_MissingKey(t *testing.T) {
	_, err := NewAnthropic("").Suggest(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

type failingSuggester struct{}

func (failingSuggester) Suggest(context.Context, string) (domain.TaskPriority, error) {
	return "", errors.New("model unavailable")
}

func TestFallback_UsesSecondaryOnFailure(t *testing.T) {
	fallback := NewFallback(failingSuggester{}, NewHeuristic(), nil)

	priority, err := fallback.Suggest(context.Background(), "This is urgent")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPriorityHigh, priority)
}

func TestFromConfig(t *testing.T) {
	suggester, err := FromConfig(&config.Config{SuggestBackend: config.SuggestHeuristic}, nil)
	require.NoError(t, err)
	priority, err := suggester.Suggest(context.Background(), "Update the docs")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPriorityMedium, priority)

	_, err = FromConfig(&config.Config{SuggestBackend: config.SuggestAnthropic}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	suggester, err = FromConfig(&config.Config{SuggestBackend: config.SuggestFallback, AnthropicAPIKey: "k"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Fallback{}, suggester)

	_, err = FromConfig(&config.Config{SuggestBackend: "oracle"}, nil)
	assert.Error(t, err)
}
