package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAIService(serverURL string) *AIService {
	return &AIService{
		apiKey:  "test-key",
		model:   "test-model",
		baseURL: serverURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func geminiTextResponse(text string) GeminiResponse {
	return GeminiResponse{
		Candidates: []Candidate{
			{Content: Content{Parts: []Part{{Text: text}}}},
		},
	}
}

func TestAnalyzeFeedbackParsesModelOutput(t *testing.T) {
	analysisJSON := `{
		"summary": "The guide was knowledgeable and punctual throughout the tour.",
		"sentiment_score": 85,
		"strengths": ["Deep local knowledge", "Great communication", "Always on time"],
		"improvements": "Could pace the walking segments better for older travelers.",
		"red_flags": false
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GeminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)

		json.NewEncoder(w).Encode(geminiTextResponse(analysisJSON))
	}))
	defer server.Close()

	ai := newTestAIService(server.URL)
	analysis, err := ai.AnalyzeFeedback([]string{"Great tour, learned a lot"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 85, analysis.SentimentScore)
	assert.Len(t, analysis.Strengths, 3)
	assert.False(t, analysis.RedFlags)
	assert.NotEmpty(t, analysis.Summary)
}

func TestAnalyzeFeedbackStripsMarkdownFences(t *testing.T) {
	fenced := "```json\n{\"summary\": \"Solid performance overall.\", \"sentiment_score\": 70, \"strengths\": [\"Friendly\", \"Organized\", \"Flexible\"], \"improvements\": \"More historical context.\", \"red_flags\": false}\n```"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiTextResponse(fenced))
	}))
	defer server.Close()

	ai := newTestAIService(server.URL)
	analysis, err := ai.AnalyzeFeedback([]string{"Good tour"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 70, analysis.SentimentScore)
}

func TestAnalyzeFeedbackMalformedOutputIsTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiTextResponse("The guide did well, I would rate them 4 out of 5."))
	}))
	defer server.Close()

	ai := newTestAIService(server.URL)
	_, err := ai.AnalyzeFeedback([]string{"Good tour"}, nil)
	require.Error(t, err)

	var analysisErr *AnalysisError
	require.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, "parse", analysisErr.Op)
}

func TestAnalyzeFeedbackMissingSummaryIsTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiTextResponse(`{"sentiment_score": 50, "strengths": [], "improvements": "", "red_flags": false}`))
	}))
	defer server.Close()

	ai := newTestAIService(server.URL)
	_, err := ai.AnalyzeFeedback([]string{"Good tour"}, nil)
	require.Error(t, err)

	var analysisErr *AnalysisError
	require.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, "parse", analysisErr.Op)
}

func TestAnalyzeFeedbackProviderErrorIsTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	ai := newTestAIService(server.URL)
	_, err := ai.AnalyzeFeedback([]string{"Good tour"}, nil)
	require.Error(t, err)

	var analysisErr *AnalysisError
	require.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, "call", analysisErr.Op)
}

func TestAnalyzeFeedbackRejectsEmptyInput(t *testing.T) {
	ai := newTestAIService("http://unused")
	_, err := ai.AnalyzeFeedback(nil, nil)
	require.Error(t, err)

	var analysisErr *AnalysisError
	require.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, "input", analysisErr.Op)
}

func TestAnalyzeFeedbackRequiresAPIKey(t *testing.T) {
	ai := &AIService{client: http.DefaultClient}
	_, err := ai.AnalyzeFeedback([]string{"Good tour"}, nil)
	require.Error(t, err)

	var analysisErr *AnalysisError
	require.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, "config", analysisErr.Op)
}
