package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tourlink-server/config"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// AnalysisError is returned when the AI provider call fails or the model
// output is not parseable. It is terminal for the request: callers surface it
// and the user re-triggers the analysis, there is no automatic retry.
type AnalysisError struct {
	Op  string
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("feedback analysis failed (%s): %v", e.Op, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// FeedbackAnalysis is the structured result the model is instructed to emit
type FeedbackAnalysis struct {
	Summary        string   `json:"summary"`
	SentimentScore int      `json:"sentiment_score"`
	Strengths      []string `json:"strengths"`
	Improvements   string   `json:"improvements"`
	RedFlags       bool     `json:"red_flags"`
}

// ImageAttachment is a base64-encoded image extracted from an uploaded
// feedback document
type ImageAttachment struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

type AIService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type GeminiRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopK             int     `json:"topK"`
	TopP             float64 `json:"topP"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type GeminiResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content Content `json:"content"`
}

func NewAIService() *AIService {
	return &AIService{
		apiKey:  config.AppConfig.AI.GeminiAPIKey,
		model:   config.AppConfig.AI.GeminiModel,
		baseURL: defaultGeminiBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AnalyzeFeedback sends the collected feedback texts and document images to
// the model and parses its JSON answer. Stateless and idempotent modulo model
// non-determinism.
func (ai *AIService) AnalyzeFeedback(texts []string, images []ImageAttachment) (*FeedbackAnalysis, error) {
	if ai.apiKey == "" {
		return nil, &AnalysisError{Op: "config", Err: fmt.Errorf("GEMINI_API_KEY not set")}
	}
	if len(texts) == 0 && len(images) == 0 {
		return nil, &AnalysisError{Op: "input", Err: fmt.Errorf("no feedback to analyze")}
	}

	response, err := ai.callGeminiAPI(ai.buildAnalysisPrompt(texts), images)
	if err != nil {
		return nil, &AnalysisError{Op: "call", Err: err}
	}

	analysis, err := parseAnalysisResponse(response)
	if err != nil {
		return nil, &AnalysisError{Op: "parse", Err: err}
	}

	return analysis, nil
}

func (ai *AIService) buildAnalysisPrompt(texts []string) string {
	var sb strings.Builder
	sb.WriteString(`You are reviewing traveler feedback about a tour guide's performance on a completed tour.
Analyze all feedback texts and any attached feedback document images.

Respond with STRICT JSON only, no markdown, exactly this shape:
{
  "summary": "3-4 sentence summary of the guide's performance",
  "sentiment_score": 0-100 integer (0 = extremely negative, 100 = extremely positive),
  "strengths": ["exactly three short strength statements"],
  "improvements": "one paragraph of concrete improvement suggestions",
  "red_flags": true only if feedback mentions safety issues, harassment or misconduct
}

Feedback texts:
`)
	for i, text := range texts {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, text))
	}
	if len(texts) == 0 {
		sb.WriteString("(none, analyze the attached documents)\n")
	}
	return sb.String()
}

func (ai *AIService) callGeminiAPI(prompt string, images []ImageAttachment) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", ai.baseURL, ai.model, ai.apiKey)

	parts := []Part{{Text: prompt}}
	for _, img := range images {
		parts = append(parts, Part{
			InlineData: &InlineData{
				MimeType: img.MimeType,
				Data:     img.Data,
			},
		})
	}

	request := GeminiRequest{
		Contents: []Content{
			{Parts: parts},
		},
		GenerationConfig: GenerationConfig{
			Temperature:      0.2,
			TopK:             40,
			TopP:             0.95,
			MaxOutputTokens:  1024,
			ResponseMIMEType: "application/json",
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	resp, err := ai.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error: %s", string(body))
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// parseAnalysisResponse parses the model text as the FeedbackAnalysis JSON
// shape. Models occasionally wrap JSON in a markdown fence despite the
// response MIME type, so fences are stripped before parsing.
func parseAnalysisResponse(response string) (*FeedbackAnalysis, error) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var analysis FeedbackAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON: %w", err)
	}
	if analysis.Summary == "" {
		return nil, fmt.Errorf("model output is missing the summary field")
	}
	return &analysis, nil
}
