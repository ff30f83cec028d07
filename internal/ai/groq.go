package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	chatModel      = "llama-3.3-70b-versatile"
	whisperModel   = "whisper-large-v3"
	placeholderKey = "your_groq_api_key_here"
	defaultTimeout = 60 * time.Second
)

// Client talks to the Groq OpenAI-compatible API for chat completions and
// audio transcription. When no API key is configured every call is answered
// in demo mode with canned output, so the application remains usable offline.
type Client struct {
	http   *resty.Client
	apiKey string
	log    zerolog.Logger
}

// NewClient creates a Groq client. baseURL falls back to the Groq endpoint
// when empty.
func NewClient(apiKey, baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout)
	return &Client{http: http, apiKey: apiKey, log: log}
}

// Configured reports whether a real API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.apiKey != placeholderKey
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat *formatSpec   `json:"response_format,omitempty"`
	Messages       []chatMessage `json:"messages"`
}

type formatSpec struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) chat(ctx context.Context, req chatRequest) (string, error) {
	var out chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("groq chat request failed: %w", err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("groq chat error: %s", msg)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("groq chat returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// ChatJSON runs a completion constrained to a JSON object response and
// unmarshals it into result.
func (c *Client) ChatJSON(ctx context.Context, system, user string, temperature float64, maxTokens int, result any) error {
	raw, err := c.chat(ctx, chatRequest{
		Model:          chatModel,
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: &formatSpec{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), result); err != nil {
		return fmt.Errorf("groq returned invalid JSON: %w", err)
	}
	return nil
}

// ChatText runs a plain-text completion.
func (c *Client) ChatText(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	return c.chat(ctx, chatRequest{
		Model:       chatModel,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe sends an audio file to Whisper and returns the transcript text.
func (c *Client) Transcribe(ctx context.Context, filename string, data []byte) (string, error) {
	var out transcriptionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetFormData(map[string]string{
			"model":           whisperModel,
			"response_format": "json",
		}).
		SetResult(&out).
		Post("/audio/transcriptions")
	if err != nil {
		return "", fmt.Errorf("groq transcription request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("groq transcription error: %s", resp.Status())
	}
	return out.Text, nil
}
