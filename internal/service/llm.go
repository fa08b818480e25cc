package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/katakuxiko/askai/internal/config"
)

// LLMClient calls the generative-language "generate" endpoint.
type LLMClient struct {
	endpoint    string
	apiKey      string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// NewLLMClient builds a client from the startup config.
func NewLLMClient(cfg *config.Config) *LLMClient {
	return &LLMClient{
		endpoint:    cfg.GeminiURL,
		apiKey:      cfg.GeminiAPIKey,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxOutputTokens,
		timeout:     cfg.UpstreamTimeout,
	}
}

type generateRequest struct {
	Prompt          string  `json:"prompt"`
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// generateResponse keeps fields raw so a field of an unexpected type
// does not make a valid reply unreadable.
type generateResponse struct {
	Candidates json.RawMessage `json:"candidates"`
	Error      json.RawMessage `json:"error"`
}

// Generate sends one prompt and returns the first candidate's output,
// which is empty when the upstream produced no candidates.
// Failures are *APIError, *ParseError or a transport error.
func (l *LLMClient) Generate(prompt string) (string, error) {
	reqURL, err := l.requestURL()
	if err != nil {
		return "", err
	}

	a := fiber.Post(reqURL)
	a.JSON(generateRequest{
		Prompt:          prompt,
		Temperature:     l.temperature,
		MaxOutputTokens: l.maxTokens,
	})
	if l.timeout > 0 {
		a.Timeout(l.timeout)
	}

	// Bytes buffers the whole body, it is parsed from that copy only.
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return "", fmt.Errorf("gemini request: %w", errors.Join(errs...))
	}
	return parseGenerateResponse(code, body)
}

func (l *LLMClient) requestURL() (string, error) {
	u, err := url.Parse(l.endpoint)
	if err != nil {
		return "", fmt.Errorf("gemini url: %w", err)
	}
	q := u.Query()
	q.Set("key", l.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// parseGenerateResponse checks the body before the status: invalid JSON
// wins over a failed status. Only syntax makes a body invalid; fields of
// an unexpected type are read as absent.
func parseGenerateResponse(code int, body []byte) (string, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "", &ParseError{StatusCode: code, Raw: string(body), Err: err}
	}

	// a top-level value that is not an object has no fields
	var resp generateResponse
	_ = json.Unmarshal(body, &resp)

	if code < 200 || code >= 300 || present(resp.Error) {
		return "", &APIError{StatusCode: code, Message: errorMessage(resp.Error)}
	}
	return firstOutput(resp.Candidates), nil
}

// present reports whether raw holds a value other than null, false, 0 or "".
func present(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// errorMessage returns error.message when it is a string.
func errorMessage(raw json.RawMessage) string {
	var e struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		return ""
	}
	msg, _ := e.Message.(string)
	return msg
}

// firstOutput returns candidates[0].output when it is a string.
func firstOutput(raw json.RawMessage) string {
	var candidates []json.RawMessage
	if err := json.Unmarshal(raw, &candidates); err != nil || len(candidates) == 0 {
		return ""
	}
	var c struct {
		Output any `json:"output"`
	}
	if err := json.Unmarshal(candidates[0], &c); err != nil {
		return ""
	}
	out, _ := c.Output.(string)
	return out
}
