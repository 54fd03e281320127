package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"examforge/internal/model"
)

// BackendClient wraps the exam persistence REST API. The bearer
// credential is threaded in per call; the client never reads ambient
// token state.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// NewBackendClient creates a new backend API client
func NewBackendClient(baseURL string) *BackendClient {
	return &BackendClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 5,
	}
}

// ParentCreateRequest is the parent payload. Only the fields relevant
// to the content kind are populated; the rest are omitted on the wire.
type ParentCreateRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	PassageText     string `json:"passage_text,omitempty"`
	PromptText      string `json:"prompt_text,omitempty"`
	AudioURL        string `json:"audio_url,omitempty"`
	VideoURL        string `json:"video_url,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	MinWords        int    `json:"min_words,omitempty"`
	MaxWords        int    `json:"max_words,omitempty"`
	LessonID        string `json:"lesson_id,omitempty"`
}

// QuestionCreateRequest covers both answer-shape sub-protocols; a given
// payload populates one variant's fields only.
type QuestionCreateRequest struct {
	QuestionText  string  `json:"question_text"`
	Points        float64 `json:"points"`
	CorrectAnswer string  `json:"correct_answer"`
	Explanation   string  `json:"explanation,omitempty"`

	// option-array variant
	Options []string `json:"options,omitempty"`

	// fixed-choice variant
	ChoiceA string `json:"choice_a,omitempty"`
	ChoiceB string `json:"choice_b,omitempty"`
	ChoiceC string `json:"choice_c,omitempty"`
	ChoiceD string `json:"choice_d,omitempty"`
	Order   int    `json:"order,omitempty"`
}

// questionCreateResponse is the created question record
type questionCreateResponse struct {
	ID json.RawMessage `json:"id"`
}

// doRequest performs an HTTP request with retry logic. Rate limiting
// (429) backs off exponentially; other 4xx/5xx fail immediately.
func (c *BackendClient) doRequest(ctx context.Context, token, method, path string, payload []byte) ([]byte, error) {
	url := c.baseURL + path
	log.Printf("[Backend] %s %s", method, path)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[Backend] Retry attempt %d/%d for %s %s", attempt, c.maxRetries, method, path)
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[Backend] ERROR: HTTP request failed (attempt %d): %v", attempt+1, err)
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			log.Printf("[Backend] RATE LIMITED: retry %d/%d in %v", attempt+1, c.maxRetries, backoff)
			time.Sleep(backoff)
			lastErr = fmt.Errorf("rate limited")
			continue
		}

		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("backend API error %d: %s", resp.StatusCode, string(respBody))
		}

		return respBody, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// CreateParent issues the parent-create request and returns the new
// parent's ID from the `{ "<assetKind>": { "id": ... } }` envelope.
func (c *BackendClient) CreateParent(ctx context.Context, token string, kind model.ContentKind, req ParentCreateRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode parent payload: %w", err)
	}

	path := fmt.Sprintf("/%s/%s/create/", kind.Skill(), kind.AssetPath())
	respBody, err := c.doRequest(ctx, token, http.MethodPost, path, payload)
	if err != nil {
		return "", err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", fmt.Errorf("failed to parse parent response: %w", err)
	}
	raw, ok := envelope[kind.ParentKey()]
	if !ok {
		return "", fmt.Errorf("parent response missing %q key", kind.ParentKey())
	}
	var parent questionCreateResponse
	if err := json.Unmarshal(raw, &parent); err != nil {
		return "", fmt.Errorf("failed to parse parent record: %w", err)
	}
	id, err := decodeID(parent.ID)
	if err != nil {
		return "", fmt.Errorf("failed to parse parent id: %w", err)
	}

	log.Printf("[Backend] Parent created: kind=%s id=%s", kind, id)
	return id, nil
}

// CreateQuestion issues one child-create request under the given parent
func (c *BackendClient) CreateQuestion(ctx context.Context, token string, kind model.ContentKind, parentID string, req QuestionCreateRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode question payload: %w", err)
	}

	path := fmt.Sprintf("/%s/%s/%s/questions/create/", kind.Skill(), kind.AssetPath(), parentID)
	respBody, err := c.doRequest(ctx, token, http.MethodPost, path, payload)
	if err != nil {
		return "", err
	}

	var q questionCreateResponse
	if err := json.Unmarshal(respBody, &q); err != nil {
		return "", fmt.Errorf("failed to parse question response: %w", err)
	}
	id, err := decodeID(q.ID)
	if err != nil {
		return "", fmt.Errorf("failed to parse question id: %w", err)
	}

	log.Printf("[Backend] Question created: parent=%s id=%s", parentID, id)
	return id, nil
}

// decodeID accepts string or numeric IDs
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing id")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("unsupported id value %s", string(raw))
}
