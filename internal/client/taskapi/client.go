// Package taskapi is the HTTP client of the task REST API. Every call is a single round trip:
// nothing is retried and the caller's context is the only deadline.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/client/model"
	"taskboard/internal/core/domain"
)

const DefaultBaseURL = "http://127.0.0.1:8080/api"

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.http = client }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New returns a client for the API rooted at baseURL, e.g. http://127.0.0.1:8080/api.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListResult is a listing together with the number of records dropped by ingress validation.
type ListResult struct {
	Tasks   []model.Task
	Skipped int
}

// List returns every task in storage order. The body may be a bare array or {"data": [...]};
// records that fail validation are skipped and logged.
func (c *Client) List(ctx context.Context) ([]model.Task, error) {
	result, err := c.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return result.Tasks, nil
}

// ListAll is List that also reports how many records were skipped.
func (c *Client) ListAll(ctx context.Context) (ListResult, error) {
	body, status, err := c.do(ctx, OpList, http.MethodGet, "/tasks", nil)
	if err != nil {
		return ListResult{}, err
	}

	records, err := decodeList(body)
	if err != nil {
		return ListResult{}, &Error{Op: OpList, StatusCode: status, Err: err}
	}

	result := ListResult{Tasks: make([]model.Task, 0, len(records))}
	for i, record := range records {
		task, err := model.ToMemory(record)
		if err != nil {
			c.logger.Warn("skipping invalid task record", zap.Int("index", i), zap.Error(err))
			result.Skipped++
			continue
		}
		result.Tasks = append(result.Tasks, task)
	}
	return result, nil
}

func (c *Client) Create(ctx context.Context, draft model.Task) (model.Task, error) {
	if strings.TrimSpace(draft.Title) == "" || draft.Status == "" {
		return model.Task{}, fmt.Errorf("%s: %w", OpCreate, ErrIncompleteDraft)
	}
	return c.save(ctx, OpCreate, http.MethodPost, "/tasks", draft)
}

// Update replaces the whole record. The returned task is the server's copy and supersedes
// the one passed in.
func (c *Client) Update(ctx context.Context, task model.Task) (model.Task, error) {
	if task.ID == "" {
		return model.Task{}, fmt.Errorf("%s: %w", OpUpdate, ErrMissingID)
	}
	return c.save(ctx, OpUpdate, http.MethodPut, taskPath(task.ID), task)
}

// Delete removes a task. A 404 means the task is already gone and counts as success.
func (c *Client) Delete(ctx context.Context, id string) error {
	if model.NormalizeID(id) == "" {
		return fmt.Errorf("%s: %w", OpDelete, ErrMissingID)
	}
	_, _, err := c.do(ctx, OpDelete, http.MethodDelete, taskPath(id), nil)
	if IsNotFound(err) {
		c.logger.Debug("task already deleted", zap.String("id", id))
		return nil
	}
	return err
}

func (c *Client) SuggestPriority(ctx context.Context, description string) (domain.TaskPriority, error) {
	request := struct {
		Description string `json:"description"`
	}{Description: description}

	body, status, err := c.do(ctx, OpSuggest, http.MethodPost, "/tasks/suggest-priority", request)
	if err != nil {
		return "", err
	}

	var response struct {
		Priority string `json:"priority"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", &Error{Op: OpSuggest, StatusCode: status, Err: fmt.Errorf("decode response: %w", err)}
	}
	priority := domain.TaskPriority(response.Priority)
	if !priority.Valid() {
		return "", &Error{Op: OpSuggest, StatusCode: status, Err: fmt.Errorf("%w: %q", domain.ErrInvalidPriority, response.Priority)}
	}
	return priority, nil
}

func (c *Client) save(ctx context.Context, op Op, method, path string, task model.Task) (model.Task, error) {
	body, status, err := c.do(ctx, op, method, path, model.ToPayload(task))
	if err != nil {
		return model.Task{}, err
	}

	var record model.WireTask
	if err := json.Unmarshal(body, &record); err != nil {
		return model.Task{}, &Error{Op: op, StatusCode: status, Err: fmt.Errorf("decode response: %w", err)}
	}
	saved, err := model.ToMemory(record)
	if err != nil {
		return model.Task{}, &Error{Op: op, StatusCode: status, Err: err}
	}
	return saved, nil
}

func (c *Client) do(ctx context.Context, op Op, method, path string, payload any) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, &Error{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, &Error{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &Error{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("task api request failed",
			zap.String("op", string(op)),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, resp.StatusCode, &Error{Op: op, StatusCode: resp.StatusCode, Message: serverMessage(body)}
	}

	return body, resp.StatusCode, nil
}

func decodeList(body []byte) ([]model.WireTask, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []model.WireTask
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode task list: %w", err)
		}
		return records, nil
	}

	var envelope struct {
		Data *[]model.WireTask `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode task list: %w", err)
	}
	if envelope.Data == nil {
		return nil, errors.New("decode task list: expected an array or an object with a data array")
	}
	return *envelope.Data, nil
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(model.NormalizeID(id))
}
