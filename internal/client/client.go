package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"task-dashboard/internal/domain"
)

const DefaultTimeout = 10 * time.Second

// Client talks to the dashboard persistence API. Every transport or status
// failure wraps domain.ErrPersistenceUnavailable.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Load(ctx context.Context) (*domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/data", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	snap, err := domain.DecodeSnapshot(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %v", domain.ErrPersistenceUnavailable, err)
	}
	return snap, nil
}

func (c *Client) Save(ctx context.Context, snap *domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/save", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.do(req)
	return err
}

// Upload sends a file and returns the attachment record to store on a task.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (domain.Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return domain.Attachment{}, fmt.Errorf("read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return domain.Attachment{}, fmt.Errorf("build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return domain.Attachment{}, err
	}

	var up struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
		Size     int64  `json:"size"`
	}
	if err := json.Unmarshal(body, &up); err != nil {
		return domain.Attachment{}, fmt.Errorf("%w: decode upload response: %v", domain.ErrPersistenceUnavailable, err)
	}
	return domain.Attachment{Name: up.Filename, URL: c.baseURL + up.URL, Size: up.Size}, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrPersistenceUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%w: %s %s: %s", domain.ErrPersistenceUnavailable, req.Method, req.URL.Path, apiErr.Error)
		}
		return nil, fmt.Errorf("%w: %s %s: status %d", domain.ErrPersistenceUnavailable, req.Method, req.URL.Path, resp.StatusCode)
	}
	return body, nil
}
