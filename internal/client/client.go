// Package client talks to the resume-parsing backend over HTTP. Three
// operations, each a single round-trip with no retries: submit a
// document, list past analyses, fetch one analysis by id.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/cvlens/internal/intake"
	"github.com/raphaelgruber/cvlens/internal/models"
)

// Client is an HTTP client for the parsing service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	newID      func() string
}

// New creates a client for the service at baseURL. The timeout bounds
// every request; submissions can take a while because parsing happens
// synchronously on the backend.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// wireRecord is the backend's flat representation of a parsed resume.
// Some backend variants omit id/filename/timestamp on parse responses;
// the client attaches those before anyone else sees the record.
type wireRecord struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Timestamp time.Time `json:"timestamp"`
	models.Fields
}

// detailBody is the backend's error payload.
type detailBody struct {
	Detail string `json:"detail"`
}

// Submit uploads the candidate as multipart form field "file" to
// POST /parse-resume and returns the parsed record. A non-success
// response with a detail message becomes a *RemoteError carrying that
// message verbatim; anything else is a transport error.
func (c *Client) Submit(ctx context.Context, cand intake.Candidate) (models.ResumeRecord, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", cand.Filename)
	if err != nil {
		return models.ResumeRecord{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(cand.Data); err != nil {
		return models.ResumeRecord{}, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return models.ResumeRecord{}, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse-resume", &body)
	if err != nil {
		return models.ResumeRecord{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ResumeRecord{}, fmt.Errorf("submit resume: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ResumeRecord{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.ResumeRecord{}, rejectionError(resp.StatusCode, raw)
	}

	var wire wireRecord
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.ResumeRecord{}, fmt.Errorf("unmarshal response: %w", err)
	}
	return c.toRecord(wire, cand.Filename), nil
}

// List fetches GET /analyses. Server ordering is not trusted: entries
// are re-sorted stably by timestamp descending, ties keeping server
// order.
func (c *Client) List(ctx context.Context) ([]models.HistoryEntry, error) {
	raw, err := c.get(ctx, "/analyses")
	if err != nil {
		return nil, err
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// Get fetches GET /analyses/{id}. Unknown ids yield ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (models.ResumeRecord, error) {
	raw, err := c.get(ctx, "/analyses/"+url.PathEscape(id))
	if err != nil {
		return models.ResumeRecord{}, err
	}

	var wire wireRecord
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.ResumeRecord{}, fmt.Errorf("unmarshal response: %w", err)
	}
	return c.toRecord(wire, ""), nil
}

// get performs a GET round-trip and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server error: %s", resp.Status)
	}
	return body, nil
}

// toRecord fills in the identity fields a backend variant may omit.
func (c *Client) toRecord(wire wireRecord, fallbackName string) models.ResumeRecord {
	rec := models.ResumeRecord{
		ID:        wire.ID,
		Filename:  wire.Filename,
		CreatedAt: wire.Timestamp,
		Fields:    wire.Fields,
	}
	if rec.ID == "" {
		rec.ID = c.newID()
	}
	if rec.Filename == "" {
		rec.Filename = fallbackName
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = c.now().UTC()
	}
	return rec
}

// rejectionError maps a non-success submit response to an error. The
// detail message, when present, is kept verbatim.
func rejectionError(status int, body []byte) error {
	var detail detailBody
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return &RemoteError{Status: status, Detail: detail.Detail}
	}
	return &RemoteError{Status: status, Detail: "the parsing service rejected the document"}
}
