// Package api is the journal.Store and analysis client over the HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/journal"
)

// ErrExportUnavailable is returned when the server has exports switched off.
var ErrExportUnavailable = errors.New("export is not configured on the server")

const noEntriesMessage = "No journal entries found. Write some entries first!"

// Sentiment is the server's annotation of a text.
type Sentiment struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
	Summary   string  `json:"summary"`
}

// Reflection is a digest of recent entries plus a writing prompt.
type Reflection struct {
	Summary string `json:"summary"`
	Prompt  string `json:"prompt"`
}

// ExportResult locates a finished export.
type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e apiError) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// Client talks to the journal HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

var _ journal.Store = (*Client)(nil)

// New returns a client for the API at baseURL. A non-empty token is sent
// as a bearer token.
func New(baseURL string, httpClient *http.Client, token string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient, token: token}
}

// do sends a request and decodes a 2xx JSON answer into out. Non-2xx
// answers are returned as *StatusError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&ae)
		return &StatusError{Code: resp.StatusCode, Message: ae.text()}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", common.ErrorBackendUnavailable, err)
	}
	return nil
}

// CreateEntry stores text for userID and returns the new id.
func (c *Client) CreateEntry(ctx context.Context, userID, text string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/api/entries", nil,
		map[string]string{"userId": userID, "entryText": text}, &out)
	if err != nil {
		return "", err
	}
	return out.ID, nil
}

// GetEntries returns the user's entries newest first. The slice is never nil.
func (c *Client) GetEntries(ctx context.Context, userID string) ([]journal.JournalEntry, error) {
	out := []journal.JournalEntry{}
	if err := c.do(ctx, http.MethodGet, "/api/entries", url.Values{"userId": {userID}}, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []journal.JournalEntry{}
	}
	return out, nil
}

// DeleteEntry removes an entry owned by userID. The server answers a
// foreign entry like a missing one, so both surface as common.ErrorNotFound.
func (c *Client) DeleteEntry(ctx context.Context, entryID, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/entries", url.Values{"id": {entryID}, "userId": {userID}}, nil, nil)
}

// UpdateSentiment stores a sentiment summary on an entry.
func (c *Client) UpdateSentiment(ctx context.Context, entryID, userID, summary string, score *float64) error {
	in := struct {
		UserID           string   `json:"userId"`
		EntryID          string   `json:"entryId"`
		SentimentSummary string   `json:"sentimentSummary"`
		Score            *float64 `json:"score,omitempty"`
	}{userID, entryID, summary, score}
	return c.do(ctx, http.MethodPut, "/api/entries/sentiment", nil, in, nil)
}

// Analyze asks the server for a sentiment annotation of text.
func (c *Client) Analyze(ctx context.Context, text string) (Sentiment, error) {
	var out struct {
		Sentiment Sentiment `json:"sentiment"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/sentiment", nil, map[string]string{"entryText": text}, &out); err != nil {
		return Sentiment{}, err
	}
	return out.Sentiment, nil
}

// Reflect asks for a reflection over the user's latest entries. It fails
// with common.ErrNoEntries when the user has none.
func (c *Client) Reflect(ctx context.Context, userID string) (Reflection, error) {
	var out struct {
		Reflection Reflection `json:"reflection"`
	}
	err := c.do(ctx, http.MethodPost, "/api/weekly-reflection", nil, map[string]string{"userId": userID}, &out)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusBadRequest && se.Message == noEntriesMessage {
			return Reflection{}, common.ErrNoEntries
		}
		return Reflection{}, err
	}
	return out.Reflection, nil
}

// Export asks the server to export the user's journal.
func (c *Client) Export(ctx context.Context, userID string) (ExportResult, error) {
	var out ExportResult
	err := c.do(ctx, http.MethodPost, "/api/entries/export", url.Values{"userId": {userID}}, nil, &out)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotImplemented {
			return ExportResult{}, ErrExportUnavailable
		}
		return ExportResult{}, err
	}
	return out, nil
}
