// Package api is the typed wrapper around the ReadLaw HTTP contract.
// Every call attaches the bearer token read from the session store at
// dispatch time and surfaces failures as the typed errors in errors.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// TokenSource supplies the current bearer token, or "" when no session
// exists. *auth.Store satisfies it.
type TokenSource interface {
	Token() string
}

// Client issues authenticated requests against one API origin.
//
// Requests carry no timeout; the caller relies on transport-level
// failure, matching the behavior of the service's other clients.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// NewClient creates a gateway for the given origin. tokens may not be
// nil; use an empty store for unauthenticated flows.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{},
	}
}

// Login exchanges credentials for a bearer token. The caller is
// responsible for storing it.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(req, "session", &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Signup registers a new account and returns the server's confirmation
// message.
func (c *Client) Signup(ctx context.Context, username, email, password string) (string, error) {
	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/signup", payload, "account", &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ListDocuments enumerates the caller's documents in server order.
func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	var docs []Document
	if err := c.doJSON(ctx, http.MethodGet, "/documents", nil, "documents", &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Upload sends a local PDF to the server and returns its confirmation
// message. Non-PDF filenames are rejected before any network activity.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	name := filepath.Base(path)
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return "", &UploadError{Reason: "Only PDF files are allowed"}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &UploadError{Reason: err.Error()}
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(req, "document", &out); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) && ve.Kind == ValidationMessage {
			return "", &UploadError{Reason: ve.Message}
		}
		return "", err
	}
	return out.Message, nil
}

// Rename changes a document's display name.
func (c *Client) Rename(ctx context.Context, id, newName string) error {
	payload := map[string]string{"new_name": newName}
	return c.doJSON(ctx, http.MethodPut, "/rename/"+url.PathEscape(id), payload, "document", nil)
}

// Delete removes a document.
func (c *Client) Delete(ctx context.Context, filename, id string) error {
	path := "/delete/" + url.PathEscape(filename) + "/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, "document", nil)
}

// FetchBinary retrieves the raw PDF payload for one document.
func (c *Client) FetchBinary(ctx context.Context, filename, id string) ([]byte, error) {
	path := "/document/" + url.PathEscape(filename) + "/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classify(resp.StatusCode, body, "document")
	}
	return body, nil
}

// GetSummary fetches the document's overall summary. Idempotent, safe
// to retry.
func (c *Client) GetSummary(ctx context.Context, filename, id string) (string, error) {
	path := "/summarize/" + url.PathEscape(filename) + "/" + url.PathEscape(id)
	var out struct {
		Summary string `json:"summary"`
	}
	if err := c.doJSON(ctx, http.MethodPost, path, nil, "summary", &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

// ExtractClauses fetches the document's clause list. Idempotent, safe
// to retry.
func (c *Client) ExtractClauses(ctx context.Context, filename, id string) ([]Clause, error) {
	path := "/clauses/" + url.PathEscape(filename) + "/" + url.PathEscape(id)
	var out struct {
		Clauses []Clause `json:"clauses"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, "clauses", &out); err != nil {
		return nil, err
	}
	return out.Clauses, nil
}

// Chat asks one question about the document and returns the assistant's
// reply. Not idempotent: the server may meter or record the turn, so
// callers must never retry automatically.
func (c *Client) Chat(ctx context.Context, filename, id, query string) (string, error) {
	path := "/chat/" + url.PathEscape(filename) + "/" + url.PathEscape(id)
	payload := map[string]string{"query": query}
	var out struct {
		Response string `json:"response"`
	}
	if err := c.doJSON(ctx, http.MethodPost, path, payload, "document", &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// doJSON builds a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, payload any, resource string, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, resource, out)
}

// do dispatches a request with the current bearer token attached,
// classifies non-2xx responses, and decodes the body into out.
func (c *Client) do(req *http.Request, resource string, out any) error {
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classify(resp.StatusCode, body, resource)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", resource, err)
	}
	return nil
}

// authorize attaches the bearer token, read from the session store at
// dispatch time so a re-login mid-process takes effect immediately.
func (c *Client) authorize(req *http.Request) {
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}
