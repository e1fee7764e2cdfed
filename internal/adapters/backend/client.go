// Package backend provides the HTTP client adapter for the document Q&A
// backend. Clean Architecture: Adapter implementing ports.DocumentUploader
// and ports.AnswerService.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"docchat/internal/domain/entities"
)

// Client talks to the upload and ask endpoints.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a backend client. Deadlines are the caller's concern
// (context per request); the transport itself carries no timeout.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{},
		logger:  logger,
	}
}

// errorBody is the failure shape shared by both endpoints.
type errorBody struct {
	Error string `json:"error"`
}

// Upload sends the pending file as multipart form data. Any non-success
// status is a failure regardless of body content; the error text prefers
// the body's error field.
func (c *Client) Upload(ctx context.Context, upload *entities.PendingUpload) (*entities.UploadResult, error) {
	file, err := os.Open(upload.Path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", upload.Name)
	if err != nil {
		return nil, fmt.Errorf("building form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure errorBody
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Error != "" {
			return nil, fmt.Errorf("%s", failure.Error)
		}
		return nil, fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	var result entities.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if result.DocumentID == "" {
		return nil, fmt.Errorf("upload response missing doc_id")
	}

	c.logger.Info("document uploaded",
		zap.String("doc_id", result.DocumentID),
		zap.Int("chunks", result.Stats.Chunks),
		zap.Duration("took", time.Since(start)))
	return &result, nil
}

// askRequest is the ask endpoint's request body. doc_id stays optional on
// the wire: the backend falls back to the last uploaded document.
type askRequest struct {
	Question string `json:"question"`
	DocID    string `json:"doc_id,omitempty"`
}

// Ask sends one question. A non-success status whose body still parses is
// an application failure: the payload comes back with Failed set so the
// caller can pick the server-supplied message. Transport errors and
// unreadable bodies return an error.
func (c *Client) Ask(ctx context.Context, question, documentID string) (*entities.AnswerPayload, error) {
	reqBody, err := json.Marshal(askRequest{Question: question, DocID: documentID})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var payload entities.AnswerPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		payload.Failed = true
		c.logger.Warn("ask reported failure",
			zap.Int("status", resp.StatusCode),
			zap.String("error", payload.Error))
	}
	return &payload, nil
}
