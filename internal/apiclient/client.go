// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apiclient is the typed HTTP client the web front end uses to talk
// to the BookMarkBrain REST API. API failures come back as *apperr.Error
// values carrying the kind reported by the server.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/logger"
)

const (
	// DefaultTimeout bounds a single API call. Extraction fetches a remote
	// page, so it needs more than a plain CRUD call.
	DefaultTimeout = 30 * time.Second

	maxErrorBodyBytes = 4096
)

// Client calls the REST API rooted at baseURL (e.g. http://localhost:8080/api).
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// New creates an API client.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "apiclient"),
	}
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do sends a JSON request and decodes the data field of the response into T.
func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("api marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return zero, fmt.Errorf("api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := chimw.GetReqID(ctx); id != "" {
		req.Header.Set(chimw.RequestIDHeader, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("api call failed", "method", method, "path", path, "error", err)
		return zero, apperr.Store("api "+method+" "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return zero, decodeError(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, apperr.Store("api decode "+path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return zero, nil
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return zero, apperr.Store("api decode "+path, err)
	}
	return out, nil
}

// decodeError turns an error envelope into an *apperr.Error.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Error.Code == "" {
		return apperr.Store("api", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	kind := apperr.Kind(env.Error.Code)
	switch kind {
	case apperr.KindNotFound, apperr.KindAlreadyExists, apperr.KindAlreadyLinked,
		apperr.KindCircularReference, apperr.KindValidation, apperr.KindInUse:
		return &apperr.Error{Kind: kind, Message: env.Error.Message}
	default:
		return apperr.Store("api", fmt.Errorf("status %d: %s", resp.StatusCode, env.Error.Message))
	}
}

// resource joins escaped segments onto a resource root.
func resource(root string, segments ...string) string {
	var b strings.Builder
	b.WriteString(root)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
