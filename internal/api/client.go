package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"nfctag/nfcTerm/internal/models"
)

// Client talks to the remote contact store over HTTP. It implements
// ContactStore.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	retryCount int
	log        zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("store base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryCount < 0 {
		return nil, fmt.Errorf("retry count must be non-negative, got: %d", cfg.RetryCount)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		timeout:    cfg.Timeout,
		retryCount: cfg.RetryCount,
		log:        log.With().Str("component", "api").Logger(),
	}, nil
}

// ListContacts fetches the full record set. Transport failures are retried
// with exponential backoff; store rejections are not.
func (c *Client) ListContacts(ctx context.Context) ([]models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// RetryCount is the total number of attempts; zero means a single
	// attempt with no retries.
	tries := c.retryCount
	if tries < 1 {
		tries = 1
	}

	return backoff.Retry(ctx, func() ([]models.Contact, error) {
		var contacts []models.Contact
		err := c.do(ctx, http.MethodGet, "/api/contacts", nil, &contacts)
		if err != nil {
			var apiErr *Error
			if errors.As(err, &apiErr) && apiErr.Kind == KindStore {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return contacts, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(tries)),
	)
}

// CreateContact issues a create. Writes are never retried.
func (c *Client) CreateContact(ctx context.Context, req ContactRequest) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var created models.Contact
	if err := c.do(ctx, http.MethodPost, "/api/contacts", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateContact replaces the record whole; the store recomputes the encoded
// payload and its size.
func (c *Client) UpdateContact(ctx context.Context, id string, req ContactRequest) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var updated models.Contact
	if err := c.do(ctx, http.MethodPut, "/api/contacts/"+id, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteContact(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.do(ctx, http.MethodDelete, "/api/contacts/"+id, nil, nil)
}

// detailBody is the error shape the store uses for rejections.
type detailBody struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return NewTransportError("encoding request", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return NewTransportError("building request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return NewTransportError(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("store request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail detailBody
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if readErr == nil {
			_ = json.Unmarshal(raw, &detail)
		}
		return NewStoreError(resp.StatusCode, detail.Detail)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewTransportError("decoding response", err)
	}
	return nil
}
