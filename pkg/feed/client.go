package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/rest/httpc"
)

const (
	defaultBaseURL     = "http://127.0.0.1:8888"
	defaultHTTPTimeout = 10 * time.Second
	serviceName        = "pricefeed"
)

// ErrNotFound is returned for 404 responses: unknown batch or price id.
var ErrNotFound = errors.New("feed: not found")

// APIError carries a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    int
	Message string
}

type errorBody struct {
	Code    int    `json:"code,optional"`
	Message string `json:"message,optional"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("feed: server returned %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client talks to the price batch HTTP API.
type Client struct {
	baseURL string
	codec   Codec
	svc     httpc.Service
}

// Option configures a new Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL    string
	codec      Codec
	httpClient *http.Client
}

// WithBaseURL overrides the server address.
func WithBaseURL(url string) Option {
	return func(o *clientOptions) {
		if url != "" {
			o.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithCodec selects the upload encoding (JSON by default).
func WithCodec(c Codec) Option {
	return func(o *clientOptions) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

func NewClient(opts ...Option) *Client {
	o := clientOptions{
		baseURL:    defaultBaseURL,
		codec:      JSON,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		baseURL: o.baseURL,
		codec:   o.codec,
		svc:     httpc.NewServiceWithClient(serviceName, o.httpClient),
	}
}

// Codec reports the upload encoding in use.
func (c *Client) Codec() Codec {
	return c.codec
}

// CreateBatch opens a batch and returns its id.
func (c *Client) CreateBatch(ctx context.Context) (int64, error) {
	var out struct {
		Id int64 `json:"id"`
	}
	if err := c.call(ctx, http.MethodPost, "/batches/create", "", nil, &out); err != nil {
		return 0, err
	}
	return out.Id, nil
}

// Upload stages prices in an open batch.
func (c *Client) Upload(ctx context.Context, batchID int64, prices []Price) error {
	body, err := c.codec.Marshal(prices)
	if err != nil {
		return fmt.Errorf("feed: encode upload: %w", err)
	}
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/batches/%d/upload", batchID), c.codec.ContentType(), body, nil)
}

// Commit publishes a batch.
func (c *Client) Commit(ctx context.Context, batchID int64) error {
	return c.call(ctx, http.MethodPut, fmt.Sprintf("/batches/%d/commit", batchID), "", nil, nil)
}

// Discard drops a batch without publishing it.
func (c *Client) Discard(ctx context.Context, batchID int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/batches/%d/discard", batchID), "", nil, nil)
}

// GetPrice reads the published price for id.
func (c *Client) GetPrice(ctx context.Context, id int64) (Price, error) {
	var out wirePrice
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/prices/%d", id), "", nil, &out); err != nil {
		return Price{}, err
	}
	asOf, err := time.Parse(time.RFC3339Nano, out.AsOf)
	if err != nil {
		return Price{}, fmt.Errorf("feed: decode asOf %q: %w", out.AsOf, err)
	}
	return Price{ID: out.Id, AsOf: asOf, Payload: out.Payload}, nil
}

func (c *Client) call(ctx context.Context, method, path, contentType string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("feed: build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.svc.DoRequest(req)
	if err != nil {
		return fmt.Errorf("feed: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		var eb errorBody
		if perr := httpc.Parse(resp, &eb); perr != nil || eb.Message == "" {
			eb.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Code: eb.Code, Message: eb.Message}
	}
	if out == nil {
		return nil
	}
	if err := httpc.Parse(resp, out); err != nil {
		return fmt.Errorf("feed: decode %s %s: %w", method, path, err)
	}
	return nil
}
