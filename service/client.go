// Copyright (c) 2022-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type ClientConfig struct {
	// URL of the spcd API, e.g. http://localhost:8045.
	URL string
	// ClientID and AuthKey are sent as basic auth credentials when AuthKey
	// is set.
	ClientID string
	AuthKey  string
	// Msgpack switches request and response bodies from JSON to msgpack.
	Msgpack bool

	httpURL string
}

func (c *ClientConfig) Parse() error {
	if c.URL == "" {
		return fmt.Errorf("invalid URL value: should not be empty")
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("failed to parse url: %w", err)
	}

	if u.Host == "" {
		return fmt.Errorf("invalid url host: should not be empty")
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("invalid url scheme: %q is not valid", u.Scheme)
	}

	c.httpURL = strings.TrimSuffix(u.String(), "/")

	return nil
}

// APIError is returned when the service answers with a non successful
// status code.
type APIError struct {
	StatusCode int
	RequestID  string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type Client struct {
	cfg *ClientConfig

	httpClient *http.Client
	dialFn     DialContextFn
	timeout    time.Duration
}

func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	var c Client

	if err := cfg.Parse(); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	c.cfg = &cfg

	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	dialFn := c.dialFn
	if dialFn == nil {
		dialFn = (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialFn,
		MaxConnsPerHost:       100,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   1 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	c.httpClient = &http.Client{Transport: transport, Timeout: c.timeout}

	return &c, nil
}

func (c *Client) do(ctx context.Context, method, path string, reqData, resData any) error {
	if c.httpClient == nil {
		return fmt.Errorf("http client is not initialized")
	}

	var body io.Reader
	if reqData != nil {
		var buf bytes.Buffer
		if err := encodeBody(&buf, c.cfg.Msgpack, reqData); err != nil {
			return fmt.Errorf("failed to encode body: %w", err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.httpURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType(c.cfg.Msgpack))
	}
	req.Header.Set("Accept", contentType(c.cfg.Msgpack))
	if c.cfg.AuthKey != "" {
		req.SetBasicAuth(c.cfg.ClientID, c.cfg.AuthKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	asMsgpack := isMsgpack(resp.Header.Get("Content-Type"))

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			RequestID:  resp.Header.Get(requestIDHeader),
		}
		var errResp ErrorResponse
		if err := decodeBody(resp.Body, asMsgpack, &errResp); err == nil {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if err := decodeBody(resp.Body, asMsgpack, resData); err != nil {
		return fmt.Errorf("decoding http response failed: %w", err)
	}

	return nil
}

// Describe returns the rendered report: a map[string]any for the dict
// format, a []any of [key, value] pairs for list and a string for text.
// Non-finite JSON values come back as the strings "NaN", "+Inf" and "-Inf".
func (c *Client) Describe(ctx context.Context, req DescribeRequest) (any, error) {
	var res DescribeResponse
	if err := c.do(ctx, http.MethodPost, "/describe", req, &res); err != nil {
		return nil, err
	}
	return res.Report, nil
}

func (c *Client) Histogram(ctx context.Context, req HistogramRequest) (HistogramResponse, error) {
	var res HistogramResponse
	err := c.do(ctx, http.MethodPost, "/histogram", req, &res)
	return res, err
}

func (c *Client) Quantile(ctx context.Context, req QuantileRequest) (QuantileResponse, error) {
	var res QuantileResponse
	err := c.do(ctx, http.MethodPost, "/quantile", req, &res)
	return res, err
}

func (c *Client) ZScore(ctx context.Context, req ZScoreRequest) (ZScoreResponse, error) {
	var res ZScoreResponse
	err := c.do(ctx, http.MethodPost, "/zscore", req, &res)
	return res, err
}

func (c *Client) Trim(ctx context.Context, req TrimRequest) (TrimResponse, error) {
	var res TrimResponse
	err := c.do(ctx, http.MethodPost, "/trim", req, &res)
	return res, err
}

func (c *Client) Capability(ctx context.Context, req CapabilityRequest) (CapabilityResponse, error) {
	var res CapabilityResponse
	err := c.do(ctx, http.MethodPost, "/capability", req, &res)
	return res, err
}

func (c *Client) Shape(ctx context.Context, req ShapeRequest) (ShapeResponse, error) {
	var res ShapeResponse
	err := c.do(ctx, http.MethodPost, "/shape", req, &res)
	return res, err
}

func (c *Client) Summary(ctx context.Context, req SummaryRequest) (SummaryResponse, error) {
	var res SummaryResponse
	err := c.do(ctx, http.MethodPost, "/summary", req, &res)
	return res, err
}

func (c *Client) Version(ctx context.Context) (VersionInfo, error) {
	var res VersionInfo
	err := c.do(ctx, http.MethodGet, "/version", nil, &res)
	return res, err
}

func (c *Client) Close() error {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
	return nil
}
