// Package utils chứa HTTP client dùng chung cho các test case gọi API thật.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient bọc http.Client với base URL và header X-Actor dùng chung cho mọi request
type HTTPClient struct {
	baseURL string
	client  *http.Client
	actor   string
}

// NewHTTPClient tạo HTTP client với base URL và timeout (giây)
func NewHTTPClient(baseURL string, timeoutSeconds int) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

// SetActor đặt định danh actor gửi kèm mọi request qua header X-Actor
func (c *HTTPClient) SetActor(actor string) {
	c.actor = actor
}

// GET gửi request GET tới path (tương đối so với base URL)
func (c *HTTPClient) GET(path string) (*http.Response, []byte, error) {
	return c.do(http.MethodGet, path, nil)
}

// POST gửi request POST với payload JSON
func (c *HTTPClient) POST(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodPost, path, payload)
}

// PUT gửi request PUT với payload JSON
func (c *HTTPClient) PUT(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodPut, path, payload)
}

// DELETE gửi request DELETE tới path
func (c *HTTPClient) DELETE(path string) (*http.Response, []byte, error) {
	return c.do(http.MethodDelete, path, nil)
}

func (c *HTTPClient) do(method, path string, payload interface{}) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.actor != "" {
		req.Header.Set("X-Actor", c.actor)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp, body, nil
}
