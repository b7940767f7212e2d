/*
Copyright 2025 The Antfly Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package upstream is the HTTP client to the upstream analytics API: it
// issues the GET request a pvquery.Builder renders, classifies the
// response, and hands back the raw {"result": ...} body for codec.Decode
// to parse.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pvcache/pvcache-go/errs"
	"github.com/pvcache/pvcache-go/jsonx"
	"github.com/pvcache/pvcache-go/pvquery"
)

// DefaultTimeout is the request deadline applied when Client is built
// without an explicit timeout.
const DefaultTimeout = 30 * time.Second

// MaxTimeout upper-bounds any caller-supplied timeout.
const MaxTimeout = 2 * time.Minute

// Client issues queries against the upstream analytics API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New builds a Client. timeout is clamped to (0, MaxTimeout]; zero selects
// DefaultTimeout.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type errorEnvelope struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// Send issues b's query with apiKey and returns the raw
// {"result": ...} response body on success.
func (c *Client) Send(ctx context.Context, b *pvquery.Builder, apiKey string) ([]byte, error) {
	values, err := b.Values(apiKey)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.TransportError("creating request", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	sendElapsed := time.Since(start)
	if err != nil {
		return nil, errs.TransportError("sending request", err)
	}
	defer resp.Body.Close()

	decodeStart := time.Now()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.TransportError("reading response", err)
	}
	decodeElapsed := time.Since(decodeStart)

	c.logger.Debug("upstream request",
		zap.Duration("send_elapsed", sendElapsed),
		zap.Duration("decode_elapsed", decodeElapsed),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= 300 {
		return nil, classifyError(resp.StatusCode, body)
	}
	return body, nil
}

func classifyError(status int, body []byte) error {
	var env errorEnvelope
	if err := jsonx.Unmarshal(body, &env); err != nil || env.Message == "" {
		return errs.UpstreamError(fmt.Sprintf("status %d: %s", status, string(body)), "")
	}
	return errs.UpstreamError(env.Message, env.ErrorCode)
}
