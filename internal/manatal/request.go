package manatal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ats-questionnaire/internal/metrics"
)

const contentType = "application/json"

// doJSON sends body (if any) as JSON and decodes a 2xx answer into target (if any).
func (c *Client) doJSON(ctx context.Context, operation, method, url string, body, target interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", operation, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.request(operation, req)
	if err != nil {
		return &APIError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Method: method, URL: url, StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(data),
		}
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}

	return nil
}

func (c *Client) request(operation string, req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request",
		zap.String("operation", operation),
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	metrics.ATSRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ATSRequests.WithLabelValues(operation, "error").Inc()
		return nil, err
	}

	metrics.ATSRequests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Token %s", c.token))
	req.Header.Set("Accept", contentType)
	req.Header.Set("User-Agent", c.UserAgent)

	return req
}
