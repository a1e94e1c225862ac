package httpclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/FlexStackAI/flexstackai/types"
)

// Stream posts a JSON body and returns a channel of non-empty response
// lines. A non-2xx status fails here, before any line is yielded. The
// reader goroutine holds the connection until the body ends or ctx is
// cancelled; cancelling is how a caller stops consuming early.
func (c *Client) Stream(ctx context.Context, path string, query url.Values, body any, headers map[string]string) (<-chan types.StreamChunk, error) {
	resp, err := c.openStream(ctx, path, query, body, headers)
	if err != nil {
		return nil, err
	}

	out := make(chan types.StreamChunk)
	go c.readLines(ctx, resp.Body, out)
	return out, nil
}

func (c *Client) openStream(ctx context.Context, path string, query url.Values, body any, headers map[string]string) (*http.Response, error) {
	reqBody, err := marshalBody(body)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, query, reqBody, headers)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(http.MethodPost, path, 0, start)
		return nil, types.NewError(types.ErrUpstreamError, err.Error()).
			WithCause(err).
			WithEndpoint(path)
	}
	c.observe(http.MethodPost, path, resp.StatusCode, start)

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(resp.Body)
		return nil, mapHTTPError(resp.StatusCode, string(msg), path)
	}
	return resp, nil
}

func (c *Client) readLines(ctx context.Context, body io.ReadCloser, out chan<- types.StreamChunk) {
	defer body.Close()
	defer close(out)

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		select {
		case out <- types.StreamChunk{Line: line}:
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		chunk := types.StreamChunk{
			Err: types.NewError(types.ErrUpstreamError, err.Error()).WithCause(err),
		}
		select {
		case out <- chunk:
		case <-ctx.Done():
		}
	}
}

func marshalBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return bytes.NewReader(data), nil
}
