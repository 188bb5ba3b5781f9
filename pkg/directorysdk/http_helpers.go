package directorysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// requester sends a request, optionally with a bearer token.
type requester func(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*http.Response, error)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an unauthenticated request.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	return c.requester("")(ctx, method, path, body, headers)
}

// requester returns a function sending requests with token as the bearer
// credential, or none when token is empty.
func (c *SDKClient) requester(token string) requester {
	return func(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}
		return resp, nil
	}
}

// doJSONRequest sends body encoded as JSON.
func (c *SDKClient) doJSONRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return c.doRequest(ctx, method, path, bytes.NewReader(encoded), map[string]string{
		"Content-Type": "application/json",
	})
}

// decodeJSON decodes a response with the expected status into target, or
// returns the *APIError the response carries.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// pagePath appends the page options and extra query values to path.
func pagePath(path string, opts PageOptions, extra map[string]string) string {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Size > 0 {
		q.Set("size", strconv.Itoa(opts.Size))
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	for k, v := range extra {
		q.Set(k, v)
	}

	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func getBusinessPage(ctx context.Context, do requester, path string, opts PageOptions, extra map[string]string) (*BusinessPage, error) {
	resp, err := do(ctx, http.MethodGet, pagePath(path, opts, extra), nil, nil)
	if err != nil {
		return nil, err
	}

	var page BusinessPage
	if err := decodeJSON(resp, &page, http.StatusOK); err != nil {
		return nil, err
	}
	return &page, nil
}

func getBusiness(ctx context.Context, do requester, id string) (*Business, error) {
	resp, err := do(ctx, http.MethodGet, "/api/businesses/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var b Business
	if err := decodeJSON(resp, &b, http.StatusOK); err != nil {
		return nil, err
	}
	return &b, nil
}
