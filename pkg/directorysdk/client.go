package directorysdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the directory service. It covers the public
// endpoints and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSession wraps a token obtained earlier, for example one kept by a
// frontend between page loads.
func (c *SDKClient) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// Register creates an account and returns a session for it.
func (c *SDKClient) Register(ctx context.Context, username, email, password string) (*Session, error) {
	req := RegisterRequest{Username: username, Email: email, Password: password}
	return c.authenticate(ctx, "/api/auth/register", req, http.StatusCreated)
}

// Login authenticates with a username or email and returns a session.
func (c *SDKClient) Login(ctx context.Context, emailOrUsername, password string) (*Session, error) {
	req := LoginRequest{EmailOrUsername: emailOrUsername, Password: password}
	return c.authenticate(ctx, "/api/auth/login", req, http.StatusOK)
}

func (c *SDKClient) authenticate(ctx context.Context, path string, body any, expected int) (*Session, error) {
	resp, err := c.doJSONRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, expected); err != nil {
		return nil, err
	}
	return newSession(c, auth), nil
}

// ListBusinesses lists the directory anonymously.
func (c *SDKClient) ListBusinesses(ctx context.Context, opts PageOptions) (*BusinessPage, error) {
	return getBusinessPage(ctx, c.requester(""), "/api/businesses", opts, nil)
}

// GetBusiness fetches one business anonymously.
func (c *SDKClient) GetBusiness(ctx context.Context, id string) (*Business, error) {
	return getBusiness(ctx, c.requester(""), id)
}

// SearchBusinesses searches business names anonymously.
func (c *SDKClient) SearchBusinesses(ctx context.Context, query string, opts PageOptions) (*BusinessPage, error) {
	return getBusinessPage(ctx, c.requester(""), "/api/businesses/search", opts, map[string]string{"q": query})
}

// GetLiveness reports whether the process is serving requests.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness reports whether the service can reach its database. A
// degraded service answers 503: the decoded checks are returned together
// with an *APIError so callers can see which dependency failed.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var health HealthResponse
	if json.Unmarshal(body, &health) != nil || health.Status == "" {
		if resp.StatusCode != http.StatusOK {
			return nil, parseErrorResponse(resp, body)
		}
		return nil, fmt.Errorf("unexpected health response from %s", path)
	}

	if resp.StatusCode != http.StatusOK {
		return &health, NewAPIError(resp.StatusCode, ErrorCodeServerError, "service is "+health.Status)
	}
	return &health, nil
}
