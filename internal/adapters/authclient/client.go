package auth_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/port"
)

// AuthAPIClient exchanges bearer tokens with the external auth provider
// over its REST API. It implements AuthPort.
type AuthAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAuthAPIClient(baseURL, apiKey string, timeout time.Duration) *AuthAPIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AuthAPIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// GetUser resolves the identity behind a token via GET /auth/v1/user.
func (c *AuthAPIClient) GetUser(ctx context.Context, token string) (*port.Identity, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "AuthAPIClient",
		"method":    "GetUser",
	})

	url := c.baseURL + "/auth/v1/user"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to perform request to auth provider", err, nil)
		return nil, fmt.Errorf("failed to reach auth provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("auth provider returned non-200 status: %d, body: %s", resp.StatusCode, string(bodyBytes))
		logger.Warn("Token rejected by auth provider", port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		logger.Error("Failed to decode auth provider response", err, nil)
		return nil, fmt.Errorf("failed to decode auth provider response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("auth provider returned an empty user id")
	}

	return &port.Identity{ID: user.ID, Email: user.Email}, nil
}
