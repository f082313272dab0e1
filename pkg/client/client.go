// Package client is the REST client for the skillmatch auth API. It speaks
// the same envelope the server's handlers emit: payloads under "data",
// failures as {"error", "code"}.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Thebob0072/skillmatch-auth/domain"
)

// APIError is a failed API call. Code is the machine-readable error code
// the caller inspects to pick a user-facing message.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client calls the auth API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type googleLoginRequest struct {
	Code string `json:"code"`
	Role string `json:"role,omitempty"`
}

type submissionRequest struct {
	DocumentRef string `json:"document_ref"`
	SelfieRef   string `json:"selfie_ref"`
}

// authPayload is the {token, user} pair every authentication endpoint
// returns.
type authPayload struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	ExpiresIn    int64        `json:"expires_in,omitempty"`
	User         *domain.User `json:"user"`
}

// Login exchanges credentials for a {token, user} pair.
func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	var payload authPayload
	err := c.do(ctx, http.MethodPost, "/login", "", loginRequest{Email: email, Password: password}, &payload)
	if err != nil {
		return "", nil, err
	}
	return payload.Token, payload.User, nil
}

// Register creates an account and returns the freshly issued {token, user}
// pair, so the caller is signed in immediately.
func (c *Client) Register(ctx context.Context, in domain.RegisterInput) (string, *domain.User, error) {
	req := registerRequest{
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
		Role:     in.Role.String(),
	}
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/register", "", req, &payload); err != nil {
		return "", nil, err
	}
	return payload.Token, payload.User, nil
}

// LoginWithGoogle exchanges an OAuth authorization code for a {token, user}
// pair. roleHint selects the role for first-time sign-ins; the zero value
// is a plain client account.
func (c *Client) LoginWithGoogle(ctx context.Context, code string, roleHint domain.Role) (string, *domain.User, error) {
	var payload authPayload
	err := c.do(ctx, http.MethodPost, "/auth/google", "", googleLoginRequest{Code: code, Role: roleHint.String()}, &payload)
	if err != nil {
		return "", nil, err
	}
	return payload.Token, payload.User, nil
}

// Me fetches the current profile for the bearer token.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the server-side session for the bearer token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// SubmitVerification files an identity-proofing submission for review.
func (c *Client) SubmitVerification(ctx context.Context, token string, in domain.SubmissionInput) (*domain.VerificationSubmission, error) {
	req := submissionRequest{DocumentRef: in.DocumentRef, SelfieRef: in.SelfieRef}
	var sub domain.VerificationSubmission
	if err := c.do(ctx, http.MethodPost, "/verification/submit", token, req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (c *Client) do(ctx context.Context, method, path, token string, reqBody, respObj interface{}) error {
	var bodyReader io.Reader
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Code: "unknown", Message: http.StatusText(resp.StatusCode)}
		var envelope errorEnvelope
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
			if envelope.Code != "" {
				apiErr.Code = envelope.Code
			}
		}
		return apiErr
	}

	if respObj == nil {
		return nil
	}

	var envelope dataEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Data == nil {
		return fmt.Errorf("unexpected response body: %s", raw)
	}
	if err := json.Unmarshal(envelope.Data, respObj); err != nil {
		return fmt.Errorf("failed to decode response payload: %w", err)
	}
	return nil
}
