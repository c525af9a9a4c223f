package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	ErrEmailRegistered    = errors.New("email already registered at identity provider")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// SignUpMetadata is stored on the provider account and echoed back in the
// user_metadata claim of issued tokens.
type SignUpMetadata struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Client talks to a GoTrue-style identity provider over REST. It is always
// constructed and passed in explicitly, never held as a package singleton.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SignUp creates an account at the provider and returns its subject id.
func (c *Client) SignUp(ctx context.Context, email, password string, meta SignUpMetadata) (string, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
		"data":     meta,
	}

	var body struct {
		ID   string `json:"id"`
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := c.post(ctx, "/auth/v1/signup", payload, &body); err != nil {
		return "", err
	}

	sub := body.ID
	if sub == "" {
		sub = body.User.ID
	}
	if sub == "" {
		return "", errors.New("identity provider returned no subject id")
	}
	return sub, nil
}

// SignInWithPassword exchanges credentials for an access token.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", payload, &body); err != nil {
		return "", err
	}

	if body.AccessToken == "" {
		return "", errors.New("identity provider returned no access token")
	}
	return body.AccessToken, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) mapError(resp *http.Response) error {
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	msg := body.Msg
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = body.ErrorDescription
	}

	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "already registered"):
		return ErrEmailRegistered
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		if strings.Contains(lower, "invalid") || strings.Contains(lower, "credentials") {
			return ErrInvalidCredentials
		}
	}

	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("identity provider error: %s", msg)
}
