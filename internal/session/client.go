package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Remote protocol constants. The field name "metod" and the method value
// "autorization" are what the endpoint actually expects; do not correct
// the spelling.
const (
	methodAuthorize = "autorization"
	methodRegister  = "registration"

	serviceLinkHeader = "Service-Link"

	msgInvalidCredentials = "Invalid email or password"
	msgUserExists         = "already exists"
)

// Client talks to the remote auth endpoint
type Client struct {
	endpoint string
	httpc    *http.Client
}

// NewClient creates a Client for the given endpoint URL
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: 30 * time.Second},
	}
}

type authRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Metod    string `json:"metod"`
}

type authResponse struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// authResult is a decoded successful endpoint reply
type authResult struct {
	message     string
	serviceLink string
}

// Authorize performs a login request. The error is ErrInvalidCredentials
// when the remote reports bad credentials and ErrUnknown otherwise.
func (c *Client) Authorize(ctx context.Context, email, password string) (*authResult, error) {
	return c.post(ctx, authRequest{
		Email:    email,
		Password: password,
		Metod:    methodAuthorize,
	})
}

// Register performs a registration request. The error is ErrUserExists
// when the remote reports a duplicate account and ErrUnknown otherwise.
func (c *Client) Register(ctx context.Context, email, phone, password string) (*authResult, error) {
	return c.post(ctx, authRequest{
		Email:    email,
		Phone:    phone,
		Password: password,
		Metod:    methodRegister,
	})
}

func (c *Client) post(ctx context.Context, reqBody authRequest) (*authResult, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnknown, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: endpoint status %d", ErrUnknown, resp.StatusCode)
	}

	var ar authResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if ar.Error != "" {
		switch {
		case strings.Contains(ar.Error, msgInvalidCredentials):
			return nil, ErrInvalidCredentials
		case strings.Contains(ar.Error, msgUserExists):
			return nil, ErrUserExists
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknown, ar.Error)
		}
	}

	if ar.Success == "" {
		return nil, fmt.Errorf("%w: neither success nor error present", ErrParse)
	}

	return &authResult{
		message:     ar.Success,
		serviceLink: resp.Header.Get(serviceLinkHeader),
	}, nil
}

// CallbackParams carries the launch-time context forwarded to the
// service-link follow-up request
type CallbackParams struct {
	PushToken   string
	ClientID    string
	PushID      string
	DeepLink    bool
	Attribution map[string]string
	IDFA        string
}

type callbackEnvelope struct {
	Conversion map[string]string `json:"conversion_data"`
	IDFA       string            `json:"idfa,omitempty"`
}

type callbackResponse struct {
	ClientID string  `json:"client_id"`
	Response *string `json:"response,omitempty"`
}

// CompleteRegistration posts the registration-completion follow-up to the
// service-link URL issued by the auth endpoint
func (c *Client) CompleteRegistration(ctx context.Context, link string, p CallbackParams) (*callbackResponse, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("%w: bad service link: %v", ErrParse, err)
	}

	q := u.Query()
	q.Set("apns_push_token", p.PushToken)
	if p.ClientID != "" {
		q.Set("client_id", p.ClientID)
	}
	if p.PushID != "" {
		q.Set("push_id", p.PushID)
	}
	if p.DeepLink {
		q.Set("exp_1", "true")
	}
	u.RawQuery = q.Encode()

	jsonBody, err := json.Marshal(callbackEnvelope{Conversion: p.Attribution, IDFA: p.IDFA})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnknown, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: callback status %d", ErrUnknown, resp.StatusCode)
	}

	var cr callbackResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if cr.ClientID == "" {
		return nil, fmt.Errorf("%w: callback reply missing client_id", ErrParse)
	}

	return &cr, nil
}
