package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTurnstileVerifyURL is Cloudflare's siteverify endpoint
const DefaultTurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// maxProviderBody caps how much of a provider response is read
const maxProviderBody = 1 << 20

// TurnstileService handles Cloudflare Turnstile verification
type TurnstileService struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

// NewTurnstileService creates a new Turnstile service
func NewTurnstileService(secretKey, verifyURL string, timeout time.Duration) *TurnstileService {
	if verifyURL == "" {
		verifyURL = DefaultTurnstileVerifyURL
	}
	return &TurnstileService{
		secretKey: secretKey,
		verifyURL: verifyURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// turnstileResponse represents the siteverify response body
type turnstileResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
	Action      string   `json:"action"`
}

// Verify checks a Turnstile token. A nil error means the provider accepted it.
func (s *TurnstileService) Verify(ctx context.Context, token, remoteIP string) error {
	if token == "" {
		return fmt.Errorf("turnstile token is required")
	}

	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create turnstile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify turnstile token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("turnstile API returned status %d", resp.StatusCode)
	}

	var result turnstileResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProviderBody)).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode turnstile response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("%w: error codes %v", ErrVerificationRejected, result.ErrorCodes)
	}

	return nil
}
