package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// FormspreeService relays contact messages to a Formspree form
type FormspreeService struct {
	endpoint string
	client   *http.Client
}

// NewFormspreeService creates a service posting to endpoint, e.g. https://formspree.io/f/<id>
func NewFormspreeService(endpoint string, timeout time.Duration) *FormspreeService {
	return &FormspreeService{
		endpoint: endpoint,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// encodeSubmission form-encodes the four message fields in submission order
func encodeSubmission(sub ContactSubmission) string {
	fields := [][2]string{
		{"fullName", sub.FullName},
		{"email", sub.Email},
		{"subject", sub.Subject},
		{"message", sub.Message},
	}

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f[1]))
	}
	return b.String()
}

// Deliver posts the submission. Any 2xx counts as delivered.
func (s *FormspreeService) Deliver(ctx context.Context, sub ContactSubmission) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(encodeSubmission(sub)))
	if err != nil {
		return fmt.Errorf("failed to create formspree request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send formspree request: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxProviderBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: formspree returned status %d", ErrDeliveryRejected, resp.StatusCode)
	}

	return nil
}
