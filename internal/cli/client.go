package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aidanlogic/aidanlogic/internal/api/dto/v1/contact"
)

// SendResult is what the API answered to a contact submission
type SendResult struct {
	Status  int
	Success bool
	Message string
}

// replyBody covers both the success and the error response shapes
type replyBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SendContact posts req to the contact endpoint of the API at apiURL
func SendContact(ctx context.Context, apiURL string, req contact.ContactRequest) (*SendResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := strings.TrimRight(apiURL, "/") + "/api/contact"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var reply replyBody
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("unexpected response (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	result := &SendResult{
		Status:  resp.StatusCode,
		Success: reply.Success,
		Message: reply.Message,
	}
	if reply.Error != "" {
		result.Message = reply.Error
	}
	return result, nil
}
