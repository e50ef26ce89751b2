package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPDirectory looks up user contact details from the identity service's
// user endpoint: GET {base}/users/{id} -> {"email": ..., "name": ...}.
type HTTPDirectory struct {
	baseURL string
	client  *http.Client
}

func NewHTTPDirectory(baseURL string) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (d *HTTPDirectory) Lookup(ctx context.Context, userID int32) (string, string, error) {
	url := fmt.Sprintf("%s/users/%d", d.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("identity service call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("identity service returned status %d for user %d", resp.StatusCode, userID)
	}

	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", fmt.Errorf("decode identity response: %w", err)
	}
	return payload.Email, payload.Name, nil
}
