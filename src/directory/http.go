package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
)

// HTTPDirectory resolves identities against the external users/advisors
// service over plain HTTP.
type HTTPDirectory struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDirectory creates a directory client for the given base URL.
func NewHTTPDirectory(baseURL string) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type identityPayload struct {
	IdentityID    string `json:"identity_id"`
	IsAdvisor     bool   `json:"is_advisor"`
	RatePerMinute int64  `json:"rate_per_minute"`
	Channels      struct {
		Text  bool `json:"text"`
		Audio bool `json:"audio"`
		Video bool `json:"video"`
	} `json:"channels"`
}

// Lookup fetches the capability set for an identity from the directory service.
func (d *HTTPDirectory) Lookup(ctx context.Context, identityID string) (*AdvisorInfo, error) {
	url := fmt.Sprintf("%s/identities/%s", d.baseURL, identityID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directory request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request to directory service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrIdentityNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory service returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload identityPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal identity data: %w", err)
	}

	return &AdvisorInfo{
		IdentityID:    payload.IdentityID,
		IsAdvisor:     payload.IsAdvisor,
		RatePerMinute: payload.RatePerMinute,
		Channels: models.Availability{
			Text:  payload.Channels.Text,
			Audio: payload.Channels.Audio,
			Video: payload.Channels.Video,
		},
	}, nil
}
