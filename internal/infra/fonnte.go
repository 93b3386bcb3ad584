package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// FonnteClient delivers WhatsApp notifications to the admin recipients via
// the Fonnte gateway. Delivery is strictly best-effort: callers must never
// fail a request because a notification could not be sent.
type FonnteClient struct {
	url        string
	token      string
	recipients []string
	httpClient *http.Client
}

func NewFonnteClient(url, token, recipients string) *FonnteClient {
	var list []string
	for _, r := range strings.Split(recipients, ",") {
		if r = strings.TrimSpace(r); r != "" {
			list = append(list, r)
		}
	}
	return &FonnteClient{
		url:        url,
		token:      token,
		recipients: list,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts message to every configured recipient. Unconfigured gateway →
// log and skip, matching dev behavior.
func (c *FonnteClient) Send(ctx context.Context, message string) error {
	if c.url == "" || c.token == "" || len(c.recipients) == 0 {
		log.Info().Msg("fonnte not configured, skipping notification")
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"recipients": c.recipients,
		"message":    message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("fonnte: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fonnte: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("fonnte: gateway returned %d", resp.StatusCode)
	}
	return nil
}
