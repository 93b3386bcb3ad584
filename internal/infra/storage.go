package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// StorageClient talks to the object-storage service holding payment proofs:
// uploads raw proof bytes and issues time-limited signed download URLs.
// When no storage service is configured the client degrades to local
// placeholder URLs so fixture-mode flows keep working end to end.
type StorageClient struct {
	baseURL    string
	apiKey     string
	bucket     string
	httpClient *http.Client
}

func NewStorageClient(baseURL, apiKey, bucket string) *StorageClient {
	return &StorageClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *StorageClient) configured() bool { return c.baseURL != "" }

// Upload stores proof bytes under path in the proof bucket.
func (c *StorageClient) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	if !c.configured() {
		return nil
	}
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("storage: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage: unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("storage: upload returned %d", resp.StatusCode)
	}
	return nil
}

// SignURL issues a signed download URL valid for expiresIn.
func (c *StorageClient) SignURL(ctx context.Context, path string, expiresIn time.Duration) (string, error) {
	if !c.configured() {
		// Fixture/dev placeholder; never reachable from a production binding.
		return fmt.Sprintf("https://storage.invalid/%s/%s?expires=%d", c.bucket, path, int(expiresIn.Seconds())), nil
	}

	url := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", c.baseURL, c.bucket, path)
	payload, err := json.Marshal(map[string]int{"expiresIn": int(expiresIn.Seconds())})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("storage: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage: sign returned %d", resp.StatusCode)
	}

	var result struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("storage: decode response: %w", err)
	}
	return result.SignedURL, nil
}
