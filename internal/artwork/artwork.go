// Package artwork synthesizes placeholder cover art for catalog records
// that come without an image.
package artwork

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrEmptyImage is returned when the generator answered without an image.
var ErrEmptyImage = errors.New("generator returned no image")

const (
	DefaultEndpoint = "https://a0.dev/api/generate"
	DefaultAssetURL = "https://api.a0.dev/assets/image"
	DefaultSize     = 400
)

// Generator produces an artwork URL for a text prompt.
// The seed keeps results stable for the same record.
type Generator interface {
	Generate(ctx context.Context, prompt, seed string) (string, error)
}

// TrackPrompt builds the prompt used for a track cover.
func TrackPrompt(name, artist string) string {
	return fmt.Sprintf("Album cover for %q by %s, music artwork, professional design", name, artist)
}

// PlaylistPrompt builds the prompt used for a playlist cover.
func PlaylistPrompt(name string) string {
	return fmt.Sprintf("Playlist cover for %q, music collection artwork, professional design", name)
}

// Client calls an image-generation endpoint.
type Client struct {
	endpoint   string
	width      int
	height     int
	httpClient *http.Client
}

// NewClient creates a generator client for the given endpoint.
// Non-positive sizes fall back to DefaultSize.
func NewClient(endpoint string, width, height int) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if width <= 0 {
		width = DefaultSize
	}
	if height <= 0 {
		height = DefaultSize
	}
	return &Client{
		endpoint: endpoint,
		width:    width,
		height:   height,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type generateResponse struct {
	Image string `json:"image"`
}

// Generate posts the prompt and returns the generated image reference.
// The seed is not part of the endpoint contract and is ignored.
func (c *Client) Generate(ctx context.Context, prompt, _ string) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt, Width: c.width, Height: c.height})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if result.Image == "" {
		return "", ErrEmptyImage
	}
	return result.Image, nil
}

// URLBuilder derives a deterministic asset URL from the prompt and seed.
// It never touches the network; the image is rendered when first fetched.
type URLBuilder struct {
	BaseURL string
}

// Generate returns the asset URL for prompt and seed.
func (b URLBuilder) Generate(_ context.Context, prompt, seed string) (string, error) {
	base := b.BaseURL
	if base == "" {
		base = DefaultAssetURL
	}
	params := url.Values{}
	params.Set("text", prompt)
	params.Set("aspect", "1:1")
	params.Set("seed", seed)
	return base + "?" + params.Encode(), nil
}

// Verify implementations at compile time.
var (
	_ Generator = (*Client)(nil)
	_ Generator = URLBuilder{}
)
