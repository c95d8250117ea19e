//go:generate mockery --name ImageSearcher --output ./mocks --outpkg mocks --case=underscore
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go_5_vocab_kids/internal/config"
)

// ImageSearcher は単語のイラストを外部の画像検索APIから取得するインターフェースです
type ImageSearcher interface {
	Search(ctx context.Context, query string) (string, error)
	Download(ctx context.Context, imageURL string) ([]byte, error)
}

// PixabayClient は Pixabay API を呼び出すクライアントです
type PixabayClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

func NewPixabayClient(cfg *config.Config) *PixabayClient {
	apiURL := cfg.Image.APIURL
	if apiURL == "" {
		apiURL = "https://pixabay.com/api/"
	}
	return &PixabayClient{
		apiURL:     apiURL,
		apiKey:     cfg.Image.APIKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type pixabayResponse struct {
	Hits []struct {
		WebformatURL string `json:"webformatURL"`
	} `json:"hits"`
}

// Search はクエリに一致した最初の画像のURLを返します
func (c *PixabayClient) Search(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("image api key is not configured")
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("image_type", "illustration")
	params.Set("safesearch", "true")
	params.Set("per_page", "3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image API returned status %d", resp.StatusCode)
	}

	var response pixabayResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Hits) == 0 {
		return "", fmt.Errorf("no images found for query %q", query)
	}
	return response.Hits[0].WebformatURL, nil
}

// Download は画像本体を取得します (ローカル保存用)
func (c *PixabayClient) Download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
