//go:generate mockery --name DistractorSource --output ./mocks --outpkg mocks --case=underscore
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go_5_vocab_kids/internal/config"
)

// DistractorSource はクイズのダミー選択肢用のランダム単語を取得するインターフェースです
type DistractorSource interface {
	Random(ctx context.Context, n int) ([]string, error)
}

// RandomWordClient は random-word-api 互換のサービスを呼び出すクライアントです
type RandomWordClient struct {
	apiURL     string
	httpClient *http.Client
}

func NewRandomWordClient(cfg *config.Config) *RandomWordClient {
	return &RandomWordClient{
		apiURL:     cfg.WordAPI.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Random はランダムな英単語をn個返します
func (c *RandomWordClient) Random(ctx context.Context, n int) ([]string, error) {
	reqURL := fmt.Sprintf("%s?number=%d", c.apiURL, n)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("word API returned status %d", resp.StatusCode)
	}

	var words []string
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(words) < n {
		return nil, fmt.Errorf("word API returned %d words, want %d", len(words), n)
	}
	return words, nil
}
