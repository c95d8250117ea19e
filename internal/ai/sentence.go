//go:generate mockery --name SentenceGenerator --output ./mocks --outpkg mocks --case=underscore
// Package ai は外部の生成サービス (文章生成モデル・画像検索・ランダム単語) への
// 薄いHTTPクライアントをまとめたパッケージです。ここに独自ロジックは置かず、
// フォールバックの判断は呼び出し側 (service層) が行います。
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go_5_vocab_kids/internal/config"
)

// SentenceGenerator は単語から例文を生成する外部モデルのインターフェースです
type SentenceGenerator interface {
	Generate(ctx context.Context, word string) (string, error)
}

// OpenAIClient は OpenAI互換の chat completions API を呼び出すクライアントです
type OpenAIClient struct {
	apiURL      string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	apiURL := cfg.AI.APIURL
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1/chat/completions"
	}
	return &OpenAIClient{
		apiURL:      apiURL,
		apiKey:      cfg.AI.APIKey,
		model:       cfg.AI.Model,
		maxTokens:   cfg.AI.MaxTokens,
		temperature: cfg.AI.Temperature,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate は子供向けの例文を1つ生成します
func (c *OpenAIClient) Generate(ctx context.Context, word string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ai api key is not configured")
	}

	prompt := fmt.Sprintf("A kid-friendly sentence with the word %s:", word)
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You write one short, simple example sentence for children learning vocabulary. Answer with the sentence only."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	sentence := strings.TrimSpace(response.Choices[0].Message.Content)
	if sentence == "" {
		return "", fmt.Errorf("empty sentence returned")
	}
	return sentence, nil
}
