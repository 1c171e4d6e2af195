// Package content talks to the external text-generation service that
// produces challenge step sequences. The service is a collaborator: when it
// is unreachable or returns something unusable, the client falls back to a
// built-in template so challenge creation never hard-fails on it.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chimwopara/logic/pkg/logger"
	"go.uber.org/zap"

	"github.com/goccy/go-json"
)

type Config struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StepOption is a wrong answer offered alongside the correct line.
type StepOption struct {
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Step is one line of the generated solution.
type Step struct {
	Correct     string       `json:"correct"`
	Distractors []StepOption `json:"distractors"`
	Indent      int          `json:"indent"`
	Explanation string       `json:"explanation"`
}

// GeneratedChallenge is the structured sequence the generator returns.
type GeneratedChallenge struct {
	Goal     string `json:"goal"`
	Concepts string `json:"concepts"`
	Language string `json:"language"`
	Sequence []Step `json:"sequence"`
}

type generateRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type generateResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateChallenge asks the generation service for a step sequence. Any
// failure falls back to the built-in template for the language.
func (c *Client) GenerateChallenge(ctx context.Context, question, language, difficulty string) (*GeneratedChallenge, error) {
	log := logger.Logger()

	challenge, err := c.generate(ctx, question, language, difficulty)
	if err != nil {
		log.Warn("challenge generation failed, using fallback template",
			zap.String("language", language),
			zap.Error(err))
		return fallbackChallenge(language, question), nil
	}

	return challenge, nil
}

func (c *Client) generate(ctx context.Context, question, language, difficulty string) (*GeneratedChallenge, error) {
	body, err := json.Marshal(generateRequest{
		Model:     c.cfg.Model,
		MaxTokens: 2000,
		Messages: []message{
			{Role: "user", Content: buildPrompt(question, language, difficulty)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generate request failed: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generate response: %w", err)
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generate response: %w", err)
	}
	if len(gr.Content) == 0 {
		return nil, fmt.Errorf("generate response has no content")
	}

	var challenge GeneratedChallenge
	if err := json.Unmarshal([]byte(gr.Content[0].Text), &challenge); err != nil {
		return nil, fmt.Errorf("failed to parse generated challenge: %w", err)
	}

	if challenge.Goal == "" || len(challenge.Sequence) == 0 {
		return nil, fmt.Errorf("generated challenge is incomplete")
	}

	return &challenge, nil
}

func buildPrompt(question, language, difficulty string) string {
	return fmt.Sprintf(`Generate a coding challenge for the following:
Question: %s
Language: %s
Difficulty: %s

Respond with ONLY a JSON object of this shape:
{"goal": "...", "concepts": "...", "language": "%s", "sequence": [{"correct": "code line", "distractors": [{"text": "wrong option", "reason": "why it is wrong"}], "indent": 0, "explanation": "what this line does"}]}

Each step is a single line of code with proper indent levels, two plausible
distractors, and an explanation that doubles as the hint. Aim for 5-15 steps
and include all necessary imports.`, question, language, difficulty, language)
}
