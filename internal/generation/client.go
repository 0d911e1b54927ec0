// Package generation is the single choke point for calls to the hosted
// text-generation service (Gemini). Callers must treat returned text as
// untrusted and potentially non-conformant to any requested format.
package generation

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/prasitlab/disaster-lens/internal/model"
)

// Options configures one generation call.
type Options struct {
	// Temperature, when set, overrides the model default. 0 is used for
	// translation and strict extraction.
	Temperature *float32
	// EnableSearch augments the model with live web search (research stage).
	EnableSearch bool
	// SystemInstruction is the separate instruction channel used by the
	// extraction stages.
	SystemInstruction string
}

// Zero returns a pointer to temperature 0 for deterministic stages.
func Zero() *float32 {
	return genai.Ptr[float32](0)
}

// Client calls the Gemini API. It is safe for reuse across requests; the
// credential is read-only after construction.
type Client struct {
	Model string

	api     *genai.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// NewClient creates a Client using the GEMINI_API_KEY env var.
func NewClient(ctx context.Context, modelName string, callsPerSecond float64, timeout time.Duration) (*Client, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Client{
		Model:   modelName,
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(callsPerSecond), 1),
		timeout: timeout,
	}, nil
}

// Generate performs one network round trip and returns the raw generated
// text. No retries: a failure here is surfaced immediately to the caller.
func (c *Client) Generate(ctx context.Context, instruction string, opts Options) (string, model.Usage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", model.Usage{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature: opts.Temperature,
	}
	if opts.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.SystemInstruction, genai.RoleUser)
	}
	if opts.EnableSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := c.api.Models.GenerateContent(ctx, c.Model, genai.Text(instruction), cfg)
	if err != nil {
		return "", model.Usage{}, fmt.Errorf("generation request failed: %w", err)
	}

	var usage model.Usage
	if resp.UsageMetadata != nil {
		usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	text := resp.Text()
	if text == "" {
		return "", usage, fmt.Errorf("empty response from generation service")
	}

	return text, usage, nil
}
