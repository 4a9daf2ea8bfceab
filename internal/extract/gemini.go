package extract

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"github.com/mmynk/moneymate/internal/models"
)

const receiptPrompt = `You are a Receipt Analysis AI assistant. Analyze the following receipt image and extract all items and their prices.
IMPORTANT: Maintain the exact prices and item names as they appear on the receipt.

Return a single JSON object with the following structure:
{
  "items": [
    {
      "id": "unique_id",
      "name": "exact item name as shown on receipt",
      "price": price_as_number,
      "assignedTo": []
    }
  ]
}

IMPORTANT INSTRUCTIONS:
1. Extract ONLY actual products/items and their prices from the receipt
2. DO NOT include TOTAL, SUBTOTAL, CASH, PAYMENT, or CHANGE entries
3. Keep item names exactly as they appear on the receipt
4. Convert prices to numbers (remove currency symbols)
5. Ensure the JSON is valid and follows the exact structure shown above
6. If an item has a quantity, multiply the price by the quantity`

// Gemini extracts items with the Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	breaker *gobreaker.CircuitBreaker
}

// NewGemini creates a Gemini extractor authenticated with cfg.APIKey.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := strings.TrimPrefix(cfg.Model, "models/")
	if model == "" {
		model = DefaultModel
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := cfg.BreakerCooldown
	if cooldown == 0 {
		cooldown = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			if cfg.OnBreakerStateChange != nil {
				cfg.OnBreakerStateChange(from.String(), to.String())
			}
		},
	})

	return &Gemini{client: client, model: model, breaker: breaker}, nil
}

func (g *Gemini) Backend() string { return "gemini" }

// Extract sends the image to Gemini and parses the reply.
func (g *Gemini) Extract(ctx context.Context, image string) ([]models.Item, error) {
	mimeType, data, err := splitDataURL(image)
	if err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	text, err := g.generate(ctx, mimeType, raw)
	if err != nil {
		return nil, err
	}

	items, err := ParseItems(text)
	if err != nil {
		slog.ErrorContext(ctx, "Unparseable receipt analysis reply", "model", g.model, "error", err)
		return nil, err
	}
	return items, nil
}

func (g *Gemini) generate(ctx context.Context, mimeType string, image []byte) (string, error) {
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: receiptPrompt},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
		},
	}}
	config := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	out, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
		if err != nil {
			return nil, err
		}
		return responseText(resp), nil
	})
	if err != nil {
		return "", g.classify(ctx, err)
	}

	text := out.(string)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrInvalidResponse)
	}
	return text, nil
}

func (g *Gemini) classify(ctx context.Context, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		slog.WarnContext(ctx, "Receipt analysis skipped, circuit breaker open", "model", g.model)
		return ErrServiceUnavailable
	}
	if apiErrorCode(err) == http.StatusNotFound {
		slog.ErrorContext(ctx, "Receipt analysis model not found", "model", g.model, "error", err)
		return ErrServiceUnavailable
	}
	return fmt.Errorf("failed to analyze receipt: %w", err)
}

func apiErrorCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
