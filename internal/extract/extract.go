// Package extract turns a receipt image into candidate line items.
//
// The Gemini backend asks the Gemini API to read the receipt. When no API key
// is configured the Canned backend returns a fixed list so the rest of the
// flow can still be exercised.
package extract

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/moneymate/internal/models"
)

var (
	ErrNoImage            = errors.New("no image provided")
	ErrServiceUnavailable = errors.New("the receipt analysis service is temporarily unavailable, please try again later")
	ErrInvalidResponse    = errors.New("failed to get valid JSON response from the receipt analysis service")
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// Extractor reads line items off a receipt image.
type Extractor interface {
	// Extract returns the product rows of the receipt. image is a data URL
	// ("data:image/png;base64,...") or bare base64. The result is all or
	// nothing: on error no items are returned.
	Extract(ctx context.Context, image string) ([]models.Item, error)

	// Backend names the implementation, for logs and metrics.
	Backend() string
}

// Config selects and configures an Extractor.
type Config struct {
	// APIKey is the Gemini API key. When empty, the canned backend is used.
	APIKey string

	// Model is the Gemini model name, with or without the "models/" prefix.
	Model string

	// Endpoint overrides the API base URL (used in tests).
	Endpoint string

	// BreakerFailures is the number of consecutive failures that opens the
	// circuit breaker. Defaults to 5.
	BreakerFailures uint32

	// BreakerCooldown is how long the breaker stays open. Defaults to 30s.
	BreakerCooldown time.Duration

	// OnBreakerStateChange is called when the circuit breaker changes state.
	OnBreakerStateChange func(from, to string)
}

// New returns the Gemini extractor, or the canned one when no API key is set.
func New(ctx context.Context, cfg Config) (Extractor, error) {
	if cfg.APIKey == "" {
		slog.Warn("GOOGLE_GEMINI_API_KEY is not set, receipt analysis returns sample items")
		return Canned{}, nil
	}
	return NewGemini(ctx, cfg)
}

// splitDataURL returns the mime type and base64 payload of an image.
func splitDataURL(image string) (mimeType, data string, err error) {
	image = strings.TrimSpace(image)
	if image == "" {
		return "", "", ErrNoImage
	}

	mimeType = "image/jpeg"
	if !strings.HasPrefix(image, "data:") {
		return mimeType, image, nil
	}

	header, payload, ok := strings.Cut(image, ",")
	if !ok || payload == "" {
		return "", "", ErrNoImage
	}
	header = strings.TrimPrefix(header, "data:")
	if mt, _, _ := strings.Cut(header, ";"); mt != "" {
		mimeType = mt
	}
	return mimeType, payload, nil
}
