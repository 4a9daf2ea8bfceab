package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/goccy/go-json"

	"github.com/mmynk/moneymate/internal/extract"
	"github.com/mmynk/moneymate/internal/metrics"
	"github.com/mmynk/moneymate/internal/models"
	"github.com/mmynk/moneymate/pkg/api"
)

// ReceiptService turns receipt images into draft items.
// It serves both the Connect procedure and the plain JSON route.
type ReceiptService struct {
	extractor extract.Extractor
	metrics   *metrics.Metrics
	timeout   time.Duration
	maxBytes  int64
}

var _ api.ReceiptServiceHandler = (*ReceiptService)(nil)

// NewReceiptService creates a ReceiptService. timeout bounds each analysis and
// maxBytes bounds the JSON request body; zero disables either limit.
func NewReceiptService(extractor extract.Extractor, m *metrics.Metrics, timeout time.Duration, maxBytes int64) *ReceiptService {
	return &ReceiptService{
		extractor: extractor,
		metrics:   m,
		timeout:   timeout,
		maxBytes:  maxBytes,
	}
}

// AnalyzeReceipt extracts the items on a receipt image.
func (s *ReceiptService) AnalyzeReceipt(ctx context.Context, req *connect.Request[api.AnalyzeReceiptRequest]) (*connect.Response[api.AnalyzeReceiptResponse], error) {
	items, err := s.analyze(ctx, req.Msg.Image)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AnalyzeReceiptResponse{Items: itemsToAPI(items)}), nil
}

// unavailableMessage is the error text web clients show when the analysis
// backend is down.
const unavailableMessage = "The receipt analysis service is temporarily unavailable. Please try again later."

type analyzeErrorBody struct {
	Error string `json:"error"`
}

// ServeHTTP implements POST /api/analyze-receipt: {"image": ...} in,
// {"items": [...]} out, or {"error": ...} with 400 for a missing image
// and 500 for anything else.
func (s *ReceiptService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, analyzeErrorBody{Error: "Method not allowed"})
		return
	}

	body := r.Body
	if s.maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, analyzeErrorBody{Error: "Image is too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, analyzeErrorBody{Error: "Invalid request body"})
		return
	}

	var req api.AnalyzeReceiptRequest
	if err := json.Unmarshal(data, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, analyzeErrorBody{Error: "Invalid request body"})
		return
	}

	items, err := s.analyze(r.Context(), req.Image)
	switch {
	case errors.Is(err, extract.ErrNoImage):
		writeJSON(w, http.StatusBadRequest, analyzeErrorBody{Error: "No image provided"})
	case errors.Is(err, extract.ErrServiceUnavailable):
		writeJSON(w, http.StatusInternalServerError, analyzeErrorBody{Error: unavailableMessage})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, analyzeErrorBody{Error: err.Error()})
	default:
		writeJSON(w, http.StatusOK, api.AnalyzeReceiptResponse{Items: itemsToAPI(items)})
	}
}

func (s *ReceiptService) analyze(ctx context.Context, image string) ([]models.Item, error) {
	if image == "" {
		s.metrics.ObserveExtraction(s.extractor.Backend(), "no_image")
		return nil, extract.ErrNoImage
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	items, err := s.extractor.Extract(ctx, image)
	result := extractionResult(err)
	s.metrics.ObserveExtraction(s.extractor.Backend(), result)

	if err != nil {
		slog.ErrorContext(ctx, "Receipt analysis failed",
			"backend", s.extractor.Backend(),
			"result", result,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	slog.InfoContext(ctx, "Receipt analyzed",
		"backend", s.extractor.Backend(),
		"items_count", len(items),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return items, nil
}

func extractionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, extract.ErrNoImage):
		return "no_image"
	case errors.Is(err, extract.ErrServiceUnavailable):
		return "unavailable"
	case errors.Is(err, extract.ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}
