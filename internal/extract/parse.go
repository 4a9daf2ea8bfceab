package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/mmynk/moneymate/internal/models"
)

// excludedNames are substrings marking receipt rows that are not products.
// Tax and tip are entered separately at finalize time.
var excludedNames = []string{"total", "subtotal", "cash", "change", "payment", "tax", "tip"}

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

type receiptPayload struct {
	Items *[]receiptRow `json:"items"`
}

type receiptRow struct {
	ID    any    `json:"id"`
	Name  string `json:"name"`
	Price any    `json:"price"`
}

// ParseItems converts the model's reply into items.
//
// The reply should be a JSON object with an "items" array; if it is not valid
// JSON, the outermost {...} span is parsed instead (models like to wrap JSON in
// prose or code fences). Non-product rows are dropped, missing IDs become
// "item-<n>" and prices given as strings are parsed.
func ParseItems(text string) ([]models.Item, error) {
	payload, err := decodePayload(text)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(*payload.Items))
	for _, row := range *payload.Items {
		if isExcluded(row.Name) {
			continue
		}
		price, err := parsePrice(row.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: item %q: %v", ErrInvalidResponse, row.Name, err)
		}
		id := idString(row.ID)
		if id == "" {
			id = fmt.Sprintf("item-%d", len(items)+1)
		}
		items = append(items, models.Item{
			ID:         id,
			Name:       row.Name,
			Price:      price,
			Quantity:   models.DefaultQuantity,
			AssignedTo: []string{},
		})
	}
	return items, nil
}

func decodePayload(text string) (*receiptPayload, error) {
	var payload receiptPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		match := jsonObject.FindString(text)
		if match == "" {
			return nil, ErrInvalidResponse
		}
		payload = receiptPayload{}
		if err := json.Unmarshal([]byte(match), &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	if payload.Items == nil {
		return nil, fmt.Errorf("%w: missing items", ErrInvalidResponse)
	}
	return &payload, nil
}

func isExcluded(name string) bool {
	lower := strings.ToLower(name)
	for _, word := range excludedNames {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case float64:
		return decimal.NewFromFloat(id).String()
	default:
		return fmt.Sprint(id)
	}
}

// parsePrice accepts numbers and strings such as "$12.99", "1,299.00", "12,99"
// or "1.299,00". A missing or blank price is an error.
func parsePrice(v any) (float64, error) {
	switch p := v.(type) {
	case nil:
		return 0, errors.New("missing price")
	case float64:
		return p, nil
	case string:
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
				return r
			}
			return -1
		}, p)
		if strings.Trim(cleaned, ".,-") == "" {
			if strings.TrimSpace(p) == "" {
				return 0, errors.New("missing price")
			}
			return 0, fmt.Errorf("invalid price %q", p)
		}
		d, err := decimal.NewFromString(normalizeSeparators(cleaned))
		if err != nil {
			return 0, fmt.Errorf("invalid price %q", p)
		}
		return d.InexactFloat64(), nil
	default:
		return 0, fmt.Errorf("invalid price %v", v)
	}
}

// normalizeSeparators rewrites s so that "." is the only decimal separator and
// thousands separators are gone. The last separator is decimal when both kinds
// appear. A lone comma is decimal only when one or two digits follow it.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if decimals := len(s) - lastComma - 1; strings.Count(s, ",") == 1 && decimals >= 1 && decimals <= 2 {
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}
	return s
}
