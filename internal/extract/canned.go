package extract

import (
	"context"
	"log/slog"

	"github.com/mmynk/moneymate/internal/models"
)

// Canned returns a fixed set of sample items. It is used when Gemini is not
// configured.
type Canned struct{}

var sampleItems = []models.Item{
	{ID: "item-1", Name: "Burger", Price: 12.99, Quantity: 1},
	{ID: "item-2", Name: "Fries", Price: 4.99, Quantity: 1},
	{ID: "item-3", Name: "Soda", Price: 2.49, Quantity: 1},
	{ID: "item-4", Name: "Ice Cream", Price: 5.99, Quantity: 1},
}

func (Canned) Backend() string { return "canned" }

func (Canned) Extract(ctx context.Context, image string) ([]models.Item, error) {
	if _, _, err := splitDataURL(image); err != nil {
		return nil, err
	}
	slog.WarnContext(ctx, "Returning sample receipt items, no Gemini API key configured")
	return models.CloneItems(sampleItems), nil
}
