// Package editor implements the review step: editing draft receipt items and
// finalizing them, with tax and tip, into the list that gets split.
package editor

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/moneymate/internal/calculator"
	"github.com/mmynk/moneymate/internal/models"
)

// IDs of the synthetic rows appended by FinalizeItems.
const (
	TaxItemID = "tax"
	TipItemID = "tip"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrNoItems        = errors.New("add at least one item before continuing")
	ErrInvalidItems   = errors.New("please fill in all item names and prices before continuing")
	ErrNegativeAmount = errors.New("tax and tip cannot be negative")
)

// ValidationError lists the items that blocked finalization.
type ValidationError struct {
	ItemIDs []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d invalid item(s)", ErrInvalidItems, len(e.ItemIDs))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidItems
}

// Patch holds the fields to change on an item. Nil fields are left alone.
type Patch struct {
	Name     *string
	Price    *float64
	Quantity *int
}

// Prepare returns a copy of items ready for review: quantities default to 1
// and missing, duplicate or reserved IDs are replaced with "item-<position>".
func Prepare(items []models.Item) []models.Item {
	out := models.CloneItems(items)
	seen := map[string]bool{TaxItemID: true, TipItemID: true}
	for i := range out {
		if out[i].Quantity < models.DefaultQuantity {
			out[i].Quantity = models.DefaultQuantity
		}
		if out[i].ID == "" || seen[out[i].ID] {
			out[i].ID = fmt.Sprintf("item-%d", i+1)
			for seen[out[i].ID] {
				out[i].ID = "item-" + uuid.New().String()
			}
		}
		seen[out[i].ID] = true
	}
	return out
}

// AddItem appends a blank item and returns the new list and the item.
func AddItem(items []models.Item) ([]models.Item, models.Item) {
	item := models.Item{
		ID:       "new-item-" + uuid.New().String(),
		Quantity: models.DefaultQuantity,
	}
	return append(models.CloneItems(items), item), item
}

// UpdateItem applies a patch to the item with the given ID.
// Quantities below 1 are clamped to 1.
func UpdateItem(items []models.Item, id string, patch Patch) ([]models.Item, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	out := models.CloneItems(items)
	if patch.Name != nil {
		out[idx].Name = *patch.Name
	}
	if patch.Price != nil {
		out[idx].Price = *patch.Price
	}
	if patch.Quantity != nil {
		out[idx].Quantity = max(*patch.Quantity, models.DefaultQuantity)
	}
	return out, nil
}

// DeleteItem removes the item with the given ID.
func DeleteItem(items []models.Item, id string) ([]models.Item, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return nil, ErrItemNotFound
	}
	return slices.Delete(models.CloneItems(items), idx, idx+1), nil
}

// Subtotal is the sum of all line totals, before tax and tip.
func Subtotal(items []models.Item) float64 {
	var sum float64
	for _, item := range items {
		sum += calculator.LineTotal(item)
	}
	return sum
}

// Total is the subtotal plus tax and tip.
func Total(items []models.Item, tax, tip float64) float64 {
	return Subtotal(items) + tax + tip
}

// FinalizeItems validates the draft items and returns the list to split.
//
// Every item needs a non-blank name and a positive price; otherwise nothing is
// returned and the error is a *ValidationError. Tax and Tip rows are appended
// when their amounts are positive. All assignments start empty.
func FinalizeItems(items []models.Item, tax, tip float64) ([]models.Item, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if tax < 0 || tip < 0 {
		return nil, ErrNegativeAmount
	}

	var invalid []string
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" || item.Price <= 0 {
			invalid = append(invalid, item.ID)
		}
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{ItemIDs: invalid}
	}

	final := Prepare(items)
	for i := range final {
		final[i].AssignedTo = []string{}
	}
	if tax > 0 {
		final = append(final, models.Item{ID: TaxItemID, Name: "Tax", Price: tax, Quantity: 1, AssignedTo: []string{}})
	}
	if tip > 0 {
		final = append(final, models.Item{ID: TipItemID, Name: "Tip", Price: tip, Quantity: 1, AssignedTo: []string{}})
	}
	return final, nil
}

// StripSynthetic turns a finalized list back into drafts: the Tax and Tip
// rows are removed and all assignments are cleared.
func StripSynthetic(items []models.Item) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		if item.ID == TaxItemID || item.ID == TipItemID {
			continue
		}
		c := item.Clone()
		c.AssignedTo = nil
		out = append(out, c)
	}
	return out
}

func indexOf(items []models.Item, id string) int {
	return slices.IndexFunc(items, func(item models.Item) bool { return item.ID == id })
}
