package calculator

import (
	"slices"
	"strings"

	"github.com/mmynk/moneymate/internal/models"
)

// PersonItem represents one item's share for one person.
type PersonItem struct {
	ID       string
	Name     string
	Price    float64
	Quantity int
	Share    float64 // (Price × Quantity) / number of people sharing the item
}

// PersonSummary represents one person's calculated share of the bill.
type PersonSummary struct {
	ParticipantID string
	Name          string
	Total         float64
	Items         []PersonItem // in receipt order
}

// Summary is the per-person and overall breakdown of a bill.
type Summary struct {
	// Total is the sum of all line costs, assigned or not.
	Total float64

	// PerPerson follows roster order.
	PerPerson []PersonSummary
}

// For returns the summary for the given participant.
func (s Summary) For(participantID string) (PersonSummary, bool) {
	for _, p := range s.PerPerson {
		if p.ParticipantID == participantID {
			return p, true
		}
	}
	return PersonSummary{}, false
}

// IsTaxOrTip reports whether an item name denotes the bill-wide tax or tip row.
func IsTaxOrTip(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return n == "tax" || n == "tip"
}

// LineTotal returns price × quantity, treating a missing quantity as 1.
func LineTotal(item models.Item) float64 {
	return item.Price * float64(quantity(item))
}

func quantity(item models.Item) int {
	if item.Quantity < models.DefaultQuantity {
		return models.DefaultQuantity
	}
	return item.Quantity
}

// Normalize returns a copy of items in which every tax/tip row is assigned to
// all participants. The input is not modified.
func Normalize(items []models.Item, participants []models.Participant) []models.Item {
	everyone := models.ParticipantIDs(participants)
	out := models.CloneItems(items)
	for i := range out {
		if IsTaxOrTip(out[i].Name) {
			out[i].AssignedTo = append([]string{}, everyone...)
		}
	}
	return out
}

// ComputeSummary computes how much each participant owes.
//
// Tax and tip rows are first normalized to everyone on the roster. Each
// assigned item's cost is then split evenly among its assignees. Unassigned
// items contribute to Summary.Total but to no person.
func ComputeSummary(items []models.Item, participants []models.Participant) Summary {
	normalized := Normalize(items, participants)

	summary := Summary{PerPerson: make([]PersonSummary, 0, len(participants))}
	for _, item := range normalized {
		summary.Total += LineTotal(item)
	}

	for _, p := range participants {
		person := PersonSummary{
			ParticipantID: p.ID,
			Name:          p.Name,
			Items:         []PersonItem{},
		}
		for _, item := range normalized {
			if !slices.Contains(item.AssignedTo, p.ID) {
				continue
			}
			share := LineTotal(item) / float64(len(item.AssignedTo))
			person.Total += share
			person.Items = append(person.Items, PersonItem{
				ID:       item.ID,
				Name:     item.Name,
				Price:    item.Price,
				Quantity: quantity(item),
				Share:    share,
			})
		}
		summary.PerPerson = append(summary.PerPerson, person)
	}

	return summary
}
