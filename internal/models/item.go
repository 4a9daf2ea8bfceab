package models

// DefaultQuantity is used for items that arrive without a quantity.
const DefaultQuantity = 1

// Item represents a single line item on a receipt.
// Items can be shared among multiple participants.
type Item struct {
	// ID identifies the item within its session (e.g. "item-1", "tax").
	ID string

	// Name is the item name as it appears on the receipt (e.g. "Burger").
	Name string

	// Price is the unit price. The line cost is Price × Quantity.
	Price float64

	// Quantity is the number of units, at least 1.
	Quantity int

	// AssignedTo lists the participant IDs sharing this item.
	// An empty list means the item is unassigned: it still counts towards the
	// bill total but towards nobody's share.
	AssignedTo []string
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	c := i
	if i.AssignedTo != nil {
		c.AssignedTo = append([]string{}, i.AssignedTo...)
	}
	return c
}

// CloneItems returns a deep copy of items.
func CloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// Participant represents a person the bill is split between.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// Name is the display name (e.g. "You", "Alice").
	Name string
}

// ParticipantIDs returns the IDs of participants in roster order.
func ParticipantIDs(participants []Participant) []string {
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids
}
