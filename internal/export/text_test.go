package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/moneymate/internal/calculator"
	"github.com/mmynk/moneymate/internal/models"
)

func TestText(t *testing.T) {
	items := []models.Item{
		{ID: "1", Name: "Burger", Price: 12.99, Quantity: 1, AssignedTo: []string{"A"}},
		{ID: "2", Name: "Fries", Price: 4.99, Quantity: 2, AssignedTo: []string{"A", "B"}},
	}
	participants := []models.Participant{{ID: "A", Name: "You"}, {ID: "B", Name: "Bob"}}
	summary := calculator.ComputeSummary(items, participants)

	got := Text(summary, time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC))

	want := "Bill Split Summary\n" +
		"\nDate: Mar 9, 2024\n\n" +
		"You: $17.98\n" +
		"  - Burger: $12.99\n" +
		"  - Fries (x2): $4.99\n" +
		"\n" +
		"Bob: $4.99\n" +
		"  - Fries (x2): $4.99\n" +
		"\n" +
		"Total: $22.97"
	assert.Equal(t, want, got)
}

func TestText_PersonWithoutItems(t *testing.T) {
	summary := calculator.ComputeSummary(nil, []models.Participant{{ID: "A", Name: "You"}})

	got := Text(summary, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, got, "You: $0.00\n\n")
	assert.Contains(t, got, "Total: $0.00")
}

func TestAmount(t *testing.T) {
	tests := map[float64]string{
		15.485: "15.49",
		2.495:  "2.50",
		17.98:  "17.98",
		0:      "0.00",
		3:      "3.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, Amount(in), "%v", in)
	}
}
