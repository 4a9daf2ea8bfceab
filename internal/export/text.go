// Package export renders a bill summary for sharing.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/moneymate/internal/calculator"
)

// DateFormat is the layout of the date line in the text summary.
const DateFormat = "Jan 2, 2006"

// Text renders the summary as plain text suitable for pasting into a chat.
func Text(summary calculator.Summary, date time.Time) string {
	var b strings.Builder
	b.WriteString("Bill Split Summary\n")
	fmt.Fprintf(&b, "\nDate: %s\n\n", date.Format(DateFormat))

	for _, person := range summary.PerPerson {
		fmt.Fprintf(&b, "%s: $%s\n", person.Name, Amount(person.Total))
		for _, item := range person.Items {
			qty := ""
			if item.Quantity > 1 {
				qty = fmt.Sprintf(" (x%d)", item.Quantity)
			}
			fmt.Fprintf(&b, "  - %s%s: $%s\n", item.Name, qty, Amount(item.Share))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Total: $%s", Amount(summary.Total))
	return b.String()
}

// Amount formats a money value with two decimals, rounding half away from zero.
func Amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
