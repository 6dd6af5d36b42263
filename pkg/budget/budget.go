package budget

import (
	"math"

	"github.com/giftledger/giftledger/pkg/item"
	"github.com/giftledger/giftledger/pkg/recipient"
)

// RecipientOverview is a recipient augmented with the cost roll-up of its items.
type RecipientOverview struct {
	recipient.Recipient
	Committed float64
	Spent     float64
}

// GlobalBudget is the household-wide roll-up across all recipients and items.
type GlobalBudget struct {
	TotalBudget     float64
	TotalCommitted  float64
	TotalSpent      float64
	Available       float64
	PercentUtilized int
}

// Totals partitions item costs into committed (planned) and spent
// (bought/shipped/wrapped). Items in "idea" contribute to neither, and so do
// "delayed" items: a delayed-but-already-bought gift arguably belongs in
// spent, but the product counts it nowhere today, so this mirrors that
// behavior rather than silently correcting it.
func Totals(items []item.Item) (committed float64, spent float64) {
	for _, it := range items {
		switch it.Status {
		case item.StatusPlanned:
			committed += it.Cost
		case item.StatusBought, item.StatusShipped, item.StatusWrapped:
			spent += it.Cost
		}
	}
	return committed, spent
}

// Available is the budget remainder after committed and spent. It may go
// negative; over-budget recipients are shown as such, never clamped.
func Available(budget, committed, spent float64) float64 {
	return budget - committed - spent
}

// PercentUtilized returns round(100 * (committed+spent) / budget), or 0 for a
// zero budget. math.Round rounds half away from zero, which is plain half-up
// for the non-negative figures this app produces.
func PercentUtilized(budget, committed, spent float64) int {
	if budget <= 0 {
		return 0
	}
	return int(math.Round(100 * (committed + spent) / budget))
}
