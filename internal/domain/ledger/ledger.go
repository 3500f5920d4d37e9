// Package ledger keeps the append-only payment history of one order.
package ledger

import (
	"github.com/shopspring/decimal"

	"evdealer/internal/domain/entities"
)

// Ledger is an immutable view over an order's payments. Append returns a
// new ledger; recorded entries are never changed.
type Ledger struct {
	entries []entities.Payment
}

// New copies payments into a ledger.
func New(payments []entities.Payment) Ledger {
	entries := make([]entities.Payment, len(payments))
	copy(entries, payments)
	return Ledger{entries: entries}
}

// ForOrder builds the ledger of an order's payment list.
func ForOrder(o entities.Order) Ledger {
	return New(o.Payments)
}

func (l Ledger) Append(p entities.Payment) Ledger {
	entries := make([]entities.Payment, len(l.entries), len(l.entries)+1)
	copy(entries, l.entries)
	return Ledger{entries: append(entries, p)}
}

func (l Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the recorded payments in insertion order.
func (l Ledger) Entries() []entities.Payment {
	out := make([]entities.Payment, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l Ledger) Filter(keep func(entities.Payment) bool) []entities.Payment {
	var out []entities.Payment
	for _, p := range l.entries {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Completed returns the payments whose status is completed.
func (l Ledger) Completed() []entities.Payment {
	return l.Filter(isCompleted)
}

// Total sums the amounts of the payments matching keep.
func (l Ledger) Total(keep func(entities.Payment) bool) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range l.entries {
		if keep(p) {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// TotalCompleted sums completed payments only.
func (l Ledger) TotalCompleted() decimal.Decimal {
	return l.Total(isCompleted)
}

func isCompleted(p entities.Payment) bool {
	return p.Status.Is(entities.PaymentStatusCompleted)
}
