package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"evdealer/internal/domain/entities"
)

func TestAppendDoesNotMutate(t *testing.T) {
	original := []entities.Payment{
		{ID: "p-1", Amount: decimal.NewFromInt(100), Status: entities.PaymentStatusCompleted},
	}
	base := New(original)
	next := base.Append(entities.Payment{ID: "p-2", Amount: decimal.NewFromInt(50), Status: entities.PaymentStatusPending})

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, next.Len())
	assert.Len(t, original, 1)

	entries := next.Entries()
	entries[0].Amount = decimal.NewFromInt(999)
	assert.True(t, decimal.NewFromInt(100).Equal(next.Entries()[0].Amount), "Entries must return a copy")

	original[0].Amount = decimal.NewFromInt(1)
	assert.True(t, decimal.NewFromInt(100).Equal(base.Entries()[0].Amount), "New must copy its input")
}

func TestAppendBranchesIndependently(t *testing.T) {
	base := New(nil).Append(entities.Payment{ID: "p-1"})
	a := base.Append(entities.Payment{ID: "a"})
	b := base.Append(entities.Payment{ID: "b"})

	assert.Equal(t, "a", a.Entries()[1].ID)
	assert.Equal(t, "b", b.Entries()[1].ID)
}

func TestTotals(t *testing.T) {
	l := ForOrder(entities.Order{Payments: []entities.Payment{
		{Amount: decimal.NewFromInt(1000), Status: entities.PaymentStatusCompleted},
		{Amount: decimal.NewFromInt(500), Status: entities.PaymentStatusPending},
		{Amount: decimal.NewFromInt(250), Status: "Completed"},
	}})

	assert.Len(t, l.Completed(), 2)
	assert.True(t, decimal.NewFromInt(1250).Equal(l.TotalCompleted()))
	assert.True(t, decimal.NewFromInt(1750).Equal(l.Total(func(entities.Payment) bool { return true })))
}
