// Package pricing computes the monetary figures of quotations and orders.
//
// Monetary representation:
//   - every amount is a decimal.Decimal; nothing is computed in float.
//   - remaining balances come from the completed payments in the ledger,
//     never from the order's deposit amount.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/errs"
	"evdealer/internal/domain/ledger"
)

// installmentScale is the number of decimal places kept on per-month amounts.
const installmentScale = 2

var (
	ErrInvalidInstallmentMonths = errs.Validation("installment months must be at least 1")
	ErrOrderNotConfirmed        = errs.Policy("order is not confirmed")
	ErrNothingToPay             = errs.Policy("order has no remaining balance")
)

// TotalPaid sums the completed payments of the order.
func TotalPaid(o entities.Order) decimal.Decimal {
	return ledger.ForOrder(o).TotalCompleted()
}

// Remaining is the order total minus the completed payments, clamped at zero.
// Overpayment is clamped for display only; the ledger is left untouched.
func Remaining(o entities.Order) decimal.Decimal {
	return RemainingAfter(o.TotalAmount, ledger.ForOrder(o))
}

// RemainingAfter computes the remaining balance of total against a ledger.
func RemainingAfter(total decimal.Decimal, l ledger.Ledger) decimal.Decimal {
	rest := total.Sub(l.TotalCompleted())
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// InstallmentAmount splits remaining evenly across months. months < 1 is
// rejected rather than corrected.
func InstallmentAmount(remaining decimal.Decimal, months int) (decimal.Decimal, error) {
	if months < 1 {
		return decimal.Zero, fmt.Errorf("%w: got %d", ErrInvalidInstallmentMonths, months)
	}
	return remaining.DivRound(decimal.NewFromInt(int64(months)), installmentScale), nil
}

// IsPayable gates payment submission: the order must be confirmed and still
// owe something.
func IsPayable(o entities.Order) bool {
	return CheckPayable(o) == nil
}

// CheckPayable explains why IsPayable is false.
func CheckPayable(o entities.Order) error {
	if !o.Status.Is(entities.OrderStatusConfirmed) {
		return fmt.Errorf("%w: status is %q", ErrOrderNotConfirmed, o.Status)
	}
	if !Remaining(o).IsPositive() {
		return ErrNothingToPay
	}
	return nil
}

// FinalPrice is the quotation total minus its discount amount, when one is set.
func FinalPrice(q entities.Quotation) decimal.Decimal {
	if q.DiscountAmount == nil {
		return q.TotalPrice
	}
	return q.TotalPrice.Sub(*q.DiscountAmount)
}

// Summary bundles the figures shown next to an order.
type Summary struct {
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	DepositAmount decimal.Decimal `json:"depositAmount"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	Remaining     decimal.Decimal `json:"remainingAmount"`
	Payable       bool            `json:"isPayable"`
	Installments  []Installment   `json:"installmentOptions,omitempty"`
}

// Installment is one preview row of an installment plan.
type Installment struct {
	Months  int             `json:"months"`
	Monthly decimal.Decimal `json:"monthlyAmount"`
}

// PreviewMonths are the plan lengths offered next to a payable order.
var PreviewMonths = []int{6, 12, 24, 36}

func Summarize(o entities.Order) Summary {
	remaining := Remaining(o)
	s := Summary{
		TotalAmount:   o.TotalAmount,
		DepositAmount: o.DepositAmount,
		TotalPaid:     TotalPaid(o),
		Remaining:     remaining,
		Payable:       IsPayable(o),
	}
	if s.Payable {
		for _, m := range PreviewMonths {
			monthly, err := InstallmentAmount(remaining, m)
			if err != nil {
				continue
			}
			s.Installments = append(s.Installments, Installment{Months: m, Monthly: monthly})
		}
	}
	return s
}
