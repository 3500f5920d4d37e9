package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuotationStatus represents the lifecycle of a quotation.
//
// Lifecycle:
//   - pending -> sent
//   - sent -> accepted | rejected | expired
//   - accepted -> converted (an order was created from it)
//
// expired is normally derived, not stored: a sent quotation past its expiry
// date is treated as expired for action gating. See EffectiveStatus.
type QuotationStatus string

const (
	QuotationStatusPending   QuotationStatus = "pending"
	QuotationStatusSent      QuotationStatus = "sent"
	QuotationStatusAccepted  QuotationStatus = "accepted"
	QuotationStatusRejected  QuotationStatus = "rejected"
	QuotationStatusExpired   QuotationStatus = "expired"
	QuotationStatusConverted QuotationStatus = "converted"
)

var quotationTransitions = map[QuotationStatus][]QuotationStatus{
	QuotationStatusPending:  {QuotationStatusSent},
	QuotationStatusSent:     {QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusExpired},
	QuotationStatusAccepted: {QuotationStatusConverted},
}

// Normalize lower-cases and trims a status read from a remote record.
func (s QuotationStatus) Normalize() QuotationStatus {
	return QuotationStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// Is compares statuses case-insensitively.
func (s QuotationStatus) Is(other QuotationStatus) bool {
	return s.Normalize() == other.Normalize()
}

// IsTerminal reports whether no accept/reject can follow this status.
func (s QuotationStatus) IsTerminal() bool {
	switch s.Normalize() {
	case QuotationStatusRejected, QuotationStatusExpired, QuotationStatusConverted:
		return true
	}
	return false
}

// CanTransitionQuotation reports whether from -> to is a legal move.
func CanTransitionQuotation(from, to QuotationStatus) bool {
	for _, next := range quotationTransitions[from.Normalize()] {
		if next == to.Normalize() {
			return true
		}
	}
	return false
}

// Quotation is a priced offer tied to a customer and a vehicle configuration.
type Quotation struct {
	ID                 string           `json:"id"`
	QuotationNumber    string           `json:"quotationNumber,omitempty"`
	CustomerID         string           `json:"customerId"`
	VariantID          string           `json:"variantId"`
	ColorID            string           `json:"colorId,omitempty"`
	UnitID             string           `json:"inventoryId,omitempty"`
	Variant            *Variant         `json:"variant,omitempty"`
	Color              *Color           `json:"color,omitempty"`
	TotalPrice         decimal.Decimal  `json:"totalPrice"`
	DiscountAmount     *decimal.Decimal `json:"discountAmount,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage,omitempty"`
	QuotationDate      time.Time        `json:"quotationDate"`
	ExpiryDate         time.Time        `json:"expiryDate"`
	Status             QuotationStatus  `json:"status"`
	Conditions         string           `json:"conditions,omitempty"`
	RejectionReason    string           `json:"rejectionReason,omitempty"`
	AdjustmentRequest  string           `json:"adjustmentRequest,omitempty"`
	OrderID            string           `json:"orderId,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// IsExpired reports whether a sent quotation is past its expiry date at now.
// Quotations without an expiry date never expire.
func (q Quotation) IsExpired(now time.Time) bool {
	if q.Status.Is(QuotationStatusExpired) {
		return true
	}
	if !q.Status.Is(QuotationStatusSent) || q.ExpiryDate.IsZero() {
		return false
	}
	return q.ExpiryDate.Before(now)
}

// EffectiveStatus is the status used for action gating and display.
func (q Quotation) EffectiveStatus(now time.Time) QuotationStatus {
	if q.IsExpired(now) {
		return QuotationStatusExpired
	}
	return q.Status.Normalize()
}

// ExpiryWarning reports whether the UI must flag the quotation as expired.
func (q Quotation) ExpiryWarning(now time.Time) bool {
	return q.IsExpired(now)
}

// QuotationAcceptance is the quotation service's answer to an accept call.
// OrderID is set when the service created an order from the quotation.
type QuotationAcceptance struct {
	Quotation Quotation `json:"quotation"`
	OrderID   string    `json:"orderId,omitempty"`
}
