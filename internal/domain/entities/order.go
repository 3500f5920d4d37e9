package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle of an order.
//
// Progress: pending(1) -> quoted(2) -> confirmed(3) -> paid(4) -> delivered(5) -> completed(6).
// rejected and cancelled are terminal branches set by the order service and
// freeze the timeline at step 0.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusQuoted    OrderStatus = "quoted"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderProgress = []struct {
	status OrderStatus
	label  string
}{
	{OrderStatusPending, "Pending"},
	{OrderStatusQuoted, "Quoted"},
	{OrderStatusConfirmed, "Confirmed"},
	{OrderStatusPaid, "Paid"},
	{OrderStatusDelivered, "Delivered"},
	{OrderStatusCompleted, "Completed"},
}

// Normalize lower-cases and trims a status read from a remote record.
func (s OrderStatus) Normalize() OrderStatus {
	return OrderStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// Is compares statuses case-insensitively.
func (s OrderStatus) Is(other OrderStatus) bool {
	return s.Normalize() == other.Normalize()
}

// IsTerminalBranch reports the rejected/cancelled branches.
func (s OrderStatus) IsTerminalBranch() bool {
	n := s.Normalize()
	return n == OrderStatusRejected || n == OrderStatusCancelled
}

// Step returns the progress index of the status; 0 for the terminal
// branches and for statuses the timeline does not know.
func (s OrderStatus) Step() int {
	n := s.Normalize()
	for i, p := range orderProgress {
		if p.status == n {
			return i + 1
		}
	}
	return 0
}

// Order is the purchase-in-progress aggregate. Payments are owned by the
// order and only ever appended to.
type Order struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"orderNumber"`
	CustomerID     string          `json:"customerId"`
	UnitID         string          `json:"inventoryId,omitempty"`
	QuotationID    string          `json:"quotationId,omitempty"`
	Unit           *Unit           `json:"inventory,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DepositAmount  decimal.Decimal `json:"depositAmount"`
	Status         OrderStatus     `json:"status"`
	PaymentStatus  string          `json:"paymentStatus,omitempty"`
	DeliveryStatus string          `json:"deliveryStatus,omitempty"`
	Payments       []Payment       `json:"payments"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// TimelineStep is one entry of the order progress timeline.
type TimelineStep struct {
	Step      int         `json:"step"`
	Status    OrderStatus `json:"status"`
	Label     string      `json:"label"`
	IsActive  bool        `json:"isActive"`
	IsCurrent bool        `json:"isCurrent"`
}

// Timeline is the rendered progress of an order. Badge is set only for the
// terminal rejected/cancelled branches.
type Timeline struct {
	CurrentStep int            `json:"currentStep"`
	Steps       []TimelineStep `json:"steps"`
	Terminal    bool           `json:"terminal"`
	Badge       OrderStatus    `json:"badge,omitempty"`
}

// TimelineSteps builds the progress timeline for an order. A step is active
// when its index is not past the current step; exactly one step is current
// unless the order sits in a terminal branch.
func TimelineSteps(o Order) Timeline {
	current := o.Status.Step()
	tl := Timeline{
		CurrentStep: current,
		Steps:       make([]TimelineStep, 0, len(orderProgress)),
	}
	if o.Status.IsTerminalBranch() {
		tl.Terminal = true
		tl.Badge = o.Status.Normalize()
	}
	for i, p := range orderProgress {
		step := i + 1
		tl.Steps = append(tl.Steps, TimelineStep{
			Step:      step,
			Status:    p.status,
			Label:     p.label,
			IsActive:  step <= current,
			IsCurrent: current > 0 && step == current,
		})
	}
	return tl
}
