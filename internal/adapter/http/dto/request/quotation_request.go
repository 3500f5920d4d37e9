package request

import "strings"

// AcceptQuotationRequest carries the customer's acceptance terms. An empty
// value is rejected by the use case, not by binding, so the caller gets the
// domain error code.
type AcceptQuotationRequest struct {
	Conditions string `json:"conditions" binding:"max=2000"`
}

func (r AcceptQuotationRequest) ResolveConditions() string {
	return strings.TrimSpace(r.Conditions)
}

type RejectQuotationRequest struct {
	Reason            string `json:"reason" binding:"max=2000"`
	AdjustmentRequest string `json:"adjustmentRequest" binding:"max=2000"`
}
