package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"evdealer/internal/adapter/http/handlers/mocks"
	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/pricing"
	"evdealer/internal/usecase"
)

func orderRouter(h *OrderHandler) *gin.Engine {
	r := gin.New()
	r.GET("/v1/orders/number/:order_number", h.GetOrderByNumber)
	r.GET("/v1/orders/:id", h.GetOrder)
	r.GET("/v1/orders/:id/timeline", h.GetOrderTimeline)
	r.POST("/v1/orders/:id/payments", h.CreatePayment)
	return r
}

func orderView(status entities.OrderStatus) usecase.OrderView {
	o := entities.Order{ID: "ord-1", OrderNumber: "ORD-1", Status: status, TotalAmount: decimal.NewFromInt(900)}
	return usecase.OrderView{Order: o, Summary: pricing.Summarize(o), Timeline: entities.TimelineSteps(o)}
}

func TestOrderHandler_CreatePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	invalid := []struct {
		name string
		body string
	}{
		{"malformed", "{"},
		{"unknown kind", `{"kind":"layaway","paymentMethod":"cash"}`},
		{"unknown method", `{"kind":"full","paymentMethod":"crypto"}`},
		{"months out of range", `{"kind":"installment","paymentMethod":"cash","installmentMonths":72}`},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIOrderUseCase(ctrl)
			r := orderRouter(NewOrderHandler(uc))

			req := httptest.NewRequest(http.MethodPost, "/v1/orders/ord-1/payments", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}

	t.Run("deposit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := orderRouter(NewOrderHandler(uc))

		uc.EXPECT().CreatePayment(gomock.Any(), "ord-1", entities.PaymentKindDeposit, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, _ entities.PaymentKind, p usecase.PaymentParams) (usecase.PaymentResult, error) {
				if p.PaymentMethod != entities.PaymentMethodBankTransfer || p.Amount == nil || !p.Amount.Equal(decimal.NewFromInt(100)) {
					t.Fatalf("unexpected params: %+v", p)
				}
				return usecase.PaymentResult{
					Payment: entities.Payment{ID: "pay-1", Amount: *p.Amount, Status: entities.PaymentStatusPending},
					Order:   orderView(entities.OrderStatusConfirmed),
				}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/orders/ord-1/payments", bytes.NewBufferString(`{"kind":"deposit","paymentMethod":"bank_transfer","amount":"100"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			Payment struct {
				ID string `json:"id"`
			} `json:"payment"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Payment.ID != "pay-1" {
			t.Fatalf("unexpected body %s (%v)", w.Body.String(), err)
		}
	})

	mapped := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not confirmed", pricing.ErrOrderNotConfirmed, http.StatusConflict, "ORDER_NOT_CONFIRMED"},
		{"nothing to pay", pricing.ErrNothingToPay, http.StatusConflict, "ORDER_ALREADY_PAID"},
		{"deposit too large", usecase.ErrDepositExceedsRemaining, http.StatusBadRequest, "DEPOSIT_EXCEEDS_REMAINING"},
		{"in flight", usecase.ErrOperationInFlight, http.StatusConflict, "OPERATION_IN_FLIGHT"},
		{"not found", usecase.ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
		{"generic validation", usecase.ErrInvalidDepositAmount, http.StatusBadRequest, "INVALID_REQUEST"},
	}
	for _, tc := range mapped {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIOrderUseCase(ctrl)
			r := orderRouter(NewOrderHandler(uc))

			uc.EXPECT().CreatePayment(gomock.Any(), "ord-1", entities.PaymentKindFull, gomock.Any()).Return(usecase.PaymentResult{}, tc.err)

			req := httptest.NewRequest(http.MethodPost, "/v1/orders/ord-1/payments", bytes.NewBufferString(`{"kind":"full","paymentMethod":"cash"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status || decodeError(t, w).Code != tc.code {
				t.Fatalf("expected %d/%s, got %d %s", tc.status, tc.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestOrderHandler_Lookups(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("by number", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := orderRouter(NewOrderHandler(uc))

		uc.EXPECT().LookupByNumber(gomock.Any(), "ORD-1").Return(orderView(entities.OrderStatusConfirmed), nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/orders/number/ORD-1", nil))
		if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"isPayable":true`)) {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("by number not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := orderRouter(NewOrderHandler(uc))

		uc.EXPECT().LookupByNumber(gomock.Any(), "ORD-404").Return(usecase.OrderView{}, usecase.ErrOrderNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/orders/number/ORD-404", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("timeline of a cancelled order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := orderRouter(NewOrderHandler(uc))

		uc.EXPECT().GetByID(gomock.Any(), "ord-1").Return(orderView(entities.OrderStatusCancelled), nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/orders/ord-1/timeline", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			CurrentStep int    `json:"currentStep"`
			Terminal    bool   `json:"terminal"`
			Badge       string `json:"badge"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.CurrentStep != 0 || !body.Terminal || body.Badge != "cancelled" {
			t.Fatalf("unexpected timeline: %s", w.Body.String())
		}
	})
}
