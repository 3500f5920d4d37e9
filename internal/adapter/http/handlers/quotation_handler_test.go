package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"evdealer/internal/adapter/http/handlers/mocks"
	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/errs"
	"evdealer/internal/usecase"
	"evdealer/pkg"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body
}

func quotationRouter(h *QuotationHandler) *gin.Engine {
	r := gin.New()
	r.GET("/v1/quotations/:id", h.GetQuotation)
	r.POST("/v1/quotations/:id/accept", h.AcceptQuotation)
	r.POST("/v1/quotations/:id/reject", h.RejectQuotation)
	return r
}

func TestQuotationHandler_Accept(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		r := quotationRouter(NewQuotationHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations/q-1/accept", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"conditions required", usecase.ErrConditionsRequired, http.StatusBadRequest, "CONDITIONS_REQUIRED"},
		{"not found", usecase.ErrQuotationNotFound, http.StatusNotFound, "QUOTATION_NOT_FOUND"},
		{"expired", usecase.ErrQuotationExpired, http.StatusConflict, "QUOTATION_EXPIRED"},
		{"not pending", fmt.Errorf("%w: status is \"accepted\"", usecase.ErrQuotationNotPending), http.StatusConflict, "QUOTATION_NOT_RESPONDABLE"},
		{"in flight", usecase.ErrOperationInFlight, http.StatusConflict, "OPERATION_IN_FLIGHT"},
		{"transport", errs.Transport(errors.New("dial")), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIQuotationUseCase(ctrl)
			r := quotationRouter(NewQuotationHandler(uc))

			uc.EXPECT().Accept(gomock.Any(), "q-1", "").Return(entities.QuotationAcceptance{}, tc.err)

			req := httptest.NewRequest(http.MethodPost, "/v1/quotations/q-1/accept", bytes.NewBufferString(`{"conditions":"   "}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if body := decodeError(t, w); body.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, body.Code)
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		r := quotationRouter(NewQuotationHandler(uc))

		uc.EXPECT().Accept(gomock.Any(), "q-1", "delivery in May").Return(entities.QuotationAcceptance{
			Quotation: entities.Quotation{ID: "q-1", Status: entities.QuotationStatusConverted, OrderID: "ord-1", TotalPrice: decimal.NewFromInt(10)},
			OrderID:   "ord-1",
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations/q-1/accept", bytes.NewBufferString(`{"conditions":" delivery in May "}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			OrderID   string `json:"orderId"`
			Quotation struct {
				Status string `json:"status"`
			} `json:"quotation"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.OrderID != "ord-1" || body.Quotation.Status != "converted" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestQuotationHandler_RejectAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("reject passes reason and adjustment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		r := quotationRouter(NewQuotationHandler(uc))

		uc.EXPECT().Reject(gomock.Any(), "q-1", "too expensive", "5% off").
			Return(entities.Quotation{ID: "q-1", Status: entities.QuotationStatusRejected, RejectionReason: "too expensive"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations/q-1/reject", bytes.NewBufferString(`{"reason":"too expensive","adjustmentRequest":"5% off"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("reject reason required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		r := quotationRouter(NewQuotationHandler(uc))

		uc.EXPECT().Reject(gomock.Any(), "q-1", "", "").Return(entities.Quotation{}, usecase.ErrReasonRequired)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations/q-1/reject", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest || decodeError(t, w).Code != "REASON_REQUIRED" {
			t.Fatalf("expected REASON_REQUIRED 400, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("get", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		r := quotationRouter(NewQuotationHandler(uc))

		uc.EXPECT().Get(gomock.Any(), "q-1").Return(usecase.QuotationView{
			Quotation:       entities.Quotation{ID: "q-1", Status: entities.QuotationStatusSent},
			EffectiveStatus: entities.QuotationStatusSent,
			CanRespond:      true,
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/quotations/q-1", nil))

		if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"canRespond":true`)) {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})
}
