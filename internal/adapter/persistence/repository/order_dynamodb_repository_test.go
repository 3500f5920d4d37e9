package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"evdealer/internal/domain/entities"
)

func newOrderRepo(ddb *stubDynamo) *OrderDynamoRepository {
	catalog := NewCatalogDynamoRepository(ddb, testTables)
	r := NewOrderDynamoRepository(ddb, testTables, NewPaymentDynamoRepository(ddb, testTables), catalog)
	r.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	return r
}

func paymentsQuery(items ...paymentItem) func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
	return func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		if *in.IndexName != paymentsByOrderIndex {
			return &dynamodb.QueryOutput{}, nil
		}
		out := make([]any, 0, len(items))
		for _, it := range items {
			out = append(out, it)
		}
		return &dynamodb.QueryOutput{Items: marshalItems(out...)}, nil
	}
}

func TestOrderRepository_GetByIDLoadsLedgerAndUnit(t *testing.T) {
	ddb := newStubDynamo()
	seedCatalog(ddb)
	ddb.seed("orders", "ord-1", orderItem{
		ID:            "ord-1",
		OrderNumber:   "ORD-1",
		UnitID:        "u-1",
		TotalAmount:   "900000000",
		DepositAmount: "0",
		Status:        "confirmed",
	})
	ddb.queryFn = paymentsQuery(
		paymentItem{ID: "p-2", OrderID: "ord-1", Amount: "50", Status: "pending", PaymentDate: "2026-03-02T00:00:00.000000000Z"},
		paymentItem{ID: "p-1", OrderID: "ord-1", Amount: "100", Status: "completed", PaymentDate: "2026-03-01T00:00:00.000000000Z"},
	)
	repo := newOrderRepo(ddb)

	o, err := repo.GetByID(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.Payments) != 2 || o.Payments[0].ID != "p-1" || o.Payments[1].ID != "p-2" {
		t.Fatalf("expected payments oldest first, got %+v", o.Payments)
	}
	if o.Unit == nil || o.Unit.ID != "u-1" {
		t.Fatalf("expected unit attached, got %+v", o.Unit)
	}
	if o.TotalAmount.String() != "900000000" || o.Status != entities.OrderStatusConfirmed {
		t.Fatalf("unexpected order %+v", o)
	}
}

func TestOrderRepository_GetByIDNotFound(t *testing.T) {
	repo := newOrderRepo(newStubDynamo())
	o, err := repo.GetByID(context.Background(), "nope")
	if err != nil || o.ID != "" {
		t.Fatalf("expected zero order, got %+v (%v)", o, err)
	}
}

func TestOrderRepository_PaymentsFailure(t *testing.T) {
	ddb := newStubDynamo()
	ddb.seed("orders", "ord-1", orderItem{ID: "ord-1", TotalAmount: "1", DepositAmount: "0", Status: "confirmed"})
	ddb.queryFn = func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		return nil, errors.New("throttled")
	}
	repo := newOrderRepo(ddb)

	if _, err := repo.GetByID(context.Background(), "ord-1"); err == nil {
		t.Fatalf("expected ledger failure to surface")
	}
}

func TestOrderRepository_GetByNumber(t *testing.T) {
	ddb := newStubDynamo()
	ddb.queryFn = func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		if *in.IndexName == ordersByNumberIndex {
			if in.ExpressionAttributeValues[":order_number"].(*types.AttributeValueMemberS).Value != "ORD-7" {
				return &dynamodb.QueryOutput{}, nil
			}
			return &dynamodb.QueryOutput{Items: marshalItems(orderItem{ID: "ord-7", OrderNumber: "ORD-7", TotalAmount: "10", DepositAmount: "0", Status: "paid"})}, nil
		}
		return &dynamodb.QueryOutput{}, nil
	}
	repo := newOrderRepo(ddb)

	o, err := repo.GetByNumber(context.Background(), "ORD-7")
	if err != nil || o.ID != "ord-7" {
		t.Fatalf("unexpected order %+v (%v)", o, err)
	}
	if o.Payments == nil {
		t.Fatalf("payments must be an empty ledger, not nil")
	}

	missing, err := repo.GetByNumber(context.Background(), "ORD-404")
	if err != nil || missing.ID != "" {
		t.Fatalf("expected zero order, got %+v (%v)", missing, err)
	}
}

func TestOrderRepository_UpdatePaymentState(t *testing.T) {
	ddb := newStubDynamo()
	repo := newOrderRepo(ddb)

	if err := repo.UpdatePaymentState(context.Background(), "ord-1", "", "partial"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(*ddb.upds[0].UpdateExpression, "#status") {
		t.Fatalf("empty status must leave the order status alone: %s", *ddb.upds[0].UpdateExpression)
	}

	if err := repo.UpdatePaymentState(context.Background(), "ord-1", "PAID", "paid"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	upd := ddb.upds[1]
	if upd.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS).Value != "paid" {
		t.Fatalf("status must be stored normalized")
	}
	if upd.ExpressionAttributeNames["#payment_status"] != "payment_status" || upd.ExpressionAttributeNames["#status"] != "status" {
		t.Fatalf("unexpected names %+v", upd.ExpressionAttributeNames)
	}
}
