package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/shopspring/decimal"

	"evdealer/internal/domain/entities"
)

func TestPaymentRepository_Create(t *testing.T) {
	ddb := newStubDynamo()
	repo := NewPaymentDynamoRepository(ddb, testTables)

	months := 24
	p := entities.Payment{
		ID:                 "p-1",
		PaymentNumber:      "PAY-1",
		OrderID:            "ord-1",
		Kind:               entities.PaymentKindInstallment,
		Amount:             decimal.RequireFromString("1234.50"),
		PaymentMethod:      entities.PaymentMethodCreditCard,
		Status:             entities.PaymentStatusCompleted,
		PaymentDate:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		InstallmentMonths:  &months,
		ProviderPaymentID:  "mp-1",
		ProviderPayloadRaw: json.RawMessage(`{"id":"mp-1"}`),
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ddb.puts) != 1 || *ddb.puts[0].ConditionExpression != "attribute_not_exists(id)" {
		t.Fatalf("payments must be insert-only: %+v", ddb.puts)
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(ddb.puts[0].Item, &it); err != nil {
		t.Fatalf("invalid item: %v", err)
	}
	back := fromPaymentItem(it)
	if !back.Amount.Equal(p.Amount) || back.InstallmentMonths == nil || *back.InstallmentMonths != 24 {
		t.Fatalf("unexpected round trip %+v", back)
	}
	if string(back.ProviderPayloadRaw) != `{"id":"mp-1"}` || !back.PaymentDate.Equal(p.PaymentDate) {
		t.Fatalf("unexpected round trip %+v", back)
	}
}

func TestPaymentRepository_DropsInvalidPayload(t *testing.T) {
	p := fromPaymentItem(paymentItem{ID: "p-1", Amount: "1", ProviderPayloadRaw: "not json"})
	if p.ProviderPayloadRaw != nil {
		t.Fatalf("expected invalid payload to be dropped, got %s", p.ProviderPayloadRaw)
	}
}
