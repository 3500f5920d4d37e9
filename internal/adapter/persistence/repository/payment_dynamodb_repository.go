package repository

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"evdealer/internal/domain/entities"
	"evdealer/internal/usecase/interfaces"
)

const paymentsByOrderIndex = "order_id-index"

type paymentItem struct {
	ID                 string `dynamodbav:"id"`
	PaymentNumber      string `dynamodbav:"payment_number"`
	OrderID            string `dynamodbav:"order_id"`
	Kind               string `dynamodbav:"kind,omitempty"`
	Amount             string `dynamodbav:"amount"`
	PaymentMethod      string `dynamodbav:"payment_method"`
	Status             string `dynamodbav:"status"`
	PaymentDate        string `dynamodbav:"payment_date"`
	InstallmentMonths  *int   `dynamodbav:"installment_months,omitempty"`
	Notes              string `dynamodbav:"notes,omitempty"`
	ProviderPaymentID  string `dynamodbav:"provider_payment_id,omitempty"`
	ProviderPayloadRaw string `dynamodbav:"provider_payload_raw,omitempty"`
}

// PaymentDynamoRepository is the append-only payments table. Records are
// only ever put, never updated.
type PaymentDynamoRepository struct {
	ddb    DynamoAPI
	tables Tables
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tables Tables) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tables: tables}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) error {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tables.Payments),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	return err
}

// ListByOrderID returns the order's payments oldest first.
func (r *PaymentDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:                aws.String(r.tables.Payments),
		IndexName:                aws.String(paymentsByOrderIndex),
		KeyConditionExpression:   aws.String("#order_id = :order_id"),
		ExpressionAttributeNames: map[string]string{"#order_id": "order_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":order_id": &types.AttributeValueMemberS{Value: orderID},
		},
	})

	var items []paymentItem
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []paymentItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}

	out := make([]entities.Payment, 0, len(items))
	for _, it := range items {
		out = append(out, fromPaymentItem(it))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PaymentDate.Before(out[j].PaymentDate)
	})
	return out, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                 p.ID,
		PaymentNumber:      p.PaymentNumber,
		OrderID:            p.OrderID,
		Kind:               string(p.Kind),
		Amount:             formatDecimal(p.Amount),
		PaymentMethod:      string(p.PaymentMethod),
		Status:             string(p.Status),
		PaymentDate:        formatTime(p.PaymentDate),
		InstallmentMonths:  p.InstallmentMonths,
		Notes:              p.Notes,
		ProviderPaymentID:  p.ProviderPaymentID,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	p := entities.Payment{
		ID:                it.ID,
		PaymentNumber:     it.PaymentNumber,
		OrderID:           it.OrderID,
		Kind:              entities.PaymentKind(it.Kind),
		Amount:            parseDecimal(it.Amount),
		PaymentMethod:     entities.PaymentMethod(it.PaymentMethod),
		Status:            entities.PaymentStatus(it.Status),
		PaymentDate:       parseTime(it.PaymentDate),
		InstallmentMonths: it.InstallmentMonths,
		Notes:             it.Notes,
		ProviderPaymentID: it.ProviderPaymentID,
	}
	if it.ProviderPayloadRaw != "" && json.Valid([]byte(it.ProviderPayloadRaw)) {
		p.ProviderPayloadRaw = json.RawMessage(it.ProviderPayloadRaw)
	}
	return p
}
