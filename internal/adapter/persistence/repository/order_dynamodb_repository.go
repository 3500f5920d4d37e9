package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"evdealer/internal/domain/entities"
	"evdealer/internal/usecase/interfaces"
)

const ordersByNumberIndex = "order_number-index"

type orderItem struct {
	ID             string `dynamodbav:"id"`
	OrderNumber    string `dynamodbav:"order_number"`
	CustomerID     string `dynamodbav:"customer_id"`
	UnitID         string `dynamodbav:"inventory_id,omitempty"`
	QuotationID    string `dynamodbav:"quotation_id,omitempty"`
	TotalAmount    string `dynamodbav:"total_amount"`
	DepositAmount  string `dynamodbav:"deposit_amount"`
	Status         string `dynamodbav:"status"`
	PaymentStatus  string `dynamodbav:"payment_status,omitempty"`
	DeliveryStatus string `dynamodbav:"delivery_status,omitempty"`
	CreatedAt      string `dynamodbav:"created_at,omitempty"`
	UpdatedAt      string `dynamodbav:"updated_at,omitempty"`
}

// OrderDynamoRepository reads orders together with their payment ledger and
// the purchased unit.
type OrderDynamoRepository struct {
	ddb      DynamoAPI
	tables   Tables
	payments *PaymentDynamoRepository
	catalog  *CatalogDynamoRepository
	now      func() time.Time
}

var (
	_ interfaces.IOrderService    = (*OrderDynamoRepository)(nil)
	_ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)
)

func NewOrderDynamoRepository(ddb DynamoAPI, tables Tables, payments *PaymentDynamoRepository, catalog *CatalogDynamoRepository) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:      ddb,
		tables:   tables,
		payments: payments,
		catalog:  catalog,
		now:      time.Now,
	}
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	res, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Orders),
		Key:       stringKey(id),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(res.Item) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(res.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return r.complete(ctx, fromOrderItem(it))
}

func (r *OrderDynamoRepository) GetByNumber(ctx context.Context, orderNumber string) (entities.Order, error) {
	res, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tables.Orders),
		IndexName:                aws.String(ordersByNumberIndex),
		KeyConditionExpression:   aws.String("#order_number = :order_number"),
		ExpressionAttributeNames: map[string]string{"#order_number": "order_number"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":order_number": &types.AttributeValueMemberS{Value: orderNumber},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(res.Items) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(res.Items[0], &it); err != nil {
		return entities.Order{}, err
	}
	return r.complete(ctx, fromOrderItem(it))
}

// UpdatePaymentState records the order's payment progress. An empty status
// leaves the order status unchanged.
func (r *OrderDynamoRepository) UpdatePaymentState(ctx context.Context, id string, status entities.OrderStatus, paymentStatus string) error {
	update := "SET #payment_status = :payment_status, #updated_at = :now"
	names := map[string]string{
		"#payment_status": "payment_status",
		"#updated_at":     "updated_at",
	}
	values := map[string]types.AttributeValue{
		":payment_status": &types.AttributeValueMemberS{Value: paymentStatus},
		":now":            &types.AttributeValueMemberS{Value: formatTime(r.now())},
	}
	if status != "" {
		update += ", #status = :status"
		names = mergeNames(names, map[string]string{"#status": "status"})
		values[":status"] = &types.AttributeValueMemberS{Value: string(status.Normalize())}
	}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tables.Orders),
		Key:                       stringKey(id),
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

// complete attaches payments and the unit. Missing payments are an error;
// a missing unit is not.
func (r *OrderDynamoRepository) complete(ctx context.Context, o entities.Order) (entities.Order, error) {
	if r.payments != nil {
		payments, err := r.payments.ListByOrderID(ctx, o.ID)
		if err != nil {
			return entities.Order{}, err
		}
		o.Payments = payments
	}
	if o.Payments == nil {
		o.Payments = []entities.Payment{}
	}
	if r.catalog != nil && o.UnitID != "" {
		u, err := r.catalog.GetUnit(ctx, o.UnitID)
		if err != nil {
			log.Warn().Err(err).Str("component", "order.repository").Str("order_id", o.ID).Str("unit_id", o.UnitID).Msg("unit lookup failed")
		} else if u.ID != "" {
			o.Unit = &u
		}
	}
	return o, nil
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerID:     o.CustomerID,
		UnitID:         o.UnitID,
		QuotationID:    o.QuotationID,
		TotalAmount:    formatDecimal(o.TotalAmount),
		DepositAmount:  formatDecimal(o.DepositAmount),
		Status:         string(o.Status.Normalize()),
		PaymentStatus:  o.PaymentStatus,
		DeliveryStatus: o.DeliveryStatus,
		CreatedAt:      formatTime(o.CreatedAt),
		UpdatedAt:      formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	return entities.Order{
		ID:             it.ID,
		OrderNumber:    it.OrderNumber,
		CustomerID:     it.CustomerID,
		UnitID:         it.UnitID,
		QuotationID:    it.QuotationID,
		TotalAmount:    parseDecimal(it.TotalAmount),
		DepositAmount:  parseDecimal(it.DepositAmount),
		Status:         entities.OrderStatus(it.Status),
		PaymentStatus:  it.PaymentStatus,
		DeliveryStatus: it.DeliveryStatus,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}
