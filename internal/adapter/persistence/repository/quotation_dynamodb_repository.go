package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/errs"
	"evdealer/internal/domain/pricing"
	"evdealer/internal/usecase/interfaces"
)

var (
	ErrQuotationNotRespondable = errs.Policy("quotation is no longer awaiting a response")
	ErrQuotationMissing        = errors.New("quotation not found")
)

const (
	quotationComponent  = "quotation.repository"
	orderNumberPrefix   = "ORD-"
	paymentStatusUnpaid = "unpaid"
)

type quotationItem struct {
	ID                 string `dynamodbav:"id"`
	QuotationNumber    string `dynamodbav:"quotation_number,omitempty"`
	CustomerID         string `dynamodbav:"customer_id"`
	VariantID          string `dynamodbav:"variant_id"`
	ColorID            string `dynamodbav:"color_id,omitempty"`
	UnitID             string `dynamodbav:"inventory_id,omitempty"`
	TotalPrice         string `dynamodbav:"total_price"`
	DiscountAmount     string `dynamodbav:"discount_amount,omitempty"`
	DiscountPercentage string `dynamodbav:"discount_percentage,omitempty"`
	QuotationDate      string `dynamodbav:"quotation_date,omitempty"`
	ExpiryDate         string `dynamodbav:"expiry_date,omitempty"`
	Status             string `dynamodbav:"status"`
	Conditions         string `dynamodbav:"conditions,omitempty"`
	RejectionReason    string `dynamodbav:"rejection_reason,omitempty"`
	AdjustmentRequest  string `dynamodbav:"adjustment_request,omitempty"`
	OrderID            string `dynamodbav:"order_id,omitempty"`
	Notes              string `dynamodbav:"notes,omitempty"`
	CreatedAt          string `dynamodbav:"created_at,omitempty"`
	UpdatedAt          string `dynamodbav:"updated_at,omitempty"`
}

// QuotationDynamoRepository stores quotations and converts accepted ones
// into orders.
type QuotationDynamoRepository struct {
	ddb     DynamoAPI
	tables  Tables
	catalog *CatalogDynamoRepository
	now     func() time.Time
	idGen   func() string
	numGen  func() string
}

var _ interfaces.IQuotationService = (*QuotationDynamoRepository)(nil)

func NewQuotationDynamoRepository(ddb DynamoAPI, tables Tables, catalog *CatalogDynamoRepository) *QuotationDynamoRepository {
	return &QuotationDynamoRepository{
		ddb:     ddb,
		tables:  tables,
		catalog: catalog,
		now:     time.Now,
		idGen:   uuid.NewString,
		numGen: func() string {
			return orderNumberPrefix + ulid.Make().String()
		},
	}
}

func (r *QuotationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quotation, error) {
	q, found, err := r.load(ctx, id)
	if err != nil || !found {
		return entities.Quotation{}, err
	}
	r.hydrate(ctx, &q)
	return q, nil
}

// Accept moves a sent, unexpired quotation to accepted and writes the
// confirmed order in the same transaction. The follow-up transition to
// converted is best-effort: the order exists once the transaction commits.
func (r *QuotationDynamoRepository) Accept(ctx context.Context, id string, conditions string) (entities.QuotationAcceptance, error) {
	q, found, err := r.load(ctx, id)
	if err != nil {
		return entities.QuotationAcceptance{}, err
	}
	if !found {
		return entities.QuotationAcceptance{}, fmt.Errorf("%w: %s", ErrQuotationMissing, id)
	}

	now := r.now().UTC()
	stamp := formatTime(now)
	order := entities.Order{
		ID:            r.idGen(),
		OrderNumber:   r.numGen(),
		CustomerID:    q.CustomerID,
		UnitID:        q.UnitID,
		QuotationID:   q.ID,
		TotalAmount:   pricing.FinalPrice(q),
		Status:        entities.OrderStatusConfirmed,
		PaymentStatus: paymentStatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	orderAV, err := attributevalue.MarshalMap(toOrderItem(order))
	if err != nil {
		return entities.QuotationAcceptance{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:           aws.String(r.tables.Quotations),
				Key:                 stringKey(q.ID),
				UpdateExpression:    aws.String("SET #status = :accepted, #conditions = :conditions, #updated_at = :now"),
				ConditionExpression: aws.String("#status = :sent AND (attribute_not_exists(#expiry_date) OR #expiry_date = :empty OR #expiry_date >= :now)"),
				ExpressionAttributeNames: map[string]string{
					"#status":      "status",
					"#conditions":  "conditions",
					"#updated_at":  "updated_at",
					"#expiry_date": "expiry_date",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":accepted":   &types.AttributeValueMemberS{Value: string(entities.QuotationStatusAccepted)},
					":sent":       &types.AttributeValueMemberS{Value: string(entities.QuotationStatusSent)},
					":conditions": &types.AttributeValueMemberS{Value: conditions},
					":now":        &types.AttributeValueMemberS{Value: stamp},
					":empty":      &types.AttributeValueMemberS{Value: ""},
				},
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.tables.Orders),
				Item:                orderAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			}},
		},
	})
	if err != nil {
		if isConditionFailure(err) {
			return entities.QuotationAcceptance{}, fmt.Errorf("%w: %s", ErrQuotationNotRespondable, q.ID)
		}
		log.Error().Err(err).Str("component", quotationComponent).Str("quotation_id", q.ID).Msg("accept transaction failed")
		return entities.QuotationAcceptance{}, err
	}

	q.Status = entities.QuotationStatusAccepted
	q.Conditions = conditions
	q.UpdatedAt = now

	if err := r.markConverted(ctx, q.ID, order.ID, stamp); err != nil {
		log.Warn().Err(err).
			Str("component", quotationComponent).
			Str("quotation_id", q.ID).
			Str("order_id", order.ID).
			Msg("mark converted failed")
	} else {
		q.Status = entities.QuotationStatusConverted
		q.OrderID = order.ID
	}

	log.Info().
		Str("component", quotationComponent).
		Str("quotation_id", q.ID).
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Msg("quotation accepted")

	r.hydrate(ctx, &q)
	return entities.QuotationAcceptance{Quotation: q, OrderID: order.ID}, nil
}

func (r *QuotationDynamoRepository) Reject(ctx context.Context, id string, reason string, adjustmentRequest string) (entities.Quotation, error) {
	q, found, err := r.load(ctx, id)
	if err != nil {
		return entities.Quotation{}, err
	}
	if !found {
		return entities.Quotation{}, fmt.Errorf("%w: %s", ErrQuotationMissing, id)
	}

	now := r.now().UTC()
	update := "SET #status = :rejected, #rejection_reason = :reason, #updated_at = :now"
	names := map[string]string{
		"#status":           "status",
		"#rejection_reason": "rejection_reason",
		"#updated_at":       "updated_at",
	}
	values := map[string]types.AttributeValue{
		":rejected": &types.AttributeValueMemberS{Value: string(entities.QuotationStatusRejected)},
		":sent":     &types.AttributeValueMemberS{Value: string(entities.QuotationStatusSent)},
		":reason":   &types.AttributeValueMemberS{Value: reason},
		":now":      &types.AttributeValueMemberS{Value: formatTime(now)},
	}
	if adjustment := strings.TrimSpace(adjustmentRequest); adjustment != "" {
		update += ", #adjustment_request = :adjustment"
		names["#adjustment_request"] = "adjustment_request"
		values[":adjustment"] = &types.AttributeValueMemberS{Value: adjustment}
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tables.Quotations),
		Key:                       stringKey(q.ID),
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("#status = :sent"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		if isConditionFailure(err) {
			return entities.Quotation{}, fmt.Errorf("%w: %s", ErrQuotationNotRespondable, q.ID)
		}
		return entities.Quotation{}, err
	}

	q.Status = entities.QuotationStatusRejected
	q.RejectionReason = reason
	q.AdjustmentRequest = strings.TrimSpace(adjustmentRequest)
	q.UpdatedAt = now
	r.hydrate(ctx, &q)
	return q, nil
}

func (r *QuotationDynamoRepository) markConverted(ctx context.Context, quotationID, orderID, stamp string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tables.Quotations),
		Key:                 stringKey(quotationID),
		UpdateExpression:    aws.String("SET #status = :converted, #order_id = :order_id, #updated_at = :now"),
		ConditionExpression: aws.String("#status = :accepted"),
		ExpressionAttributeNames: map[string]string{
			"#status":     "status",
			"#order_id":   "order_id",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":converted": &types.AttributeValueMemberS{Value: string(entities.QuotationStatusConverted)},
			":accepted":  &types.AttributeValueMemberS{Value: string(entities.QuotationStatusAccepted)},
			":order_id":  &types.AttributeValueMemberS{Value: orderID},
			":now":       &types.AttributeValueMemberS{Value: stamp},
		},
	})
	return err
}

func (r *QuotationDynamoRepository) load(ctx context.Context, id string) (entities.Quotation, bool, error) {
	res, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Quotations),
		Key:       stringKey(id),
	})
	if err != nil {
		return entities.Quotation{}, false, err
	}
	if len(res.Item) == 0 {
		return entities.Quotation{}, false, nil
	}
	var it quotationItem
	if err := attributevalue.UnmarshalMap(res.Item, &it); err != nil {
		return entities.Quotation{}, false, err
	}
	return fromQuotationItem(it), true, nil
}

// hydrate attaches the quoted variant and color. Lookup failures leave them nil.
func (r *QuotationDynamoRepository) hydrate(ctx context.Context, q *entities.Quotation) {
	if r.catalog == nil {
		return
	}
	if q.VariantID != "" {
		v, err := r.catalog.GetVariant(ctx, q.VariantID)
		if err != nil {
			logNested(err, "variant", q.VariantID)
		} else if v.ID != "" {
			q.Variant = &v
		}
	}
	if q.ColorID != "" {
		q.Color = r.catalog.optionalColor(ctx, q.ColorID)
	}
}

func fromQuotationItem(it quotationItem) entities.Quotation {
	return entities.Quotation{
		ID:                 it.ID,
		QuotationNumber:    it.QuotationNumber,
		CustomerID:         it.CustomerID,
		VariantID:          it.VariantID,
		ColorID:            it.ColorID,
		UnitID:             it.UnitID,
		TotalPrice:         parseDecimal(it.TotalPrice),
		DiscountAmount:     parseDecimalPtr(it.DiscountAmount),
		DiscountPercentage: parseDecimalPtr(it.DiscountPercentage),
		QuotationDate:      parseTime(it.QuotationDate),
		ExpiryDate:         parseTime(it.ExpiryDate),
		Status:             entities.QuotationStatus(it.Status).Normalize(),
		Conditions:         it.Conditions,
		RejectionReason:    it.RejectionReason,
		AdjustmentRequest:  it.AdjustmentRequest,
		OrderID:            it.OrderID,
		Notes:              it.Notes,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}

func toQuotationItem(q entities.Quotation) quotationItem {
	return quotationItem{
		ID:                 q.ID,
		QuotationNumber:    q.QuotationNumber,
		CustomerID:         q.CustomerID,
		VariantID:          q.VariantID,
		ColorID:            q.ColorID,
		UnitID:             q.UnitID,
		TotalPrice:         formatDecimal(q.TotalPrice),
		DiscountAmount:     formatDecimalPtr(q.DiscountAmount),
		DiscountPercentage: formatDecimalPtr(q.DiscountPercentage),
		QuotationDate:      formatTime(q.QuotationDate),
		ExpiryDate:         formatTime(q.ExpiryDate),
		Status:             string(q.Status.Normalize()),
		Conditions:         q.Conditions,
		RejectionReason:    q.RejectionReason,
		AdjustmentRequest:  q.AdjustmentRequest,
		OrderID:            q.OrderID,
		Notes:              q.Notes,
		CreatedAt:          formatTime(q.CreatedAt),
		UpdatedAt:          formatTime(q.UpdatedAt),
	}
}
