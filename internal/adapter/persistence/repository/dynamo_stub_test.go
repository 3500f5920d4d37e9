package repository

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// stubDynamo serves GetItem from an in-memory table map and records every
// write. Query, Scan and the write calls can be overridden per test.
type stubDynamo struct {
	mu     sync.Mutex
	items  map[string]map[string]map[string]types.AttributeValue
	gets   map[string]int
	puts   []*dynamodb.PutItemInput
	upds   []*dynamodb.UpdateItemInput
	txs    []*dynamodb.TransactWriteItemsInput
	scans  []*dynamodb.ScanInput
	querys []*dynamodb.QueryInput

	getErr  error
	putErr  error
	updErr  error
	txErr   error
	scanFn  func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
	queryFn func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
}

var _ DynamoAPI = (*stubDynamo)(nil)

func newStubDynamo() *stubDynamo {
	return &stubDynamo{
		items: map[string]map[string]map[string]types.AttributeValue{},
		gets:  map[string]int{},
	}
}

func (s *stubDynamo) seed(table, id string, item any) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		panic(err)
	}
	if s.items[table] == nil {
		s.items[table] = map[string]map[string]types.AttributeValue{}
	}
	s.items[table][id] = av
}

func (s *stubDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	s.gets[*in.TableName+"/"+id]++
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &dynamodb.GetItemOutput{Item: s.items[*in.TableName][id]}, nil
}

func (s *stubDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts = append(s.puts, in)
	return &dynamodb.PutItemOutput{}, s.putErr
}

func (s *stubDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upds = append(s.upds, in)
	return &dynamodb.UpdateItemOutput{}, s.updErr
}

func (s *stubDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	s.mu.Lock()
	s.querys = append(s.querys, in)
	fn := s.queryFn
	s.mu.Unlock()
	if fn == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return fn(in)
}

func (s *stubDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	s.mu.Lock()
	s.scans = append(s.scans, in)
	fn := s.scanFn
	s.mu.Unlock()
	if fn == nil {
		return &dynamodb.ScanOutput{}, nil
	}
	return fn(in)
}

func (s *stubDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, in)
	return &dynamodb.TransactWriteItemsOutput{}, s.txErr
}

func marshalItems(items ...any) []map[string]types.AttributeValue {
	out := make([]map[string]types.AttributeValue, 0, len(items))
	for _, it := range items {
		av, err := attributevalue.MarshalMap(it)
		if err != nil {
			panic(err)
		}
		out = append(out, av)
	}
	return out
}

var testTables = Tables{
	Units:      "units",
	Variants:   "variants",
	Models:     "models",
	Brands:     "brands",
	Colors:     "colors",
	Quotations: "quotations",
	Orders:     "orders",
	Payments:   "payments",
}
