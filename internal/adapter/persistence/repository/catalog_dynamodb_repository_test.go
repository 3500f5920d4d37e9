package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"evdealer/internal/domain/entities"
)

func seedCatalog(ddb *stubDynamo) {
	ddb.seed("units", "u-1", unitItem{
		ID:            "u-1",
		Status:        "available",
		VariantID:     "v-1",
		ColorID:       "c-1",
		VehicleImages: `{"urls":["/u1.jpg"]}`,
		MainImages:    []string{"/main.jpg"},
		Price:         "900000000",
	})
	ddb.seed("variants", "v-1", variantItem{ID: "v-1", Name: "Plus", ModelID: "m-1", BasePrice: "850000000", IsActive: true})
	ddb.seed("models", "m-1", modelItem{ID: "m-1", Name: "VF8", BrandID: "b-1", ModelImagePath: "/m.png"})
	ddb.seed("brands", "b-1", brandItem{ID: "b-1", Name: "VinFast", LogoPath: "/logo.svg"})
	ddb.seed("colors", "c-1", colorItem{ID: "c-1", Name: "Red", ColorSwatchURL: "https://s.test/red.png"})
}

func TestCatalogRepository_GetUnitHydrates(t *testing.T) {
	ddb := newStubDynamo()
	seedCatalog(ddb)
	repo := NewCatalogDynamoRepository(ddb, testTables)

	u, err := repo.GetUnit(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := u.AttachedVariant()
	if v == nil || v.ID != "v-1" || v.Model == nil || v.Model.ID != "m-1" {
		t.Fatalf("expected variant with model, got %+v", u.Variant)
	}
	if u.Color == nil || u.Color.ID != "c-1" {
		t.Fatalf("expected color, got %+v", u.Color)
	}
	if string(u.VehicleImages) != `{"urls":["/u1.jpg"]}` {
		t.Fatalf("blob must be kept as stored, got %q", u.VehicleImages)
	}
	if len(u.MainImages) != 1 || u.MainImages[0].URL != "/main.jpg" {
		t.Fatalf("unexpected main images %+v", u.MainImages)
	}
	if u.Price.String() != "900000000" {
		t.Fatalf("unexpected price %s", u.Price)
	}
}

func TestCatalogRepository_GetUnitMissingNested(t *testing.T) {
	ddb := newStubDynamo()
	ddb.seed("units", "u-2", unitItem{ID: "u-2", VariantID: "gone", ColorID: "gone", Price: "1"})
	repo := NewCatalogDynamoRepository(ddb, testTables)

	u, err := repo.GetUnit(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.VariantID() != "gone" || u.AttachedVariant() != nil || u.Color != nil {
		t.Fatalf("missing nested records must stay unattached: %+v", u)
	}
}

func TestCatalogRepository_NotFoundIsZeroValue(t *testing.T) {
	repo := NewCatalogDynamoRepository(newStubDynamo(), testTables)

	u, err := repo.GetUnit(context.Background(), "nope")
	if err != nil || u.ID != "" {
		t.Fatalf("expected zero unit, got %+v (%v)", u, err)
	}
	b, err := repo.GetBrand(context.Background(), "nope")
	if err != nil || b.ID != "" {
		t.Fatalf("expected zero brand, got %+v (%v)", b, err)
	}
}

func TestCatalogRepository_GetError(t *testing.T) {
	ddb := newStubDynamo()
	ddb.getErr = errors.New("throttled")
	repo := NewCatalogDynamoRepository(ddb, testTables)

	if _, err := repo.GetVariant(context.Background(), "v-1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCatalogRepository_GetModelAttachesBrand(t *testing.T) {
	ddb := newStubDynamo()
	seedCatalog(ddb)
	repo := NewCatalogDynamoRepository(ddb, testTables)

	m, err := repo.GetModel(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Brand == nil || m.Brand.Name != "VinFast" {
		t.Fatalf("expected brand, got %+v", m.Brand)
	}
}

func TestCatalogRepository_ListInventory(t *testing.T) {
	ddb := newStubDynamo()
	seedCatalog(ddb)
	pages := [][]map[string]types.AttributeValue{
		marshalItems(unitItem{ID: "u-1", VariantID: "v-1", Price: "1"}, unitItem{ID: "u-2", VariantID: "v-1", Price: "2"}),
		marshalItems(unitItem{ID: "u-3", Price: "3"}),
	}
	ddb.scanFn = func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
		if in.ExclusiveStartKey == nil {
			return &dynamodb.ScanOutput{Items: pages[0], LastEvaluatedKey: stringKey("u-2")}, nil
		}
		return &dynamodb.ScanOutput{Items: pages[1]}, nil
	}
	repo := NewCatalogDynamoRepository(ddb, testTables)

	units, err := repo.ListInventory(context.Background(), entities.InventoryFilter{Status: entities.UnitStatusAvailable, VariantID: " v-1 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 units across pages, got %d", len(units))
	}
	if units[0].AttachedVariant() == nil || units[1].AttachedVariant() != units[0].AttachedVariant() {
		t.Fatalf("expected shared variant lookup, got %+v / %+v", units[0].Variant, units[1].Variant)
	}
	if ddb.gets["variants/v-1"] != 1 {
		t.Fatalf("variant fetched %d times, want 1", ddb.gets["variants/v-1"])
	}

	first := ddb.scans[0]
	if first.FilterExpression == nil || !strings.Contains(*first.FilterExpression, "#status = :status AND #variant_id = :variant_id") {
		t.Fatalf("unexpected filter %v", first.FilterExpression)
	}
	if got := first.ExpressionAttributeValues[":variant_id"].(*types.AttributeValueMemberS).Value; got != "v-1" {
		t.Fatalf("filter value must be trimmed, got %q", got)
	}
}

func TestCatalogRepository_ListVariantsAndColors(t *testing.T) {
	ddb := newStubDynamo()
	ddb.scanFn = func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
		switch *in.TableName {
		case "variants":
			return &dynamodb.ScanOutput{Items: marshalItems(variantItem{ID: "v-1", BasePrice: "10", IsActive: true}, variantItem{ID: "v-2", BasePrice: "bad"})}, nil
		case "colors":
			return &dynamodb.ScanOutput{Items: marshalItems(colorItem{ID: "c-1", HexCode: "#fff"})}, nil
		}
		return &dynamodb.ScanOutput{}, nil
	}
	repo := NewCatalogDynamoRepository(ddb, testTables)

	variants, err := repo.ListVariants(context.Background())
	if err != nil || len(variants) != 2 {
		t.Fatalf("unexpected variants %+v (%v)", variants, err)
	}
	if !variants[1].BasePrice.IsZero() {
		t.Fatalf("unparseable price must read as zero, got %s", variants[1].BasePrice)
	}
	colors, err := repo.ListColors(context.Background())
	if err != nil || len(colors) != 1 || colors[0].HexCode != "#fff" {
		t.Fatalf("unexpected colors %+v (%v)", colors, err)
	}
}
