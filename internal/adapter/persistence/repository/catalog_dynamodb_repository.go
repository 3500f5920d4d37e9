package repository

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"evdealer/internal/domain/entities"
	"evdealer/internal/usecase/interfaces"
)

// unitItem keeps the photo blobs exactly as stored; decoding happens at
// read time in the media resolver.
type unitItem struct {
	ID              string   `dynamodbav:"id"`
	VIN             string   `dynamodbav:"vin,omitempty"`
	Status          string   `dynamodbav:"status"`
	VariantID       string   `dynamodbav:"variant_id,omitempty"`
	ColorID         string   `dynamodbav:"color_id,omitempty"`
	VehicleImages   string   `dynamodbav:"vehicle_images,omitempty"`
	InteriorImages  string   `dynamodbav:"interior_images,omitempty"`
	ExteriorImages  string   `dynamodbav:"exterior_images,omitempty"`
	VariantImageURL string   `dynamodbav:"variant_image_url,omitempty"`
	MainImages      []string `dynamodbav:"main_images,omitempty"`
	Price           string   `dynamodbav:"price"`
}

type variantItem struct {
	ID               string  `dynamodbav:"id"`
	Name             string  `dynamodbav:"name"`
	ModelID          string  `dynamodbav:"model_id,omitempty"`
	TopSpeed         float64 `dynamodbav:"top_speed,omitempty"`
	BatteryCapacity  float64 `dynamodbav:"battery_capacity,omitempty"`
	Power            float64 `dynamodbav:"power,omitempty"`
	Acceleration     float64 `dynamodbav:"acceleration,omitempty"`
	Range            float64 `dynamodbav:"range,omitempty"`
	ChargingTimeAC   float64 `dynamodbav:"charging_time_ac,omitempty"`
	ChargingTimeDC   float64 `dynamodbav:"charging_time_dc,omitempty"`
	BasePrice        string  `dynamodbav:"base_price"`
	IsActive         bool    `dynamodbav:"is_active"`
	VariantImageURL  string  `dynamodbav:"variant_image_url,omitempty"`
	VariantImagePath string  `dynamodbav:"variant_image_path,omitempty"`
}

type modelItem struct {
	ID             string `dynamodbav:"id"`
	Name           string `dynamodbav:"name"`
	BrandID        string `dynamodbav:"brand_id,omitempty"`
	Segment        string `dynamodbav:"segment,omitempty"`
	ModelImageURL  string `dynamodbav:"model_image_url,omitempty"`
	ModelImagePath string `dynamodbav:"model_image_path,omitempty"`
}

type brandItem struct {
	ID       string `dynamodbav:"id"`
	Name     string `dynamodbav:"name"`
	Country  string `dynamodbav:"country,omitempty"`
	LogoURL  string `dynamodbav:"logo_url,omitempty"`
	LogoPath string `dynamodbav:"logo_path,omitempty"`
}

type colorItem struct {
	ID              string `dynamodbav:"id"`
	Name            string `dynamodbav:"name"`
	HexCode         string `dynamodbav:"hex_code,omitempty"`
	ColorSwatchURL  string `dynamodbav:"color_swatch_url,omitempty"`
	ColorSwatchPath string `dynamodbav:"color_swatch_path,omitempty"`
}

// CatalogDynamoRepository reads units, variants, models, brands and colors.
//
// Nested records are hydrated best-effort: a failed or empty lookup leaves
// the nested pointer nil and is logged, never returned.
type CatalogDynamoRepository struct {
	ddb    DynamoAPI
	tables Tables
}

var _ interfaces.ICatalogService = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb DynamoAPI, tables Tables) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{ddb: ddb, tables: tables}
}

func (r *CatalogDynamoRepository) GetUnit(ctx context.Context, id string) (entities.Unit, error) {
	var it unitItem
	found, err := r.get(ctx, r.tables.Units, id, &it)
	if err != nil || !found {
		return entities.Unit{}, err
	}
	u := fromUnitItem(it)
	if it.VariantID != "" {
		if v := r.optionalVariant(ctx, it.VariantID); v != nil {
			u.Variant.Variant = v
		}
	}
	if it.ColorID != "" {
		u.Color = r.optionalColor(ctx, it.ColorID)
	}
	return u, nil
}

func (r *CatalogDynamoRepository) GetVariant(ctx context.Context, id string) (entities.Variant, error) {
	var it variantItem
	found, err := r.get(ctx, r.tables.Variants, id, &it)
	if err != nil || !found {
		return entities.Variant{}, err
	}
	v := fromVariantItem(it)
	if it.ModelID != "" {
		v.Model = r.optionalModel(ctx, it.ModelID)
	}
	return v, nil
}

func (r *CatalogDynamoRepository) GetModel(ctx context.Context, id string) (entities.Model, error) {
	var it modelItem
	found, err := r.get(ctx, r.tables.Models, id, &it)
	if err != nil || !found {
		return entities.Model{}, err
	}
	m := fromModelItem(it)
	if it.BrandID != "" {
		b, err := r.GetBrand(ctx, it.BrandID)
		if err != nil {
			logNested(err, "brand", it.BrandID)
		} else if b.ID != "" {
			m.Brand = &b
		}
	}
	return m, nil
}

func (r *CatalogDynamoRepository) GetBrand(ctx context.Context, id string) (entities.Brand, error) {
	var it brandItem
	found, err := r.get(ctx, r.tables.Brands, id, &it)
	if err != nil || !found {
		return entities.Brand{}, err
	}
	return entities.Brand{ID: it.ID, Name: it.Name, Country: it.Country, LogoURL: it.LogoURL, LogoPath: it.LogoPath}, nil
}

func (r *CatalogDynamoRepository) ListColors(ctx context.Context) ([]entities.Color, error) {
	var items []colorItem
	if err := r.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tables.Colors)}, &items); err != nil {
		return nil, err
	}
	out := make([]entities.Color, 0, len(items))
	for _, it := range items {
		out = append(out, fromColorItem(it))
	}
	return out, nil
}

func (r *CatalogDynamoRepository) ListVariants(ctx context.Context) ([]entities.Variant, error) {
	var items []variantItem
	if err := r.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tables.Variants)}, &items); err != nil {
		return nil, err
	}
	out := make([]entities.Variant, 0, len(items))
	for _, it := range items {
		out = append(out, fromVariantItem(it))
	}
	return out, nil
}

// ListInventory scans the units table. Each distinct variant is fetched once
// per call so list views can resolve variant and model images.
func (r *CatalogDynamoRepository) ListInventory(ctx context.Context, filter entities.InventoryFilter) ([]entities.Unit, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tables.Units)}

	var conds []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	if s := strings.TrimSpace(string(filter.Status)); s != "" {
		conds = append(conds, "#status = :status")
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: s}
	}
	if v := strings.TrimSpace(filter.VariantID); v != "" {
		conds = append(conds, "#variant_id = :variant_id")
		names["#variant_id"] = "variant_id"
		values[":variant_id"] = &types.AttributeValueMemberS{Value: v}
	}
	if len(conds) > 0 {
		input.FilterExpression = aws.String(strings.Join(conds, " AND "))
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	var items []unitItem
	if err := r.scan(ctx, input, &items); err != nil {
		return nil, err
	}

	variants := map[string]*entities.Variant{}
	out := make([]entities.Unit, 0, len(items))
	for _, it := range items {
		u := fromUnitItem(it)
		if it.VariantID != "" {
			v, seen := variants[it.VariantID]
			if !seen {
				v = r.optionalVariant(ctx, it.VariantID)
				variants[it.VariantID] = v
			}
			u.Variant.Variant = v
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *CatalogDynamoRepository) optionalVariant(ctx context.Context, id string) *entities.Variant {
	v, err := r.GetVariant(ctx, id)
	if err != nil {
		logNested(err, "variant", id)
		return nil
	}
	if v.ID == "" {
		return nil
	}
	return &v
}

func (r *CatalogDynamoRepository) optionalModel(ctx context.Context, id string) *entities.Model {
	var it modelItem
	found, err := r.get(ctx, r.tables.Models, id, &it)
	if err != nil {
		logNested(err, "model", id)
		return nil
	}
	if !found {
		return nil
	}
	m := fromModelItem(it)
	return &m
}

func (r *CatalogDynamoRepository) optionalColor(ctx context.Context, id string) *entities.Color {
	var it colorItem
	found, err := r.get(ctx, r.tables.Colors, id, &it)
	if err != nil {
		logNested(err, "color", id)
		return nil
	}
	if !found {
		return nil
	}
	c := fromColorItem(it)
	return &c
}

func (r *CatalogDynamoRepository) get(ctx context.Context, table, id string, out any) (bool, error) {
	res, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       stringKey(id),
	})
	if err != nil {
		return false, err
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *CatalogDynamoRepository) scan(ctx context.Context, input *dynamodb.ScanInput, out any) error {
	var raw []map[string]types.AttributeValue
	p := dynamodb.NewScanPaginator(r.ddb, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return err
		}
		raw = append(raw, page.Items...)
	}
	return attributevalue.UnmarshalListOfMaps(raw, out)
}

func logNested(err error, kind, id string) {
	log.Warn().Err(err).Str("component", "catalog.repository").Str("kind", kind).Str("id", id).Msg("nested lookup failed")
}

func fromUnitItem(it unitItem) entities.Unit {
	u := entities.Unit{
		ID:              it.ID,
		VIN:             it.VIN,
		Status:          entities.UnitStatus(it.Status),
		VehicleImages:   entities.RawMedia(it.VehicleImages),
		InteriorImages:  entities.RawMedia(it.InteriorImages),
		ExteriorImages:  entities.RawMedia(it.ExteriorImages),
		VariantImageURL: it.VariantImageURL,
		Price:           parseDecimal(it.Price),
	}
	if it.VariantID != "" {
		u.Variant = &entities.VariantRef{ID: it.VariantID}
	}
	for _, m := range it.MainImages {
		u.MainImages = append(u.MainImages, entities.MediaRef{URL: m})
	}
	return u
}

func fromVariantItem(it variantItem) entities.Variant {
	return entities.Variant{
		ID:               it.ID,
		Name:             it.Name,
		ModelID:          it.ModelID,
		TopSpeed:         it.TopSpeed,
		BatteryCapacity:  it.BatteryCapacity,
		Power:            it.Power,
		Acceleration:     it.Acceleration,
		Range:            it.Range,
		ChargingTimeAC:   it.ChargingTimeAC,
		ChargingTimeDC:   it.ChargingTimeDC,
		BasePrice:        parseDecimal(it.BasePrice),
		IsActive:         it.IsActive,
		VariantImageURL:  it.VariantImageURL,
		VariantImagePath: it.VariantImagePath,
	}
}

func fromModelItem(it modelItem) entities.Model {
	return entities.Model{
		ID:             it.ID,
		Name:           it.Name,
		BrandID:        it.BrandID,
		Segment:        it.Segment,
		ModelImageURL:  it.ModelImageURL,
		ModelImagePath: it.ModelImagePath,
	}
}

func fromColorItem(it colorItem) entities.Color {
	return entities.Color{
		ID:              it.ID,
		Name:            it.Name,
		HexCode:         it.HexCode,
		ColorSwatchURL:  it.ColorSwatchURL,
		ColorSwatchPath: it.ColorSwatchPath,
	}
}
