package response

import (
	"github.com/shopspring/decimal"

	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/media"
	"evdealer/internal/usecase"
)

type VariantResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ModelID         string          `json:"modelId,omitempty"`
	ModelName       string          `json:"modelName,omitempty"`
	TopSpeed        float64         `json:"topSpeed,omitempty"`
	BatteryCapacity float64         `json:"batteryCapacity,omitempty"`
	Power           float64         `json:"power,omitempty"`
	Acceleration    float64         `json:"acceleration,omitempty"`
	Range           float64         `json:"range,omitempty"`
	ChargingTimeAC  float64         `json:"chargingTimeAc,omitempty"`
	ChargingTimeDC  float64         `json:"chargingTimeDc,omitempty"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	IsActive        bool            `json:"isActive"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	ImageSource     media.Source    `json:"imageSource,omitempty"`
}

type ColorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HexCode  string `json:"hexCode,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type ModelResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BrandID  string `json:"brandId,omitempty"`
	Segment  string `json:"segment,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type BrandResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// UnitResponse renders an inventory unit. PrimaryImage is empty when the
// client must show a placeholder.
type UnitResponse struct {
	ID           string           `json:"id"`
	VIN          string           `json:"vin,omitempty"`
	Status       string           `json:"status"`
	VariantID    string           `json:"variantId,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	PrimaryImage string           `json:"primaryImage,omitempty"`
	ImageSource  media.Source     `json:"imageSource,omitempty"`
	Images       []string         `json:"images"`
	Gallery      *media.Gallery   `json:"gallery,omitempty"`
	Variant      *VariantResponse `json:"variant,omitempty"`
	Color        *ColorResponse   `json:"color,omitempty"`
}

func FromVariantView(v usecase.VariantView) VariantResponse {
	r := fromVariant(v.Variant)
	r.ImageURL = v.Image.URL
	r.ImageSource = v.Image.Source
	return r
}

func FromColorView(v usecase.ColorView) ColorResponse {
	return ColorResponse{ID: v.Color.ID, Name: v.Color.Name, HexCode: v.Color.HexCode, ImageURL: v.Image.URL}
}

func FromModelView(v usecase.ModelView) ModelResponse {
	return ModelResponse{ID: v.Model.ID, Name: v.Model.Name, BrandID: v.Model.BrandID, Segment: v.Model.Segment, ImageURL: v.Image.URL}
}

func FromBrandView(v usecase.BrandView) BrandResponse {
	return BrandResponse{ID: v.Brand.ID, Name: v.Brand.Name, Country: v.Brand.Country, LogoURL: v.LogoURL}
}

// FromUnitView renders a unit; withGallery adds the grouped photo blobs used
// by detail pages.
func FromUnitView(v usecase.UnitView, withGallery bool) UnitResponse {
	images := v.Images
	if images == nil {
		images = []string{}
	}
	r := UnitResponse{
		ID:           v.Unit.ID,
		VIN:          v.Unit.VIN,
		Status:       string(v.Unit.Status),
		VariantID:    v.Unit.VariantID(),
		Price:        v.Unit.Price,
		PrimaryImage: v.Primary.URL,
		ImageSource:  v.Primary.Source,
		Images:       images,
	}
	if withGallery {
		g := v.Gallery
		r.Gallery = &g
	}
	if v.Variant != nil {
		vr := fromVariant(*v.Variant)
		r.Variant = &vr
	}
	if v.Unit.Color != nil {
		c := v.Unit.Color
		r.Color = &ColorResponse{ID: c.ID, Name: c.Name, HexCode: c.HexCode}
	}
	return r
}

func fromVariant(v entities.Variant) VariantResponse {
	r := VariantResponse{
		ID:              v.ID,
		Name:            v.Name,
		ModelID:         v.ModelID,
		TopSpeed:        v.TopSpeed,
		BatteryCapacity: v.BatteryCapacity,
		Power:           v.Power,
		Acceleration:    v.Acceleration,
		Range:           v.Range,
		ChargingTimeAC:  v.ChargingTimeAC,
		ChargingTimeDC:  v.ChargingTimeDC,
		BasePrice:       v.BasePrice,
		IsActive:        v.IsActive,
	}
	if v.Model != nil {
		if r.ModelID == "" {
			r.ModelID = v.Model.ID
		}
		r.ModelName = v.Model.Name
	}
	return r
}
