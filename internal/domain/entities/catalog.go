package entities

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// UnitStatus is the sellable state of an inventory unit.
type UnitStatus string

const (
	UnitStatusAvailable UnitStatus = "available"
	UnitStatusReserved  UnitStatus = "reserved"
	UnitStatusSold      UnitStatus = "sold"
)

// RawMedia holds a media field exactly as the catalog stored it. The content
// may be a JSON document ({"urls": [...]} or [...]), a JSON-encoded string, or
// a bare path. It is never interpreted here; see the media package.
type RawMedia string

// UnmarshalJSON accepts either a JSON string (its content is kept) or any
// other JSON value (its raw text is kept).
func (m *RawMedia) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*m = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*m = RawMedia(s)
		return nil
	}
	*m = RawMedia(trimmed)
	return nil
}

// MediaRef is one entry of a mainImages list: either a string or an object
// carrying a url. Entries of any other shape decode to an empty ref.
type MediaRef struct {
	URL string `json:"url"`
}

func (r *MediaRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	r.URL = ""
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &r.URL)
	case '{':
		var obj struct {
			URL any `json:"url"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil
		}
		if s, ok := obj.URL.(string); ok {
			r.URL = s
		}
	}
	return nil
}

// Brand is a vehicle manufacturer.
type Brand struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Country  string `json:"country,omitempty"`
	LogoURL  string `json:"logoUrl,omitempty"`
	LogoPath string `json:"logoPath,omitempty"`
}

// Model is a vehicle model of a brand.
type Model struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	BrandID        string `json:"brandId,omitempty"`
	Brand          *Brand `json:"brand,omitempty"`
	Segment        string `json:"segment,omitempty"`
	ModelImageURL  string `json:"modelImageUrl,omitempty"`
	ModelImagePath string `json:"modelImagePath,omitempty"`
}

// Color is a paint option with its swatch image.
type Color struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	HexCode         string `json:"hexCode,omitempty"`
	ColorSwatchURL  string `json:"colorSwatchUrl,omitempty"`
	ColorSwatchPath string `json:"colorSwatchPath,omitempty"`
}

// Variant is a purchasable configuration of a model.
type Variant struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ModelID          string          `json:"modelId,omitempty"`
	Model            *Model          `json:"model,omitempty"`
	TopSpeed         float64         `json:"topSpeed,omitempty"`
	BatteryCapacity  float64         `json:"batteryCapacity,omitempty"`
	Power            float64         `json:"power,omitempty"`
	Acceleration     float64         `json:"acceleration,omitempty"`
	Range            float64         `json:"range,omitempty"`
	ChargingTimeAC   float64         `json:"chargingTimeAc,omitempty"`
	ChargingTimeDC   float64         `json:"chargingTimeDc,omitempty"`
	BasePrice        decimal.Decimal `json:"basePrice"`
	IsActive         bool            `json:"isActive"`
	VariantImageURL  string          `json:"variantImageUrl,omitempty"`
	VariantImagePath string          `json:"variantImagePath,omitempty"`
}

// UnmarshalJSON accepts the legacy priceBase spelling of basePrice.
func (v *Variant) UnmarshalJSON(data []byte) error {
	type plain Variant
	aux := struct {
		*plain
		PriceBase *decimal.Decimal `json:"priceBase"`
	}{plain: (*plain)(v)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if v.BasePrice.IsZero() && aux.PriceBase != nil {
		v.BasePrice = *aux.PriceBase
	}
	return nil
}

// VariantRef is a unit's variant reference. The catalog sends either the
// inline variant object or its bare id.
type VariantRef struct {
	ID      string
	Variant *Variant
}

func (r *VariantRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*r = VariantRef{}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &r.ID)
	case '{':
		var v Variant
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		r.ID = v.ID
		r.Variant = &v
		return nil
	default:
		// numeric ids
		r.ID = strings.Trim(string(trimmed), `"`)
		return nil
	}
}

func (r VariantRef) MarshalJSON() ([]byte, error) {
	if r.Variant != nil {
		return json.Marshal(r.Variant)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// Unit is one sellable inventory record.
type Unit struct {
	ID              string          `json:"id"`
	VIN             string          `json:"vin,omitempty"`
	Status          UnitStatus      `json:"status"`
	Variant         *VariantRef     `json:"variant,omitempty"`
	Color           *Color          `json:"color,omitempty"`
	VehicleImages   RawMedia        `json:"vehicleImages,omitempty"`
	InteriorImages  RawMedia        `json:"interiorImages,omitempty"`
	ExteriorImages  RawMedia        `json:"exteriorImages,omitempty"`
	VariantImageURL string          `json:"variantImageUrl,omitempty"`
	MainImages      []MediaRef      `json:"mainImages,omitempty"`
	Price           decimal.Decimal `json:"price"`
}

// AttachedVariant returns the inline variant object, if the catalog sent one.
func (u Unit) AttachedVariant() *Variant {
	if u.Variant == nil {
		return nil
	}
	return u.Variant.Variant
}

// VariantID returns the referenced variant id whatever shape it came in.
func (u Unit) VariantID() string {
	if u.Variant == nil {
		return ""
	}
	if u.Variant.ID != "" {
		return u.Variant.ID
	}
	if u.Variant.Variant != nil {
		return u.Variant.Variant.ID
	}
	return ""
}

// InventoryFilter narrows ListInventory.
type InventoryFilter struct {
	Status    UnitStatus
	VariantID string
}
