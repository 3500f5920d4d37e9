// Package media resolves the display images of catalog records.
//
// Resolution is a pure read-time transform: the same record always yields the
// same URLs, missing or malformed data yields fewer URLs, and nothing here
// returns an error. Callers render a placeholder for NoImage.
package media

import (
	"strings"

	"evdealer/internal/domain/entities"
)

// DefaultBaseOrigin is used when no media origin is configured.
const DefaultBaseOrigin = "http://localhost:8080"

// Source names the field an image URL was resolved from, in priority order.
type Source string

const (
	SourceNone           Source = ""
	SourceVehicleImages  Source = "vehicle_images"
	SourceUnitVariantURL Source = "variant_image_url"
	SourceVariant        Source = "variant"
	SourceMainImages     Source = "main_images"
	SourceColorSwatch    Source = "color_swatch"
	SourceModel          Source = "model"
)

// Image is a resolved primary image.
type Image struct {
	URL    string `json:"url,omitempty"`
	Source Source `json:"source,omitempty"`
}

// NoImage is returned when no source yields a URL.
var NoImage = Image{}

func (i Image) IsPlaceholder() bool { return i.URL == "" }

type candidates func(u entities.Unit, v *entities.Variant) []string

type strategy struct {
	source  Source
	extract candidates
}

// priority is the fixed resolution order for a unit.
var priority = []strategy{
	{SourceVehicleImages, func(u entities.Unit, _ *entities.Variant) []string {
		return ParseBlob(u.VehicleImages).Entries
	}},
	{SourceUnitVariantURL, func(u entities.Unit, _ *entities.Variant) []string {
		return nonEmpty(u.VariantImageURL)
	}},
	{SourceVariant, func(_ entities.Unit, v *entities.Variant) []string {
		return variantCandidates(v)
	}},
	{SourceMainImages, func(u entities.Unit, _ *entities.Variant) []string {
		out := make([]string, 0, len(u.MainImages))
		for _, ref := range u.MainImages {
			out = append(out, ref.URL)
		}
		return out
	}},
	{SourceColorSwatch, func(u entities.Unit, _ *entities.Variant) []string {
		return colorCandidates(u.Color)
	}},
	{SourceModel, func(_ entities.Unit, v *entities.Variant) []string {
		if v == nil {
			return nil
		}
		return modelCandidates(v.Model)
	}},
}

// Resolver turns catalog media fields into absolute URLs against one origin.
type Resolver struct {
	baseOrigin string
}

func NewResolver(baseOrigin string) *Resolver {
	origin := strings.TrimRight(strings.TrimSpace(baseOrigin), "/")
	if origin == "" {
		origin = DefaultBaseOrigin
	}
	return &Resolver{baseOrigin: origin}
}

func (r *Resolver) BaseOrigin() string { return r.baseOrigin }

// Normalize makes a stored media value absolute. Values that already carry an
// http(s) scheme pass through, so normalizing twice is a no-op.
func (r *Resolver) Normalize(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", false
	}
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return v, true
	}
	if strings.HasPrefix(v, "/") {
		return r.baseOrigin + v, true
	}
	return r.baseOrigin + "/" + v, true
}

// Primary returns the first URL of the first source that yields one.
// related overrides the unit's inline variant when given.
func (r *Resolver) Primary(u entities.Unit, related *entities.Variant) Image {
	v := pickVariant(u, related)
	for _, s := range priority {
		for _, raw := range s.extract(u, v) {
			if url, ok := r.Normalize(raw); ok {
				return Image{URL: url, Source: s.source}
			}
		}
	}
	return NoImage
}

// Resolve returns every URL of every source, in priority order, for gallery
// views. Duplicates keep their first position.
func (r *Resolver) Resolve(u entities.Unit, related *entities.Variant) []string {
	v := pickVariant(u, related)
	var out []string
	seen := make(map[string]struct{})
	for _, s := range priority {
		out = r.appendNormalized(out, seen, s.extract(u, v))
	}
	return out
}

// Gallery groups the photo blobs of a unit for detail views.
type Gallery struct {
	Vehicle  []string `json:"vehicle"`
	Exterior []string `json:"exterior"`
	Interior []string `json:"interior"`
}

func (r *Resolver) Gallery(u entities.Unit) Gallery {
	return Gallery{
		Vehicle:  r.blobURLs(u.VehicleImages),
		Exterior: r.blobURLs(u.ExteriorImages),
		Interior: r.blobURLs(u.InteriorImages),
	}
}

// Variant resolves a variant's own image, falling back to its model's.
func (r *Resolver) Variant(v *entities.Variant) Image {
	if url, ok := r.first(variantCandidates(v)); ok {
		return Image{URL: url, Source: SourceVariant}
	}
	if v != nil {
		if url, ok := r.first(modelCandidates(v.Model)); ok {
			return Image{URL: url, Source: SourceModel}
		}
	}
	return NoImage
}

func (r *Resolver) Color(c *entities.Color) Image {
	if url, ok := r.first(colorCandidates(c)); ok {
		return Image{URL: url, Source: SourceColorSwatch}
	}
	return NoImage
}

func (r *Resolver) Model(m *entities.Model) Image {
	if url, ok := r.first(modelCandidates(m)); ok {
		return Image{URL: url, Source: SourceModel}
	}
	return NoImage
}

// Brand resolves a brand logo (logoUrl then logoPath).
func (r *Resolver) Brand(b *entities.Brand) string {
	if b == nil {
		return ""
	}
	url, _ := r.first(preferred(b.LogoURL, b.LogoPath))
	return url
}

func (r *Resolver) blobURLs(raw entities.RawMedia) []string {
	return r.appendNormalized([]string{}, make(map[string]struct{}), ParseBlob(raw).Entries)
}

func (r *Resolver) appendNormalized(out []string, seen map[string]struct{}, values []string) []string {
	for _, raw := range values {
		url, ok := r.Normalize(raw)
		if !ok {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, url)
	}
	return out
}

func (r *Resolver) first(values []string) (string, bool) {
	for _, raw := range values {
		if url, ok := r.Normalize(raw); ok {
			return url, true
		}
	}
	return "", false
}

func pickVariant(u entities.Unit, related *entities.Variant) *entities.Variant {
	if related != nil {
		return related
	}
	return u.AttachedVariant()
}

func variantCandidates(v *entities.Variant) []string {
	if v == nil {
		return nil
	}
	return preferred(v.VariantImageURL, v.VariantImagePath)
}

func colorCandidates(c *entities.Color) []string {
	if c == nil {
		return nil
	}
	return preferred(c.ColorSwatchURL, c.ColorSwatchPath)
}

func modelCandidates(m *entities.Model) []string {
	if m == nil {
		return nil
	}
	return preferred(m.ModelImageURL, m.ModelImagePath)
}

// preferred applies the two-field rule: the url field wins, the path field is
// the fallback. At most one candidate comes back.
func preferred(url, path string) []string {
	if strings.TrimSpace(url) != "" {
		return []string{url}
	}
	return nonEmpty(path)
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
