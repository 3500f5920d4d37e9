package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/errs"
	"evdealer/internal/domain/media"
	"evdealer/internal/usecase/interfaces"
)

var (
	ErrInvalidCatalogID = errs.Validation("invalid catalog id")
	ErrUnitNotFound     = errs.NotFound("unit not found")
	ErrVariantNotFound  = errs.NotFound("variant not found")
	ErrModelNotFound    = errs.NotFound("model not found")
	ErrBrandNotFound    = errs.NotFound("brand not found")
)

const catalogComponent = "catalog.usecase"

type ICatalogUseCase interface {
	GetUnit(ctx context.Context, id string) (UnitView, error)
	ListInventory(ctx context.Context, filter entities.InventoryFilter) ([]UnitView, error)
	GetVariant(ctx context.Context, id string) (VariantView, error)
	ListVariants(ctx context.Context, activeOnly bool) ([]VariantView, error)
	ListColors(ctx context.Context) ([]ColorView, error)
	GetModel(ctx context.Context, id string) (ModelView, error)
	GetBrand(ctx context.Context, id string) (BrandView, error)
}

// UnitView carries a unit with its resolved media. Images is empty when no
// source yields a URL and Primary is then media.NoImage.
type UnitView struct {
	Unit    entities.Unit
	Variant *entities.Variant
	Primary media.Image
	Images  []string
	Gallery media.Gallery
}

type VariantView struct {
	Variant entities.Variant
	Image   media.Image
}

type ColorView struct {
	Color entities.Color
	Image media.Image
}

type ModelView struct {
	Model entities.Model
	Image media.Image
}

type BrandView struct {
	Brand   entities.Brand
	LogoURL string
}

type CatalogUseCase struct {
	service  interfaces.ICatalogService
	resolver *media.Resolver
}

var _ ICatalogUseCase = (*CatalogUseCase)(nil)

func NewCatalogUseCase(service interfaces.ICatalogService, resolver *media.Resolver) *CatalogUseCase {
	if resolver == nil {
		resolver = media.NewResolver("")
	}
	return &CatalogUseCase{service: service, resolver: resolver}
}

// GetUnit returns a unit with its media resolved. A unit that only references
// its variant by id gets the variant fetched; a failed or empty lookup leaves
// the view without it.
func (uc *CatalogUseCase) GetUnit(ctx context.Context, id string) (UnitView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return UnitView{}, ErrInvalidCatalogID
	}
	if err := uc.ready(); err != nil {
		return UnitView{}, err
	}
	u, err := uc.service.GetUnit(ctx, id)
	if err != nil {
		return UnitView{}, errs.Transport(err)
	}
	if u.ID == "" {
		return UnitView{}, ErrUnitNotFound
	}

	related := u.AttachedVariant()
	if related == nil && u.VariantID() != "" {
		v, err := uc.service.GetVariant(ctx, u.VariantID())
		switch {
		case err != nil:
			log.Warn().Err(err).Str("component", catalogComponent).Str("unit_id", u.ID).Str("variant_id", u.VariantID()).Msg("variant lookup failed")
		case v.ID != "":
			related = &v
		}
	}

	view := uc.unitView(u, related)
	view.Gallery = uc.resolver.Gallery(u)
	return view, nil
}

func (uc *CatalogUseCase) ListInventory(ctx context.Context, filter entities.InventoryFilter) ([]UnitView, error) {
	if err := uc.ready(); err != nil {
		return nil, err
	}
	units, err := uc.service.ListInventory(ctx, filter)
	if err != nil {
		return nil, errs.Transport(err)
	}
	out := make([]UnitView, 0, len(units))
	for _, u := range units {
		out = append(out, uc.unitView(u, nil))
	}
	return out, nil
}

func (uc *CatalogUseCase) GetVariant(ctx context.Context, id string) (VariantView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return VariantView{}, ErrInvalidCatalogID
	}
	if err := uc.ready(); err != nil {
		return VariantView{}, err
	}
	v, err := uc.service.GetVariant(ctx, id)
	if err != nil {
		return VariantView{}, errs.Transport(err)
	}
	if v.ID == "" {
		return VariantView{}, ErrVariantNotFound
	}
	return VariantView{Variant: v, Image: uc.resolver.Variant(&v)}, nil
}

// ListVariants lists catalog variants, optionally only those on sale.
func (uc *CatalogUseCase) ListVariants(ctx context.Context, activeOnly bool) ([]VariantView, error) {
	if err := uc.ready(); err != nil {
		return nil, err
	}
	variants, err := uc.service.ListVariants(ctx)
	if err != nil {
		return nil, errs.Transport(err)
	}
	out := make([]VariantView, 0, len(variants))
	for i := range variants {
		v := variants[i]
		if activeOnly && !v.IsActive {
			continue
		}
		out = append(out, VariantView{Variant: v, Image: uc.resolver.Variant(&v)})
	}
	return out, nil
}

func (uc *CatalogUseCase) ListColors(ctx context.Context) ([]ColorView, error) {
	if err := uc.ready(); err != nil {
		return nil, err
	}
	colors, err := uc.service.ListColors(ctx)
	if err != nil {
		return nil, errs.Transport(err)
	}
	out := make([]ColorView, 0, len(colors))
	for i := range colors {
		c := colors[i]
		out = append(out, ColorView{Color: c, Image: uc.resolver.Color(&c)})
	}
	return out, nil
}

func (uc *CatalogUseCase) GetModel(ctx context.Context, id string) (ModelView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ModelView{}, ErrInvalidCatalogID
	}
	if err := uc.ready(); err != nil {
		return ModelView{}, err
	}
	m, err := uc.service.GetModel(ctx, id)
	if err != nil {
		return ModelView{}, errs.Transport(err)
	}
	if m.ID == "" {
		return ModelView{}, ErrModelNotFound
	}
	return ModelView{Model: m, Image: uc.resolver.Model(&m)}, nil
}

func (uc *CatalogUseCase) GetBrand(ctx context.Context, id string) (BrandView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return BrandView{}, ErrInvalidCatalogID
	}
	if err := uc.ready(); err != nil {
		return BrandView{}, err
	}
	b, err := uc.service.GetBrand(ctx, id)
	if err != nil {
		return BrandView{}, errs.Transport(err)
	}
	if b.ID == "" {
		return BrandView{}, ErrBrandNotFound
	}
	return BrandView{Brand: b, LogoURL: uc.resolver.Brand(&b)}, nil
}

func (uc *CatalogUseCase) unitView(u entities.Unit, related *entities.Variant) UnitView {
	if related == nil {
		related = u.AttachedVariant()
	}
	return UnitView{
		Unit:    u,
		Variant: related,
		Primary: uc.resolver.Primary(u, related),
		Images:  uc.resolver.Resolve(u, related),
	}
}

func (uc *CatalogUseCase) ready() error {
	if uc.service == nil {
		return errs.Transport(errors.New("catalog service not configured"))
	}
	return nil
}
