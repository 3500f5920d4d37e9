package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"evdealer/internal/adapter/http/handlers/mocks"
	"evdealer/internal/domain/entities"
	"evdealer/internal/domain/errs"
	"evdealer/internal/domain/media"
	"evdealer/internal/usecase"
)

func catalogRouter(h *CatalogHandler) *gin.Engine {
	r := gin.New()
	r.GET("/v1/units", h.ListUnits)
	r.GET("/v1/units/:id", h.GetUnit)
	r.GET("/v1/variants", h.ListVariants)
	r.GET("/v1/brands/:id", h.GetBrand)
	return r
}

func TestCatalogHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list units passes the filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICatalogUseCase(ctrl)
		r := catalogRouter(NewCatalogHandler(uc))

		uc.EXPECT().ListInventory(gomock.Any(), entities.InventoryFilter{Status: entities.UnitStatusAvailable, VariantID: "v-1"}).
			Return([]usecase.UnitView{{Unit: entities.Unit{ID: "u-1"}, Primary: media.NoImage}}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/units?status=Available&variant_id=v-1", nil))
		if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"images":[]`)) {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("unit detail includes gallery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICatalogUseCase(ctrl)
		r := catalogRouter(NewCatalogHandler(uc))

		uc.EXPECT().GetUnit(gomock.Any(), "u-1").Return(usecase.UnitView{
			Unit:    entities.Unit{ID: "u-1"},
			Primary: media.Image{URL: "https://cdn.test/a.jpg", Source: media.SourceVehicleImages},
			Images:  []string{"https://cdn.test/a.jpg"},
			Gallery: media.Gallery{Vehicle: []string{"https://cdn.test/a.jpg"}},
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/units/u-1", nil))
		if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"gallery"`)) || !bytes.Contains(w.Body.Bytes(), []byte(`"imageSource":"vehicle_images"`)) {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("active variants only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICatalogUseCase(ctrl)
		r := catalogRouter(NewCatalogHandler(uc))

		uc.EXPECT().ListVariants(gomock.Any(), true).Return(nil, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/variants?active=true", nil))
		if w.Code != http.StatusOK || w.Body.String() != "[]" {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("errors map by kind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICatalogUseCase(ctrl)
		r := catalogRouter(NewCatalogHandler(uc))

		uc.EXPECT().GetBrand(gomock.Any(), "b-404").Return(usecase.BrandView{}, usecase.ErrBrandNotFound)
		uc.EXPECT().GetUnit(gomock.Any(), "u-1").Return(usecase.UnitView{}, errs.Transport(errors.New("throttled")))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/brands/b-404", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/units/u-1", nil))
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}
