package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/middleware"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProductService owns one product per enterprise and applies the tenant check.
type stubProductService struct {
	products map[uuid.UUID]dto.ProductResponse
	created  []dto.CreateProductRequest
}

func (s *stubProductService) Create(_ context.Context, a *authz.Identity, req dto.CreateProductRequest) (dto.ProductResponse, error) {
	s.created = append(s.created, req)
	return dto.ProductResponse{ID: uuid.New(), Name: req.Name, EnterpriseID: a.Enterprise.ID}, nil
}
func (s *stubProductService) List(context.Context, *authz.Identity, dto.ProductFilter) ([]dto.ProductResponse, error) {
	return []dto.ProductResponse{}, nil
}
func (s *stubProductService) ListByCategory(context.Context, *authz.Identity, uuid.UUID, dto.PageQuery) ([]dto.ProductResponse, error) {
	return []dto.ProductResponse{}, nil
}
func (s *stubProductService) Get(_ context.Context, a *authz.Identity, id uuid.UUID) (dto.ProductResponse, error) {
	p, ok := s.products[id]
	if !ok {
		return dto.ProductResponse{}, apierror.NotFound("Product not found")
	}
	if err := authz.Authorize(a, authz.TenantMatch(p.EnterpriseID)); err != nil {
		return dto.ProductResponse{}, err
	}
	return p, nil
}
func (s *stubProductService) Update(context.Context, *authz.Identity, uuid.UUID, dto.UpdateProductRequest) (dto.ProductResponse, error) {
	return dto.ProductResponse{}, nil
}
func (s *stubProductService) Delete(context.Context, *authz.Identity, uuid.UUID) error { return nil }
func (s *stubProductService) AdjustStock(context.Context, *authz.Identity, uuid.UUID, dto.AdjustStockRequest) (dto.ProductResponse, error) {
	return dto.ProductResponse{}, apierror.E(apierror.KindInsufficientStock, "Insufficient stock")
}
func (s *stubProductService) Movements(context.Context, *authz.Identity, uuid.UUID, dto.PageQuery) ([]dto.StockMovementResponse, error) {
	return []dto.StockMovementResponse{}, nil
}

var _ service.ProductService = (*stubProductService)(nil)

func newProductsEngine(svc service.ProductService, id *authz.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.IdentityKey, id) })
	h := NewProductsHandler(svc)
	r.GET("/products", h.List)
	r.POST("/products", h.Create)
	r.GET("/products/:id", h.Get)
	r.PATCH("/products/:id/stock", h.AdjustStock)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func identityIn(enterpriseID uuid.UUID) *authz.Identity {
	return &authz.Identity{
		ID:         uuid.New(),
		IsActive:   true,
		Enterprise: authz.EnterpriseRef{ID: enterpriseID},
		Role:       authz.RoleRef{Name: model.RoleEmployee},
	}
}

func TestProductsHandler_GetForeignProductIs403(t *testing.T) {
	productID := uuid.New()
	svc := &stubProductService{products: map[uuid.UUID]dto.ProductResponse{
		productID: {ID: productID, EnterpriseID: uuid.New()},
	}}
	r := newProductsEngine(svc, identityIn(uuid.New()))

	w := do(r, http.MethodGet, "/products/"+productID.String(), "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apierror.KindCrossTenantAccess, body.Code)
}

func TestProductsHandler_GetMissingIs404(t *testing.T) {
	r := newProductsEngine(&stubProductService{products: map[uuid.UUID]dto.ProductResponse{}}, identityIn(uuid.New()))

	w := do(r, http.MethodGet, "/products/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductsHandler_MalformedIDIs400(t *testing.T) {
	r := newProductsEngine(&stubProductService{}, identityIn(uuid.New()))

	w := do(r, http.MethodGet, "/products/42", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductsHandler_CreateValidation(t *testing.T) {
	svc := &stubProductService{}
	r := newProductsEngine(svc, identityIn(uuid.New()))

	t.Run("malformed json is 400", func(t *testing.T) {
		w := do(r, http.MethodPost, "/products", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
	t.Run("missing fields are 422", func(t *testing.T) {
		w := do(r, http.MethodPost, "/products", `{"name":"Agua","public_price":"-1"}`)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var body apierror.ValidationError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "required", body.Fields["bar_code"])
		assert.Equal(t, "min", body.Fields["public_price"])
	})
	t.Run("valid body is 201", func(t *testing.T) {
		body := `{"name":"Agua","bar_code":"7701","public_price":"1500","supplier_price":"900","category_id":"` + uuid.NewString() + `"}`
		w := do(r, http.MethodPost, "/products", body)
		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, svc.created, 1)
		assert.Equal(t, "7701", svc.created[0].BarCode)
	})
	t.Run("negative paging is 422", func(t *testing.T) {
		w := do(r, http.MethodGet, "/products?skip=-1", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestProductsHandler_InsufficientStockIs409(t *testing.T) {
	r := newProductsEngine(&stubProductService{}, identityIn(uuid.New()))

	w := do(r, http.MethodPatch, "/products/"+uuid.NewString()+"/stock", `{"delta":-10}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}
