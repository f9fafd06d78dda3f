package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dbarrios89/storeapi/internal/cache"
	"github.com/dbarrios89/storeapi/internal/domain/product"
	"github.com/dbarrios89/storeapi/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// Fake store implementation of the handlers.ProductsStore interface

type fakeProductsRepo struct {
	createFn func(ctx context.Context, req product.CreateProductRequest) (product.Product, error)
	listFn   func(ctx context.Context, filter product.ListProductsFilter) ([]product.Product, int, error)
	getFn    func(ctx context.Context, id string) (product.Product, error)
	updateFn func(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeProductsRepo) Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}

	return product.NewFromCreateRequest(req), nil
}

func (f *fakeProductsRepo) List(ctx context.Context, filter product.ListProductsFilter) ([]product.Product, int, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}

	return []product.Product{}, 0, nil
}

func (f *fakeProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}

	return product.Product{}, nil
}

func (f *fakeProductsRepo) Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}

	return product.Product{}, nil
}

func (f *fakeProductsRepo) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}

	return nil
}

func newProductsRouter(repo *fakeProductsRepo) *gin.Engine {
	h := handlers.NewProductsHandler(repo, cache.New[gin.H](30*time.Second))

	r := gin.New()
	r.POST("/products", h.CreateProduct)
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProductById)
	r.PUT("/products/:id", h.UpdateProduct)
	r.DELETE("/products/:id", h.DeleteProduct)

	return r
}

const validProductBody = `{
	"marca": "firestone",
	"name": "Radial 900",
	"description": "tubeless radial tire",
	"precio": "45000",
	"imagenes": ["https://cdn.example.com/radial900.jpg"],
	"tipo": "llantas",
	"modelo": "R900"
}`

func TestCreateProduct(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		repoSetUp  func(*fakeProductsRepo)
		wantStatus int
	}{
		{
			name:       "success",
			body:       validProductBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing_name",
			body:       `{"precio":"45000","imagenes":[],"tipo":"llantas"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad_tipo",
			body:       `{"name":"Radial 900","precio":"45000","imagenes":["x"],"tipo":"sillas"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			body: validProductBody,
			repoSetUp: func(f *fakeProductsRepo) {
				f.createFn = func(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
					return product.Product{}, errors.New("db error")
				}
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeProductsRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			r := newProductsRouter(repo)

			w := doJSON(r, http.MethodPost, "/products", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestCreateProductUppercasesBrand(t *testing.T) {
	repo := &fakeProductsRepo{}
	r := newProductsRouter(repo)

	w := doJSON(r, http.MethodPost, "/products", validProductBody)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var p product.Product

	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("bad body: %v", err)
	}

	if p.Marca != "FIRESTONE" {
		t.Fatalf("got marca %q, want FIRESTONE", p.Marca)
	}

	if p.ID == "" {
		t.Fatalf("expected an assigned id")
	}
}

func TestListProducts(t *testing.T) {
	sample := product.NewFromCreateRequest(product.CreateProductRequest{
		Name:     "Radial 900",
		Precio:   "45000",
		Imagenes: []string{"x"},
		Tipo:     "llantas",
	})

	listCalls := 0

	repo := &fakeProductsRepo{
		listFn: func(ctx context.Context, filter product.ListProductsFilter) ([]product.Product, int, error) {
			listCalls++

			if filter.Tipo != nil && *filter.Tipo != "llantas" {
				return []product.Product{}, 0, nil
			}

			return []product.Product{sample}, 1, nil
		},
	}

	r := newProductsRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/products?tipo=llantas", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var payload struct {
		Items []product.Product `json:"items"`
		Count int               `json:"count"`
		Total int               `json:"total"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad body: %v", err)
	}

	if payload.Count != 1 || payload.Total != 1 || len(payload.Items) != 1 {
		t.Fatalf("unexpected payload: %s", w.Body.String())
	}

	etag := w.Header().Get("ETag")

	if etag == "" {
		t.Fatalf("expected an ETag header")
	}

	// same filter again: served from cache, 304 on matching If-None-Match

	req2 := httptest.NewRequest(http.MethodGet, "/products?tipo=llantas", nil)
	req2.Header.Set("If-None-Match", etag)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusNotModified {
		t.Fatalf("got status %d, want 304", w2.Code)
	}

	if listCalls != 1 {
		t.Fatalf("repo list called %d times, want 1 (second hit should be cached)", listCalls)
	}
}

func TestGetProductById(t *testing.T) {
	repo := &fakeProductsRepo{
		getFn: func(ctx context.Context, id string) (product.Product, error) {
			if id != "p-1" {
				return product.Product{}, product.ErrNotFound
			}

			return product.Product{ID: "p-1", Name: "Radial 900", Precio: "45000", Tipo: "llantas"}, nil
		},
	}

	r := newProductsRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/products/p-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	req2 := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404, body=%s", w2.Code, w2.Body.String())
	}
}

func TestUpdateProduct(t *testing.T) {
	repo := &fakeProductsRepo{
		updateFn: func(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
			if id != "p-1" {
				return product.Product{}, product.ErrNotFound
			}

			return product.Product{ID: id, Name: req.Name, Precio: req.Precio, Tipo: req.Tipo}, nil
		},
	}

	r := newProductsRouter(repo)

	w := doJSON(r, http.MethodPut, "/products/p-1", validProductBody)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	w2 := doJSON(r, http.MethodPut, "/products/missing", validProductBody)

	if w2.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404, body=%s", w2.Code, w2.Body.String())
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := &fakeProductsRepo{
		deleteFn: func(ctx context.Context, id string) error {
			if id != "p-1" {
				return product.ErrNotFound
			}

			return nil
		},
	}

	r := newProductsRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/products/p-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("got status %d, want 204, body=%s", w.Code, w.Body.String())
	}

	req2 := httptest.NewRequest(http.MethodDelete, "/products/missing", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404, body=%s", w2.Code, w2.Body.String())
	}
}
