package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dbarrios89/storeapi/internal/cache"
	"github.com/dbarrios89/storeapi/internal/config"
	"github.com/dbarrios89/storeapi/internal/domain/product"
	"github.com/gin-gonic/gin"
)

type ProductsStore interface {
	Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error)
	List(ctx context.Context, filter product.ListProductsFilter) ([]product.Product, int, error)
	GetByID(ctx context.Context, id string) (product.Product, error)
	Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductsHandler struct {
	repo      ProductsStore
	listCache *cache.Cache[gin.H]
}

func NewProductsHandler(repo ProductsStore, listCache *cache.Cache[gin.H]) *ProductsHandler {
	return &ProductsHandler{
		repo:      repo,
		listCache: listCache,
	}
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func (h *ProductsHandler) CreateProduct(ctx *gin.Context) {
	var req product.CreateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	h.invalidateListCache()

	ctx.JSON(http.StatusCreated, p)
}

func (h *ProductsHandler) ListProducts(ctx *gin.Context) {
	filter := product.ListProductsFilter{
		Limit:  parseIntQuery(ctx, "limit", defaultListLimit, maxListLimit),
		Offset: parseIntQuery(ctx, "offset", 0, 1<<30),
	}

	if tipo := ctx.Query("tipo"); tipo != "" {
		filter.Tipo = &tipo
	}

	key := listCacheKey(filter)

	if h.listCache != nil {
		if payload, ok := h.listCache.Get(key); ok {
			RespondJSONWithETag(ctx, http.StatusOK, payload)
			return
		}
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	products, total, err := h.repo.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx)
		return
	}

	payload := gin.H{
		"items": products,
		"count": len(products),
		"total": total,
	}

	if h.listCache != nil {
		h.listCache.Set(key, payload)
	}

	RespondJSONWithETag(ctx, http.StatusOK, payload)
}

func (h *ProductsHandler) GetProductById(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "product not found")
			return
		}

		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) UpdateProduct(ctx *gin.Context) {
	id := ctx.Param("id")

	var req product.UpdateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "product not found")
			return
		}

		RespondInternal(ctx)
		return
	}

	h.invalidateListCache()

	ctx.JSON(http.StatusOK, p)
}

func (h *ProductsHandler) DeleteProduct(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "product not found")
			return
		}

		RespondInternal(ctx)
		return
	}

	h.invalidateListCache()

	ctx.Status(http.StatusNoContent)
}

func (h *ProductsHandler) invalidateListCache() {
	if h.listCache != nil {
		h.listCache.Clear()
	}
}

func listCacheKey(filter product.ListProductsFilter) string {
	tipo := ""

	if filter.Tipo != nil {
		tipo = *filter.Tipo
	}

	return fmt.Sprintf("list:%s:%d:%d", tipo, filter.Limit, filter.Offset)
}

func parseIntQuery(ctx *gin.Context, name string, fallback, max int) int {
	raw := ctx.Query(name)

	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)

	if err != nil || v < 0 {
		return fallback
	}

	if v > max {
		return max
	}

	return v
}
