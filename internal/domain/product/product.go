package product

import (
	"errors"
	"time"
)

// Field names follow the catalog's JSON contract (mixed Spanish/English,
// kept for client compatibility).
type Product struct {
	ID          string    `json:"id"`
	Marca       string    `json:"marca,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Precio      string    `json:"precio"`
	Imagenes    []string  `json:"imagenes"`
	Tipo        string    `json:"tipo"`
	Modelo      string    `json:"modelo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("product not found")

type CreateProductRequest struct {
	Marca       string   `json:"marca" binding:"omitempty,max=100"`
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"omitempty,min=2,max=300"`
	Precio      string   `json:"precio" binding:"required,max=100"`
	Imagenes    []string `json:"imagenes" binding:"required"`
	Tipo        string   `json:"tipo" binding:"required,oneof=llantas neumáticos lonas"`
	Modelo      string   `json:"modelo" binding:"omitempty,max=100"`
}

// Full update payload, same shape as create.
type UpdateProductRequest struct {
	Marca       string   `json:"marca" binding:"omitempty,max=100"`
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"omitempty,min=2,max=300"`
	Precio      string   `json:"precio" binding:"required,max=100"`
	Imagenes    []string `json:"imagenes" binding:"required"`
	Tipo        string   `json:"tipo" binding:"required,oneof=llantas neumáticos lonas"`
	Modelo      string   `json:"modelo" binding:"omitempty,max=100"`
}

// Optional filters for listing; nil means "not set".
type ListProductsFilter struct {
	Tipo   *string
	Limit  int
	Offset int
}
