package product

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateProductRequest) Product {
	now := time.Now().UTC()

	return Product{
		ID: uuid.NewString(),
		// brand is stored uppercased, matching the catalog convention
		Marca:       strings.ToUpper(req.Marca),
		Name:        req.Name,
		Description: req.Description,
		Precio:      req.Precio,
		Imagenes:    req.Imagenes,
		Tipo:        req.Tipo,
		Modelo:      req.Modelo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
