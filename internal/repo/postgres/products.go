package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dbarrios89/storeapi/internal/domain/product"
	"github.com/dbarrios89/storeapi/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewProductsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ProductsRepo {
	return &ProductsRepo{pool: pool, prom: prom}
}

func (r *ProductsRepo) observe(op string, fn func() error) error {
	if r.prom == nil {
		return fn()
	}

	return r.prom.ObserveDB(op, fn)
}

func (r *ProductsRepo) Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	p := product.NewFromCreateRequest(req)

	err := r.observe("products.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO products(id, marca, name, description, precio, imagenes, tipo, modelo, created_at, updated_at)
			 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			p.ID, p.Marca, p.Name, p.Description, p.Precio, p.Imagenes, p.Tipo, p.Modelo, p.CreatedAt, p.UpdatedAt)

		return err
	})

	if err != nil {
		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) List(ctx context.Context, filter product.ListProductsFilter) ([]product.Product, int, error) {
	baseQuery := `SELECT id,
		marca,
		name,
		description,
		precio,
		imagenes,
		tipo,
		modelo,
		created_at,
		updated_at,
		COUNT(*) OVER() AS total
	FROM products
	`

	var conds []string
	var args []interface{}

	argsPosition := 1

	if filter.Tipo != nil {
		conds = append(conds, fmt.Sprintf("tipo = $%d", argsPosition))
		args = append(args, *filter.Tipo)
		argsPosition++
	}

	query := baseQuery

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// stable ordering for pagination
	query += fmt.Sprintf(" ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d", argsPosition, argsPosition+1)

	args = append(args, filter.Limit, filter.Offset)

	output := make([]product.Product, 0, filter.Limit)
	total := 0

	err := r.observe("products.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var p product.Product
			var t int

			err = rows.Scan(&p.ID, &p.Marca, &p.Name, &p.Description, &p.Precio, &p.Imagenes, &p.Tipo, &p.Modelo, &p.CreatedAt, &p.UpdatedAt, &t)

			if err != nil {
				return err
			}

			total = t
			output = append(output, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, 0, err
	}

	return output, total, nil
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	var p product.Product

	err := r.observe("products.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, marca, name, description, precio, imagenes, tipo, modelo, created_at, updated_at
			 FROM products WHERE id = $1`, id).
			Scan(&p.ID, &p.Marca, &p.Name, &p.Description, &p.Precio, &p.Imagenes, &p.Tipo, &p.Modelo, &p.CreatedAt, &p.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}

		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
	var p product.Product

	err := r.observe("products.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE products
				SET marca = $2,
					name = $3,
					description = $4,
					precio = $5,
					imagenes = $6,
					tipo = $7,
					modelo = $8,
					updated_at = NOW()
			 WHERE id = $1
			 RETURNING id, marca, name, description, precio, imagenes, tipo, modelo, created_at, updated_at`,
			id,
			strings.ToUpper(req.Marca),
			req.Name,
			req.Description,
			req.Precio,
			req.Imagenes,
			req.Tipo,
			req.Modelo,
		).Scan(
			&p.ID,
			&p.Marca,
			&p.Name,
			&p.Description,
			&p.Precio,
			&p.Imagenes,
			&p.Tipo,
			&p.Modelo,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}

		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Delete(ctx context.Context, id string) error {
	var affected int64

	err := r.observe("products.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)

		if err != nil {
			return err
		}

		affected = tag.RowsAffected()

		return nil
	})

	if err != nil {
		return err
	}

	if affected == 0 {
		return product.ErrNotFound
	}

	return nil
}
