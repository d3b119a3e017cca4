package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/pkg/database"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

const productColumns = `id, name, description, price, image, category, sizes, colors, in_stock, featured, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (err error) {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	ctx, end := database.TraceQuery(ctx, "CreateProduct", query)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.Image,
		p.Category,
		nonNil(p.Sizes),
		nonNil(p.Colors),
		p.InStock,
		p.Featured,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (_ *domain.Product, err error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetProduct", query)
	defer func() { end(err) }()

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

// ListAll returns every product, oldest first.
func (r *ProductRepository) ListAll(ctx context.Context) (_ []domain.Product, err error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at ASC, id ASC`

	ctx, end := database.TraceQuery(ctx, "ListProducts", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// Update overwrites an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (err error) {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, image = $4, category = $5,
		    sizes = $6, colors = $7, in_stock = $8, featured = $9, updated_at = $10
		WHERE id = $11`

	ctx, end := database.TraceQuery(ctx, "UpdateProduct", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query,
		p.Name,
		p.Description,
		p.Price,
		p.Image,
		p.Category,
		nonNil(p.Sizes),
		nonNil(p.Colors),
		p.InStock,
		p.Featured,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.Category,
		&p.Sizes,
		&p.Colors,
		&p.InStock,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Sizes = nonNil(p.Sizes)
	p.Colors = nonNil(p.Colors)
	return &p, nil
}

// nonNil keeps NOT NULL text[] columns from receiving a SQL NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
