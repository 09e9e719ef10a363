package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pharmastore-backend/internal/domains/product/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

var _ RepositoryInterface = (*postgresRepository)(nil)

// GetProduct implements RepositoryInterface.GetProduct
func (r *postgresRepository) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	query := `
		SELECT
			id, name, manufacturer, unit_price, discounted_price,
			stock, image_ref, seller_ref, size, is_active
		FROM products
		WHERE id = $1
	`

	var product model.Product
	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&product.ID,
		&product.Name,
		&product.Manufacturer,
		&product.UnitPrice,
		&product.DiscountedPrice,
		&product.Stock,
		&product.ImageRef,
		&product.SellerRef,
		&product.Size,
		&product.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	variants, err := r.getVariants(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Variants = variants

	return &product, nil
}

func (r *postgresRepository) getVariants(ctx context.Context, productID string) ([]model.Variant, error) {
	query := `
		SELECT id, product_id, name, size, unit_price, discounted_price, stock
		FROM product_variants
		WHERE product_id = $1
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	var variants []model.Variant
	for rows.Next() {
		var v model.Variant
		if err := rows.Scan(
			&v.ID,
			&v.ProductID,
			&v.Name,
			&v.Size,
			&v.UnitPrice,
			&v.DiscountedPrice,
			&v.Stock,
		); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read variants: %w", err)
	}

	return variants, nil
}

// GetStock implements RepositoryInterface.GetStock
func (r *postgresRepository) GetStock(ctx context.Context, productID, variantID string) (int, error) {
	var stock int
	var err error

	if variantID != "" {
		query := `
			SELECT stock FROM product_variants
			WHERE product_id = $1 AND id = $2
		`
		err = r.pool.QueryRow(ctx, query, productID, variantID).Scan(&stock)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrVariantNotFound
		}
	} else {
		query := `
			SELECT stock FROM products
			WHERE id = $1
		`
		err = r.pool.QueryRow(ctx, query, productID).Scan(&stock)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrProductNotFound
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get stock: %w", err)
	}

	return stock, nil
}
