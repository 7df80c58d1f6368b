package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/campuscart/campuscart/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

const productColumns = `id, title, description, price, category, condition, images,
	seller_id, seller_name, location, views, is_featured, tags, created_at, updated_at`

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) ProductRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) ListProducts(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	var where []string
	var args []interface{}

	if filter.Category != nil {
		where = append(where, "category = ?")
		args = append(args, string(*filter.Category))
	}

	if len(filter.Conditions) > 0 {
		placeholders := make([]string, len(filter.Conditions))
		for i, c := range filter.Conditions {
			placeholders[i] = "?"
			args = append(args, string(c))
		}
		where = append(where, fmt.Sprintf("condition IN (%s)", strings.Join(placeholders, ", ")))
	}

	if filter.MinPrice != nil {
		where = append(where, "CAST(price AS REAL) >= ?")
		args = append(args, filter.MinPrice.InexactFloat64())
	}

	if filter.MaxPrice != nil {
		where = append(where, "CAST(price AS REAL) <= ?")
		args = append(args, filter.MaxPrice.InexactFloat64())
	}

	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		where = append(where, "(instr(lower(title), ?) > 0 OR instr(lower(description), ?) > 0 OR instr(lower(tags), ?) > 0)")
		args = append(args, q, q, q)
	}

	query := fmt.Sprintf("SELECT %s FROM products", productColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderClause(filter.Sort)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *sqliteRepository) ListFeatured(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE is_featured = 1 ORDER BY created_at DESC",
		productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query featured products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *sqliteRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = ?", productColumns)

	row := r.db.QueryRowContext(ctx, query, id)
	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return product, nil
}

func (r *sqliteRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	imagesJSON, tagsJSON, err := encodeLists(p)
	if err != nil {
		return err
	}

	query := `INSERT INTO products (id, title, description, price, category, condition, images,
		seller_id, seller_name, location, views, is_featured, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.Price.String(),
		string(p.Category),
		string(p.Condition),
		imagesJSON,
		p.SellerID,
		p.SellerName,
		p.Location,
		p.Views,
		p.IsFeatured,
		tagsJSON,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *sqliteRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	imagesJSON, tagsJSON, err := encodeLists(p)
	if err != nil {
		return err
	}

	query := `UPDATE products SET title = ?, description = ?, price = ?, category = ?,
		condition = ?, images = ?, location = ?, is_featured = ?, tags = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		p.Title,
		p.Description,
		p.Price.String(),
		string(p.Category),
		string(p.Condition),
		imagesJSON,
		p.Location,
		p.IsFeatured,
		tagsJSON,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *sqliteRepository) DeleteProduct(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *sqliteRepository) IncrementViews(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE products SET views = views + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check increment result: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *sqliteRepository) DeleteAllProducts(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM products"); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	return nil
}

func orderClause(sort domain.SortOrder) string {
	switch sort {
	case domain.SortPriceLow:
		return "CAST(price AS REAL) ASC"
	case domain.SortPriceHigh:
		return "CAST(price AS REAL) DESC"
	case domain.SortPopular:
		return "views DESC"
	default:
		return "created_at DESC"
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	p := &domain.Product{}
	var price, imagesJSON, tagsJSON string

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&price,
		&p.Category,
		&p.Condition,
		&imagesJSON,
		&p.SellerID,
		&p.SellerName,
		&p.Location,
		&p.Views,
		&p.IsFeatured,
		&tagsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price %q: %w", price, err)
	}
	if err := json.Unmarshal([]byte(imagesJSON), &p.Images); err != nil {
		return nil, fmt.Errorf("invalid stored images: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
		return nil, fmt.Errorf("invalid stored tags: %w", err)
	}

	return p, nil
}

func collectProducts(rows *sql.Rows) ([]*domain.Product, error) {
	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func encodeLists(p *domain.Product) (string, string, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal images: %w", err)
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal tags: %w", err)
	}

	return string(imagesJSON), string(tagsJSON), nil
}
