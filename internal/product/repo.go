// Package product provides the repository interface and PostgreSQL implementation for the catalog.
package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

type Query struct {
	Search     string
	CategoryID string
	BrandID    string
	MinPrice   string
	MaxPrice   string
	SortBy     string // "price", "name" or "" (newest first)
	Order      string // "asc" or "desc"
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q Query) ([]Product, error)
	Featured(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectCols = `
	p.id, p.name_th, p.name_en, p.description_th, p.description_en,
	p.specs_th, p.specs_en, p.price::text, p.discount, p.stock, p.image_urls,
	p.category_id, p.brand_id, c.name, b.name, p.created_at, p.updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.NameTH, &p.NameEN, &p.DescriptionTH, &p.DescriptionEN,
		&p.SpecsTH, &p.SpecsEN, &p.Price, &p.Discount, &p.Stock, &p.ImageURLs,
		&p.CategoryID, &p.BrandID, &p.CategoryName, &p.BrandName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO products
			(id, name_th, name_en, description_th, description_en, specs_th, specs_en,
			 price, discount, stock, image_urls, category_id, brand_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,NOW(),NOW())
	`, p.ID, p.NameTH, p.NameEN, p.DescriptionTH, p.DescriptionEN, p.SpecsTH, p.SpecsEN,
		p.Price, p.Discount, p.Stock, p.ImageURLs, p.CategoryID, p.BrandID)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT `+selectCols+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN brands b ON b.id = p.brand_id
		WHERE p.id=$1
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	search := strings.TrimSpace(q.Search)

	orderBy := `p.created_at DESC`
	dir := `ASC`
	if strings.EqualFold(q.Order, "desc") {
		dir = `DESC`
	}
	switch q.SortBy {
	case "price":
		orderBy = `p.price ` + dir
	case "name":
		// multilingual sort is approximated by the English name, matching the storefront UI
		orderBy = `p.name_en ` + dir
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+selectCols+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN brands b ON b.id = p.brand_id
		WHERE ($1 = '' OR p.name_th ILIKE '%'||$1||'%' OR p.name_en ILIKE '%'||$1||'%' OR b.name ILIKE '%'||$1||'%')
		  AND ($2 = '' OR p.category_id::text = $2)
		  AND ($3 = '' OR p.brand_id::text = $3)
		  AND ($4 = '' OR p.price >= $4::numeric)
		  AND ($5 = '' OR p.price <= $5::numeric)
		ORDER BY `+orderBy+`
	`, search, q.CategoryID, q.BrandID, q.MinPrice, q.MaxPrice)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Featured returns the four newest products for the landing page.
func (r *PGRepo) Featured(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+selectCols+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN brands b ON b.id = p.brand_id
		ORDER BY p.created_at DESC
		LIMIT 4
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update writes the full merged row; handlers merge partial payloads first.
func (r *PGRepo) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name_th = $2, name_en = $3, description_th = $4, description_en = $5,
		    specs_th = $6, specs_en = $7, price = $8, discount = $9, stock = $10,
		    image_urls = $11, category_id = $12, brand_id = $13, updated_at = NOW()
		WHERE id = $1
	`, p.ID, p.NameTH, p.NameEN, p.DescriptionTH, p.DescriptionEN, p.SpecsTH, p.SpecsEN,
		p.Price, p.Discount, p.Stock, p.ImageURLs, p.CategoryID, p.BrandID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
