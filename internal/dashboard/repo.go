// Package dashboard aggregates store-wide numbers for the admin dashboard.
package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BestSeller struct {
	Name string `json:"name"`
	Sold int    `json:"sold"`
}

type LowStockProduct struct {
	NameTH string `json:"name_th"`
	NameEN string `json:"name_en"`
	Stock  int    `json:"stock"`
	Brand  string `json:"brand"`
}

type MonthlySales struct {
	Month   string `json:"month"` // YYYY-MM
	Revenue string `json:"revenue"`
}

type Stats struct {
	TotalRevenue        string            `json:"total_revenue"`
	TotalOrders         int               `json:"total_orders"`
	TotalCustomers      int               `json:"total_customers"`
	TotalProducts       int               `json:"total_products"`
	BestSellingProducts []BestSeller      `json:"best_selling_products"`
	LowStockProducts    []LowStockProduct `json:"low_stock_products"`
	SalesByMonth        []MonthlySales    `json:"sales_by_month"`
}

type Repository interface {
	GetStats(ctx context.Context, start, end *time.Time) (*Stats, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// GetStats runs the dashboard aggregates. start/end bound revenue, order
// count and best sellers; customer/product counts, low stock and the
// 12-month series ignore the range, matching the admin UI.
func (r *PGRepo) GetStats(ctx context.Context, start, end *time.Time) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	s := &Stats{}

	if err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)::text
		FROM orders
		WHERE status <> 'CANCELLED'
		  AND ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
	`, start, end).Scan(&s.TotalRevenue); err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
	`, start, end).Scan(&s.TotalOrders); err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE role = 'USER'
	`).Scan(&s.TotalCustomers); err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM products
	`).Scan(&s.TotalProducts); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT i.name, COALESCE(SUM(i.quantity), 0)
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE ($1::timestamptz IS NULL OR o.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR o.created_at <= $2)
		GROUP BY i.product_id, i.name
		ORDER BY SUM(i.quantity) DESC
		LIMIT 5
	`, start, end)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var b BestSeller
		if err := rows.Scan(&b.Name, &b.Sold); err != nil {
			rows.Close()
			return nil, err
		}
		s.BestSellingProducts = append(s.BestSellingProducts, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
		SELECT p.name_th, p.name_en, p.stock, b.name
		FROM products p
		JOIN brands b ON b.id = p.brand_id
		WHERE p.stock <= 10
		ORDER BY p.stock ASC
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var l LowStockProduct
		if err := rows.Scan(&l.NameTH, &l.NameEN, &l.Stock, &l.Brand); err != nil {
			rows.Close()
			return nil, err
		}
		s.LowStockProducts = append(s.LowStockProducts, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		       SUM(total_amount)::text AS revenue
		FROM orders
		WHERE created_at >= date_trunc('month', NOW() - interval '11 month')
		  AND status <> 'CANCELLED'
		GROUP BY month
		ORDER BY month ASC
	`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var m MonthlySales
		if err := rows.Scan(&m.Month, &m.Revenue); err != nil {
			rows.Close()
			return nil, err
		}
		s.SalesByMonth = append(s.SalesByMonth, m)
	}
	rows.Close()
	return s, rows.Err()
}
