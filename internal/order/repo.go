package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	PlaceOrder(ctx context.Context, userID string, req CheckoutRequest) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]OrderWithItems, error)
	GetForUser(ctx context.Context, userID, orderID string) (*OrderWithItems, error)
	ListAll(ctx context.Context) ([]OrderWithItems, error)
	GetByID(ctx context.Context, orderID string) (*OrderWithItems, error)
	UpdateStatus(ctx context.Context, orderID, status, provider, tracking string) (*Order, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// PlaceOrder runs the whole checkout as one transaction: batch-load the
// cart's products with row locks, validate stock and price the lines,
// decrement stock, insert the order and its item snapshots. Any failure on
// any line rolls everything back; no stock moves and no order row appears.
func (r *PGRepo) PlaceOrder(ctx context.Context, userID string, req CheckoutRequest) (*Order, error) {
	if len(req.CartItems) == 0 {
		return nil, ErrEmptyCart
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := make([]string, 0, len(req.CartItems))
	for _, line := range req.CartItems {
		ids = append(ids, line.ID)
	}

	// FOR UPDATE holds the rows until commit so a concurrent checkout of the
	// same product waits and then sees the decremented stock.
	rows, err := tx.Query(ctx, `
		SELECT id, name_th, name_en, price::text, discount, stock
		FROM products WHERE id = ANY($1)
		FOR UPDATE
	`, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[string]StockedProduct, len(ids))
	for rows.Next() {
		var p StockedProduct
		var price string
		if err := rows.Scan(&p.ID, &p.NameTH, &p.NameEN, &price, &p.Discount, &p.Stock); err != nil {
			rows.Close()
			return nil, err
		}
		p.Price, err = decimal.NewFromString(price)
		if err != nil {
			rows.Close()
			return nil, err
		}
		products[p.ID] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, total, err := buildLines(req.CartItems, products)
	if err != nil {
		return nil, err
	}

	for _, line := range req.CartItems {
		tag, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $2, updated_at = NOW()
			WHERE id = $1 AND stock >= $2
		`, line.ID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			// buildLines already checked against the locked rows, so this only
			// backstops the conditional predicate
			return nil, &StockError{ProductName: products[line.ID].NameTH}
		}
	}

	o := &Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		ShippingName:    req.ShippingName,
		ShippingAddress: req.ShippingAddress,
		ShippingPhone:   req.ShippingPhone,
		PaymentSlipURL:  req.PaymentSlipURL,
		TotalAmount:     total.String(),
		Status:          StatusPending,
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO orders
			(id, user_id, shipping_name, shipping_address, shipping_phone,
			 payment_slip_url, total_amount, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
		RETURNING created_at, updated_at
	`, o.ID, o.UserID, o.ShippingName, o.ShippingAddress, o.ShippingPhone,
		o.PaymentSlipURL, o.TotalAmount, o.Status).Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, price, quantity)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, it.ID, o.ID, it.ProductID, it.Name, it.Price, it.Quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

const orderCols = `
	o.id, o.user_id, o.shipping_name, o.shipping_address, o.shipping_phone,
	o.payment_slip_url, o.total_amount::text, o.status, o.shipping_provider,
	o.tracking_number, o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(...any) error }, withUser bool) (*Order, error) {
	var o Order
	dest := []any{&o.ID, &o.UserID, &o.ShippingName, &o.ShippingAddress, &o.ShippingPhone,
		&o.PaymentSlipURL, &o.TotalAmount, &o.Status, &o.ShippingProvider,
		&o.TrackingNumber, &o.CreatedAt, &o.UpdatedAt}
	if withUser {
		dest = append(dest, &o.UserName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &o, nil
}

// items joins the live product row so views can show current images; a
// deleted product leaves ImageURLs empty without touching the snapshot.
func (r *PGRepo) items(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.order_id, i.product_id, i.name, i.price::text, i.quantity,
		       COALESCE(p.image_urls, '{}')
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Price,
			&it.Quantity, &it.ImageURLs); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGRepo) collect(ctx context.Context, rows pgx.Rows, withUser bool) ([]OrderWithItems, error) {
	defer rows.Close()
	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows, withUser)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]OrderWithItems, 0, len(orders))
	for _, o := range orders {
		items, err := r.items(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, OrderWithItems{Order: o, Items: items})
	}
	return out, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]OrderWithItems, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+orderCols+` FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows, false)
}

func (r *PGRepo) GetForUser(ctx context.Context, userID, orderID string) (*OrderWithItems, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT `+orderCols+` FROM orders o
		WHERE o.id = $1 AND o.user_id = $2
	`, orderID, userID)
	o, err := scanOrder(row, false)
	if err != nil {
		return nil, ErrNotFound
	}
	items, err := r.items(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderWithItems{Order: *o, Items: items}, nil
}

func (r *PGRepo) ListAll(ctx context.Context) ([]OrderWithItems, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+orderCols+`, u.name FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows, true)
}

func (r *PGRepo) GetByID(ctx context.Context, orderID string) (*OrderWithItems, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		SELECT `+orderCols+`, u.name FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`, orderID)
	o, err := scanOrder(row, true)
	if err != nil {
		return nil, ErrNotFound
	}
	items, err := r.items(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderWithItems{Order: *o, Items: items}, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, orderID, status, provider, tracking string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		UPDATE orders
		SET status = $2,
		    shipping_provider = NULLIF($3,''),
		    tracking_number = NULLIF($4,''),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+orderColsBare+`
	`, orderID, status, provider, tracking)
	o, err := scanOrder(row, false)
	if err != nil {
		return nil, ErrNotFound
	}
	return o, nil
}

// orderColsBare matches orderCols without the table alias for RETURNING.
const orderColsBare = `
	id, user_id, shipping_name, shipping_address, shipping_phone,
	payment_slip_url, total_amount::text, status, shipping_provider,
	tracking_number, created_at, updated_at`
