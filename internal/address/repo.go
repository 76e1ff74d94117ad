// Package address keeps each user's shipping address book. At most one
// address per user is flagged as default.
package address

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("address not found")

type Address struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	RecipientName string    `json:"recipient_name"`
	Phone         string    `json:"phone"`
	AddressLine1  string    `json:"address_line1"`
	District      string    `json:"district"`
	Province      string    `json:"province"`
	PostalCode    string    `json:"postal_code"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, a *Address) error
	ListByUser(ctx context.Context, userID string) ([]Address, error)
	Update(ctx context.Context, a *Address) error
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Create inserts the address; when it is flagged default the previous
// default is cleared in the same transaction.
func (r *PGRepo) Create(ctx context.Context, a *Address) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if a.IsDefault {
		if _, err := tx.Exec(ctx, `
			UPDATE addresses SET is_default = false WHERE user_id = $1
		`, a.UserID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO addresses
			(id, user_id, recipient_name, phone, address_line1, district, province, postal_code, is_default, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
	`, a.ID, a.UserID, a.RecipientName, a.Phone, a.AddressLine1, a.District,
		a.Province, a.PostalCode, a.IsDefault); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Address, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, recipient_name, phone, address_line1, district, province, postal_code, is_default, created_at
		FROM addresses WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.RecipientName, &a.Phone, &a.AddressLine1,
			&a.District, &a.Province, &a.PostalCode, &a.IsDefault, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, a *Address) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if a.IsDefault {
		if _, err := tx.Exec(ctx, `
			UPDATE addresses SET is_default = false WHERE user_id = $1 AND id <> $2
		`, a.UserID, a.ID); err != nil {
			return err
		}
	}
	tag, err := tx.Exec(ctx, `
		UPDATE addresses
		SET recipient_name = $3, phone = $4, address_line1 = $5, district = $6,
		    province = $7, postal_code = $8, is_default = $9
		WHERE id = $1 AND user_id = $2
	`, a.ID, a.UserID, a.RecipientName, a.Phone, a.AddressLine1, a.District,
		a.Province, a.PostalCode, a.IsDefault)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
