package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendoro/vendoro/internal/platform/db"
	"github.com/vendoro/vendoro/internal/shared"
)

// Repository provides PostgreSQL backed persistence for stocks.
type Repository interface {
	List(ctx context.Context, companyID string, q shared.ListQuery) ([]Stock, int, error)
	Create(ctx context.Context, companyID, name string) (Stock, error)
	Update(ctx context.Context, companyID, id, name string) (Stock, error)
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// List returns one page of the company's stocks; count and fetch share a
// transaction for a consistent snapshot.
func (r *repository) List(ctx context.Context, companyID string, q shared.ListQuery) ([]Stock, int, error) {
	stocks := make([]Stock, 0, q.Limit)
	var total int

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM stocks WHERE company_id = $1`, companyID,
		).Scan(&total)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT id, company_id, name, created_at, updated_at
			 FROM stocks
			 WHERE company_id = $1
			 ORDER BY name DESC
			 LIMIT $2 OFFSET $3`,
			companyID, q.Limit, q.StartIndex,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var s Stock
			if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
				return err
			}
			stocks = append(stocks, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return stocks, total, nil
}

// Create inserts a new stock for the company.
func (r *repository) Create(ctx context.Context, companyID, name string) (Stock, error) {
	now := time.Now()
	s := Stock{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO stocks (id, company_id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)`,
		s.ID, s.CompanyID, s.Name, now,
	)
	if err != nil {
		return Stock{}, err
	}
	return s, nil
}

// Update renames a stock, scoped to its company.
func (r *repository) Update(ctx context.Context, companyID, id, name string) (Stock, error) {
	s := Stock{ID: id, CompanyID: companyID, Name: name, UpdatedAt: time.Now()}
	err := r.pool.QueryRow(ctx,
		`UPDATE stocks SET name = $3, updated_at = $4
		 WHERE id = $1 AND company_id = $2
		 RETURNING created_at`,
		id, companyID, name, s.UpdatedAt,
	).Scan(&s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stock{}, shared.ErrNotFound
		}
		return Stock{}, err
	}
	return s, nil
}

// Delete removes a stock, scoped to its company.
func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM stocks WHERE id = $1 AND company_id = $2`, id, companyID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
