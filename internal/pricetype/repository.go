package pricetype

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendoro/vendoro/internal/platform/db"
	"github.com/vendoro/vendoro/internal/shared"
)

// Repository provides PostgreSQL backed persistence for price types.
type Repository interface {
	List(ctx context.Context, filter ListFilter, q shared.ListQuery) ([]PriceType, int, error)
	Create(ctx context.Context, companyID, name, currency string) (PriceType, error)
	Update(ctx context.Context, companyID, id, name, currency string) (PriceType, error)
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// List returns one page of price types matching the access filter. Count and
// fetch run against the same filter inside one transaction so the pagination
// metadata always describes the restricted set, never the whole table.
func (r *repository) List(ctx context.Context, filter ListFilter, q shared.ListQuery) ([]PriceType, int, error) {
	where := `company_id = $1`
	args := []any{filter.CompanyID}
	if !filter.All {
		where += ` AND id = ANY($2)`
		ids := filter.PriceTypeIDs
		if ids == nil {
			ids = []string{}
		}
		args = append(args, ids)
	}

	priceTypes := make([]PriceType, 0, q.Limit)
	var total int

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM price_types WHERE `+where, args...,
		).Scan(&total)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT id, company_id, name, currency, created_at, updated_at
			 FROM price_types
			 WHERE `+where+`
			 ORDER BY name DESC
			 LIMIT `+pgArg(len(args)+1)+` OFFSET `+pgArg(len(args)+2),
			append(args, q.Limit, q.StartIndex)...,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var pt PriceType
			if err := rows.Scan(&pt.ID, &pt.CompanyID, &pt.Name, &pt.Currency, &pt.CreatedAt, &pt.UpdatedAt); err != nil {
				return err
			}
			priceTypes = append(priceTypes, pt)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return priceTypes, total, nil
}

// Create inserts a new price type for the company.
func (r *repository) Create(ctx context.Context, companyID, name, currency string) (PriceType, error) {
	now := time.Now()
	pt := PriceType{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      name,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO price_types (id, company_id, name, currency, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		pt.ID, pt.CompanyID, pt.Name, pt.Currency, now,
	)
	if err != nil {
		return PriceType{}, err
	}
	return pt, nil
}

// Update rewrites a price type, scoped to its company.
func (r *repository) Update(ctx context.Context, companyID, id, name, currency string) (PriceType, error) {
	pt := PriceType{ID: id, CompanyID: companyID, Name: name, Currency: currency, UpdatedAt: time.Now()}
	err := r.pool.QueryRow(ctx,
		`UPDATE price_types SET name = $3, currency = $4, updated_at = $5
		 WHERE id = $1 AND company_id = $2
		 RETURNING created_at`,
		id, companyID, name, currency, pt.UpdatedAt,
	).Scan(&pt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PriceType{}, shared.ErrNotFound
		}
		return PriceType{}, err
	}
	return pt, nil
}

// Delete removes a price type, scoped to its company.
func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM price_types WHERE id = $1 AND company_id = $2`, id, companyID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func pgArg(n int) string {
	return "$" + strconv.Itoa(n)
}
