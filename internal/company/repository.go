package company

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

// Repository provides PostgreSQL backed persistence for companies.
type Repository interface {
	ListForUser(ctx context.Context, userID string, q shared.ListQuery) ([]Company, int, error)
	GetForUser(ctx context.Context, id, userID string) (Company, error)
	Create(ctx context.Context, c Company, ownerUserID string) (Company, error)
	Update(ctx context.Context, c Company) (Company, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const companyColumns = `c.id, c.name, c.tin, c.description, c.description_ru,
	c.slogan, c.slogan_ru, c.image_id, c.created_at, c.updated_at`

// ListForUser returns one page of the companies the user belongs to. Count
// and fetch run in one transaction so the pagination metadata matches the
// returned page.
func (r *repository) ListForUser(ctx context.Context, userID string, q shared.ListQuery) ([]Company, int, error) {
	companies := make([]Company, 0, q.Limit)
	var total int

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM companies c
			 JOIN members m ON m.company_id = c.id
			 WHERE m.user_id = $1`, userID,
		).Scan(&total)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT `+companyColumns+`
			 FROM companies c
			 JOIN members m ON m.company_id = c.id
			 WHERE m.user_id = $1
			 ORDER BY c.name DESC
			 LIMIT $2 OFFSET $3`,
			userID, q.Limit, q.StartIndex,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			c, err := scanCompany(rows)
			if err != nil {
				return err
			}
			companies = append(companies, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

// GetForUser fetches a company the user is a member of.
func (r *repository) GetForUser(ctx context.Context, id, userID string) (Company, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+companyColumns+`
		 FROM companies c
		 JOIN members m ON m.company_id = c.id
		 WHERE c.id = $1 AND m.user_id = $2`,
		id, userID,
	)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Company{}, shared.ErrNotFound
		}
		return Company{}, err
	}
	return c, nil
}

// Create inserts the company together with its default owner role and the
// creator's member record in a single transaction.
func (r *repository) Create(ctx context.Context, c Company, ownerUserID string) (Company, error) {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO companies
			 (id, name, tin, description, description_ru, slogan, slogan_ru, image_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
			c.ID, c.Name, c.TIN, c.Description, c.DescriptionRu,
			c.Slogan, c.SloganRu, c.ImageID, now,
		)
		if err != nil {
			return err
		}

		roleID := uuid.NewString()
		_, err = tx.Exec(ctx,
			`INSERT INTO roles (id, company_id, name, is_default, created_at, updated_at)
			 VALUES ($1, $2, $3, TRUE, $4, $4)`,
			roleID, c.ID, OwnerRoleName, now,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO members (id, company_id, user_id, role_id)
			 VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), c.ID, ownerUserID, roleID,
		)
		return err
	})
	if err != nil {
		return Company{}, err
	}
	return c, nil
}

// Update rewrites the mutable company fields.
func (r *repository) Update(ctx context.Context, c Company) (Company, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE companies SET
			name = $2, tin = $3, description = $4, description_ru = $5,
			slogan = $6, slogan_ru = $7, image_id = $8, updated_at = $9
		 WHERE id = $1
		 RETURNING created_at`,
		c.ID, c.Name, c.TIN, c.Description, c.DescriptionRu,
		c.Slogan, c.SloganRu, c.ImageID, time.Now(),
	)
	if err := row.Scan(&c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Company{}, shared.ErrNotFound
		}
		return Company{}, err
	}
	c.UpdatedAt = time.Now()
	return c, nil
}

// Delete removes the company; owned rows go with it via cascading FKs.
func (r *repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (Company, error) {
	var c Company
	err := row.Scan(
		&c.ID, &c.Name, &c.TIN, &c.Description, &c.DescriptionRu,
		&c.Slogan, &c.SloganRu, &c.ImageID, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}
