package role

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

// Repository provides PostgreSQL backed persistence for roles and their
// available-data grants.
type Repository interface {
	List(ctx context.Context, companyID string, q shared.ListQuery) ([]Role, int, error)
	Create(ctx context.Context, companyID, name string, entries []Entry) (Role, error)
	Update(ctx context.Context, companyID, id, name string, entries []Entry) (Role, error)
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// List returns one page of the company's roles with their grants attached.
func (r *repository) List(ctx context.Context, companyID string, q shared.ListQuery) ([]Role, int, error) {
	roles := make([]Role, 0, q.Limit)
	var total int

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM roles WHERE company_id = $1`, companyID,
		).Scan(&total)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT id, company_id, name, is_default, created_at, updated_at
			 FROM roles
			 WHERE company_id = $1
			 ORDER BY name DESC
			 LIMIT $2 OFFSET $3`,
			companyID, q.Limit, q.StartIndex,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		index := make(map[string]int)
		for rows.Next() {
			var role Role
			if err := rows.Scan(&role.ID, &role.CompanyID, &role.Name, &role.Default, &role.CreatedAt, &role.UpdatedAt); err != nil {
				return err
			}
			role.AvailableData = []AvailableData{}
			index[role.ID] = len(roles)
			roles = append(roles, role)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if len(roles) == 0 {
			return nil
		}

		roleIDs := make([]string, len(roles))
		for i, role := range roles {
			roleIDs[i] = role.ID
		}

		dataRows, err := tx.Query(ctx,
			`SELECT id, role_id, stock_id, price_type_id
			 FROM available_data
			 WHERE role_id = ANY($1)`,
			roleIDs,
		)
		if err != nil {
			return err
		}
		defer dataRows.Close()

		for dataRows.Next() {
			var ad AvailableData
			if err := dataRows.Scan(&ad.ID, &ad.RoleID, &ad.StockID, &ad.PriceTypeID); err != nil {
				return err
			}
			if i, ok := index[ad.RoleID]; ok {
				roles[i].AvailableData = append(roles[i].AvailableData, ad)
			}
		}
		return dataRows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

// Create inserts a role and its grants in one transaction.
func (r *repository) Create(ctx context.Context, companyID, name string, entries []Entry) (Role, error) {
	now := time.Now()
	role := Role{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		Name:          name,
		AvailableData: []AvailableData{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO roles (id, company_id, name, is_default, created_at, updated_at)
			 VALUES ($1, $2, $3, FALSE, $4, $4)`,
			role.ID, companyID, name, now,
		)
		if err != nil {
			return err
		}
		grants, err := insertEntries(ctx, tx, role.ID, entries)
		if err != nil {
			return err
		}
		role.AvailableData = grants
		return nil
	})
	if err != nil {
		return Role{}, err
	}
	return role, nil
}

// Update renames a role and replaces its grants in one transaction.
func (r *repository) Update(ctx context.Context, companyID, id, name string, entries []Entry) (Role, error) {
	role := Role{ID: id, CompanyID: companyID, Name: name, AvailableData: []AvailableData{}, UpdatedAt: time.Now()}

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`UPDATE roles SET name = $3, updated_at = $4
			 WHERE id = $1 AND company_id = $2
			 RETURNING is_default, created_at`,
			id, companyID, name, role.UpdatedAt,
		).Scan(&role.Default, &role.CreatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shared.ErrNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM available_data WHERE role_id = $1`, id); err != nil {
			return err
		}
		grants, err := insertEntries(ctx, tx, id, entries)
		if err != nil {
			return err
		}
		role.AvailableData = grants
		return nil
	})
	if err != nil {
		return Role{}, err
	}
	return role, nil
}

// Delete removes a role, scoped to its company.
func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM roles WHERE id = $1 AND company_id = $2`, id, companyID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func insertEntries(ctx context.Context, tx pgx.Tx, roleID string, entries []Entry) ([]AvailableData, error) {
	grants := make([]AvailableData, 0, len(entries))
	for _, entry := range entries {
		ad := AvailableData{
			ID:          uuid.NewString(),
			RoleID:      roleID,
			StockID:     entry.StockID,
			PriceTypeID: entry.PriceTypeID,
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO available_data (id, role_id, stock_id, price_type_id)
			 VALUES ($1, $2, $3, $4)`,
			ad.ID, ad.RoleID, ad.StockID, ad.PriceTypeID,
		)
		if err != nil {
			return nil, err
		}
		grants = append(grants, ad)
	}
	return grants, nil
}
