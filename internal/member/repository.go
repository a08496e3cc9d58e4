package member

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendoro/vendoro/internal/platform/db"
	"github.com/vendoro/vendoro/internal/shared"
)

// Repository provides PostgreSQL backed persistence for company members.
type Repository interface {
	List(ctx context.Context, companyID string, q shared.ListQuery) ([]Member, int, error)
	UpdateRole(ctx context.Context, companyID, id, roleID string) (Member, error)
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const memberColumns = `m.id, m.company_id, m.user_id, m.role_id,
	u.id, u.email, u.name, r.id, r.name, r.is_default`

const memberJoins = `FROM members m
	JOIN users u ON u.id = m.user_id
	JOIN roles r ON r.id = m.role_id`

// List returns one page of the company's members with their user and role
// summaries attached.
func (r *repository) List(ctx context.Context, companyID string, q shared.ListQuery) ([]Member, int, error) {
	members := make([]Member, 0, q.Limit)
	var total int

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM members WHERE company_id = $1`, companyID,
		).Scan(&total)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT `+memberColumns+` `+memberJoins+`
			 WHERE m.company_id = $1
			 ORDER BY m.user_id DESC
			 LIMIT $2 OFFSET $3`,
			companyID, q.Limit, q.StartIndex,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			m, err := scanMember(rows)
			if err != nil {
				return err
			}
			members = append(members, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// UpdateRole changes a member's role, scoped to the company.
func (r *repository) UpdateRole(ctx context.Context, companyID, id, roleID string) (Member, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE members SET role_id = $3 WHERE id = $1 AND company_id = $2`,
		id, companyID, roleID,
	)
	if err != nil {
		return Member{}, err
	}
	if tag.RowsAffected() == 0 {
		return Member{}, shared.ErrNotFound
	}

	row := r.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` `+memberJoins+` WHERE m.id = $1`, id,
	)
	m, err := scanMember(row)
	if err != nil {
		return Member{}, err
	}
	return m, nil
}

// Delete removes a member, scoped to the company.
func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM members WHERE id = $1 AND company_id = $2`, id, companyID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanMember(row pgx.Row) (Member, error) {
	var m Member
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.UserID, &m.RoleID,
		&m.User.ID, &m.User.Email, &m.User.Name,
		&m.Role.ID, &m.Role.Name, &m.Role.Default,
	)
	return m, err
}
