package invitation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendoro/vendoro/internal/platform/db"
	"github.com/vendoro/vendoro/internal/shared"
)

// uniqueViolation is the PostgreSQL error code raised when the accepting
// user already has a member row for the company.
const uniqueViolation = "23505"

// Repository provides PostgreSQL backed persistence for invitations.
type Repository interface {
	List(ctx context.Context, companyID string, q shared.ListQuery) ([]Invitation, int, error)
	Create(ctx context.Context, companyID, roleID, email string) (Invitation, error)
	Delete(ctx context.Context, companyID, id string) error
	// Accept converts an invitation addressed to the user's email into a
	// member record and removes the invitation, all in one transaction.
	Accept(ctx context.Context, id, userID string) (AcceptedMember, error)
	CompanyName(ctx context.Context, companyID string) (string, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// List returns one page of the company's pending invitations.
func (r *repository) List(ctx context.Context, companyID string, q shared.ListQuery) ([]Invitation, int, error) {
	invitations := make([]Invitation, 0, q.Limit)
	var total int

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM invitations WHERE company_id = $1`, companyID,
		).Scan(&total)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT id, company_id, role_id, email, created_at
			 FROM invitations
			 WHERE company_id = $1
			 ORDER BY created_at DESC
			 LIMIT $2 OFFSET $3`,
			companyID, q.Limit, q.StartIndex,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var inv Invitation
			if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.RoleID, &inv.Email, &inv.CreatedAt); err != nil {
				return err
			}
			invitations = append(invitations, inv)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return invitations, total, nil
}

// Create inserts a pending invitation.
func (r *repository) Create(ctx context.Context, companyID, roleID, email string) (Invitation, error) {
	inv := Invitation{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		RoleID:    roleID,
		Email:     strings.ToLower(email),
		CreatedAt: time.Now(),
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO invitations (id, company_id, role_id, email, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		inv.ID, inv.CompanyID, inv.RoleID, inv.Email, inv.CreatedAt,
	)
	if err != nil {
		return Invitation{}, err
	}
	return inv, nil
}

// Delete removes a pending invitation, scoped to its company.
func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM invitations WHERE id = $1 AND company_id = $2`, id, companyID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Accept(ctx context.Context, id, userID string) (AcceptedMember, error) {
	var member AcceptedMember

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var inv Invitation
		err := tx.QueryRow(ctx,
			`SELECT id, company_id, role_id, email FROM invitations WHERE id = $1`, id,
		).Scan(&inv.ID, &inv.CompanyID, &inv.RoleID, &inv.Email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shared.ErrNotFound
			}
			return err
		}

		var userEmail string
		if err := tx.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&userEmail); err != nil {
			return err
		}
		// Invitations addressed to someone else look like they do not exist.
		if !strings.EqualFold(inv.Email, userEmail) {
			return shared.ErrNotFound
		}

		member = AcceptedMember{
			ID:        uuid.NewString(),
			CompanyID: inv.CompanyID,
			UserID:    userID,
			RoleID:    inv.RoleID,
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO members (id, company_id, user_id, role_id)
			 VALUES ($1, $2, $3, $4)`,
			member.ID, member.CompanyID, member.UserID, member.RoleID,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return shared.ErrDuplicate
			}
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM invitations WHERE id = $1`, inv.ID)
		return err
	})
	if err != nil {
		return AcceptedMember{}, err
	}
	return member, nil
}

func (r *repository) CompanyName(ctx context.Context, companyID string) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM companies WHERE id = $1`, companyID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return name, nil
}
