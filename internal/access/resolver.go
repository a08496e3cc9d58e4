// Package access decides what a user may see inside a company. Every
// company-scoped list handler consults it before touching domain data.
package access

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrCompanyNotFound indicates the company does not exist, or, on the
	// write path, that the requester has no access to it.
	ErrCompanyNotFound = errors.New("access: company not found")
	// ErrNotAMember indicates the user has no member record for the company.
	ErrNotAMember = errors.New("access: user is not a member")
)

// Access describes the data window a member's role permits.
type Access struct {
	CompanyID string
	MemberID  string
	RoleID    string
	// AllPriceTypes is set for default roles; PriceTypeIDs is empty then.
	AllPriceTypes bool
	PriceTypeIDs  []string
}

// Resolver authorizes company-scoped requests.
type Resolver interface {
	// Resolve performs the full membership check used by list endpoints.
	Resolve(ctx context.Context, companyID, userID string) (Access, error)
	// Allowed performs the shallower ownership check used by write
	// endpoints: the company exists and the requester is one of its
	// members. Both failure modes surface as ErrCompanyNotFound, matching
	// the API's 404 contract for writes.
	Allowed(ctx context.Context, companyID, userID string) error
}

type resolver struct {
	pool *pgxpool.Pool
}

// NewResolver constructs a Resolver backed by the provided pool.
func NewResolver(pool *pgxpool.Pool) Resolver {
	return &resolver{pool: pool}
}

func (r *resolver) Resolve(ctx context.Context, companyID, userID string) (Access, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, companyID,
	).Scan(&exists)
	if err != nil {
		return Access{}, err
	}
	if !exists {
		return Access{}, ErrCompanyNotFound
	}

	acc := Access{CompanyID: companyID}
	var isDefault bool
	err = r.pool.QueryRow(ctx,
		`SELECT m.id, m.role_id, r.is_default
		 FROM members m
		 JOIN roles r ON r.id = m.role_id
		 WHERE m.company_id = $1 AND m.user_id = $2`,
		companyID, userID,
	).Scan(&acc.MemberID, &acc.RoleID, &isDefault)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Access{}, ErrNotAMember
		}
		return Access{}, err
	}

	if isDefault {
		acc.AllPriceTypes = true
		return acc, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT price_type_id FROM available_data WHERE role_id = $1`,
		acc.RoleID,
	)
	if err != nil {
		return Access{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return Access{}, err
		}
		acc.PriceTypeIDs = append(acc.PriceTypeIDs, id)
	}
	return acc, rows.Err()
}

func (r *resolver) Allowed(ctx context.Context, companyID, userID string) error {
	var allowed bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM members WHERE company_id = $1 AND user_id = $2
		)`, companyID, userID,
	).Scan(&allowed)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrCompanyNotFound
	}
	return nil
}
