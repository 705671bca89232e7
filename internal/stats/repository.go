package stats

import (
	"context"
	"database/sql"
	"fmt"
)

// Overview is the dashboard's headline counts.
type Overview struct {
	PendingReceipts        int64 `json:"pending_receipts"`
	PendingIdentifications int64 `json:"pending_identifications"`
	VerifiedUsers          int64 `json:"verified_users"`
	OpenProperties         int64 `json:"open_properties"`
	ConfirmedUnits         int64 `json:"confirmed_units"`
	WaitlistedUnits        int64 `json:"waitlisted_units"`
}

// PropertyRoster is one property's funding progress.
type PropertyRoster struct {
	PropertyID  string `json:"property_id"`
	Name        string `json:"name"`
	FunderCount int    `json:"funder_count"`
	Confirmed   int64  `json:"confirmed"`
	Waitlisted  int64  `json:"waitlisted"`
}

type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
	PropertyRosters(ctx context.Context) ([]PropertyRoster, error)
}

type sqlRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &sqlRepository{db: db}
}

func (r *sqlRepository) Overview(ctx context.Context) (*Overview, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM receipts WHERE status = 'pending'),
			(SELECT COUNT(*) FROM identifications WHERE status = 'pending'),
			(SELECT COUNT(*) FROM users WHERE identification_verified_at IS NOT NULL),
			(SELECT COUNT(*) FROM properties WHERE status <> 'sold_out'),
			(SELECT COUNT(*) FROM funders WHERE status = 'funder'),
			(SELECT COUNT(*) FROM funders WHERE status = 'pending')
	`

	var overview Overview
	err := r.db.QueryRowContext(ctx, query).Scan(
		&overview.PendingReceipts,
		&overview.PendingIdentifications,
		&overview.VerifiedUsers,
		&overview.OpenProperties,
		&overview.ConfirmedUnits,
		&overview.WaitlistedUnits,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load overview: %w", err)
	}
	return &overview, nil
}

func (r *sqlRepository) PropertyRosters(ctx context.Context) ([]PropertyRoster, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.funder_count,
			COUNT(f.id) FILTER (WHERE f.status = 'funder')  AS confirmed,
			COUNT(f.id) FILTER (WHERE f.status = 'pending') AS waitlisted
		FROM properties p
		LEFT JOIN funders f ON f.property_id = p.id
		GROUP BY p.id, p.name, p.funder_count
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load property rosters: %w", err)
	}
	defer rows.Close()

	var rosters []PropertyRoster
	for rows.Next() {
		var roster PropertyRoster
		if err := rows.Scan(&roster.PropertyID, &roster.Name, &roster.FunderCount, &roster.Confirmed, &roster.Waitlisted); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		rosters = append(rosters, roster)
	}
	return rosters, rows.Err()
}
