package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record or object is not found.
	ErrNotFound = errors.New("record not found")
)

// SiteStore defines the interface for site registry operations.
type SiteStore interface {
	// Create inserts a new site. An empty ID is replaced by a new UUID.
	Create(ctx context.Context, site *SiteRecord) error
	// Get returns the site with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*SiteRecord, error)
	// UpdateStatus sets the status of an existing site.
	UpdateStatus(ctx context.Context, id, status string) error
	// List returns all sites ordered by creation time.
	List(ctx context.Context) ([]SiteRecord, error)
}

// SiteRepo implements SiteStore on SQLite.
type SiteRepo struct {
	db *sql.DB
}

// NewSiteRepo creates a new SiteRepo.
func NewSiteRepo(db *sql.DB) *SiteRepo {
	return &SiteRepo{db: db}
}

func (r *SiteRepo) Create(ctx context.Context, site *SiteRecord) error {
	if site.ID == "" {
		site.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sites (id, name, domain, origin, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		site.ID, site.Name, site.Domain, site.Origin, site.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert site: %w", err)
	}

	created, err := r.Get(ctx, site.ID)
	if err != nil {
		return err
	}
	*site = *created
	return nil
}

func (r *SiteRepo) Get(ctx context.Context, id string) (*SiteRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, domain, origin, status, created_at, updated_at FROM sites WHERE id = ?",
		id,
	)
	site, err := scanSite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query site: %w", err)
	}
	return site, nil
}

func (r *SiteRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE sites SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update site status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update site status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SiteRepo) List(ctx context.Context) ([]SiteRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, domain, origin, status, created_at, updated_at FROM sites ORDER BY created_at, rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	defer rows.Close()

	var sites []SiteRecord
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, *site)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sites, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSite(s scanner) (*SiteRecord, error) {
	var site SiteRecord
	var createdAt, updatedAt string
	if err := s.Scan(&site.ID, &site.Name, &site.Domain, &site.Origin, &site.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if site.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	if site.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}
	return &site, nil
}
