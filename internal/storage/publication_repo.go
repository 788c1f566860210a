package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// PublicationStore records publish runs.
type PublicationStore interface {
	Record(ctx context.Context, pub *PublicationRecord) error
	ListBySite(ctx context.Context, siteID string) ([]PublicationRecord, error)
}

// PublicationRepo implements PublicationStore on SQLite.
type PublicationRepo struct {
	db *sql.DB
}

// NewPublicationRepo creates a new PublicationRepo.
func NewPublicationRepo(db *sql.DB) *PublicationRepo {
	return &PublicationRepo{db: db}
}

// Record inserts a publication, generating its ID when empty.
func (r *PublicationRepo) Record(ctx context.Context, pub *PublicationRecord) error {
	if pub.ID == "" {
		pub.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO publications (id, site_id, prefix, title, item_count, published_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		pub.ID, pub.SiteID, pub.Prefix, pub.Title, pub.ItemCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert publication: %w", err)
	}
	return nil
}

// ListBySite returns the publications of a site, most recent first.
func (r *PublicationRepo) ListBySite(ctx context.Context, siteID string) ([]PublicationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, site_id, prefix, title, item_count, published_at FROM publications
		 WHERE site_id = ? ORDER BY published_at DESC, rowid DESC`,
		siteID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query publications: %w", err)
	}
	defer rows.Close()

	var pubs []PublicationRecord
	for rows.Next() {
		var pub PublicationRecord
		var title sql.NullString
		var publishedAt string
		if err := rows.Scan(&pub.ID, &pub.SiteID, &pub.Prefix, &title, &pub.ItemCount, &publishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan publication: %w", err)
		}
		pub.Title = title.String
		if pub.PublishedAt, err = parseTimestamp(publishedAt); err != nil {
			return nil, fmt.Errorf("failed to parse published_at timestamp: %w", err)
		}
		pubs = append(pubs, pub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pubs, nil
}
