package storage

import "time"

// SiteRecord is a published website in the registry.
type SiteRecord struct {
	ID        string // UUID
	Name      string // Archive slug the site was created for
	Domain    string // Public host name
	Origin    string // Object store prefix holding the site files, without leading slash
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicationRecord is one publish run against a site.
type PublicationRecord struct {
	ID          string    `json:"id"` // UUID
	SiteID      string    `json:"site_id"`
	Prefix      string    `json:"prefix"` // Object store prefix the items were listed from
	Title       string    `json:"title"`
	ItemCount   int       `json:"item_count"`
	PublishedAt time.Time `json:"published_at"`
}
