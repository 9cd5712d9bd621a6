package ports

import (
	"context"

	"github.com/propertyhub/marketplace-api/internal/core/domain"
)

// SearchFilter is the compiled, repository-executable form of the listing
// search criteria. Zero values impose no constraint. The service layer is
// responsible for validating enum fields before building one of these.
type SearchFilter struct {
	Type     string   // optional: "house" or "land"
	Category string   // optional: "buy" or "sell"
	City     string   // optional: case-insensitive substring on location.city
	State    string   // optional: case-insensitive substring on location.state
	Status   string   // optional: lifecycle status
	MinPrice *float64 // optional: inclusive lower price bound
	MaxPrice *float64 // optional: inclusive upper price bound
	Search   string   // optional: free-text query over the text index
	OwnerID  string   // optional: restrict to a single owner
}

// TextSearchActive reports whether relevance-ranked ordering applies.
// When false, results are ordered newest-created first.
func (f SearchFilter) TextSearchActive() bool {
	return f.Search != ""
}

// PropertyPatch carries the fields of a partial update. Nil fields are left
// untouched. ID, owner and created_at are never patchable.
type PropertyPatch struct {
	Title       *string
	Description *string
	Type        *string
	Category    *string
	Price       *float64
	Size        *float64
	SizeUnit    *string
	Bedrooms    *int
	Bathrooms   *int
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	Images      *[]string
	Status      *string
	Featured    *bool
}

// PropertyRepository defines persistence operations for property listings.
// Every read that returns properties expands the owner reference into an
// OwnerSummary so downstream consumers need no secondary lookup.
type PropertyRepository interface {
	// Search returns all properties matching filter, relevance-ranked when a
	// text search is active and newest-created first otherwise.
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Property, error)
	// FindByID returns the property or domain.ErrPropertyNotFound. The owner
	// summary includes the owner's address on this read.
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	// Replace atomically overwrites the stored document with p (matched by
	// p.ID). Returns domain.ErrPropertyNotFound when the id does not resolve.
	Replace(ctx context.Context, p *domain.Property) (*domain.Property, error)
	Delete(ctx context.Context, id string) error

	// Counts for the aggregation reporter. Each is an independent
	// point-in-time read; no snapshot consistency is guaranteed.
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.PropertyStatus) (int64, error)
	CountByType(ctx context.Context, propertyType domain.PropertyType) (int64, error)
}

// UserRepository defines persistence operations for marketplace accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListAll returns every account newest-first. Password hashes are never
	// serialized by the domain type.
	ListAll(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}
