package ports

import (
	"context"

	"github.com/propertyhub/marketplace-api/internal/core/domain"
)

// SearchCriteria carries the raw, user-supplied search parameters. All
// fields are optional; price bounds arrive as strings exactly as supplied on
// the wire so the service can reject non-numeric input with a field-level
// error instead of silently coercing it.
type SearchCriteria struct {
	Type     string
	Category string
	City     string
	State    string
	Status   string
	MinPrice string
	MaxPrice string
	Search   string
}

// CreatePropertyInput carries everything needed to create a listing. The
// owner is taken from the authenticated principal, never from the payload.
type CreatePropertyInput struct {
	Title       string
	Description string
	Type        string
	Category    string
	Price       float64
	Size        float64
	SizeUnit    string
	Bedrooms    int
	Bathrooms   int
	Address     string
	City        string
	State       string
	ZipCode     string
	Images      []string
}

// PropertyService defines the listing use-cases.
type PropertyService interface {
	// Search compiles criteria into a repository predicate and executes it.
	// Invalid enum values or non-numeric price bounds fail with a
	// *domain.ValidationError; they are never silently ignored.
	Search(ctx context.Context, criteria SearchCriteria) ([]*domain.Property, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, principal domain.Principal, input CreatePropertyInput) (*domain.Property, error)
	// Update applies a partial patch. Only the owner or an admin may update;
	// the patched record must still satisfy the full invariant set or the
	// update fails atomically.
	Update(ctx context.Context, principal domain.Principal, id string, patch PropertyPatch) (*domain.Property, error)
	Delete(ctx context.Context, principal domain.Principal, id string) error
	// ListOwn returns the caller's listings, newest first.
	ListOwn(ctx context.Context, principal domain.Principal) ([]*domain.Property, error)
}

// DashboardStats is the admin dashboard rollup. TotalUsers counts only
// accounts with role "user"; administrators are excluded.
type DashboardStats struct {
	TotalProperties     int64 `json:"total_properties"`
	TotalUsers          int64 `json:"total_users"`
	AvailableProperties int64 `json:"available_properties"`
	SoldProperties      int64 `json:"sold_properties"`
	Houses              int64 `json:"houses"`
	Lands               int64 `json:"lands"`
}

// AdminService defines the administrator-only use-cases. Every method
// returns domain.ErrForbidden for a non-admin principal before touching
// any state.
type AdminService interface {
	ComputeStats(ctx context.Context, principal domain.Principal) (*DashboardStats, error)
	ListAllProperties(ctx context.Context, principal domain.Principal) ([]*domain.Property, error)
	ListUsers(ctx context.Context, principal domain.Principal) ([]*domain.User, error)
	SetStatus(ctx context.Context, principal domain.Principal, id string, status string) (*domain.Property, error)
	// ToggleFeatured inverts the featured flag; toggling twice restores the
	// original value.
	ToggleFeatured(ctx context.Context, principal domain.Principal, id string) (*domain.Property, error)
	DeleteProperty(ctx context.Context, principal domain.Principal, id string) error
	DeleteUser(ctx context.Context, principal domain.Principal, id string) error
}

// StatsCache is a short-lived cache for the dashboard rollup so repeated
// admin page loads do not re-scan the collections.
type StatsCache interface {
	Get(ctx context.Context) (*DashboardStats, bool)
	Set(ctx context.Context, stats *DashboardStats)
}
