package service

import (
	"context"
	"errors"
	"testing"

	"github.com/propertyhub/marketplace-api/internal/core/domain"
	"github.com/propertyhub/marketplace-api/internal/core/ports"
)

type stubStatsCache struct {
	stored *ports.DashboardStats
	hits   int
	sets   int
}

func (c *stubStatsCache) Get(_ context.Context) (*ports.DashboardStats, bool) {
	if c.stored == nil {
		return nil, false
	}
	c.hits++
	clone := *c.stored
	return &clone, true
}

func (c *stubStatsCache) Set(_ context.Context, stats *ports.DashboardStats) {
	c.sets++
	clone := *stats
	c.stored = &clone
}

func newAdminFixture() (*AdminService, *PropertyService, *stubPropertyRepo, *stubUserRepo, *stubStatsCache) {
	props := newStubPropertyRepo()
	users := newStubUserRepo()
	users.seed("owner-1", domain.RoleUser)
	users.seed("other-1", domain.RoleUser)
	users.seed("admin-1", domain.RoleAdmin)
	cache := &stubStatsCache{}
	propertySvc := NewPropertyService(props, users, discardLogger)
	adminSvc := NewAdminService(props, users, cache, discardLogger)
	return adminSvc, propertySvc, props, users, cache
}

// ---------------------------------------------------------------------------
// ComputeStats
// ---------------------------------------------------------------------------

func TestAdminService_ComputeStats_NonAdminForbidden(t *testing.T) {
	admin, _, _, _, _ := newAdminFixture()

	_, err := admin.ComputeStats(context.Background(), asOwner())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	_, err = admin.ComputeStats(context.Background(), domain.Principal{})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("unauthenticated caller must be forbidden, got %v", err)
	}
}

func TestAdminService_ComputeStats_Counts(t *testing.T) {
	admin, propertySvc, repo, _, _ := newAdminFixture()

	// 3 houses, 2 lands: one house sold, one land pending, rest available.
	ids := make([]string, 0, 5)
	for i := 0; i < 3; i++ {
		p := seedProperty(t, propertySvc, func(in *ports.CreatePropertyInput) { in.Type = "house" })
		ids = append(ids, p.ID)
	}
	for i := 0; i < 2; i++ {
		p := seedProperty(t, propertySvc, func(in *ports.CreatePropertyInput) {
			in.Type = "land"
			in.Bedrooms = 0
			in.Bathrooms = 0
		})
		ids = append(ids, p.ID)
	}
	repo.byID[ids[0]].Status = domain.StatusSold
	repo.byID[ids[3]].Status = domain.StatusPending

	stats, err := admin.ComputeStats(context.Background(), asAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalProperties != 5 {
		t.Errorf("total: expected 5, got %d", stats.TotalProperties)
	}
	if stats.Houses+stats.Lands != stats.TotalProperties {
		t.Errorf("houses+lands must equal total: %d+%d != %d", stats.Houses, stats.Lands, stats.TotalProperties)
	}
	if stats.AvailableProperties != 3 || stats.SoldProperties != 1 {
		t.Errorf("status counts wrong: available=%d sold=%d", stats.AvailableProperties, stats.SoldProperties)
	}
	pending := stats.TotalProperties - stats.AvailableProperties - stats.SoldProperties
	if pending != 1 {
		t.Errorf("implied pending count: expected 1, got %d", pending)
	}
}

func TestAdminService_ComputeStats_ExcludesAdminsFromUserCount(t *testing.T) {
	admin, _, _, _, _ := newAdminFixture()

	stats, err := admin.ComputeStats(context.Background(), asAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Fixture seeds two users and one admin.
	if stats.TotalUsers != 2 {
		t.Errorf("expected 2 users (admins excluded), got %d", stats.TotalUsers)
	}
}

func TestAdminService_ComputeStats_UsesCache(t *testing.T) {
	admin, propertySvc, _, _, cache := newAdminFixture()
	seedProperty(t, propertySvc, nil)

	first, err := admin.ComputeStats(context.Background(), asAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("miss must populate the cache, sets=%d", cache.sets)
	}

	// A second listing appears, but the cached snapshot is still served.
	seedProperty(t, propertySvc, nil)
	second, err := admin.ComputeStats(context.Background(), asAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.hits != 1 {
		t.Errorf("expected a cache hit, hits=%d", cache.hits)
	}
	if second.TotalProperties != first.TotalProperties {
		t.Errorf("expected cached total %d, got %d", first.TotalProperties, second.TotalProperties)
	}
}

func TestAdminService_ComputeStats_NilCache(t *testing.T) {
	props := newStubPropertyRepo()
	users := newStubUserRepo()
	users.seed("admin-1", domain.RoleAdmin)
	admin := NewAdminService(props, users, nil, discardLogger)

	if _, err := admin.ComputeStats(context.Background(), asAdmin()); err != nil {
		t.Fatalf("nil cache must disable caching, not fail: %v", err)
	}
}

// ---------------------------------------------------------------------------
// SetStatus
// ---------------------------------------------------------------------------

func TestAdminService_SetStatus(t *testing.T) {
	admin, propertySvc, _, _, _ := newAdminFixture()
	created := seedProperty(t, propertySvc, nil)

	updated, err := admin.SetStatus(context.Background(), asAdmin(), created.ID, "sold")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusSold {
		t.Errorf("expected sold, got %q", updated.Status)
	}
}

func TestAdminService_SetStatus_OwnerForbiddenOnAdminPath(t *testing.T) {
	// The admin status path requires the admin role even for the owner.
	admin, propertySvc, repo, _, _ := newAdminFixture()
	created := seedProperty(t, propertySvc, nil)

	_, err := admin.SetStatus(context.Background(), asOwner(), created.ID, "sold")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.byID[created.ID].Status != domain.StatusAvailable {
		t.Error("rejected status change must not mutate the record")
	}
}

func TestAdminService_SetStatus_InvalidStatus(t *testing.T) {
	admin, propertySvc, _, _, _ := newAdminFixture()
	created := seedProperty(t, propertySvc, nil)

	_, err := admin.SetStatus(context.Background(), asAdmin(), created.ID, "archived")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["status"]; !ok {
		t.Errorf("expected status violation, got %v", ve.Fields)
	}
}

func TestAdminService_SetStatus_NotFound(t *testing.T) {
	admin, _, _, _, _ := newAdminFixture()

	_, err := admin.SetStatus(context.Background(), asAdmin(), "missing", "sold")
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ToggleFeatured
// ---------------------------------------------------------------------------

func TestAdminService_ToggleFeatured_Involution(t *testing.T) {
	admin, propertySvc, _, _, _ := newAdminFixture()
	created := seedProperty(t, propertySvc, nil)

	once, err := admin.ToggleFeatured(context.Background(), asAdmin(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !once.Featured {
		t.Error("first toggle must set featured")
	}

	twice, err := admin.ToggleFeatured(context.Background(), asAdmin(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if twice.Featured != created.Featured {
		t.Error("toggling twice must restore the original value")
	}
}

func TestAdminService_ToggleFeatured_NonAdminForbidden(t *testing.T) {
	admin, propertySvc, repo, _, _ := newAdminFixture()
	created := seedProperty(t, propertySvc, nil)

	_, err := admin.ToggleFeatured(context.Background(), asOwner(), created.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.byID[created.ID].Featured {
		t.Error("rejected toggle must leave the flag unchanged")
	}
}

func TestAdminService_ToggleFeatured_NotFound(t *testing.T) {
	admin, _, _, _, _ := newAdminFixture()

	_, err := admin.ToggleFeatured(context.Background(), asAdmin(), "missing")
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Listing and deletion
// ---------------------------------------------------------------------------

func TestAdminService_ListAllProperties(t *testing.T) {
	admin, propertySvc, repo, _, _ := newAdminFixture()

	seedProperty(t, propertySvc, nil)
	other := seedProperty(t, propertySvc, nil)
	repo.byID[other.ID].OwnerID = "other-1"

	results, err := admin.ListAllProperties(context.Background(), asAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("admin view must include every listing, got %d", len(results))
	}

	if _, err := admin.ListAllProperties(context.Background(), asOwner()); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-admin must be forbidden, got %v", err)
	}
}

func TestAdminService_ListUsers(t *testing.T) {
	admin, _, _, _, _ := newAdminFixture()

	users, err := admin.ListUsers(context.Background(), asAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("expected 3 accounts, got %d", len(users))
	}

	if _, err := admin.ListUsers(context.Background(), asOther()); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-admin must be forbidden, got %v", err)
	}
}

func TestAdminService_DeleteProperty(t *testing.T) {
	admin, propertySvc, repo, _, _ := newAdminFixture()
	created := seedProperty(t, propertySvc, nil)

	if err := admin.DeleteProperty(context.Background(), asAdmin(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.byID[created.ID]; ok {
		t.Error("record must be removed")
	}

	if err := admin.DeleteProperty(context.Background(), asAdmin(), created.ID); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("expected ErrPropertyNotFound on second delete, got %v", err)
	}
}

func TestAdminService_DeleteProperty_NonAdminForbidden(t *testing.T) {
	admin, propertySvc, repo, _, _ := newAdminFixture()
	created := seedProperty(t, propertySvc, nil)

	if err := admin.DeleteProperty(context.Background(), asOwner(), created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, ok := repo.byID[created.ID]; !ok {
		t.Error("rejected delete must leave the record in place")
	}
}

func TestAdminService_DeleteUser(t *testing.T) {
	admin, _, _, users, _ := newAdminFixture()

	if err := admin.DeleteUser(context.Background(), asAdmin(), "other-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := users.byID["other-1"]; ok {
		t.Error("account must be removed")
	}

	if err := admin.DeleteUser(context.Background(), asAdmin(), "other-1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if err := admin.DeleteUser(context.Background(), asOwner(), "admin-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-admin must be forbidden, got %v", err)
	}
}
