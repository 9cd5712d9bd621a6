package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/propertyhub/marketplace-api/internal/api/metrics"
	"github.com/propertyhub/marketplace-api/internal/core/domain"
	"github.com/propertyhub/marketplace-api/internal/core/ports"
)

// AdminService implements the administrator-only surface: the dashboard
// rollup, moderation of listings and account removal. Every operation
// verifies the principal before touching any state.
type AdminService struct {
	properties ports.PropertyRepository
	users      ports.UserRepository
	cache      ports.StatsCache // optional; nil disables caching
	logger     zerolog.Logger
}

func NewAdminService(properties ports.PropertyRepository, users ports.UserRepository, cache ports.StatsCache, logger zerolog.Logger) *AdminService {
	return &AdminService{properties: properties, users: users, cache: cache, logger: logger}
}

// ComputeStats returns the dashboard counts. Each count is an independent
// point-in-time read over the live collections; no snapshot consistency is
// promised. TotalUsers excludes administrators.
func (s *AdminService) ComputeStats(ctx context.Context, principal domain.Principal) (*ports.DashboardStats, error) {
	if !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx); ok {
			return stats, nil
		}
	}

	stats := &ports.DashboardStats{}
	var err error
	if stats.TotalProperties, err = s.properties.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.users.CountByRole(ctx, domain.RoleUser); err != nil {
		return nil, err
	}
	if stats.AvailableProperties, err = s.properties.CountByStatus(ctx, domain.StatusAvailable); err != nil {
		return nil, err
	}
	if stats.SoldProperties, err = s.properties.CountByStatus(ctx, domain.StatusSold); err != nil {
		return nil, err
	}
	if stats.Houses, err = s.properties.CountByType(ctx, domain.TypeHouse); err != nil {
		return nil, err
	}
	if stats.Lands, err = s.properties.CountByType(ctx, domain.TypeLand); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, stats)
	}
	return stats, nil
}

// ListAllProperties returns every listing, owner expanded, newest first.
func (s *AdminService) ListAllProperties(ctx context.Context, principal domain.Principal) ([]*domain.Property, error) {
	if !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.properties.Search(ctx, ports.SearchFilter{})
}

// ListUsers returns every account, newest first.
func (s *AdminService) ListUsers(ctx context.Context, principal domain.Principal) ([]*domain.User, error) {
	if !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.users.ListAll(ctx)
}

// SetStatus moves a listing to the given lifecycle status. This path is
// admin-only regardless of ownership.
func (s *AdminService) SetStatus(ctx context.Context, principal domain.Principal, id string, status string) (*domain.Property, error) {
	if !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidPropertyStatus(status) {
		ve := &domain.ValidationError{}
		ve.Add("status", "status must be one of available, sold, pending")
		return nil, ve
	}

	current, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Status = domain.PropertyStatus(status)
	current.UpdatedAt = time.Now().UTC()

	updated, err := s.properties.Replace(ctx, current)
	if err != nil {
		return nil, err
	}

	metrics.AdminActionsTotal.WithLabelValues("set_status").Inc()
	s.logger.Info().Str("property_id", id).Str("status", status).Msg("property status updated")
	return updated, nil
}

// ToggleFeatured inverts the featured flag. Toggling twice restores the
// original value.
func (s *AdminService) ToggleFeatured(ctx context.Context, principal domain.Principal, id string) (*domain.Property, error) {
	if !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	current, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Featured = !current.Featured
	current.UpdatedAt = time.Now().UTC()

	updated, err := s.properties.Replace(ctx, current)
	if err != nil {
		return nil, err
	}

	metrics.AdminActionsTotal.WithLabelValues("toggle_featured").Inc()
	s.logger.Info().Str("property_id", id).Bool("featured", updated.Featured).Msg("featured flag toggled")
	return updated, nil
}

// DeleteProperty removes any listing regardless of ownership.
func (s *AdminService) DeleteProperty(ctx context.Context, principal domain.Principal, id string) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.properties.Delete(ctx, id); err != nil {
		return err
	}
	metrics.AdminActionsTotal.WithLabelValues("delete_property").Inc()
	s.logger.Info().Str("property_id", id).Msg("property removed by admin")
	return nil
}

// DeleteUser removes an account.
func (s *AdminService) DeleteUser(ctx context.Context, principal domain.Principal, id string) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	metrics.AdminActionsTotal.WithLabelValues("delete_user").Inc()
	s.logger.Info().Str("user_id", id).Msg("user removed by admin")
	return nil
}
