package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/propertyhub/marketplace-api/internal/api/metrics"
	"github.com/propertyhub/marketplace-api/internal/core/domain"
	"github.com/propertyhub/marketplace-api/internal/core/ports"
)

type PropertyService struct {
	repo   ports.PropertyRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewPropertyService(repo ports.PropertyRepository, users ports.UserRepository, logger zerolog.Logger) *PropertyService {
	return &PropertyService{repo: repo, users: users, logger: logger}
}

// compileFilter validates the raw criteria and translates them into the
// repository predicate. Every invalid field is reported; an unrecognised
// enum value is an input error, never silently dropped.
func compileFilter(criteria ports.SearchCriteria) (ports.SearchFilter, error) {
	ve := &domain.ValidationError{}
	filter := ports.SearchFilter{
		City:   criteria.City,
		State:  criteria.State,
		Search: criteria.Search,
	}

	if criteria.Type != "" {
		if !domain.ValidPropertyType(criteria.Type) {
			ve.Add("type", "type must be house or land")
		}
		filter.Type = criteria.Type
	}
	if criteria.Category != "" {
		if !domain.ValidCategory(criteria.Category) {
			ve.Add("category", "category must be buy or sell")
		}
		filter.Category = criteria.Category
	}
	if criteria.Status != "" {
		if !domain.ValidPropertyStatus(criteria.Status) {
			ve.Add("status", "status must be one of available, sold, pending")
		}
		filter.Status = criteria.Status
	}
	if criteria.MinPrice != "" {
		min, err := strconv.ParseFloat(criteria.MinPrice, 64)
		if err != nil || min < 0 {
			ve.Add("min_price", "min_price must be a non-negative number")
		} else {
			filter.MinPrice = &min
		}
	}
	if criteria.MaxPrice != "" {
		max, err := strconv.ParseFloat(criteria.MaxPrice, 64)
		if err != nil || max < 0 {
			ve.Add("max_price", "max_price must be a non-negative number")
		} else {
			filter.MaxPrice = &max
		}
	}

	if ve.HasViolations() {
		return ports.SearchFilter{}, ve
	}
	return filter, nil
}

// Search compiles the criteria and executes the query. Ordering is newest
// first, or relevance first when a text search is active.
func (s *PropertyService) Search(ctx context.Context, criteria ports.SearchCriteria) ([]*domain.Property, error) {
	filter, err := compileFilter(criteria)
	if err != nil {
		return nil, err
	}

	metrics.SearchesTotal.WithLabelValues(searchKind(filter)).Inc()

	results, err := s.repo.Search(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("property search failed")
		return nil, err
	}
	return results, nil
}

func searchKind(f ports.SearchFilter) string {
	if f.TextSearchActive() {
		return "text"
	}
	return "filter"
}

func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists a new listing owned by the principal. The full invariant
// set is checked before any write and all violations are reported together.
func (s *PropertyService) Create(ctx context.Context, principal domain.Principal, input ports.CreatePropertyInput) (*domain.Property, error) {
	if !principal.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	now := time.Now().UTC()
	p := &domain.Property{
		Title:       input.Title,
		Description: input.Description,
		Type:        domain.PropertyType(input.Type),
		Category:    domain.Category(input.Category),
		Price:       input.Price,
		Size:        input.Size,
		SizeUnit:    domain.SizeUnit(input.SizeUnit),
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		Location: domain.Location{
			Address: input.Address,
			City:    input.City,
			State:   input.State,
			ZipCode: input.ZipCode,
		},
		Images:    input.Images,
		OwnerID:   principal.ID,
		Status:    domain.StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.SizeUnit == "" {
		p.SizeUnit = domain.UnitSqft
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	// The owner reference must resolve to an existing account at creation.
	if _, err := s.users.FindByID(ctx, principal.ID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create property")
		return nil, err
	}

	metrics.PropertiesCreatedTotal.WithLabelValues(string(created.Type)).Inc()
	s.logger.Info().
		Str("property_id", created.ID).
		Str("owner_id", principal.ID).
		Str("type", string(created.Type)).
		Msg("property created")

	return created, nil
}

// Update applies a partial patch after the owner-or-admin check. The patched
// record is re-validated in full; a patch that would produce an invalid
// record fails before anything is written.
func (s *PropertyService) Update(ctx context.Context, principal domain.Principal, id string, patch ports.PropertyPatch) (*domain.Property, error) {
	if !principal.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.CanModify(current) {
		return nil, domain.ErrForbidden
	}

	patched := *current
	applyPatch(&patched, patch)
	patched.UpdatedAt = time.Now().UTC()

	if err := patched.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, &patched)
	if err != nil {
		s.logger.Error().Err(err).Str("property_id", id).Msg("failed to update property")
		return nil, err
	}
	return updated, nil
}

// applyPatch merges the non-nil patch fields onto p. Identity, owner and
// creation time are not reachable from a patch.
func applyPatch(p *domain.Property, patch ports.PropertyPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Type != nil {
		p.Type = domain.PropertyType(*patch.Type)
	}
	if patch.Category != nil {
		p.Category = domain.Category(*patch.Category)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Size != nil {
		p.Size = *patch.Size
	}
	if patch.SizeUnit != nil {
		p.SizeUnit = domain.SizeUnit(*patch.SizeUnit)
	}
	if patch.Bedrooms != nil {
		p.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		p.Bathrooms = *patch.Bathrooms
	}
	if patch.Address != nil {
		p.Location.Address = *patch.Address
	}
	if patch.City != nil {
		p.Location.City = *patch.City
	}
	if patch.State != nil {
		p.Location.State = *patch.State
	}
	if patch.ZipCode != nil {
		p.Location.ZipCode = *patch.ZipCode
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.Status != nil {
		p.Status = domain.PropertyStatus(*patch.Status)
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
}

// Delete removes the listing permanently after the owner-or-admin check.
func (s *PropertyService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if !principal.Authenticated() {
		return domain.ErrUnauthenticated
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !principal.CanModify(current) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("property_id", id).Msg("failed to delete property")
		return err
	}

	s.logger.Info().Str("property_id", id).Str("principal_id", principal.ID).Msg("property deleted")
	return nil
}

// ListOwn returns the caller's listings, newest first.
func (s *PropertyService) ListOwn(ctx context.Context, principal domain.Principal) ([]*domain.Property, error) {
	if !principal.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.Search(ctx, ports.SearchFilter{OwnerID: principal.ID})
}
