package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PropertyType distinguishes the two kinds of listings on the marketplace.
type PropertyType string

const (
	TypeHouse PropertyType = "house"
	TypeLand  PropertyType = "land"
)

// Category states whether the listing is a buy request or a sale offer.
type Category string

const (
	CategoryBuy  Category = "buy"
	CategorySell Category = "sell"
)

// PropertyStatus represents the lifecycle state of a listing.
type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusSold      PropertyStatus = "sold"
	StatusPending   PropertyStatus = "pending"
)

// SizeUnit is the unit the property size is expressed in.
type SizeUnit string

const (
	UnitSqft  SizeUnit = "sqft"
	UnitSqm   SizeUnit = "sqm"
	UnitAcres SizeUnit = "acres"
)

// ValidPropertyType reports whether s is a recognised property type.
func ValidPropertyType(s string) bool {
	return s == string(TypeHouse) || s == string(TypeLand)
}

// ValidCategory reports whether s is a recognised category.
func ValidCategory(s string) bool {
	return s == string(CategoryBuy) || s == string(CategorySell)
}

// ValidPropertyStatus reports whether s is a recognised lifecycle status.
func ValidPropertyStatus(s string) bool {
	return s == string(StatusAvailable) || s == string(StatusSold) || s == string(StatusPending)
}

// ValidSizeUnit reports whether s is a recognised size unit.
func ValidSizeUnit(s string) bool {
	return s == string(UnitSqft) || s == string(UnitSqm) || s == string(UnitAcres)
}

// Location is the physical address of a listing. ZipCode is optional.
type Location struct {
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zip_code,omitempty" bson:"zip_code,omitempty"`
}

// OwnerSummary is the expanded owner reference attached to every property
// returned for external consumption, so callers never need a second lookup.
// Address is populated on single-record reads only.
type OwnerSummary struct {
	ID      string `json:"id" bson:"_id"`
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
}

// Property is the core aggregate: a house or land listing.
// Bedrooms and bathrooms are meaningful only for houses but persisted for
// land too (as zero) to keep the query shape flat.
type Property struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description" bson:"description"`
	Type        PropertyType   `json:"type" bson:"type"`
	Category    Category       `json:"category" bson:"category"`
	Price       float64        `json:"price" bson:"price"`
	Location    Location       `json:"location" bson:"location"`
	Size        float64        `json:"size" bson:"size"`
	SizeUnit    SizeUnit       `json:"size_unit" bson:"size_unit"`
	Bedrooms    int            `json:"bedrooms" bson:"bedrooms"`
	Bathrooms   int            `json:"bathrooms" bson:"bathrooms"`
	Images      []string       `json:"images" bson:"images"`
	OwnerID     string         `json:"-" bson:"owner"`
	Owner       OwnerSummary   `json:"owner" bson:"-"`
	Status      PropertyStatus `json:"status" bson:"status"`
	Featured    bool           `json:"featured" bson:"featured"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

// Validate checks the full invariant set and reports every violated field,
// not just the first.
func (p *Property) Validate() error {
	ve := &ValidationError{}
	if strings.TrimSpace(p.Title) == "" {
		ve.Add("title", "title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		ve.Add("description", "description is required")
	}
	if !ValidPropertyType(string(p.Type)) {
		ve.Add("type", "type must be house or land")
	}
	if !ValidCategory(string(p.Category)) {
		ve.Add("category", "category must be buy or sell")
	}
	if p.Price < 0 {
		ve.Add("price", "price cannot be negative")
	}
	if p.Size < 0 {
		ve.Add("size", "size cannot be negative")
	}
	if !ValidSizeUnit(string(p.SizeUnit)) {
		ve.Add("size_unit", "size_unit must be one of sqft, sqm, acres")
	}
	if p.Bedrooms < 0 {
		ve.Add("bedrooms", "bedrooms cannot be negative")
	}
	if p.Bathrooms < 0 {
		ve.Add("bathrooms", "bathrooms cannot be negative")
	}
	if strings.TrimSpace(p.Location.Address) == "" {
		ve.Add("location.address", "address is required")
	}
	if strings.TrimSpace(p.Location.City) == "" {
		ve.Add("location.city", "city is required")
	}
	if strings.TrimSpace(p.Location.State) == "" {
		ve.Add("location.state", "state is required")
	}
	if !ValidPropertyStatus(string(p.Status)) {
		ve.Add("status", "status must be one of available, sold, pending")
	}
	if p.OwnerID == "" {
		ve.Add("owner", "owner is required")
	}
	if ve.HasViolations() {
		return ve
	}
	return nil
}

// ValidationError aggregates every field violation found during validation.
type ValidationError struct {
	Fields map[string]string
}

// Add records a violation for field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// HasViolations reports whether any field was rejected.
func (e *ValidationError) HasViolations() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return strings.Join(msgs, "; ")
}
