package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/propertyhub/marketplace-api/internal/core/domain"
	"github.com/propertyhub/marketplace-api/internal/core/ports"
)

const collectionProperties = "properties"

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection(collectionProperties)}
}

type locationDoc struct {
	Address string `bson:"address"`
	City    string `bson:"city"`
	State   string `bson:"state"`
	ZipCode string `bson:"zip_code,omitempty"`
}

type ownerDoc struct {
	ID      primitive.ObjectID `bson:"_id"`
	Name    string             `bson:"name"`
	Email   string             `bson:"email"`
	Phone   string             `bson:"phone"`
	Address string             `bson:"address"`
}

// propertyDoc is the persisted shape. The owner field holds a reference into
// the users collection; reads expand it via $lookup into OwnerInfo.
type propertyDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Type        string             `bson:"type"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	Location    locationDoc        `bson:"location"`
	Size        float64            `bson:"size"`
	SizeUnit    string             `bson:"size_unit"`
	Bedrooms    int                `bson:"bedrooms"`
	Bathrooms   int                `bson:"bathrooms"`
	Images      []string           `bson:"images"`
	Owner       primitive.ObjectID `bson:"owner"`
	Status      string             `bson:"status"`
	Featured    bool               `bson:"featured"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
	OwnerInfo   []ownerDoc         `bson:"owner_info,omitempty"`
}

// buildMatch translates the compiled filter into a Mongo match document.
// Absent fields impose no constraint.
func buildMatch(f ports.SearchFilter) (bson.M, error) {
	match := bson.M{}
	if f.Type != "" {
		match["type"] = f.Type
	}
	if f.Category != "" {
		match["category"] = f.Category
	}
	if f.Status != "" {
		match["status"] = f.Status
	}
	if f.City != "" {
		match["location.city"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.City), Options: "i"}
	}
	if f.State != "" {
		match["location.state"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.State), Options: "i"}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		match["price"] = price
	}
	if f.Search != "" {
		match["$text"] = bson.M{"$search": f.Search}
	}
	if f.OwnerID != "" {
		oid, err := primitive.ObjectIDFromHex(f.OwnerID)
		if err != nil {
			return nil, domain.ErrPropertyNotFound
		}
		match["owner"] = oid
	}
	return match, nil
}

// lookupOwnerStages expands the owner reference into owner_info.
func lookupOwnerStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         collectionUsers,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner_info",
		}},
	}
}

// Search executes the compiled filter. Results come back relevance-ranked
// when a text search is active (newest first as the tie-break), otherwise
// newest-created first.
func (r *PropertyRepository) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match, err := buildMatch(filter)
	if err != nil {
		return nil, err
	}

	pipeline := []bson.M{{"$match": match}}
	if filter.TextSearchActive() {
		pipeline = append(pipeline,
			bson.M{"$addFields": bson.M{"text_score": bson.M{"$meta": "textScore"}}},
			bson.M{"$sort": bson.D{{Key: "text_score", Value: -1}, {Key: "created_at", Value: -1}}},
		)
	} else {
		pipeline = append(pipeline, bson.M{"$sort": bson.D{{Key: "created_at", Value: -1}}})
	}
	pipeline = append(pipeline, lookupOwnerStages()...)

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []propertyDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	results := make([]*domain.Property, 0, len(docs))
	for i := range docs {
		results = append(results, toDomain(&docs[i], false))
	}
	return results, nil
}

// FindByID returns a single listing with the owner summary expanded,
// including the owner's address.
func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	return r.fetchByID(ctx, id, true)
}

func (r *PropertyRepository) fetchByID(ctx context.Context, id string, includeOwnerAddress bool) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}

	pipeline := append([]bson.M{{"$match": bson.M{"_id": oid}}}, lookupOwnerStages()...)
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []propertyDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrPropertyNotFound
	}
	return toDomain(&docs[0], includeOwnerAddress), nil
}

// Create inserts a new listing document and returns it owner-expanded.
func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toDoc(p)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return r.fetchByID(ctx, doc.ID.Hex(), false)
}

// Replace atomically overwrites the stored document matched by p.ID.
func (r *PropertyRepository) Replace(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}

	doc, err := toDoc(p)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPropertyNotFound
	}
	return r.fetchByID(ctx, p.ID, false)
}

// Delete removes the document permanently. No soft-delete.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *PropertyRepository) CountByStatus(ctx context.Context, status domain.PropertyStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"status": string(status)})
}

func (r *PropertyRepository) CountByType(ctx context.Context, propertyType domain.PropertyType) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"type": string(propertyType)})
}

// EnsureIndexes creates the composite text index backing free-text search
// plus the single-field indexes the common filters rely on.
func (r *PropertyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "location.city", Value: "text"},
			{Key: "location.state", Value: "text"},
		}},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDoc(p *domain.Property) (*propertyDoc, error) {
	ownerID, err := primitive.ObjectIDFromHex(p.OwnerID)
	if err != nil {
		return nil, errors.New("invalid owner id: " + p.OwnerID)
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &propertyDoc{
		Title:       p.Title,
		Description: p.Description,
		Type:        string(p.Type),
		Category:    string(p.Category),
		Price:       p.Price,
		Location: locationDoc{
			Address: p.Location.Address,
			City:    p.Location.City,
			State:   p.Location.State,
			ZipCode: p.Location.ZipCode,
		},
		Size:      p.Size,
		SizeUnit:  string(p.SizeUnit),
		Bedrooms:  p.Bedrooms,
		Bathrooms: p.Bathrooms,
		Images:    images,
		Owner:     ownerID,
		Status:    string(p.Status),
		Featured:  p.Featured,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func toDomain(doc *propertyDoc, includeOwnerAddress bool) *domain.Property {
	p := &domain.Property{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Type:        domain.PropertyType(doc.Type),
		Category:    domain.Category(doc.Category),
		Price:       doc.Price,
		Location: domain.Location{
			Address: doc.Location.Address,
			City:    doc.Location.City,
			State:   doc.Location.State,
			ZipCode: doc.Location.ZipCode,
		},
		Size:      doc.Size,
		SizeUnit:  domain.SizeUnit(doc.SizeUnit),
		Bedrooms:  doc.Bedrooms,
		Bathrooms: doc.Bathrooms,
		Images:    doc.Images,
		OwnerID:   doc.Owner.Hex(),
		Status:    domain.PropertyStatus(doc.Status),
		Featured:  doc.Featured,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if len(doc.OwnerInfo) > 0 {
		o := doc.OwnerInfo[0]
		p.Owner = domain.OwnerSummary{
			ID:    o.ID.Hex(),
			Name:  o.Name,
			Email: o.Email,
			Phone: o.Phone,
		}
		if includeOwnerAddress {
			p.Owner.Address = o.Address
		}
	}
	return p
}
