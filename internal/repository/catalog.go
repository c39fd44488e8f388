package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/blend-service/internal/domain/model"
)

// CatalogDocument is a full catalog used to seed the collections.
type CatalogDocument struct {
	Diluent        *model.Material
	Materials      []model.Material
	Specifications []model.Specification
	Guides         []model.GuideEntry
}

// CatalogRepository reads the material catalog from MongoDB.
// The diluent lives in the materials collection under the "diluent" category.
type CatalogRepository struct {
	materials      *mongo.Collection
	specifications *mongo.Collection
	guides         *mongo.Collection
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{
		materials:      db.Materials,
		specifications: db.Specifications,
		guides:         db.Guides,
	}
}

// FindMaterials returns every material except the diluent, sorted by name.
func (r *CatalogRepository) FindMaterials(ctx context.Context) ([]model.Material, error) {
	filter := bson.M{"category": bson.M{"$ne": model.CategoryDiluent}}
	cursor, err := r.materials.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	materials := []model.Material{}
	if err := cursor.All(ctx, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// FindDiluent returns the diluent material, or nil when none is stored.
func (r *CatalogRepository) FindDiluent(ctx context.Context) (*model.Material, error) {
	var m model.Material
	err := r.materials.FindOne(ctx, bson.M{"category": model.CategoryDiluent}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindSpecifications returns all specifications sorted by beverage type.
func (r *CatalogRepository) FindSpecifications(ctx context.Context) ([]model.Specification, error) {
	cursor, err := r.specifications.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "beverage_type", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	specs := []model.Specification{}
	if err := cursor.All(ctx, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// FindGuides returns all guide rows ordered by key.
func (r *CatalogRepository) FindGuides(ctx context.Context) ([]model.GuideEntry, error) {
	sort := bson.D{
		{Key: "beverage_type", Value: 1},
		{Key: "flavor", Value: 1},
		{Key: "slot", Value: 1},
	}
	cursor, err := r.guides.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	guides := []model.GuideEntry{}
	if err := cursor.All(ctx, &guides); err != nil {
		return nil, err
	}
	return guides, nil
}

// CountMaterials returns the number of stored materials, diluent included.
func (r *CatalogRepository) CountMaterials(ctx context.Context) (int64, error) {
	return r.materials.CountDocuments(ctx, bson.M{})
}

// ReplaceAll swaps the stored catalog for doc. Each collection is cleared and
// refilled; readers may observe a partially written catalog until it returns.
func (r *CatalogRepository) ReplaceAll(ctx context.Context, doc CatalogDocument) error {
	materials := make([]interface{}, 0, len(doc.Materials)+1)
	for _, m := range doc.Materials {
		materials = append(materials, m)
	}
	if doc.Diluent != nil {
		d := *doc.Diluent
		d.Category = model.CategoryDiluent
		materials = append(materials, d)
	}

	specs := make([]interface{}, len(doc.Specifications))
	for i, s := range doc.Specifications {
		specs[i] = s
	}
	guides := make([]interface{}, len(doc.Guides))
	for i, g := range doc.Guides {
		guides[i] = g
	}

	if err := replaceCollection(ctx, r.materials, materials); err != nil {
		return fmt.Errorf("replace materials: %w", err)
	}
	if err := replaceCollection(ctx, r.specifications, specs); err != nil {
		return fmt.Errorf("replace specifications: %w", err)
	}
	if err := replaceCollection(ctx, r.guides, guides); err != nil {
		return fmt.Errorf("replace guides: %w", err)
	}
	return nil
}

func replaceCollection(ctx context.Context, coll *mongo.Collection, docs []interface{}) error {
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}

// seedTimeout bounds a seed run started at boot.
const seedTimeout = 30 * time.Second

// SeedIfEmpty writes doc when the materials collection is empty and reports
// whether it did.
func (r *CatalogRepository) SeedIfEmpty(ctx context.Context, doc CatalogDocument) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	n, err := r.CountMaterials(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := r.ReplaceAll(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}
