//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalogDocument() CatalogDocument {
	return CatalogDocument{
		Diluent: &model.Material{
			Name: "Purified water",
			Attributes: model.Attributes{
				Sugar: model.Float(0), PH: model.Float(7), Acidity: model.Float(0),
				Sweetness: model.Float(0), Price: model.Float(1),
			},
		},
		Materials: []model.Material{
			{Name: "White sugar", Category: model.CategorySugar, Attributes: model.Attributes{
				Sugar: model.Float(99.9), PH: model.Float(7), Acidity: model.Float(0),
				Sweetness: model.Float(1), Price: model.Float(1200),
			}},
			{Name: "Citric acid anhydrous", Category: model.CategoryAcidulant, Attributes: model.Attributes{
				Sugar: model.Float(0), PH: model.Float(2.2), Acidity: model.Float(100),
				Sweetness: model.Float(0), Price: model.Float(3500),
			}},
			{Name: "Apple concentrate 70Bx", Category: model.CategoryConcentrate, Attributes: model.Attributes{
				Sugar: model.Float(70), PH: model.Float(3.6), Acidity: model.Float(2.4),
				Sweetness: model.Float(0.8), Price: model.Float(5200),
			}},
		},
		Specifications: []model.Specification{
			{BeverageType: "fruit_drink", SugarMin: 8, SugarMax: 14, PHMin: 2.8, PHMax: 4.2, AcidityMin: 0.2, AcidityMax: 0.6},
		},
		Guides: []model.GuideEntry{
			{BeverageType: "fruit_drink", Flavor: "apple", Slot: 2, Name: "White sugar", Percentage: 6},
			{BeverageType: "fruit_drink", Flavor: "apple", Slot: 1, Name: "Apple concentrate 70Bx", Percentage: 12},
		},
	}
}

func TestCatalogRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newTestDB(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewCatalogRepository(db)

	t.Run("empty catalog", func(t *testing.T) {
		materials, err := repo.FindMaterials(ctx)
		require.NoError(t, err)
		assert.Empty(t, materials)

		diluent, err := repo.FindDiluent(ctx)
		require.NoError(t, err)
		assert.Nil(t, diluent)
	})

	t.Run("seed when empty", func(t *testing.T) {
		seeded, err := repo.SeedIfEmpty(ctx, testCatalogDocument())
		require.NoError(t, err)
		assert.True(t, seeded)

		seeded, err = repo.SeedIfEmpty(ctx, testCatalogDocument())
		require.NoError(t, err)
		assert.False(t, seeded)
	})

	t.Run("materials exclude the diluent and sort by name", func(t *testing.T) {
		materials, err := repo.FindMaterials(ctx)
		require.NoError(t, err)
		require.Len(t, materials, 3)
		assert.Equal(t, "Apple concentrate 70Bx", materials[0].Name)
		assert.Equal(t, "White sugar", materials[2].Name)
		require.NotNil(t, materials[0].Sugar)
		assert.InDelta(t, 70, *materials[0].Sugar, 1e-9)
		assert.Nil(t, materials[0].SugarCoeff)
	})

	t.Run("diluent is stored under its own category", func(t *testing.T) {
		diluent, err := repo.FindDiluent(ctx)
		require.NoError(t, err)
		require.NotNil(t, diluent)
		assert.Equal(t, "Purified water", diluent.Name)
		assert.Equal(t, model.CategoryDiluent, diluent.Category)
	})

	t.Run("guides are ordered by slot", func(t *testing.T) {
		guides, err := repo.FindGuides(ctx)
		require.NoError(t, err)
		require.Len(t, guides, 2)
		assert.Equal(t, "fruit_drink_apple_1", guides[0].Key())
		assert.Equal(t, "fruit_drink_apple_2", guides[1].Key())
	})

	t.Run("replace all swaps the catalog", func(t *testing.T) {
		doc := testCatalogDocument()
		doc.Materials = doc.Materials[:1]
		doc.Guides = nil
		require.NoError(t, repo.ReplaceAll(ctx, doc))

		count, err := repo.CountMaterials(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		guides, err := repo.FindGuides(ctx)
		require.NoError(t, err)
		assert.Empty(t, guides)

		specs, err := repo.FindSpecifications(ctx)
		require.NoError(t, err)
		require.Len(t, specs, 1)
		assert.Equal(t, "fruit_drink", specs[0].BeverageType)
	})
}
