package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/blend-service/internal/domain/model"
)

func TestFileLoader_BundledCatalog(t *testing.T) {
	loader := NewFileLoader(filepath.Join("..", "..", "data", "catalog.json"))

	s, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "file", loader.Name())
	assert.Greater(t, s.Len(), 5)

	citric, ok := s.Material("Citric acid")
	require.True(t, ok)
	assert.Equal(t, -0.4, *citric.PHDelta)

	_, ok = s.Specification("fruit_drink")
	assert.True(t, ok)
	assert.NotEmpty(t, s.Guide("fruit_drink", "orange"))
}

func TestFileLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileLoader(filepath.Join(dir, "missing.json")).Load(context.Background())
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
	_, err = NewFileLoader(bad).Load(context.Background())
	assert.Error(t, err)

	dup := filepath.Join(dir, "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`{"materials":[{"name":"A"},{"name":"A"}]}`), 0o600))
	_, err = NewFileLoader(dup).Load(context.Background())
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestFileLoader_ReadSkipsValidation(t *testing.T) {
	dup := filepath.Join(t.TempDir(), "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`{"materials":[{"name":"A"},{"name":"A"}]}`), 0o600))

	data, err := NewFileLoader(dup).Read()
	require.NoError(t, err)
	assert.Len(t, data.Materials, 2)
	assert.Nil(t, data.Diluent)
}

type stubDocuments struct {
	materials []model.Material
	specs     []model.Specification
	guides    []model.GuideEntry
	diluent   *model.Material
	err       error
}

func (d stubDocuments) FindMaterials(context.Context) ([]model.Material, error) {
	return d.materials, d.err
}

func (d stubDocuments) FindSpecifications(context.Context) ([]model.Specification, error) {
	return d.specs, nil
}

func (d stubDocuments) FindGuides(context.Context) ([]model.GuideEntry, error) {
	return d.guides, nil
}

func (d stubDocuments) FindDiluent(context.Context) (*model.Material, error) {
	return d.diluent, nil
}

func TestDocumentLoader(t *testing.T) {
	data := sampleData()
	loader := NewDocumentLoader(stubDocuments{
		materials: data.Materials,
		specs:     data.Specifications,
		guides:    data.Guides,
	})

	s, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mongodb", s.Source())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "Water", s.Diluent().Name)

	_, err = NewDocumentLoader(stubDocuments{err: errors.New("timeout")}).Load(context.Background())
	assert.Error(t, err)
}
