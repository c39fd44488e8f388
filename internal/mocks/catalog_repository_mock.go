// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindMaterials(ctx context.Context) ([]model.Material, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Material), args.Error(1)
}

func (m *MockCatalogRepository) FindSpecifications(ctx context.Context) ([]model.Specification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Specification), args.Error(1)
}

func (m *MockCatalogRepository) FindGuides(ctx context.Context) ([]model.GuideEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GuideEntry), args.Error(1)
}

func (m *MockCatalogRepository) FindDiluent(ctx context.Context) (*model.Material, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Material), args.Error(1)
}

func (m *MockCatalogRepository) CountMaterials(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) ReplaceAll(ctx context.Context, doc repository.CatalogDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

var _ repository.CatalogRepositoryInterface = (*MockCatalogRepository)(nil)
