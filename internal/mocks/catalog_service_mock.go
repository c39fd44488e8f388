// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/engine"
	"github.com/guttosm/blend-service/internal/service"
)

type MockCatalogService struct {
	mock.Mock
}

var _ service.CatalogService = (*MockCatalogService)(nil)

func (m *MockCatalogService) Materials(ctx context.Context, filter service.MaterialFilter) []model.Material {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Material)
}

func (m *MockCatalogService) Material(ctx context.Context, name string) (model.Material, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Material), args.Error(1)
}

func (m *MockCatalogService) Specifications(ctx context.Context) []model.Specification {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Specification)
}

func (m *MockCatalogService) Infer(ctx context.Context, name string) (*engine.Inference, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Inference), args.Error(1)
}

func (m *MockCatalogService) Validate(ctx context.Context, candidates []model.Candidate) model.ValidationReport {
	args := m.Called(ctx, candidates)
	return args.Get(0).(model.ValidationReport)
}

func (m *MockCatalogService) Reload(ctx context.Context) (service.CatalogInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.CatalogInfo), args.Error(1)
}

func (m *MockCatalogService) Info(ctx context.Context) service.CatalogInfo {
	args := m.Called(ctx)
	return args.Get(0).(service.CatalogInfo)
}
