// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/blend-service/internal/domain/model"
)

type MockEstimator struct {
	mock.Mock
}

func (m *MockEstimator) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEstimator) Estimate(ctx context.Context, name string, hint model.Category) (model.Attributes, error) {
	args := m.Called(ctx, name, hint)
	return args.Get(0).(model.Attributes), args.Error(1)
}
