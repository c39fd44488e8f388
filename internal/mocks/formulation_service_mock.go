// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/engine"
	"github.com/guttosm/blend-service/internal/service"
)

type MockFormulationService struct {
	mock.Mock
}

var _ service.FormulationService = (*MockFormulationService)(nil)

func (m *MockFormulationService) CreateSession(ctx context.Context, opts service.SessionOptions) (*service.SessionState, error) {
	args := m.Called(ctx, opts)
	return sessionState(args.Get(0)), args.Error(1)
}

func (m *MockFormulationService) GetSession(ctx context.Context, id string) (*service.SessionState, error) {
	args := m.Called(ctx, id)
	return sessionState(args.Get(0)), args.Error(1)
}

func (m *MockFormulationService) DeleteSession(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFormulationService) SetEntry(ctx context.Context, id string, slot int, in service.EntryInput) (*service.SessionState, error) {
	args := m.Called(ctx, id, slot, in)
	return sessionState(args.Get(0)), args.Error(1)
}

func (m *MockFormulationService) ClearEntry(ctx context.Context, id string, slot int) (*service.SessionState, error) {
	args := m.Called(ctx, id, slot)
	return sessionState(args.Get(0)), args.Error(1)
}

func (m *MockFormulationService) Reset(ctx context.Context, id string) (*service.SessionState, error) {
	args := m.Called(ctx, id)
	return sessionState(args.Get(0)), args.Error(1)
}

func (m *MockFormulationService) Evaluate(ctx context.Context, id string) (*engine.Evaluation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Evaluation), args.Error(1)
}

func (m *MockFormulationService) ApplyCandidates(ctx context.Context, id string, candidates []model.Candidate) (*service.ApplyResult, error) {
	args := m.Called(ctx, id, candidates)
	return applyResult(args.Get(0)), args.Error(1)
}

func (m *MockFormulationService) ApplyGuide(ctx context.Context, id string, req service.GuideRequest) (*service.ApplyResult, error) {
	args := m.Called(ctx, id, req)
	return applyResult(args.Get(0)), args.Error(1)
}

func (m *MockFormulationService) ReferenceLookup(ctx context.Context, id string, items []service.ReferenceItem) (*service.ReferenceResult, error) {
	args := m.Called(ctx, id, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReferenceResult), args.Error(1)
}

func (m *MockFormulationService) EstimateEntry(ctx context.Context, id string, slot int, hint model.Category) (*service.EstimateResult, error) {
	args := m.Called(ctx, id, slot, hint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EstimateResult), args.Error(1)
}

func (m *MockFormulationService) EvaluateComposition(ctx context.Context, req service.CompositionRequest) (*service.CompositionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompositionResult), args.Error(1)
}

func sessionState(v interface{}) *service.SessionState {
	if v == nil {
		return nil
	}
	return v.(*service.SessionState)
}

func applyResult(v interface{}) *service.ApplyResult {
	if v == nil {
		return nil
	}
	return v.(*service.ApplyResult)
}
