package mocks

import (
	"context"

	"github.com/UnknownOlympus/helios/internal/models"
	"github.com/UnknownOlympus/helios/internal/service"
	"github.com/stretchr/testify/mock"
)

// Scorer is a mock type for the server Scorer type.
type Scorer struct {
	mock.Mock
}

// Compute provides a mock function with given fields: ctx, req.
func (_m *Scorer) Compute(ctx context.Context, req service.Request) (*models.LightScoreResult, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.LightScoreResult
	if rf, ok := ret.Get(0).(func(context.Context, service.Request) *models.LightScoreResult); ok {
		r0 = rf(ctx, req)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.LightScoreResult)
	}

	return r0, ret.Error(1)
}

// NewScorer creates a new instance of Scorer. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewScorer(t interface {
	mock.TestingT
	Cleanup(func())
}) *Scorer {
	m := &Scorer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
