package mocks

import (
	"context"

	"github.com/UnknownOlympus/helios/internal/models"
	"github.com/stretchr/testify/mock"
)

// Source is a mock type for the buildings Source type.
type Source struct {
	mock.Mock
}

// Nearby provides a mock function with given fields: ctx, center, radius.
func (_m *Source) Nearby(ctx context.Context, center models.Coordinates, radius float64) ([]models.Building, error) {
	ret := _m.Called(ctx, center, radius)

	var r0 []models.Building
	if rf, ok := ret.Get(0).(func(context.Context, models.Coordinates, float64) []models.Building); ok {
		r0 = rf(ctx, center, radius)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Building)
	}

	return r0, ret.Error(1)
}

// NewSource creates a new instance of Source. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *Source {
	m := &Source{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
