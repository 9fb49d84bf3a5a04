package mocks

import (
	"context"

	"github.com/UnknownOlympus/helios/internal/models"
	"github.com/stretchr/testify/mock"
)

// Provider is a mock type for the geocoding Provider type.
type Provider struct {
	mock.Mock
}

// Geocode provides a mock function with given fields: ctx, address.
func (_m *Provider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	ret := _m.Called(ctx, address)

	var r0 *models.Coordinates
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.Coordinates); ok {
		r0 = rf(ctx, address)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Coordinates)
	}

	return r0, ret.Error(1)
}

// NewProvider creates a new instance of Provider. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *Provider {
	m := &Provider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
