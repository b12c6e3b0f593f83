package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"companyreg/internal/model"
)

type MockResponsibleRepository struct {
	mock.Mock
}

func (m *MockResponsibleRepository) DeactivateActive(ctx context.Context, companyID int64) error {
	args := m.Called(ctx, companyID)
	return args.Error(0)
}

func (m *MockResponsibleRepository) Insert(ctx context.Context, r *model.Responsible) (*model.Responsible, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Responsible), args.Error(1)
}
