package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"companyreg/internal/model"
	"companyreg/internal/repository"
	repoMocks "companyreg/internal/repository/mocks"
)

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func corporateInput() CompanyInput {
	return CompanyInput{
		PersonType:      model.PersonCorporate,
		TradeName:       "Acme Logistics",
		ProfileID:       1,
		LegalName:       strPtr("Acme Logistics Ltda"),
		CNPJ:            strPtr("12345678000190"),
		CreatedByUserID: 5,
	}
}

func userExists(m *repoMocks.MockUserRepository, id int64) {
	m.On("FindByID", mock.Anything, id).Return(&model.User{ID: id, Name: "someone"}, nil)
}

func newCompanySvc() (CompanyService, *repoMocks.MockCompanyRepository, *repoMocks.MockUserRepository, *repoMocks.MockResponsibleRepository) {
	mCompanies := new(repoMocks.MockCompanyRepository)
	mUsers := new(repoMocks.MockUserRepository)
	mResp := new(repoMocks.MockResponsibleRepository)
	return NewCompanyService(mCompanies, mUsers, mResp), mCompanies, mUsers, mResp
}

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path starts pending", func(t *testing.T) {
		svc, mCompanies, mUsers, _ := newCompanySvc()
		userExists(mUsers, 5)
		mCompanies.On("Create", ctx, mock.MatchedBy(func(c *model.Company) bool {
			return c.ApprovalStatus == model.ApprovalPending &&
				c.PersonType == model.PersonCorporate &&
				c.TradeName == "Acme Logistics"
		})).Return(&model.Company{ID: 1, ApprovalStatus: model.ApprovalPending}, nil)

		c, err := svc.Create(ctx, corporateInput())
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalPending, c.ApprovalStatus)
		mCompanies.AssertExpectations(t)
	})

	t.Run("duplicate identifiers conflict", func(t *testing.T) {
		svc, mCompanies, mUsers, _ := newCompanySvc()
		userExists(mUsers, 5)
		mCompanies.On("Create", ctx, mock.Anything).
			Return(nil, fmt.Errorf("%w: companies_cnpj_key", repository.ErrDuplicate))

		_, err := svc.Create(ctx, corporateInput())
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("creator missing", func(t *testing.T) {
		svc, _, mUsers, _ := newCompanySvc()
		mUsers.On("FindByID", mock.Anything, int64(5)).Return(nil, sql.ErrNoRows)

		_, err := svc.Create(ctx, corporateInput())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	validationCases := []struct {
		name   string
		mutate func(in *CompanyInput)
	}{
		{"blank trade name", func(in *CompanyInput) { in.TradeName = "  " }},
		{"corporate without cnpj", func(in *CompanyInput) { in.CNPJ = nil }},
		{"corporate without legal name", func(in *CompanyInput) { in.LegalName = strPtr(" ") }},
		{"unknown person type", func(in *CompanyInput) { in.PersonType = "PARTNERSHIP" }},
		{"individual without cpf", func(in *CompanyInput) {
			in.PersonType = model.PersonIndividual
			in.PersonName = strPtr("Jo Doe")
			in.CPF = nil
		}},
		{"foreign without foreign id", func(in *CompanyInput) {
			in.PersonType = model.PersonForeign
			in.ForeignLegalName = strPtr("Acme GmbH")
			in.ForeignID = nil
		}},
		{"foreign without any legal name", func(in *CompanyInput) {
			in.PersonType = model.PersonForeign
			in.ForeignID = strPtr("DE-1234")
			in.LegalName = nil
			in.ForeignLegalName = nil
		}},
	}
	for _, tc := range validationCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _, _ := newCompanySvc()
			in := corporateInput()
			tc.mutate(&in)

			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	t.Run("individual with name and cpf is valid", func(t *testing.T) {
		svc, mCompanies, mUsers, _ := newCompanySvc()
		userExists(mUsers, 5)
		mCompanies.On("Create", ctx, mock.Anything).Return(&model.Company{ID: 2}, nil)

		in := CompanyInput{
			PersonType:      model.PersonIndividual,
			TradeName:       "Jo Doe Consulting",
			ProfileID:       1,
			PersonName:      strPtr("Jo Doe"),
			CPF:             strPtr("12345678901"),
			CreatedByUserID: 5,
		}
		_, err := svc.Create(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("foreign may fall back to legal name", func(t *testing.T) {
		svc, mCompanies, mUsers, _ := newCompanySvc()
		userExists(mUsers, 5)
		mCompanies.On("Create", ctx, mock.Anything).Return(&model.Company{ID: 3}, nil)

		in := CompanyInput{
			PersonType:      model.PersonForeign,
			TradeName:       "Acme GmbH",
			ProfileID:       1,
			LegalName:       strPtr("Acme GmbH"),
			ForeignID:       strPtr("DE-1234"),
			CreatedByUserID: 5,
		}
		_, err := svc.Create(ctx, in)
		assert.NoError(t, err)
	})
}

func TestCompanyService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, mCompanies, _, _ := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(1)).Return(&model.Company{ID: 1}, nil)

		c, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), c.ID)
	})

	t.Run("missing", func(t *testing.T) {
		svc, mCompanies, _, _ := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

		_, err := svc.Get(ctx, 9)
		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, mCompanies, _, _ := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(1)).Return(nil, errors.New("db down"))

		_, err := svc.Get(ctx, 1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCompanyNotFound)
	})
}

func TestCompanyService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path keeps approval fields", func(t *testing.T) {
		svc, mCompanies, _, _ := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(1)).
			Return(&model.Company{ID: 1, ApprovalStatus: model.ApprovalApproved}, nil)
		mCompanies.On("Update", ctx, mock.MatchedBy(func(c *model.Company) bool {
			return c.ID == 1 &&
				c.TradeName == "Acme Logistics" &&
				c.ApprovalStatus == model.ApprovalApproved
		})).Return(&model.Company{ID: 1, TradeName: "Acme Logistics", ApprovalStatus: model.ApprovalApproved}, nil)

		c, err := svc.Update(ctx, 1, corporateInput())
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalApproved, c.ApprovalStatus)
	})

	t.Run("company missing", func(t *testing.T) {
		svc, mCompanies, _, _ := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, 9, corporateInput())
		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc, mCompanies, _, _ := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(1)).Return(&model.Company{ID: 1}, nil)

		in := corporateInput()
		in.TradeName = ""
		_, err := svc.Update(ctx, 1, in)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestCompanyService_Review(t *testing.T) {
	ctx := context.Background()

	t.Run("approve records approver and timestamp", func(t *testing.T) {
		svc, mCompanies, mUsers, _ := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(1)).
			Return(&model.Company{ID: 1, ApprovalStatus: model.ApprovalPending}, nil)
		userExists(mUsers, 8)
		mCompanies.On("Update", ctx, mock.MatchedBy(func(c *model.Company) bool {
			return c.ApprovalStatus == model.ApprovalApproved &&
				c.ApprovedByUserID != nil && *c.ApprovedByUserID == 8 &&
				c.ApprovedAt != nil &&
				c.RejectionReason == nil
		})).Return(&model.Company{ID: 1, ApprovalStatus: model.ApprovalApproved}, nil)

		c, err := svc.Approve(ctx, 1, 8)
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalApproved, c.ApprovalStatus)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		svc, _, _, _ := newCompanySvc()

		_, err := svc.Reject(ctx, 1, 8, "   ")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("reject records the reason", func(t *testing.T) {
		svc, mCompanies, mUsers, _ := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(1)).
			Return(&model.Company{ID: 1, ApprovalStatus: model.ApprovalPending}, nil)
		userExists(mUsers, 8)
		mCompanies.On("Update", ctx, mock.MatchedBy(func(c *model.Company) bool {
			return c.ApprovalStatus == model.ApprovalRejected &&
				c.RejectionReason != nil && *c.RejectionReason == "missing paperwork"
		})).Return(&model.Company{ID: 1, ApprovalStatus: model.ApprovalRejected}, nil)

		_, err := svc.Reject(ctx, 1, 8, "missing paperwork")
		assert.NoError(t, err)
	})

	t.Run("approver missing", func(t *testing.T) {
		svc, mCompanies, mUsers, _ := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(1)).Return(&model.Company{ID: 1}, nil)
		mUsers.On("FindByID", mock.Anything, int64(8)).Return(nil, sql.ErrNoRows)

		_, err := svc.Approve(ctx, 1, 8)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestCompanyService_AssignResponsible(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates previous assignment first", func(t *testing.T) {
		svc, mCompanies, mUsers, mResp := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(1)).Return(&model.Company{ID: 1}, nil)
		userExists(mUsers, 20)
		userExists(mUsers, 8)

		mResp.On("DeactivateActive", ctx, int64(1)).Return(nil)
		mResp.On("Insert", ctx, mock.MatchedBy(func(r *model.Responsible) bool {
			return r.CompanyID == 1 &&
				r.ExternalUserID == 20 &&
				r.Active &&
				r.AssignedByUserID != nil && *r.AssignedByUserID == 8
		})).Return(&model.Responsible{ID: 3, CompanyID: 1, ExternalUserID: 20, Active: true}, nil)

		r, err := svc.AssignResponsible(ctx, 1, 20, int64Ptr(8))
		require.NoError(t, err)
		assert.True(t, r.Active)
		mResp.AssertExpectations(t)
	})

	t.Run("assigner is optional", func(t *testing.T) {
		svc, mCompanies, mUsers, mResp := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(1)).Return(&model.Company{ID: 1}, nil)
		userExists(mUsers, 20)
		mResp.On("DeactivateActive", ctx, int64(1)).Return(nil)
		mResp.On("Insert", ctx, mock.Anything).
			Return(&model.Responsible{ID: 4, Active: true}, nil)

		_, err := svc.AssignResponsible(ctx, 1, 20, nil)
		assert.NoError(t, err)
	})

	t.Run("external user missing", func(t *testing.T) {
		svc, mCompanies, mUsers, _ := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(1)).Return(&model.Company{ID: 1}, nil)
		mUsers.On("FindByID", mock.Anything, int64(20)).Return(nil, sql.ErrNoRows)

		_, err := svc.AssignResponsible(ctx, 1, 20, nil)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("company missing", func(t *testing.T) {
		svc, mCompanies, _, _ := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

		_, err := svc.AssignResponsible(ctx, 9, 20, nil)
		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})

	t.Run("deactivation failure aborts", func(t *testing.T) {
		svc, mCompanies, mUsers, mResp := newCompanySvc()
		mCompanies.On("FindByID", ctx, int64(1)).Return(&model.Company{ID: 1}, nil)
		userExists(mUsers, 20)
		mResp.On("DeactivateActive", ctx, int64(1)).Return(errors.New("db down"))

		_, err := svc.AssignResponsible(ctx, 1, 20, nil)
		require.Error(t, err)
		mResp.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewUserService(mUsers)
		mUsers.On("Create", ctx, mock.Anything).
			Return(&model.User{ID: 1, Name: "Sam", UserType: model.UserInternal}, nil)

		u, err := svc.Create(ctx, &model.User{Name: "Sam", UserType: model.UserInternal})
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
	})

	t.Run("blank name", func(t *testing.T) {
		svc := NewUserService(new(repoMocks.MockUserRepository))

		_, err := svc.Create(ctx, &model.User{Name: " ", UserType: model.UserInternal})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown user type", func(t *testing.T) {
		svc := NewUserService(new(repoMocks.MockUserRepository))

		_, err := svc.Create(ctx, &model.User{Name: "Sam", UserType: "ADMIN"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()

	mUsers := new(repoMocks.MockUserRepository)
	svc := NewUserService(mUsers)
	mUsers.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

	_, err := svc.Get(ctx, 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
