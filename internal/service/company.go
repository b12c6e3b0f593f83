package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"companyreg/internal/model"
	"companyreg/internal/repository"
)

// CompanyInput carries the registrable fields of a company. Which optional
// fields must be set depends on PersonType.
type CompanyInput struct {
	PersonType       model.PersonType
	TradeName        string
	ProfileID        int64
	DirectBilling    bool
	LegalName        *string
	CNPJ             *string
	PersonName       *string
	CPF              *string
	ForeignLegalName *string
	ForeignID        *string
	CreatedByUserID  int64
}

// CompanyService defines the registration and review use cases for companies.
type CompanyService interface {
	// Create registers a new company in PENDING state.
	Create(ctx context.Context, in CompanyInput) (*model.Company, error)

	// List returns companies newest first, optionally filtered by status.
	List(ctx context.Context, status model.ApprovalStatus) ([]model.Company, error)

	// Get returns a single company by id.
	Get(ctx context.Context, id int64) (*model.Company, error)

	// Update replaces the registrable fields of an existing company.
	Update(ctx context.Context, id int64, in CompanyInput) (*model.Company, error)

	// Approve marks the registration approved by the given internal user.
	Approve(ctx context.Context, id, approverID int64) (*model.Company, error)

	// Reject marks the registration rejected with a reason.
	Reject(ctx context.Context, id, approverID int64, reason string) (*model.Company, error)

	// AssignResponsible makes the external user the company's single active
	// responsible, deactivating any previous assignment.
	AssignResponsible(ctx context.Context, companyID, externalUserID int64, assignedBy *int64) (*model.Responsible, error)
}

type companyService struct {
	companies    repository.CompanyRepository
	users        repository.UserRepository
	responsibles repository.ResponsibleRepository
}

// NewCompanyService constructs a new CompanyService.
func NewCompanyService(companies repository.CompanyRepository, users repository.UserRepository, responsibles repository.ResponsibleRepository) CompanyService {
	return &companyService{companies: companies, users: users, responsibles: responsibles}
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// validateInput mirrors the per-person-type database checks so callers get a
// field-level message instead of a constraint violation.
func validateInput(in CompanyInput) error {
	if strings.TrimSpace(in.TradeName) == "" {
		return fmt.Errorf("%w: trade_name is required", ErrValidation)
	}
	switch in.PersonType {
	case model.PersonCorporate:
		if !hasText(in.LegalName) || !hasText(in.CNPJ) {
			return fmt.Errorf("%w: corporate companies require legal_name and cnpj", ErrValidation)
		}
	case model.PersonIndividual:
		if !hasText(in.PersonName) || !hasText(in.CPF) {
			return fmt.Errorf("%w: individual companies require person_name and cpf", ErrValidation)
		}
	case model.PersonForeign:
		if !hasText(in.ForeignID) {
			return fmt.Errorf("%w: foreign companies require foreign_id", ErrValidation)
		}
		if !hasText(in.ForeignLegalName) && !hasText(in.LegalName) {
			return fmt.Errorf("%w: foreign companies require foreign_legal_name or legal_name", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: person_type must be CORPORATE, INDIVIDUAL or FOREIGN", ErrValidation)
	}
	return nil
}

func (s *companyService) ensureUser(ctx context.Context, id int64, field string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, field)
		}
		return fmt.Errorf("look up user: %w", err)
	}
	return nil
}

func (s *companyService) Create(ctx context.Context, in CompanyInput) (*model.Company, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, in.CreatedByUserID, "created_by_user_id"); err != nil {
		return nil, err
	}

	c := &model.Company{
		PersonType:       in.PersonType,
		TradeName:        in.TradeName,
		ProfileID:        in.ProfileID,
		DirectBilling:    in.DirectBilling,
		LegalName:        in.LegalName,
		CNPJ:             in.CNPJ,
		PersonName:       in.PersonName,
		CPF:              in.CPF,
		ForeignLegalName: in.ForeignLegalName,
		ForeignID:        in.ForeignID,
		ApprovalStatus:   model.ApprovalPending,
		CreatedByUserID:  in.CreatedByUserID,
	}

	stored, err := s.companies.Create(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a company with these identifiers already exists", ErrConflict)
		}
		return nil, fmt.Errorf("persist company: %w", err)
	}
	return stored, nil
}

func (s *companyService) List(ctx context.Context, status model.ApprovalStatus) ([]model.Company, error) {
	return s.companies.List(ctx, status)
}

func (s *companyService) Get(ctx context.Context, id int64) (*model.Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("look up company: %w", err)
	}
	return c, nil
}

func (s *companyService) Update(ctx context.Context, id int64, in CompanyInput) (*model.Company, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	c.PersonType = in.PersonType
	c.TradeName = in.TradeName
	c.ProfileID = in.ProfileID
	c.DirectBilling = in.DirectBilling
	c.LegalName = in.LegalName
	c.CNPJ = in.CNPJ
	c.PersonName = in.PersonName
	c.CPF = in.CPF
	c.ForeignLegalName = in.ForeignLegalName
	c.ForeignID = in.ForeignID

	updated, err := s.companies.Update(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a company with these identifiers already exists", ErrConflict)
		}
		return nil, fmt.Errorf("persist company: %w", err)
	}
	return updated, nil
}

func (s *companyService) Approve(ctx context.Context, id, approverID int64) (*model.Company, error) {
	return s.review(ctx, id, approverID, model.ApprovalApproved, nil)
}

func (s *companyService) Reject(ctx context.Context, id, approverID int64, reason string) (*model.Company, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection_reason is required", ErrValidation)
	}
	return s.review(ctx, id, approverID, model.ApprovalRejected, &reason)
}

func (s *companyService) review(ctx context.Context, id, approverID int64, status model.ApprovalStatus, reason *string) (*model.Company, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, approverID, "approved_by_user_id"); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c.ApprovalStatus = status
	c.RejectionReason = reason
	c.ApprovedByUserID = &approverID
	c.ApprovedAt = &now

	updated, err := s.companies.Update(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("persist review: %w", err)
	}
	return updated, nil
}

func (s *companyService) AssignResponsible(ctx context.Context, companyID, externalUserID int64, assignedBy *int64) (*model.Responsible, error) {
	if _, err := s.Get(ctx, companyID); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, externalUserID, "external_user_id"); err != nil {
		return nil, err
	}
	if assignedBy != nil {
		if err := s.ensureUser(ctx, *assignedBy, "assigned_by_user_id"); err != nil {
			return nil, err
		}
	}

	if err := s.responsibles.DeactivateActive(ctx, companyID); err != nil {
		return nil, fmt.Errorf("deactivate previous responsible: %w", err)
	}

	resp := &model.Responsible{
		CompanyID:        companyID,
		ExternalUserID:   externalUserID,
		Active:           true,
		AssignedByUserID: assignedBy,
	}
	stored, err := s.responsibles.Insert(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("persist responsible: %w", err)
	}
	return stored, nil
}
