package handler

import (
	"github.com/gofiber/fiber/v2"

	"companyreg/internal/model"
	"companyreg/internal/service"
)

type companyRequest struct {
	PersonType       model.PersonType `json:"person_type"`
	TradeName        string           `json:"trade_name"`
	ProfileID        int64            `json:"profile_id"`
	DirectBilling    bool             `json:"direct_billing"`
	LegalName        *string          `json:"legal_name"`
	CNPJ             *string          `json:"cnpj"`
	PersonName       *string          `json:"person_name"`
	CPF              *string          `json:"cpf"`
	ForeignLegalName *string          `json:"foreign_legal_name"`
	ForeignID        *string          `json:"foreign_id"`
	CreatedByUserID  int64            `json:"created_by_user_id"`
}

func (r companyRequest) toInput() service.CompanyInput {
	return service.CompanyInput{
		PersonType:       r.PersonType,
		TradeName:        r.TradeName,
		ProfileID:        r.ProfileID,
		DirectBilling:    r.DirectBilling,
		LegalName:        r.LegalName,
		CNPJ:             r.CNPJ,
		PersonName:       r.PersonName,
		CPF:              r.CPF,
		ForeignLegalName: r.ForeignLegalName,
		ForeignID:        r.ForeignID,
		CreatedByUserID:  r.CreatedByUserID,
	}
}

// CreateCompany registers a new company in PENDING state.
func CreateCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req companyRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		company, err := svc.Create(c.UserContext(), req.toInput())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(company)
	}
}

// ListCompanies returns companies newest first, optionally filtered by the
// status query parameter.
func ListCompanies(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := model.ApprovalStatus(c.Query("status"))
		switch status {
		case "", model.ApprovalPending, model.ApprovalApproved, model.ApprovalRejected:
		default:
			return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "status must be PENDING, APPROVED or REJECTED")
		}
		companies, err := svc.List(c.UserContext(), status)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(companies)
	}
}

// GetCompany returns a single company by id.
func GetCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid company id")
		}
		company, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(company)
	}
}

// UpdateCompany replaces the registrable fields of an existing company.
func UpdateCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid company id")
		}
		var req companyRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		company, err := svc.Update(c.UserContext(), id, req.toInput())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(company)
	}
}

type reviewRequest struct {
	ApprovedByUserID int64  `json:"approved_by_user_id"`
	RejectionReason  string `json:"rejection_reason"`
}

// ApproveCompany marks a registration approved.
func ApproveCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid company id")
		}
		var req reviewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		company, err := svc.Approve(c.UserContext(), id, req.ApprovedByUserID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(company)
	}
}

// RejectCompany marks a registration rejected with a reason.
func RejectCompany(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid company id")
		}
		var req reviewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		company, err := svc.Reject(c.UserContext(), id, req.ApprovedByUserID, req.RejectionReason)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(company)
	}
}

type assignResponsibleRequest struct {
	ExternalUserID   int64  `json:"external_user_id"`
	AssignedByUserID *int64 `json:"assigned_by_user_id"`
}

// AssignResponsible makes an external user the company's active responsible.
func AssignResponsible(svc service.CompanyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid company id")
		}
		var req assignResponsibleRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		resp, err := svc.AssignResponsible(c.UserContext(), id, req.ExternalUserID, req.AssignedByUserID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}
