package model

import "time"

// PersonType distinguishes the three kinds of registrable entities.
type PersonType string

const (
	PersonCorporate  PersonType = "CORPORATE"
	PersonIndividual PersonType = "INDIVIDUAL"
	PersonForeign    PersonType = "FOREIGN"
)

// ApprovalStatus is the review state of a company registration.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Company is a registered legal entity. Which identity fields are required
// depends on PersonType: corporate entities carry LegalName+CNPJ, individuals
// carry PersonName+CPF, foreign entities carry ForeignID plus a legal name.
type Company struct {
	ID               int64          `json:"id"`
	PersonType       PersonType     `json:"person_type"`
	TradeName        string         `json:"trade_name"`
	ProfileID        int64          `json:"profile_id"`
	DirectBilling    bool           `json:"direct_billing"`
	LegalName        *string        `json:"legal_name"`
	CNPJ             *string        `json:"cnpj"`
	PersonName       *string        `json:"person_name"`
	CPF              *string        `json:"cpf"`
	ForeignLegalName *string        `json:"foreign_legal_name"`
	ForeignID        *string        `json:"foreign_id"`
	ApprovalStatus   ApprovalStatus `json:"approval_status"`
	RejectionReason  *string        `json:"rejection_reason"`
	CreatedByUserID  int64          `json:"created_by_user_id"`
	ApprovedByUserID *int64         `json:"approved_by_user_id"`
	ApprovedAt       *time.Time     `json:"approved_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
