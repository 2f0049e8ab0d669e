package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ApplicationStatus represents the state of a seller application.
// APPROVED and REJECTED are terminal.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// Terminal reports whether the status admits no further transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// ReviewAction is the admin decision on a pending application
type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
)

// SellerApplication represents one submission of the seller-onboarding form.
// A user may hold at most one PENDING application at a time; a new one may be
// submitted only after the previous reached a terminal state.
type SellerApplication struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`

	ShopName        string      `json:"shopName"`
	ShopDescription string      `json:"shopDescription"`
	BusinessType    string      `json:"businessType"`
	BusinessAddress string      `json:"businessAddress"`
	PhoneNumber     string      `json:"phoneNumber"`
	Website         null.String `json:"website,omitempty"`

	BankAccountName   string `json:"bankAccountName"`
	BankAccountNumber string `json:"-"`
	BankName          string `json:"bankName"`

	Status          ApplicationStatus `json:"status"`
	ReviewedBy      uuid.NullUUID     `json:"reviewedBy,omitempty"`
	ReviewedAt      null.Time         `json:"reviewedAt,omitempty"`
	RejectionReason null.String       `json:"rejectionReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SellerApplyInput represents the seller-onboarding form
type SellerApplyInput struct {
	ShopName        string `json:"shopName" binding:"required,min=2,max=100"`
	ShopDescription string `json:"shopDescription" binding:"required,min=10"`
	BusinessType    string `json:"businessType" binding:"required"`
	BusinessAddress string `json:"businessAddress" binding:"required"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
	Website         string `json:"website"`

	BankAccountName   string `json:"bankAccountName" binding:"required"`
	BankAccountNumber string `json:"bankAccountNumber" binding:"required"`
	BankName          string `json:"bankName" binding:"required"`
}

// ReviewApplicationInput represents the admin review decision
type ReviewApplicationInput struct {
	Action          ReviewAction `json:"action" binding:"required"`
	RejectionReason string       `json:"rejectionReason"`
}

// UpdateShopInput carries seller-editable shop fields
type UpdateShopInput struct {
	ShopName        *string `json:"shopName"`
	ShopDescription *string `json:"shopDescription"`
	TaxID           *string `json:"taxId"`
}

// ApplicationStatusResponse summarizes an application for its owner
type ApplicationStatusResponse struct {
	ApplicationID   uuid.UUID         `json:"applicationId"`
	Status          ApplicationStatus `json:"status"`
	ShopName        string            `json:"shopName"`
	RejectionReason null.String       `json:"rejectionReason,omitempty"`
	SubmittedAt     time.Time         `json:"submittedAt"`
	ReviewedAt      null.Time         `json:"reviewedAt,omitempty"`
}

// ApplicationListFilters narrow the admin application listing
type ApplicationListFilters struct {
	Status ApplicationStatus
}

// UserListFilters narrow the admin user listing
type UserListFilters struct {
	Role      UserRole
	Active    *bool
	Suspended *bool
}

// ModerationStatistics are the aggregate counts on the admin dashboard
type ModerationStatistics struct {
	TotalUsers          int64 `json:"totalUsers"`
	ActiveSellers       int64 `json:"activeSellers"`
	VerifiedSellers     int64 `json:"verifiedSellers"`
	SuspendedUsers      int64 `json:"suspendedUsers"`
	PendingApplications int64 `json:"pendingApplications"`
}
