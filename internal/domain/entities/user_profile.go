package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents marketplace user roles
type UserRole string

const (
	UserRoleUser    UserRole = "USER"
	UserRoleSeller  UserRole = "SELLER"
	UserRoleSupport UserRole = "SUPPORT"
	UserRoleAdmin   UserRole = "ADMIN"
)

// Valid reports whether the role is one of the known enum values.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRoleSeller, UserRoleSupport, UserRoleAdmin:
		return true
	}
	return false
}

// BankVerificationStatus represents the state of a seller's bank verification
type BankVerificationStatus string

const (
	BankVerificationPending  BankVerificationStatus = "PENDING"
	BankVerificationVerified BankVerificationStatus = "VERIFIED"
	BankVerificationRejected BankVerificationStatus = "REJECTED"
)

// UserProfile represents the extended profile this service materializes for an
// identity-service user. Exactly one profile exists per UserID.
type UserProfile struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`

	Bio         string      `json:"bio,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	DateOfBirth null.Time   `json:"dateOfBirth,omitempty"`
	Country     string      `json:"country,omitempty"`
	City        string      `json:"city,omitempty"`
	Address     string      `json:"address,omitempty"`
	Avatar      string      `json:"avatar,omitempty"`

	Role UserRole `json:"role"`

	IsSeller               bool        `json:"isSeller"`
	SellerVerified         bool        `json:"sellerVerified"`
	SellerVerificationDate null.Time   `json:"sellerVerificationDate,omitempty"`
	ShopName               null.String `json:"shopName,omitempty"`
	ShopDescription        null.String `json:"shopDescription,omitempty"`
	TaxID                  null.String `json:"taxId,omitempty"`

	BankAccountName        null.String            `json:"bankAccountName,omitempty"`
	BankAccountNumber      null.String            `json:"-"`
	BankName               null.String            `json:"bankName,omitempty"`
	BankVerified           bool                   `json:"bankVerified"`
	BankVerificationStatus BankVerificationStatus `json:"bankVerificationStatus"`

	ShowCoinBalance bool `json:"showCoinBalance"`
	ShowJoinDate    bool `json:"showJoinDate"`
	ShowEmail       bool `json:"showEmail"`
	ShowPhone       bool `json:"showPhone"`

	TotalSales     int     `json:"totalSales"`
	TotalPurchases int     `json:"totalPurchases"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"reviewCount"`

	IsActive         bool        `json:"isActive"`
	IsSuspended      bool        `json:"isSuspended"`
	SuspensionReason null.String `json:"suspensionReason,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"-"`
}

// IdentityHints carry identity fields from the gateway headers, used to
// materialize a profile without calling back into the identity service.
type IdentityHints struct {
	Email    string
	Username string
	Role     string
}

// IdentityRecord is the canonical identity resolved from the auth service.
type IdentityRecord struct {
	UserID   uuid.UUID `json:"userId"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
}

// CreateProfileInput represents input for explicit profile creation
type CreateProfileInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// UpdateProfileInput carries the allow-listed updatable profile fields.
// Pointer fields distinguish "absent" from "set to zero value".
type UpdateProfileInput struct {
	FullName    *string    `json:"fullName"`
	Bio         *string    `json:"bio"`
	Phone       *string    `json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Country     *string    `json:"country"`
	City        *string    `json:"city"`
	Address     *string    `json:"address"`
	Avatar      *string    `json:"avatar"`

	ShowCoinBalance *bool `json:"showCoinBalance"`
	ShowJoinDate    *bool `json:"showJoinDate"`
	ShowEmail       *bool `json:"showEmail"`
	ShowPhone       *bool `json:"showPhone"`
}

// UpdatePrivacyInput carries the four privacy flags
type UpdatePrivacyInput struct {
	ShowCoinBalance *bool `json:"showCoinBalance"`
	ShowJoinDate    *bool `json:"showJoinDate"`
	ShowEmail       *bool `json:"showEmail"`
	ShowPhone       *bool `json:"showPhone"`
}

// ProfileResponse wraps a profile with creation metadata
type ProfileResponse struct {
	Profile       *UserProfile `json:"profile"`
	Cached        bool         `json:"cached,omitempty"`
	AlreadyExists bool         `json:"alreadyExists,omitempty"`
}

// PublicProfile is the privacy-gated projection of another user's profile
type PublicProfile struct {
	UserID          uuid.UUID   `json:"userId"`
	Username        string      `json:"username"`
	FullName        string      `json:"fullName"`
	Bio             string      `json:"bio,omitempty"`
	Avatar          string      `json:"avatar,omitempty"`
	Country         string      `json:"country,omitempty"`
	Email           string      `json:"email,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	JoinedAt        *time.Time  `json:"joinedAt,omitempty"`
	IsSeller        bool        `json:"isSeller"`
	SellerVerified  bool        `json:"sellerVerified,omitempty"`
	ShopName        null.String `json:"shopName,omitempty"`
	ShopDescription null.String `json:"shopDescription,omitempty"`
	Rating          float64     `json:"rating"`
	ReviewCount     int         `json:"reviewCount"`
	TotalSales      int         `json:"totalSales"`
}

// PublicView projects the profile through its privacy flags. Seller and shop
// fields are always public for sellers.
func (p *UserProfile) PublicView() *PublicProfile {
	view := &PublicProfile{
		UserID:      p.UserID,
		Username:    p.Username,
		FullName:    p.FullName,
		Bio:         p.Bio,
		Avatar:      p.Avatar,
		Country:     p.Country,
		IsSeller:    p.IsSeller,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		TotalSales:  p.TotalSales,
	}
	if p.ShowJoinDate {
		joined := p.CreatedAt
		view.JoinedAt = &joined
	}
	if p.ShowEmail {
		view.Email = p.Email
	}
	if p.ShowPhone {
		view.Phone = p.Phone
	}
	if p.IsSeller {
		view.SellerVerified = p.SellerVerified
		view.ShopName = p.ShopName
		view.ShopDescription = p.ShopDescription
	}
	return view
}
