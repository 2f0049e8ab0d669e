package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserProfile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Email    string    `gorm:"type:varchar(255);not null"`
	Username string    `gorm:"type:varchar(100);index"`
	FullName string    `gorm:"type:varchar(200)"`

	Bio         string     `gorm:"type:text"`
	Phone       string     `gorm:"type:varchar(50)"`
	DateOfBirth *time.Time `gorm:"type:date"`
	Country     string     `gorm:"type:varchar(100)"`
	City        string     `gorm:"type:varchar(100)"`
	Address     string     `gorm:"type:varchar(255)"`
	Avatar      string     `gorm:"type:varchar(255)"`

	Role string `gorm:"type:varchar(20);not null;default:'USER'"`

	IsSeller               bool       `gorm:"not null;default:false"`
	SellerVerified         bool       `gorm:"not null;default:false"`
	SellerVerificationDate *time.Time `gorm:"type:timestamp"`
	ShopName               *string    `gorm:"type:varchar(100)"`
	ShopDescription        *string    `gorm:"type:text"`
	TaxID                  *string    `gorm:"type:varchar(50)"`

	BankAccountName        *string `gorm:"type:varchar(100)"`
	BankAccountNumber      *string `gorm:"type:varchar(50)"`
	BankName               *string `gorm:"type:varchar(100)"`
	BankVerified           bool    `gorm:"not null;default:false"`
	BankVerificationStatus string  `gorm:"type:varchar(20);not null;default:'PENDING'"`

	ShowCoinBalance bool `gorm:"not null;default:true"`
	ShowJoinDate    bool `gorm:"not null;default:true"`
	ShowEmail       bool `gorm:"not null;default:false"`
	ShowPhone       bool `gorm:"not null;default:false"`

	TotalSales     int     `gorm:"not null;default:0"`
	TotalPurchases int     `gorm:"not null;default:0"`
	Rating         float64 `gorm:"not null;default:0"`
	ReviewCount    int     `gorm:"not null;default:0"`

	IsActive         bool    `gorm:"not null;default:true"`
	IsSuspended      bool    `gorm:"not null;default:false"`
	SuspensionReason *string `gorm:"type:varchar(500)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
