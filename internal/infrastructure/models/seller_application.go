package models

import (
	"time"

	"github.com/google/uuid"
)

type SellerApplication struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	ShopName        string  `gorm:"type:varchar(100);not null"`
	ShopDescription string  `gorm:"type:text;not null"`
	BusinessType    string  `gorm:"type:varchar(100);not null"`
	BusinessAddress string  `gorm:"type:varchar(255);not null"`
	PhoneNumber     string  `gorm:"type:varchar(50);not null"`
	Website         *string `gorm:"type:varchar(255)"`

	BankAccountName   string `gorm:"type:varchar(100);not null"`
	BankAccountNumber string `gorm:"type:varchar(50);not null"`
	BankName          string `gorm:"type:varchar(100);not null"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time `gorm:"type:timestamp"`
	RejectionReason *string    `gorm:"type:varchar(500)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SellerApplication) TableName() string {
	return "seller_applications"
}
