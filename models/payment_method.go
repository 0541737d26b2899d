package models

import "time"

// PaymentMethod is a card registered with the payment provider. The provider
// reference is accepted at creation and never serialized back out.
type PaymentMethod struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"not null"`
	ProviderMethodID  string    `json:"-" gorm:"uniqueIndex;not null"`
	Brand             string    `json:"brand" gorm:"not null"`
	Last4             string    `json:"last4" gorm:"not null"`
	IsDefault         bool      `json:"is_default" gorm:"default:false"`
	CreatedAt         time.Time `json:"created_at"`
}
