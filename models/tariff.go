package models

import "time"

// Tariff is a subscription plan for restaurants. Globally readable,
// admin-managed.
type Tariff struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        TranslatedString `json:"name" gorm:"not null"`
	Description TranslatedString `json:"description"`
	MonthPrice  int              `json:"month_price" gorm:"not null"`
	YearPrice   int              `json:"year_price" gorm:"not null"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
