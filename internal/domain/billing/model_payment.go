package billing

import "time"

// Payment records a completed one-time purchase (digital download checkout).
// The recurring host-plan relationship lives on the user/club rows, not here.
type Payment struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          string `gorm:"index:idx_payments_user_id"`
	ClubID          string
	StripeSessionID string `gorm:"uniqueIndex"`
	ProductRef      string
	AmountCents     int64
	Currency        string `gorm:"type:varchar(3)"`
	Status          string
	ReceiptURL      *string
	CreatedAt       time.Time
}
