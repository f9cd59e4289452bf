package billing

import "time"

// ProcessedStripeEvent deduplicates webhook deliveries by the Stripe event
// id. The row is inserted only after the whole dispatch succeeds, so a 5xx
// leaves the event unclaimed for the next redelivery.
type ProcessedStripeEvent struct {
	ID            uint   `gorm:"primaryKey"`
	StripeEventID string `gorm:"not null;uniqueIndex:idx_processed_stripe_events_event_id"`
	EventType     string
	CreatedAt     time.Time
}
