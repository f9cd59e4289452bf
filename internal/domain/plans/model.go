package plans

// Plan maps a Stripe recurring price onto a host-plan billing tier.
// Rows are synced from Stripe via /admin/sync-plans; the webhook gateway
// reads them to resolve a tier from the price id on subscription updates.
type Plan struct {
	ID            uint `gorm:"primaryKey"`
	Name          string
	PriceCents    int64  `gorm:"column:price_cents"`
	Currency      string `gorm:"type:varchar(3);default:'eur'"`
	StripePriceID string `gorm:"column:stripe_price_id;not null;uniqueIndex:idx_plans_stripe_price_id"`
	Interval      string
	Tier          string `gorm:"column:tier"` // "tier_a" | "tier_b" | "tier_c"
}
