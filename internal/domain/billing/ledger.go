package billing

import (
	"fmt"

	"gorm.io/gorm"
)

// Append writes one ledger row. Write-only: success means the row is durably
// visible to subsequent reads. Retried deliveries may append the same logical
// event more than once; that is accepted, the ledger is an audit trail.
//
// IMPORTANT: pass db in, do NOT import clubhost-app/database here (avoids import cycle).
func Append(db *gorm.DB, event BillingEvent) error {
	if event.EventType == "" {
		return fmt.Errorf("billing event missing event_type")
	}
	if err := db.Create(&event).Error; err != nil {
		return fmt.Errorf("failed to append billing event %s: %w", event.EventType, err)
	}
	return nil
}
