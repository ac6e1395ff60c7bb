package billing

import (
	"storybuilder-app/internal/domain/authors"
	"storybuilder-app/internal/domain/plans"
	"time"
)

type Payment struct {
	ID                   uint `gorm:"primaryKey"`
	AuthorID             uint
	Author               authors.Author
	PlanID               *uint
	Plan                 *plans.Plan
	StripeSessionID      string `gorm:"uniqueIndex"`
	StripeSubscriptionID *string
	AmountEUR            float64
	Status               string
	InvoiceID            *string
	ReceiptURL           *string
	CreatedAt            time.Time
}
