package authors

import (
	"storybuilder-app/internal/domain/plans"
	"time"
)

type Author struct {
	ID        uint    `gorm:"primaryKey"`
	Username  string  `gorm:"not null;uniqueIndex:idx_authors_username"`
	FirstName string  `gorm:"column:first_name"`
	LastName  string  `gorm:"column:last_name"`
	Email     string  `gorm:"not null;uniqueIndex:idx_authors_email"`
	Password  *string `gorm:"" json:"-"`

	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_authors_google_sub"`

	Role       string
	IsVerified bool

	Bio     string `gorm:"type:text"`
	Website string

	PlanID *uint
	Plan   *plans.Plan

	StripeCustomerID         *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_authors_stripe_customer_id"`
	SubscriptionId           *string `gorm:"column:subscription_id;uniqueIndex:idx_authors_subscription_id"`
	StripeSubscriptionStatus *string `gorm:"column:stripe_subscription_status"`
	CurrentPeriodEnd         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
