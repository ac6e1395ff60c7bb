package authors

import "time"

type MeResponse struct {
	Author  AuthorDTO  `json:"author"`
	Billing BillingDTO `json:"billing"`
	Usage   UsageDTO   `json:"usage"`
}

/* ---------- AUTHOR ---------- */

type AuthorDTO struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	Bio        string `json:"bio"`
	Website    string `json:"website"`
}

/* ---------- BILLING ---------- */

type BillingDTO struct {
	Plan         *PlanDTO         `json:"plan"`
	Subscription *SubscriptionDTO `json:"subscription"`
}

type PlanDTO struct {
	ID       uint    `json:"id"`
	Key      string  `json:"key"`
	Tier     string  `json:"tier"`
	Interval string  `json:"interval"`
	PriceEUR float64 `json:"price_eur"`
}

type SubscriptionDTO struct {
	Status               string     `json:"status"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	StripeSubscriptionID *string    `json:"stripe_subscription_id"`
}

/* ---------- USAGE ---------- */

type UsageDTO struct {
	Stories    int64 `json:"stories"`
	StoryLimit *int  `json:"story_limit"` // nil = unlimited
}

/* ---------- INPUT ---------- */

type ProfileInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Website   *string `json:"website"`
}
