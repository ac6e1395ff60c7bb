package authors

import "time"

// One live token per author per type: a pending email verification must
// not block a password reset.
type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	AuthorID  uint   `gorm:"uniqueIndex:idx_verification_tokens_author_type,priority:1"`
	Author    Author `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex"`
	Type      string `gorm:"uniqueIndex:idx_verification_tokens_author_type,priority:2"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
