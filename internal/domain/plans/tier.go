package plans

import "strings"

// Tier constants (single source of truth)
const (
	TierFree = "free"
	TierPro  = "pro"
)

// FreeStoryLimit caps how many stories a free-plan author can keep.
const FreeStoryLimit = 3

// PlanTier returns the effective tier for a plan. A missing or
// unrecognized plan counts as free.
func PlanTier(p *Plan) string {
	if p == nil {
		return TierFree
	}

	tier := strings.ToLower(strings.TrimSpace(p.Tier))
	if tier == TierPro {
		return TierPro
	}
	return TierFree
}
