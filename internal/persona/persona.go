// Package persona derives the system instruction that conditions the
// simulated business stakeholder. Derivation is stateless: the instruction is
// rebuilt every turn from (industry, tier, round) alone, and disclosure
// pacing is left entirely to the completion service.
package persona

import "strings"

// Difficulty tiers. Beginner stakeholders disclose everything willingly;
// realistic ones hold information back until asked precisely.
const (
	TierBeginner  = "beginner"
	TierRealistic = "realistic"
)

// ValidTier reports whether tier is one of the known difficulty tiers.
func ValidTier(tier string) bool {
	switch strings.TrimSpace(tier) {
	case TierBeginner, TierRealistic:
		return true
	}
	return false
}

var industryLabels = map[string]string{
	"finance":    "the financial services industry",
	"compliance": "the regulatory compliance field",
	"healthcare": "the healthcare industry",
	"ecommerce":  "the e-commerce industry",
	"sports":     "the sports and fitness field",
}

// IndustryLabel resolves an industry id to a human-readable domain label.
// Unknown ids fall back to a generic label instead of failing.
func IndustryLabel(id string) string {
	if label, ok := industryLabels[strings.TrimSpace(id)]; ok {
		return label
	}
	return "a business domain"
}
