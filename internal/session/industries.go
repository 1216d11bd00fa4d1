package session

import "strings"

// Industry identifiers form a closed set. Each maps to exactly one canonical
// task background seed, fixed at the moment the session leaves INIT.
const (
	IndustryFinance    = "finance"
	IndustryCompliance = "compliance"
	IndustryHealthcare = "healthcare"
	IndustryEcommerce  = "ecommerce"
	IndustrySports     = "sports"
)

var taskBackgrounds = map[string]string{
	IndustryFinance:    "Customers complain that wealth-management product recommendations are imprecise and frequently push irrelevant products.",
	IndustryCompliance: "The compliance approval workflow is drawn out; document review takes 3-5 days on average.",
	IndustryHealthcare: "The appointment booking system is inefficient; patients often cannot book a suitable time slot.",
	IndustryEcommerce:  "Shopping cart abandonment has reached 70% and the conversion rate keeps falling.",
	IndustrySports:     "Workout data is scattered across tools, so users struggle to track long-term training progress.",
}

// ValidIndustry reports whether id belongs to the closed industry set.
func ValidIndustry(id string) bool {
	_, ok := taskBackgrounds[strings.TrimSpace(id)]
	return ok
}

// TaskBackground resolves the canonical task seed for an industry. Unknown
// industries get a generic seed rather than an error.
func TaskBackground(industry string) string {
	if bg, ok := taskBackgrounds[strings.TrimSpace(industry)]; ok {
		return bg
	}
	return "A line-of-business team is struggling with a slow, manual workflow and wants it improved."
}
