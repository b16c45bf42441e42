package analyzer

import "strings"

// EffortPolicy estimates hours of work from request content. The product has
// shipped with more than one heuristic, so the policy is swappable.
type EffortPolicy interface {
	Estimate(content string) float64
}

// KeywordTierPolicy is the default estimator: complexity keywords bump the
// estimate to a full day, short simple edits drop to an hour, everything
// else falls into word-count tiers.
type KeywordTierPolicy struct{}

var complexityKeywords = []string{"api", "database", "integration", "migration", "authentication", "payment"}

var simpleEditKeywords = []string{"typo", "text", "copy", "wording", "color", "colour", "label"}

const (
	hoursComplex    = 8
	hoursSimpleEdit = 1
	hoursShort      = 2
	hoursDefault    = 4

	shortWordCount = 50
)

func (KeywordTierPolicy) Estimate(content string) float64 {
	lower := strings.ToLower(content)
	words := len(strings.Fields(content))

	for _, kw := range complexityKeywords {
		if strings.Contains(lower, kw) {
			return hoursComplex
		}
	}
	if words <= shortWordCount {
		for _, kw := range simpleEditKeywords {
			if strings.Contains(lower, kw) {
				return hoursSimpleEdit
			}
		}
		return hoursShort
	}
	return hoursDefault
}

// FixedPolicy always estimates the same number of hours.
type FixedPolicy struct {
	Hours float64
}

func (p FixedPolicy) Estimate(string) float64 {
	return p.Hours
}

// Suggestion is advisory output for the proposal panel. Amount is zero when
// no hourly rate is known.
type Suggestion struct {
	Indicators     []string `json:"indicators"`
	EstimatedHours float64  `json:"estimated_hours"`
	Amount         float64  `json:"amount,omitempty"`
}

// Suggest combines indicator detection with an effort estimate. It never
// fails: no matches yields empty indicators and a rate of zero omits the
// amount.
func Suggest(content string, phrases []string, policy EffortPolicy, hourlyRate float64) Suggestion {
	if policy == nil {
		policy = KeywordTierPolicy{}
	}
	hours := policy.Estimate(content)
	s := Suggestion{
		Indicators:     Indicators(content, phrases),
		EstimatedHours: hours,
	}
	if hourlyRate > 0 {
		s.Amount = hourlyRate * hours
	}
	return s
}
