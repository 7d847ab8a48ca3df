package pricing

import (
	"fmt"
	"strings"
)

const maxPercent = 100

// Validate lists everything that blocks activation of a product's rule set,
// in a stable order: product fields, period presence, each period in store
// order, then each adjustment rule in store order. An empty result means the
// rule set may be activated.
func Validate(product Product, periods []PricePeriod, rules []AdjustmentRule) []string {
	issues := make([]string, 0)

	if strings.TrimSpace(product.Service) == "" {
		issues = append(issues, "product: service is missing")
	}

	if strings.TrimSpace(product.Type) == "" {
		issues = append(issues, "product: room type is missing")
	}

	if len(periods) == 0 {
		issues = append(issues, "no pricing periods defined")
	}

	for i, p := range periods {
		for _, msg := range periodIssues(p) {
			issues = append(issues, fmt.Sprintf("period %d: %s", i+1, msg))
		}
	}

	for i, r := range rules {
		for _, msg := range ruleIssues(r) {
			issues = append(issues, fmt.Sprintf("rule %d (%s): %s", i+1, kindLabel(r.RuleKind()), msg))
		}
	}

	return issues
}

//nolint:cyclop,funlen // a flat list of independent checks
func periodIssues(p PricePeriod) []string {
	var out []string

	switch {
	case p.DateFrom == "" || p.DateTo == "":
		out = append(out, "date from or date to is missing")
	default:
		from, errFrom := parseDate(p.DateFrom)
		to, errTo := parseDate(p.DateTo)

		switch {
		case errFrom != nil || errTo != nil:
			out = append(out, "dates must use the YYYY-MM-DD format")
		case from.After(to):
			out = append(out, "date from is after date to")
		}
	}

	if !finite(p.NetPrice) || p.NetPrice <= 0 {
		out = append(out, "net price must be greater than 0")
	}

	if !finite(p.ProvisionPercent) || p.ProvisionPercent < 0 {
		out = append(out, "provision must not be negative")
	}

	if !p.Basis.Valid() {
		out = append(out, fmt.Sprintf("unknown rate basis %q", p.Basis))
	}

	if p.ReleaseDays < 0 {
		out = append(out, "release days must not be negative")
	}

	if p.MinStay < 0 {
		out = append(out, "minimum stay must not be negative")
	}

	if p.MaxStay != nil && *p.MaxStay < p.MinStay {
		out = append(out, "minimum stay exceeds maximum stay")
	}

	out = append(out, boundIssues("adults", p.MinAdults, p.MaxAdults)...)
	out = append(out, boundIssues("children", p.MinChildren, p.MaxChildren)...)

	if len(p.ArrivalDays) == 0 {
		out = append(out, "no arrival days selected")
	}

	for _, d := range p.ArrivalDays {
		if d < Monday || d > Sunday {
			out = append(out, fmt.Sprintf("arrival day %d is not a weekday code 1-7", d))
		}
	}

	return out
}

func boundIssues(what string, lo, hi *int) []string {
	var out []string

	if lo != nil && *lo < 0 {
		out = append(out, fmt.Sprintf("minimum %s must not be negative", what))
	}

	if hi != nil && *hi < 0 {
		out = append(out, fmt.Sprintf("maximum %s must not be negative", what))
	}

	if lo != nil && hi != nil && *lo > *hi {
		out = append(out, fmt.Sprintf("minimum %s exceeds maximum %s", what, what))
	}

	return out
}

func ruleIssues(r AdjustmentRule) []string {
	var out []string

	if strings.TrimSpace(r.RuleTitle()) == "" {
		out = append(out, "title is missing")
	}

	c := r.Eligibility()

	if c.HasChildAgeRange() && *c.ChildAgeFrom > *c.ChildAgeTo {
		out = append(out, "child age from exceeds child age to")
	}

	if (c.ChildAgeFrom != nil && *c.ChildAgeFrom < 0) || (c.ChildAgeTo != nil && *c.ChildAgeTo < 0) {
		out = append(out, "child age must not be negative")
	}

	if c.MinAdults != nil && *c.MinAdults < 0 {
		out = append(out, "minimum adults must not be negative")
	}

	if c.MinChildren != nil && *c.MinChildren < 0 {
		out = append(out, "minimum children must not be negative")
	}

	switch v := r.(type) {
	case Supplement:
		if !finite(v.NetPrice) || v.NetPrice < 0 {
			out = append(out, "net price must not be negative")
		}

		if !finite(v.ProvisionPercent) || v.ProvisionPercent < 0 {
			out = append(out, "provision must not be negative")
		}
	case Discount:
		if !finite(v.PercentValue) || v.PercentValue < 0 || v.PercentValue > maxPercent {
			out = append(out, "percent value must be between 0 and 100")
		}

		if v.DaysBeforeArrival < 0 {
			out = append(out, "days before arrival must not be negative")
		}
	}

	return out
}

func kindLabel(k RuleKind) string {
	if k == KindDiscount {
		return "discount"
	}

	return "supplement"
}
