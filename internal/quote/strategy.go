package quote

import (
	"fmt"
	"math"

	"github.com/avstrong/pricelist/internal/pricing"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100) //nolint:gomnd

type SupplementStrategy struct {
	Rule pricing.Supplement
	eval *Evaluator
}

// Apply charges the supplement's gross price per night, once per stay or once
// per child inside the rule's age range when one is set.
func (s *SupplementStrategy) Apply(line *Line, stay pricing.Stay) error {
	ok, err := s.eval.Eligible(s.Rule.Conditions, stay, nil)
	if err != nil {
		return fmt.Errorf("supplement %s: %w", s.Rule.ID, err)
	}

	if !ok {
		return nil
	}

	count := int64(1)
	if s.Rule.HasChildAgeRange() {
		count = int64(eligibleChildren(s.Rule.Conditions, stay))
	}

	amount := pricing.GrossPrice(s.Rule.NetPrice, s.Rule.ProvisionPercent).
		Mul(decimal.NewFromInt(int64(stay.Nights))).
		Mul(decimal.NewFromInt(count))

	line.Supplements = append(line.Supplements, Amount{
		RuleID: s.Rule.ID,
		Title:  s.Rule.Title,
		Value:  amount,
	})

	return nil
}

type DiscountStrategy struct {
	Rule pricing.Discount
	eval *Evaluator
}

// Apply takes the discount percentage off the line's base. Discounts on one
// line never add up to more than the base.
func (d *DiscountStrategy) Apply(line *Line, stay pricing.Stay) error {
	if math.IsNaN(d.Rule.PercentValue) || math.IsInf(d.Rule.PercentValue, 0) || d.Rule.PercentValue <= 0 {
		return nil
	}

	lead := d.Rule.DaysBeforeArrival

	ok, err := d.eval.Eligible(d.Rule.Conditions, stay, &lead)
	if err != nil {
		return fmt.Errorf("discount %s: %w", d.Rule.ID, err)
	}

	if !ok {
		return nil
	}

	amount := line.Base.Mul(decimal.NewFromFloat(d.Rule.PercentValue)).Div(hundred)

	if room := line.Base.Sub(line.discounted()); amount.GreaterThan(room) {
		amount = room
	}

	line.Discounts = append(line.Discounts, Amount{
		RuleID: d.Rule.ID,
		Title:  d.Rule.Title,
		Value:  amount,
	})

	return nil
}

func eligibleChildren(c pricing.Conditions, stay pricing.Stay) int {
	if !c.HasChildAgeRange() {
		return len(stay.ChildAges)
	}

	n := 0

	for _, age := range stay.ChildAges {
		if age >= *c.ChildAgeFrom && age <= *c.ChildAgeTo {
			n++
		}
	}

	return n
}
