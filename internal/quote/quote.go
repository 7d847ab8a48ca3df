package quote

import (
	"fmt"
	"math"
	"time"

	"github.com/avstrong/pricelist/internal/pricing"
	"github.com/shopspring/decimal"
)

// Strategy adjusts a quote line for one supplement or discount.
type Strategy interface {
	Apply(line *Line, stay pricing.Stay) error
}

// Line is a quote line under construction, amounts kept unrounded.
type Line struct {
	Period      pricing.PricePeriod
	NightlyRate decimal.Decimal
	Base        decimal.Decimal
	Supplements []Amount
	Discounts   []Amount
}

type Amount struct {
	RuleID string
	Title  string
	Value  decimal.Decimal
}

type Calculator struct {
	eval *Evaluator
}

func New() *Calculator {
	return &Calculator{eval: NewEvaluator()}
}

// Quote prices the stay under every period that is bookable for it.
func (c *Calculator) Quote(
	product pricing.Product,
	periods []pricing.PricePeriod,
	rules []pricing.AdjustmentRule,
	stay pricing.Stay,
) (*pricing.Quote, error) {
	strategies := c.Strategies(rules)

	out := &pricing.Quote{
		ProductID: product.ID,
		Currency:  product.Currency,
		Nights:    stay.Nights,
		Persons:   stay.Persons(),
		Lines:     make([]pricing.QuoteLine, 0),
	}

	for _, period := range periods {
		if !Bookable(period, stay) {
			continue
		}

		line := newLine(period, stay)

		for _, strategy := range strategies {
			if err := strategy.Apply(line, stay); err != nil {
				return nil, fmt.Errorf("apply adjustment to period %s: %w", period.ID, err)
			}
		}

		out.Lines = append(out.Lines, line.render())
	}

	return out, nil
}

// Strategies turns rules into strategies, supplements before discounts.
func (c *Calculator) Strategies(rules []pricing.AdjustmentRule) []Strategy {
	var supplements, discounts []Strategy

	for _, rule := range rules {
		switch r := rule.(type) {
		case pricing.Supplement:
			supplements = append(supplements, &SupplementStrategy{Rule: r, eval: c.eval})
		case pricing.Discount:
			discounts = append(discounts, &DiscountStrategy{Rule: r, eval: c.eval})
		}
	}

	return append(supplements, discounts...)
}

func newLine(period pricing.PricePeriod, stay pricing.Stay) *Line {
	nightly := pricing.GrossPrice(period.NetPrice, period.ProvisionPercent)

	units := decimal.NewFromInt(int64(stay.Nights))
	if period.Basis == pricing.PerPersonPerDay {
		units = units.Mul(decimal.NewFromInt(int64(stay.Persons())))
	}

	//nolint:exhaustruct
	return &Line{
		Period:      period,
		NightlyRate: nightly,
		Base:        nightly.Mul(units),
	}
}

func (l *Line) total() decimal.Decimal {
	total := l.Base
	for _, s := range l.Supplements {
		total = total.Add(s.Value)
	}

	for _, d := range l.Discounts {
		total = total.Sub(d.Value)
	}

	return total
}

func (l *Line) discounted() decimal.Decimal {
	sum := decimal.Zero
	for _, d := range l.Discounts {
		sum = sum.Add(d.Value)
	}

	return sum
}

func (l *Line) render() pricing.QuoteLine {
	return pricing.QuoteLine{
		PeriodID:    l.Period.ID,
		Basis:       l.Period.Basis,
		NightlyRate: pricing.FormatPrice(l.NightlyRate),
		Base:        pricing.FormatPrice(l.Base),
		Supplements: renderAmounts(l.Supplements),
		Discounts:   renderAmounts(l.Discounts),
		Total:       pricing.FormatPrice(l.total()),
	}
}

func renderAmounts(amounts []Amount) []pricing.AppliedAdjustment {
	out := make([]pricing.AppliedAdjustment, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, pricing.AppliedAdjustment{
			RuleID: a.RuleID,
			Title:  a.Title,
			Amount: pricing.FormatPrice(a.Value),
		})
	}

	return out
}

// Bookable reports whether the period accepts the stay: arrival inside the
// date range on an allowed weekday, stay length and occupancy inside bounds,
// and the booking made before the release cutoff.
//
//nolint:cyclop
func Bookable(p pricing.PricePeriod, stay pricing.Stay) bool {
	if !finite(p.NetPrice) || !finite(p.ProvisionPercent) || p.NetPrice <= 0 {
		return false
	}

	from, err := time.Parse(pricing.DateLayout, p.DateFrom)
	if err != nil {
		return false
	}

	to, err := time.Parse(pricing.DateLayout, p.DateTo)
	if err != nil {
		return false
	}

	if stay.Arrival.Before(from) || stay.Arrival.After(to) {
		return false
	}

	if !containsDay(p.ArrivalDays, isoWeekday(stay.Arrival)) {
		return false
	}

	if stay.Nights < p.MinStay || (p.MaxStay != nil && stay.Nights > *p.MaxStay) {
		return false
	}

	if !within(stay.Adults, p.MinAdults, p.MaxAdults) || !within(len(stay.ChildAges), p.MinChildren, p.MaxChildren) {
		return false
	}

	if p.ReleaseDays > 0 && stay.LeadDays() < p.ReleaseDays {
		return false
	}

	return true
}

func isoWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return pricing.Sunday
	}

	return int(t.Weekday())
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}

	return false
}

func within(n int, lo, hi *int) bool {
	if lo != nil && n < *lo {
		return false
	}

	if hi != nil && n > *hi {
		return false
	}

	return true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
