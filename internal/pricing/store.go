package pricing

import (
	"sort"

	"github.com/google/uuid"
)

// PeriodStore holds the base-rate periods of one product in insertion order.
// Mutations return a new store; a mutation that changes nothing returns the
// receiver itself, so callers can detect changes by pointer identity.
type PeriodStore struct {
	c collection[PricePeriod]
}

func NewPeriodStore(periods ...PricePeriod) *PeriodStore {
	cloned := make([]PricePeriod, 0, len(periods))
	for _, p := range periods {
		cloned = append(cloned, p.clone())
	}

	return &PeriodStore{c: newCollection(cloned...)}
}

func (s *PeriodStore) coll() collection[PricePeriod] {
	if s == nil {
		return newCollection[PricePeriod]()
	}

	return s.c
}

// Add appends a period with default values and a fresh id.
func (s *PeriodStore) Add() (*PeriodStore, PricePeriod) {
	period := newPricePeriod(uuid.NewString())

	return &PeriodStore{c: s.coll().appended(period)}, period.clone()
}

// Update replaces a single field, addressed by its JSON name, on the period
// with the given id. Unknown ids, unknown fields and ill-typed values are no-ops.
func (s *PeriodStore) Update(id, field string, value any) *PeriodStore {
	current, ok := s.coll().get(id)
	if !ok {
		return s
	}

	updated, ok := patchField(current, field, value)
	if !ok {
		return s
	}

	return &PeriodStore{c: s.coll().replaced(updated)}
}

func (s *PeriodStore) Remove(id string) *PeriodStore {
	if _, ok := s.coll().get(id); !ok {
		return s
	}

	return &PeriodStore{c: s.coll().without(id)}
}

// ToggleArrivalDay removes day from the period's arrival days when present and
// inserts it otherwise. The result is sorted ascending. Days outside 1..7 are ignored.
func (s *PeriodStore) ToggleArrivalDay(id string, day int) *PeriodStore {
	if day < Monday || day > Sunday {
		return s
	}

	current, ok := s.coll().get(id)
	if !ok {
		return s
	}

	updated := current.clone()
	updated.ArrivalDays = toggleDay(current.ArrivalDays, day)

	return &PeriodStore{c: s.coll().replaced(updated)}
}

func (s *PeriodStore) Get(id string) (PricePeriod, bool) {
	p, ok := s.coll().get(id)
	if !ok {
		return PricePeriod{}, false //nolint:exhaustruct
	}

	return p.clone(), true
}

func (s *PeriodStore) List() []PricePeriod {
	items := s.coll().items()
	for i := range items {
		items[i] = items[i].clone()
	}

	return items
}

func (s *PeriodStore) Len() int {
	return s.coll().len()
}

func toggleDay(days []int, day int) []int {
	out := make([]int, 0, len(days)+1)
	found := false

	for _, d := range days {
		if d == day {
			found = true

			continue
		}

		out = append(out, d)
	}

	if !found {
		out = append(out, day)
	}

	sort.Ints(out)

	return out
}

// RuleStore holds supplements and discounts of one product in insertion order.
// It follows the same copy-on-write contract as PeriodStore.
type RuleStore struct {
	c collection[AdjustmentRule]
}

func NewRuleStore(rules ...AdjustmentRule) *RuleStore {
	cloned := make([]AdjustmentRule, 0, len(rules))
	for _, r := range rules {
		cloned = append(cloned, cloneRule(r))
	}

	return &RuleStore{c: newCollection(cloned...)}
}

func (s *RuleStore) coll() collection[AdjustmentRule] {
	if s == nil {
		return newCollection[AdjustmentRule]()
	}

	return s.c
}

// Add appends a rule of the given kind with kind-specific defaults.
func (s *RuleStore) Add(kind RuleKind) (*RuleStore, AdjustmentRule) {
	rule := newAdjustmentRule(kind, uuid.NewString())

	return &RuleStore{c: s.coll().appended(rule)}, cloneRule(rule)
}

// Update replaces a single field on the rule with the given id. A field that
// does not exist on the rule's kind leaves the store unchanged.
func (s *RuleStore) Update(id, field string, value any) *RuleStore {
	current, ok := s.coll().get(id)
	if !ok {
		return s
	}

	var updated AdjustmentRule

	switch r := current.(type) {
	case Supplement:
		patched, ok := patchField(r, field, value)
		if !ok {
			return s
		}

		updated = patched
	case Discount:
		patched, ok := patchField(r, field, value)
		if !ok {
			return s
		}

		updated = patched
	default:
		return s
	}

	return &RuleStore{c: s.coll().replaced(updated)}
}

func (s *RuleStore) Remove(id string) *RuleStore {
	if _, ok := s.coll().get(id); !ok {
		return s
	}

	return &RuleStore{c: s.coll().without(id)}
}

func (s *RuleStore) Get(id string) (AdjustmentRule, bool) {
	r, ok := s.coll().get(id)
	if !ok {
		return nil, false
	}

	return cloneRule(r), true
}

func (s *RuleStore) List() []AdjustmentRule {
	items := s.coll().items()
	for i := range items {
		items[i] = cloneRule(items[i])
	}

	return items
}

func (s *RuleStore) Supplements() []Supplement {
	var out []Supplement

	for _, r := range s.List() {
		if sup, ok := r.(Supplement); ok {
			out = append(out, sup)
		}
	}

	return out
}

func (s *RuleStore) Discounts() []Discount {
	var out []Discount

	for _, r := range s.List() {
		if d, ok := r.(Discount); ok {
			out = append(out, d)
		}
	}

	return out
}

func (s *RuleStore) Len() int {
	return s.coll().len()
}

func (p PricePeriod) clone() PricePeriod {
	out := p
	out.MaxStay = cloneInt(p.MaxStay)
	out.MinAdults = cloneInt(p.MinAdults)
	out.MaxAdults = cloneInt(p.MaxAdults)
	out.MinChildren = cloneInt(p.MinChildren)
	out.MaxChildren = cloneInt(p.MaxChildren)

	if p.ArrivalDays != nil {
		out.ArrivalDays = append(make([]int, 0, len(p.ArrivalDays)), p.ArrivalDays...)
	}

	return out
}

func (c Conditions) clone() Conditions {
	return Conditions{
		ChildAgeFrom: cloneInt(c.ChildAgeFrom),
		ChildAgeTo:   cloneInt(c.ChildAgeTo),
		MinAdults:    cloneInt(c.MinAdults),
		MinChildren:  cloneInt(c.MinChildren),
	}
}

func cloneRule(r AdjustmentRule) AdjustmentRule {
	switch v := r.(type) {
	case Supplement:
		v.Conditions = v.Conditions.clone()

		return v
	case Discount:
		v.Conditions = v.Conditions.clone()

		return v
	}

	return r
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}

	out := *v

	return &out
}
