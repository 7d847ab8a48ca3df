package pricing

import "time"

const DateLayout = "2006-01-02"

type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
)

// Product is the room/service combination a pricelist prices.
// Currency is authoritative for every amount in its periods and supplements.
type Product struct {
	ID       int    `json:"id"       yaml:"id"`
	Service  string `json:"service"  yaml:"service"`
	Prefix   string `json:"prefix"   yaml:"prefix"`
	Type     string `json:"type"     yaml:"type"`
	View     string `json:"view"     yaml:"view"`
	Name     string `json:"name"     yaml:"name"`
	Currency string `json:"currency" yaml:"currency"`
}

type PricePeriod struct {
	ID               string    `json:"id"`
	DateFrom         string    `json:"dateFrom"`
	DateTo           string    `json:"dateTo"`
	Basis            RateBasis `json:"basis"`
	NetPrice         float64   `json:"netPrice"`
	ProvisionPercent float64   `json:"provisionPercent"`
	ReleaseDays      int       `json:"releaseDays"`
	MinStay          int       `json:"minStay"`
	MaxStay          *int      `json:"maxStay"`
	MinAdults        *int      `json:"minAdults"`
	MaxAdults        *int      `json:"maxAdults"`
	MinChildren      *int      `json:"minChildren"`
	MaxChildren      *int      `json:"maxChildren"`
	ArrivalDays      []int     `json:"arrivalDays"`
}

func (p PricePeriod) RecordID() string {
	return p.ID
}

func newPricePeriod(id string) PricePeriod {
	days := make([]int, 0, weekLen)
	for d := Monday; d <= Sunday; d++ {
		days = append(days, d)
	}

	//nolint:exhaustruct
	return PricePeriod{
		ID:          id,
		Basis:       PerPersonPerDay,
		ArrivalDays: days,
	}
}

// Conditions restrict when an adjustment rule applies. Nil means unconstrained.
type Conditions struct {
	ChildAgeFrom *int `json:"childAgeFrom"`
	ChildAgeTo   *int `json:"childAgeTo"`
	MinAdults    *int `json:"minAdults"`
	MinChildren  *int `json:"minChildren"`
}

func (c Conditions) HasChildAgeRange() bool {
	return c.ChildAgeFrom != nil && c.ChildAgeTo != nil
}

// AdjustmentRule is either a Supplement or a Discount.
type AdjustmentRule interface {
	RecordID() string
	RuleKind() RuleKind
	RuleTitle() string
	Eligibility() Conditions
	adjustment()
}

type Supplement struct {
	ID    string   `json:"id"`
	Kind  RuleKind `json:"kind"`
	Title string   `json:"title"`
	Conditions
	NetPrice         float64 `json:"netPrice"`
	ProvisionPercent float64 `json:"provisionPercent"`
}

func (s Supplement) RecordID() string        { return s.ID }
func (s Supplement) RuleKind() RuleKind      { return KindSupplement }
func (s Supplement) RuleTitle() string       { return s.Title }
func (s Supplement) Eligibility() Conditions { return s.Conditions }
func (Supplement) adjustment()               {}

type Discount struct {
	ID    string   `json:"id"`
	Kind  RuleKind `json:"kind"`
	Title string   `json:"title"`
	Conditions
	PercentValue      float64 `json:"percentValue"`
	DaysBeforeArrival int     `json:"daysBeforeArrival"`
}

func (d Discount) RecordID() string        { return d.ID }
func (d Discount) RuleKind() RuleKind      { return KindDiscount }
func (d Discount) RuleTitle() string       { return d.Title }
func (d Discount) Eligibility() Conditions { return d.Conditions }
func (Discount) adjustment()               {}

func newAdjustmentRule(kind RuleKind, id string) AdjustmentRule {
	if kind == KindDiscount {
		//nolint:exhaustruct
		return Discount{ID: id, Kind: KindDiscount, Title: "Early booking"}
	}

	//nolint:exhaustruct
	return Supplement{ID: id, Kind: KindSupplement, Title: "Supplement"}
}

// Pricelist is one product with its full rule set.
type Pricelist struct {
	Product     Product      `json:"product"`
	Periods     *PeriodStore `json:"-"`
	Rules       *RuleStore   `json:"-"`
	Status      Status       `json:"status"`
	ActivatedAt *time.Time   `json:"activatedAt,omitempty"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
