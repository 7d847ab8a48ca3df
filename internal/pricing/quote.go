package pricing

import "time"

type QuoteRequest struct {
	Arrival   string `json:"arrival"`
	Nights    int    `json:"nights"`
	Adults    int    `json:"adults"`
	ChildAges []int  `json:"childAges"`
	BookedOn  string `json:"bookedOn"`
}

// Stay is a validated candidate booking.
type Stay struct {
	Arrival   time.Time
	Nights    int
	Adults    int
	ChildAges []int
	BookedOn  time.Time
}

// LeadDays is the number of whole days between booking and arrival.
func (s Stay) LeadDays() int {
	return int(s.Arrival.Sub(s.BookedOn).Hours() / 24) //nolint:gomnd
}

// Persons counts every guest, children included.
func (s Stay) Persons() int {
	return s.Adults + len(s.ChildAges)
}

type AppliedAdjustment struct {
	RuleID string `json:"ruleId"`
	Title  string `json:"title"`
	Amount string `json:"amount"`
}

// QuoteLine prices the stay under one bookable period.
type QuoteLine struct {
	PeriodID    string              `json:"periodId"`
	Basis       RateBasis           `json:"basis"`
	NightlyRate string              `json:"nightlyRate"`
	Base        string              `json:"base"`
	Supplements []AppliedAdjustment `json:"supplements"`
	Discounts   []AppliedAdjustment `json:"discounts"`
	Total       string              `json:"total"`
}

// Quote holds one line per bookable period. Overlapping periods produce
// several lines and choosing between them is up to the caller.
type Quote struct {
	ProductID int         `json:"productId"`
	Currency  string      `json:"currency"`
	Nights    int         `json:"nights"`
	Persons   int         `json:"persons"`
	Lines     []QuoteLine `json:"lines"`
}

func (r *QuoteRequest) validate(now time.Time) (Stay, error) {
	inputErr := NewInputError()

	//nolint:exhaustruct
	stay := Stay{
		Nights:    r.Nights,
		Adults:    r.Adults,
		ChildAges: r.ChildAges,
	}

	arrival, err := parseDate(r.Arrival)
	if err != nil {
		inputErr.AddError("arrival", "provide arrival as YYYY-MM-DD")
	}

	stay.Arrival = arrival

	stay.BookedOn = now.UTC().Truncate(24 * time.Hour) //nolint:gomnd

	if r.BookedOn != "" {
		bookedOn, err := parseDate(r.BookedOn)
		if err != nil {
			inputErr.AddError("bookedOn", "provide bookedOn as YYYY-MM-DD")
		}

		stay.BookedOn = bookedOn
	}

	if r.Nights < 1 {
		inputErr.AddError("nights", "provide at least one night")
	}

	if r.Adults < 0 {
		inputErr.AddError("adults", "adults must not be negative")
	}

	for _, age := range r.ChildAges {
		if age < 0 {
			inputErr.AddError("childAges", "child age must not be negative")

			break
		}
	}

	if stay.Persons() < 1 {
		inputErr.AddError("adults", "provide at least one guest")
	}

	if inputErr.FieldsCount() > 0 {
		return Stay{}, inputErr //nolint:exhaustruct
	}

	return stay, nil
}
