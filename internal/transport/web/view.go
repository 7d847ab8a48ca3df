package web

import (
	"time"

	"github.com/avstrong/pricelist/internal/pricing"
)

type pricelistView struct {
	Product     pricing.Product       `json:"product"`
	Status      pricing.Status        `json:"status"`
	ActivatedAt *time.Time            `json:"activatedAt,omitempty"`
	Periods     []pricing.PricePeriod `json:"periods"`
	Supplements []pricing.Supplement  `json:"supplements"`
	Discounts   []pricing.Discount    `json:"discounts"`
	Issues      []string              `json:"issues,omitempty"`
}

func newPricelistView(p *pricing.Pricelist) pricelistView {
	view := pricelistView{
		Product:     p.Product,
		Status:      p.Status,
		ActivatedAt: p.ActivatedAt,
		Periods:     p.Periods.List(),
		Supplements: p.Rules.Supplements(),
		Discounts:   p.Rules.Discounts(),
		Issues:      nil,
	}

	if view.Supplements == nil {
		view.Supplements = []pricing.Supplement{}
	}

	if view.Discounts == nil {
		view.Discounts = []pricing.Discount{}
	}

	return view
}

func newPricelistViewWithIssues(p *pricing.Pricelist) pricelistView {
	view := newPricelistView(p)
	view.Issues = pricing.Validate(p.Product, view.Periods, p.Rules.List())

	return view
}

type fieldUpdate struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

type ruleInput struct {
	Kind string `json:"kind" binding:"required"`
}

type suggestInput struct {
	Instruction string `json:"instruction"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
	Issues []string            `json:"issues,omitempty"`
}

func errorBody(msg string) errorResponse {
	//nolint:exhaustruct
	return errorResponse{Error: msg}
}
