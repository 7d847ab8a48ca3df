package pricing

import (
	"encoding/json"
	"time"
)

// ExportFormat identifies the document schema for the downstream distribution system.
const ExportFormat = "MARS_COMPATIBLE"

type ExportDocument struct {
	Pricelist  ExportPricelist `json:"pricelist"`
	ExportedAt string          `json:"exportedAt"`
	Format     string          `json:"format"`
}

type ExportPricelist struct {
	ID          int                  `json:"id"`
	Product     ExportProduct        `json:"product"`
	BaseRates   []ExportedRate       `json:"baseRates"`
	Supplements []ExportedAdjustment `json:"supplements"`
}

type ExportProduct struct {
	Service string `json:"service"`
	Prefix  string `json:"prefix"`
	Type    string `json:"type"`
	View    string `json:"view"`
	Name    string `json:"name"`
}

type ExportedRate struct {
	PricePeriod
	GrossPrice string `json:"grossPrice"`
}

func (e ExportedRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct { //nolint:wrapcheck
		periodJSON
		GrossPrice string `json:"grossPrice"`
	}{periodJSON: e.PricePeriod.jsonDoc(), GrossPrice: e.GrossPrice})
}

// ExportedAdjustment is one supplement or discount as stored. Supplements
// carry a gross price; discounts have none.
type ExportedAdjustment struct {
	Rule       AdjustmentRule
	GrossPrice string
}

func (e ExportedAdjustment) MarshalJSON() ([]byte, error) {
	switch r := e.Rule.(type) {
	case Supplement:
		return json.Marshal(struct { //nolint:wrapcheck
			supplementJSON
			GrossPrice string `json:"grossPrice"`
		}{supplementJSON: r.jsonDoc(), GrossPrice: e.GrossPrice})
	default:
		return json.Marshal(e.Rule)
	}
}

// Serialize snapshots the rule set into an export document. Gross prices are
// computed here and never stored on the records. No validation is done.
func Serialize(product Product, periods []PricePeriod, rules []AdjustmentRule, now time.Time) ExportDocument {
	rates := make([]ExportedRate, 0, len(periods))
	for _, p := range periods {
		rates = append(rates, ExportedRate{
			PricePeriod: p.clone(),
			GrossPrice:  GrossPriceString(p.NetPrice, p.ProvisionPercent),
		})
	}

	adjustments := make([]ExportedAdjustment, 0, len(rules))
	for _, r := range rules {
		exported := ExportedAdjustment{Rule: cloneRule(r)} //nolint:exhaustruct
		if s, ok := r.(Supplement); ok {
			exported.GrossPrice = GrossPriceString(s.NetPrice, s.ProvisionPercent)
		}

		adjustments = append(adjustments, exported)
	}

	return ExportDocument{
		Pricelist: ExportPricelist{
			ID: product.ID,
			Product: ExportProduct{
				Service: product.Service,
				Prefix:  product.Prefix,
				Type:    product.Type,
				View:    product.View,
				Name:    product.Name,
			},
			BaseRates:   rates,
			Supplements: adjustments,
		},
		ExportedAt: now.UTC().Format(time.RFC3339),
		Format:     ExportFormat,
	}
}
