package pricing

import "encoding/json"

// JSON has no representation for NaN or infinities. Records render such
// amounts as null so they stay readable and exportable; Validate flags them.

type amounts interface {
	amounts() map[string]*float64
}

func jsonAmount(f float64) *float64 {
	if !finite(f) {
		return nil
	}

	return &f
}

type plainPeriod PricePeriod

type periodJSON struct {
	plainPeriod
	NetPrice         *float64 `json:"netPrice"`
	ProvisionPercent *float64 `json:"provisionPercent"`
}

func (p PricePeriod) jsonDoc() periodJSON {
	return periodJSON{
		plainPeriod:      plainPeriod(p),
		NetPrice:         jsonAmount(p.NetPrice),
		ProvisionPercent: jsonAmount(p.ProvisionPercent),
	}
}

func (p PricePeriod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.jsonDoc()) //nolint:wrapcheck
}

func (p *PricePeriod) amounts() map[string]*float64 {
	return map[string]*float64{
		"netPrice":         &p.NetPrice,
		"provisionPercent": &p.ProvisionPercent,
	}
}

type plainSupplement Supplement

type supplementJSON struct {
	plainSupplement
	NetPrice         *float64 `json:"netPrice"`
	ProvisionPercent *float64 `json:"provisionPercent"`
}

func (s Supplement) jsonDoc() supplementJSON {
	return supplementJSON{
		plainSupplement:  plainSupplement(s),
		NetPrice:         jsonAmount(s.NetPrice),
		ProvisionPercent: jsonAmount(s.ProvisionPercent),
	}
}

func (s Supplement) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.jsonDoc()) //nolint:wrapcheck
}

func (s *Supplement) amounts() map[string]*float64 {
	return map[string]*float64{
		"netPrice":         &s.NetPrice,
		"provisionPercent": &s.ProvisionPercent,
	}
}

type plainDiscount Discount

type discountJSON struct {
	plainDiscount
	PercentValue *float64 `json:"percentValue"`
}

func (d Discount) MarshalJSON() ([]byte, error) {
	return json.Marshal(discountJSON{ //nolint:wrapcheck
		plainDiscount: plainDiscount(d),
		PercentValue:  jsonAmount(d.PercentValue),
	})
}

func (d *Discount) amounts() map[string]*float64 {
	return map[string]*float64{
		"percentValue": &d.PercentValue,
	}
}
