package pricing

import (
	"fmt"
	"strings"
)

// Summary describes a rule set in plain text, one line per period and rule.
func Summary(product Product, periods []PricePeriod, rules []AdjustmentRule) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Product %d: %s %s %s %s (%s), currency %s\n",
		product.ID, product.Service, product.Prefix, product.Type, product.View, product.Name, product.Currency)

	for i, p := range periods {
		maxStay := "unbounded"
		if p.MaxStay != nil {
			maxStay = fmt.Sprint(*p.MaxStay)
		}

		fmt.Fprintf(&b, "Period %d: %s..%s %s net %.2f provision %.2f%% gross %s, stay %d-%s nights, release %d days, arrival days %v\n",
			i+1, p.DateFrom, p.DateTo, p.Basis, p.NetPrice, p.ProvisionPercent,
			GrossPriceString(p.NetPrice, p.ProvisionPercent), p.MinStay, maxStay, p.ReleaseDays, p.ArrivalDays)
	}

	for i, r := range rules {
		switch v := r.(type) {
		case Supplement:
			fmt.Fprintf(&b, "Rule %d: supplement %q net %.2f provision %.2f%% gross %s\n",
				i+1, v.Title, v.NetPrice, v.ProvisionPercent, GrossPriceString(v.NetPrice, v.ProvisionPercent))
		case Discount:
			fmt.Fprintf(&b, "Rule %d: discount %q %.2f%% when booked %d days before arrival\n",
				i+1, v.Title, v.PercentValue, v.DaysBeforeArrival)
		}
	}

	return b.String()
}
