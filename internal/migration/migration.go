package migration

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/avstrong/pricelist/internal/logger"
	"github.com/avstrong/pricelist/internal/pricing"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var (
	ErrNonFiniteAmount = errors.New("amount is not a finite number")
	ErrDuplicateID     = errors.New("product id is used twice")
)

type storage interface {
	SavePricelist(ctx context.Context, pricelist *pricing.Pricelist) error
}

type idGenerator interface {
	GetID(ctx context.Context) (int, error)
	Reserve(id int)
}

type Seed struct {
	Pricelists []SeedPricelist `yaml:"pricelists"`
}

type SeedPricelist struct {
	Product     pricing.Product  `yaml:"product"`
	Periods     []SeedPeriod     `yaml:"periods"`
	Supplements []SeedSupplement `yaml:"supplements"`
	Discounts   []SeedDiscount   `yaml:"discounts"`
}

type SeedPeriod struct {
	DateFrom         string  `yaml:"dateFrom"`
	DateTo           string  `yaml:"dateTo"`
	Basis            string  `yaml:"basis"`
	NetPrice         float64 `yaml:"netPrice"`
	ProvisionPercent float64 `yaml:"provisionPercent"`
	ReleaseDays      int     `yaml:"releaseDays"`
	MinStay          int     `yaml:"minStay"`
	MaxStay          *int    `yaml:"maxStay"`
	MinAdults        *int    `yaml:"minAdults"`
	MaxAdults        *int    `yaml:"maxAdults"`
	MinChildren      *int    `yaml:"minChildren"`
	MaxChildren      *int    `yaml:"maxChildren"`
	ArrivalDays      []int   `yaml:"arrivalDays"`
}

type SeedConditions struct {
	ChildAgeFrom *int `yaml:"childAgeFrom"`
	ChildAgeTo   *int `yaml:"childAgeTo"`
	MinAdults    *int `yaml:"minAdults"`
	MinChildren  *int `yaml:"minChildren"`
}

type SeedSupplement struct {
	Title            string `yaml:"title"`
	SeedConditions   `yaml:",inline"`
	NetPrice         float64 `yaml:"netPrice"`
	ProvisionPercent float64 `yaml:"provisionPercent"`
}

type SeedDiscount struct {
	Title             string `yaml:"title"`
	SeedConditions    `yaml:",inline"`
	PercentValue      float64 `yaml:"percentValue"`
	DaysBeforeArrival int     `yaml:"daysBeforeArrival"`
}

func ptr(v int) *int {
	return &v
}

// Demo is used when no seed file is configured.
func Demo() Seed {
	return Seed{
		Pricelists: []SeedPricelist{
			{
				//nolint:exhaustruct
				Product: pricing.Product{
					Service:  "Hotel Aurora",
					Prefix:   "DZ",
					Type:     "Double room",
					View:     "Sea view",
					Name:     "Aurora double sea view, half board",
					Currency: "EUR",
				},
				Periods: []SeedPeriod{
					{
						DateFrom:         "2026-04-01",
						DateTo:           "2026-05-01",
						Basis:            string(pricing.PerPersonPerDay),
						NetPrice:         39,
						ProvisionPercent: 21,
						ReleaseDays:      3,
						MinStay:          2,
						MaxAdults:        ptr(3),
						MaxChildren:      ptr(2),
						ArrivalDays:      []int{1, 2, 3, 4, 5, 6, 7},
					},
				},
				Supplements: []SeedSupplement{
					{Title: "Extra bed child", SeedConditions: SeedConditions{ChildAgeFrom: ptr(2), ChildAgeTo: ptr(11)}, NetPrice: 12.5, ProvisionPercent: 20},
				},
				Discounts: []SeedDiscount{
					{Title: "Early booking", PercentValue: 10, DaysBeforeArrival: 60},
				},
			},
		},
	}
}

func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err) //nolint:exhaustruct
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed file %s: %w", path, err) //nolint:exhaustruct
	}

	if err := seed.Validate(); err != nil {
		return Seed{}, fmt.Errorf("check seed file %s: %w", path, err) //nolint:exhaustruct
	}

	return seed, nil
}

// Validate rejects amounts that have no JSON form and explicit product ids
// given to more than one pricelist.
func (s Seed) Validate() error {
	seen := make(map[int]struct{}, len(s.Pricelists))

	for i, sp := range s.Pricelists {
		if id := sp.Product.ID; id != 0 {
			if _, ok := seen[id]; ok {
				return fmt.Errorf("pricelist %d: %w: %d", i, ErrDuplicateID, id)
			}

			seen[id] = struct{}{}
		}

		if err := sp.checkAmounts(); err != nil {
			return fmt.Errorf("pricelist %d: %w", i, err)
		}
	}

	return nil
}

func (sp SeedPricelist) checkAmounts() error {
	for i, p := range sp.Periods {
		if err := checkFinite(map[string]float64{"netPrice": p.NetPrice, "provisionPercent": p.ProvisionPercent}); err != nil {
			return fmt.Errorf("period %d: %w", i, err)
		}
	}

	for i, s := range sp.Supplements {
		if err := checkFinite(map[string]float64{"netPrice": s.NetPrice, "provisionPercent": s.ProvisionPercent}); err != nil {
			return fmt.Errorf("supplement %d: %w", i, err)
		}
	}

	for i, d := range sp.Discounts {
		if err := checkFinite(map[string]float64{"percentValue": d.PercentValue}); err != nil {
			return fmt.Errorf("discount %d: %w", i, err)
		}
	}

	return nil
}

func checkFinite(amounts map[string]float64) error {
	for name, v := range amounts {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: %w", name, ErrNonFiniteAmount)
		}
	}

	return nil
}

// Up stores every seeded pricelist as a draft. Explicit product ids are
// reserved before any id is generated, so generated ids never collide with them.
func Up(ctx context.Context, l *logger.Logger, storage storage, ids idGenerator, seed Seed) error {
	if err := seed.Validate(); err != nil {
		return fmt.Errorf("check seed: %w", err)
	}

	for _, sp := range seed.Pricelists {
		if sp.Product.ID != 0 {
			ids.Reserve(sp.Product.ID)
		}
	}

	for _, sp := range seed.Pricelists {
		product := sp.Product

		if product.ID == 0 {
			id, err := ids.GetID(ctx)
			if err != nil {
				return fmt.Errorf("get id for seeded product %q: %w", product.Name, err)
			}

			product.ID = id
		}

		//nolint:exhaustruct
		pricelist := &pricing.Pricelist{
			Product: product,
			Periods: pricing.NewPeriodStore(sp.periods()...),
			Rules:   pricing.NewRuleStore(sp.rules()...),
			Status:  pricing.StatusDraft,
		}

		if err := storage.SavePricelist(ctx, pricelist); err != nil {
			return fmt.Errorf("save seeded pricelist %v: %w", product.ID, err)
		}

		l.LogInfo("Seeded pricelist %v with %d periods and %d rules", product.ID, pricelist.Periods.Len(), pricelist.Rules.Len())
	}

	return nil
}

func (sp SeedPricelist) periods() []pricing.PricePeriod {
	out := make([]pricing.PricePeriod, 0, len(sp.Periods))

	for _, p := range sp.Periods {
		basis := pricing.RateBasis(p.Basis)
		if basis == "" {
			basis = pricing.PerPersonPerDay
		}

		out = append(out, pricing.PricePeriod{
			ID:               uuid.NewString(),
			DateFrom:         p.DateFrom,
			DateTo:           p.DateTo,
			Basis:            basis,
			NetPrice:         p.NetPrice,
			ProvisionPercent: p.ProvisionPercent,
			ReleaseDays:      p.ReleaseDays,
			MinStay:          p.MinStay,
			MaxStay:          p.MaxStay,
			MinAdults:        p.MinAdults,
			MaxAdults:        p.MaxAdults,
			MinChildren:      p.MinChildren,
			MaxChildren:      p.MaxChildren,
			ArrivalDays:      p.ArrivalDays,
		})
	}

	return out
}

func (sp SeedPricelist) rules() []pricing.AdjustmentRule {
	out := make([]pricing.AdjustmentRule, 0, len(sp.Supplements)+len(sp.Discounts))

	for _, s := range sp.Supplements {
		out = append(out, pricing.Supplement{
			ID:               uuid.NewString(),
			Kind:             pricing.KindSupplement,
			Title:            s.Title,
			Conditions:       s.SeedConditions.conditions(),
			NetPrice:         s.NetPrice,
			ProvisionPercent: s.ProvisionPercent,
		})
	}

	for _, d := range sp.Discounts {
		out = append(out, pricing.Discount{
			ID:                uuid.NewString(),
			Kind:              pricing.KindDiscount,
			Title:             d.Title,
			Conditions:        d.SeedConditions.conditions(),
			PercentValue:      d.PercentValue,
			DaysBeforeArrival: d.DaysBeforeArrival,
		})
	}

	return out
}

func (c SeedConditions) conditions() pricing.Conditions {
	return pricing.Conditions{
		ChildAgeFrom: c.ChildAgeFrom,
		ChildAgeTo:   c.ChildAgeTo,
		MinAdults:    c.MinAdults,
		MinChildren:  c.MinChildren,
	}
}
