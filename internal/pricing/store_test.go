package pricing_test

import (
	"math"
	"testing"

	"github.com/avstrong/pricelist/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodStoreAdd(t *testing.T) {
	store := pricing.NewPeriodStore()

	next, period := store.Add()

	require.NotSame(t, store, next)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 1, next.Len())
	assert.NotEmpty(t, period.ID)
	assert.Equal(t, pricing.PerPersonPerDay, period.Basis)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, period.ArrivalDays)
	assert.Nil(t, period.MaxStay)

	next, other := next.Add()
	assert.NotEqual(t, period.ID, other.ID)
	assert.Equal(t, []string{period.ID, other.ID}, periodIDs(next))
}

func TestPeriodStoreUpdate(t *testing.T) {
	store, period := pricing.NewPeriodStore().Add()
	store, second := store.Add()

	t.Run("replaces exactly one field", func(t *testing.T) {
		next := store.Update(period.ID, "netPrice", 45.5)
		require.NotSame(t, store, next)

		before, _ := store.Get(period.ID)
		after, ok := next.Get(period.ID)
		require.True(t, ok)

		before.NetPrice = 45.5
		assert.Equal(t, before, after)
		assert.Equal(t, []string{period.ID, second.ID}, periodIDs(next))
	})

	t.Run("nullable bound", func(t *testing.T) {
		next := store.Update(period.ID, "maxStay", 14)
		after, _ := next.Get(period.ID)
		require.NotNil(t, after.MaxStay)
		assert.Equal(t, 14, *after.MaxStay)

		cleared := next.Update(period.ID, "maxStay", nil)
		after, _ = cleared.Get(period.ID)
		assert.Nil(t, after.MaxStay)
	})

	noops := []struct {
		name  string
		id    string
		field string
		value any
	}{
		{name: "unknown id", id: "missing", field: "netPrice", value: 10.0},
		{name: "unknown field", id: period.ID, field: "colour", value: "red"},
		{name: "field name is case sensitive", id: period.ID, field: "NetPrice", value: 10.0},
		{name: "id is immutable", id: period.ID, field: "id", value: "other"},
		{name: "wrong type", id: period.ID, field: "netPrice", value: "cheap"},
		{name: "fraction into integer", id: period.ID, field: "releaseDays", value: 2.5},
		{name: "pointer path", id: period.ID, field: "arrivalDays/0", value: 3},
		{name: "empty field", id: period.ID, field: "", value: 1},
	}

	for _, tt := range noops {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, store, store.Update(tt.id, tt.field, tt.value))
		})
	}
}

func TestPeriodStoreUpdateNonFiniteRecord(t *testing.T) {
	seeded := pricing.PricePeriod{ //nolint:exhaustruct
		ID:               "inf",
		DateFrom:         "2026-04-01",
		DateTo:           "2026-04-30",
		Basis:            pricing.PerPersonPerDay,
		NetPrice:         math.Inf(1),
		ProvisionPercent: math.Inf(-1),
		ArrivalDays:      []int{1, 2, 3, 4, 5, 6, 7},
	}
	store := pricing.NewPeriodStore(seeded)

	t.Run("replacing the bad amount", func(t *testing.T) {
		next := store.Update("inf", "netPrice", 39)
		require.NotSame(t, store, next)

		after, ok := next.Get("inf")
		require.True(t, ok)
		assert.InDelta(t, 39, after.NetPrice, 0)
		assert.True(t, math.IsInf(after.ProvisionPercent, -1))
	})

	t.Run("other field keeps the bad amounts", func(t *testing.T) {
		next := store.Update("inf", "dateTo", "2026-05-31")
		require.NotSame(t, store, next)

		after, _ := next.Get("inf")
		seeded.DateTo = "2026-05-31"
		assert.Equal(t, seeded, after)
	})

	t.Run("non-finite value is rejected", func(t *testing.T) {
		assert.Same(t, store, store.Update("inf", "netPrice", math.NaN()))
	})
}

func TestPeriodStoreRemove(t *testing.T) {
	store, first := pricing.NewPeriodStore().Add()
	store, second := store.Add()

	next := store.Remove(first.ID)
	require.NotSame(t, store, next)
	assert.Equal(t, 1, next.Len())
	assert.Equal(t, []string{second.ID}, periodIDs(next))
	assert.Equal(t, 2, store.Len())

	assert.Same(t, next, next.Remove(first.ID))
	assert.Same(t, next, next.Remove("missing"))
}

func TestPeriodStoreToggleArrivalDay(t *testing.T) {
	store := pricing.NewPeriodStore(pricing.PricePeriod{ //nolint:exhaustruct
		ID:          "p1",
		Basis:       pricing.PerRoomPerDay,
		ArrivalDays: []int{1, 2, 4, 5, 6, 7},
	})

	added := store.ToggleArrivalDay("p1", 3)
	period, _ := added.Get("p1")
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, period.ArrivalDays)

	removed := added.ToggleArrivalDay("p1", 3)
	period, _ = removed.Get("p1")
	assert.Equal(t, []int{1, 2, 4, 5, 6, 7}, period.ArrivalDays)

	assert.Same(t, store, store.ToggleArrivalDay("p1", 0))
	assert.Same(t, store, store.ToggleArrivalDay("p1", 8))
	assert.Same(t, store, store.ToggleArrivalDay("missing", 3))

	period, _ = store.Get("p1")
	assert.Equal(t, []int{1, 2, 4, 5, 6, 7}, period.ArrivalDays)
}

func TestPeriodStoreIsolation(t *testing.T) {
	store := pricing.NewPeriodStore(pricing.PricePeriod{ID: "p1", ArrivalDays: []int{1, 2}}) //nolint:exhaustruct

	listed := store.List()
	listed[0].ArrivalDays[0] = 7
	listed[0].NetPrice = 99

	period, _ := store.Get("p1")
	assert.Equal(t, []int{1, 2}, period.ArrivalDays)
	assert.Zero(t, period.NetPrice)
}

func TestNilStoresAreEmpty(t *testing.T) {
	var periods *pricing.PeriodStore
	var rules *pricing.RuleStore

	assert.Equal(t, 0, periods.Len())
	assert.Empty(t, periods.List())
	assert.Equal(t, 0, rules.Len())
	assert.Empty(t, rules.List())
}

func TestRuleStoreAdd(t *testing.T) {
	store := pricing.NewRuleStore()

	store, supplement := store.Add(pricing.KindSupplement)
	store, discount := store.Add(pricing.KindDiscount)

	require.IsType(t, pricing.Supplement{}, supplement) //nolint:exhaustruct
	require.IsType(t, pricing.Discount{}, discount)     //nolint:exhaustruct
	assert.Equal(t, pricing.KindSupplement, supplement.RuleKind())
	assert.Equal(t, pricing.KindDiscount, discount.RuleKind())
	assert.NotEmpty(t, supplement.RuleTitle())
	assert.NotEmpty(t, discount.RuleTitle())

	assert.Equal(t, 2, store.Len())
	assert.Len(t, store.Supplements(), 1)
	assert.Len(t, store.Discounts(), 1)
}

func TestRuleStoreUpdate(t *testing.T) {
	store, supplement := pricing.NewRuleStore().Add(pricing.KindSupplement)
	store, discount := store.Add(pricing.KindDiscount)

	t.Run("supplement field", func(t *testing.T) {
		next := store.Update(supplement.RecordID(), "netPrice", 12.5)
		require.NotSame(t, store, next)

		got, _ := next.Get(supplement.RecordID())
		assert.InDelta(t, 12.5, got.(pricing.Supplement).NetPrice, 0)
	})

	t.Run("shared condition", func(t *testing.T) {
		next := store.Update(discount.RecordID(), "minAdults", 2)
		got, _ := next.Get(discount.RecordID())

		require.NotNil(t, got.Eligibility().MinAdults)
		assert.Equal(t, 2, *got.Eligibility().MinAdults)
	})

	t.Run("discount field", func(t *testing.T) {
		next := store.Update(discount.RecordID(), "percentValue", 10)
		got, _ := next.Get(discount.RecordID())

		assert.InDelta(t, 10, got.(pricing.Discount).PercentValue, 0)
	})

	noops := []struct {
		name  string
		id    string
		field string
		value any
	}{
		{name: "discount has no net price", id: discount.RecordID(), field: "netPrice", value: 10},
		{name: "supplement has no percent", id: supplement.RecordID(), field: "percentValue", value: 10},
		{name: "kind is immutable", id: supplement.RecordID(), field: "kind", value: "DISCOUNT"},
		{name: "unknown id", id: "missing", field: "title", value: "x"},
	}

	for _, tt := range noops {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, store, store.Update(tt.id, tt.field, tt.value))
		})
	}
}

func TestRuleStoreUpdateNonFiniteRecord(t *testing.T) {
	store := pricing.NewRuleStore(
		pricing.Supplement{ID: "s", Kind: pricing.KindSupplement, Title: "Sauna", NetPrice: math.Inf(1)}, //nolint:exhaustruct
		pricing.Discount{ID: "d", Kind: pricing.KindDiscount, Title: "Early", PercentValue: math.Inf(1)}, //nolint:exhaustruct
	)

	next := store.Update("s", "netPrice", 12.5)
	require.NotSame(t, store, next)

	got, _ := next.Get("s")
	assert.InDelta(t, 12.5, got.(pricing.Supplement).NetPrice, 0)

	next = store.Update("d", "title", "Early bird")
	require.NotSame(t, store, next)

	got, _ = next.Get("d")
	assert.Equal(t, "Early bird", got.RuleTitle())
	assert.True(t, math.IsInf(got.(pricing.Discount).PercentValue, 1))
}

func TestRuleStoreRemove(t *testing.T) {
	store, first := pricing.NewRuleStore().Add(pricing.KindSupplement)
	store, second := store.Add(pricing.KindDiscount)

	next := store.Remove(first.RecordID())
	assert.Equal(t, 1, next.Len())

	remaining, ok := next.Get(second.RecordID())
	require.True(t, ok)
	assert.Equal(t, second, remaining)

	assert.Same(t, next, next.Remove(first.RecordID()))
}

func TestParseRuleKind(t *testing.T) {
	for in, want := range map[string]pricing.RuleKind{
		"SUPPLEMENT": pricing.KindSupplement,
		"supplement": pricing.KindSupplement,
		"DISCOUNT":   pricing.KindDiscount,
		"discount":   pricing.KindDiscount,
	} {
		got, err := pricing.ParseRuleKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := pricing.ParseRuleKind("voucher")
	assert.ErrorIs(t, err, pricing.ErrUnknownRuleKind)
}

func periodIDs(s *pricing.PeriodStore) []string {
	var ids []string
	for _, p := range s.List() {
		ids = append(ids, p.ID)
	}

	return ids
}
