package pricing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avstrong/pricelist/internal/idgen/simple"
	"github.com/avstrong/pricelist/internal/logger"
	"github.com/avstrong/pricelist/internal/pricing"
	"github.com/avstrong/pricelist/internal/quote"
	"github.com/avstrong/pricelist/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC)

type recordingSink struct {
	saved chan string
}

func (s *recordingSink) Save(_ context.Context, filename string, v any) error {
	if _, ok := v.(pricing.ExportDocument); !ok {
		return errors.New("unexpected export value")
	}

	s.saved <- filename

	return nil
}

type stubAssistant struct {
	mu      sync.Mutex
	summary string
}

func (a *stubAssistant) Suggest(_ context.Context, instruction, summary string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.summary = summary

	return "Consider a child discount for: " + instruction, nil
}

func newManager(t *testing.T, opts ...pricing.Option) *pricing.Manager {
	t.Helper()

	l := logger.NewNop()
	opts = append([]pricing.Option{pricing.WithClock(func() time.Time { return now })}, opts...)

	return pricing.New(l, memory.New(memory.Config{L: l}), simple.New(), quote.New(), opts...)
}

func allowAll(ctx context.Context) context.Context {
	return pricing.NewContextWithCapabilities(ctx, pricing.Capabilities{Activate: true, Export: true})
}

// validPricelist creates a pricelist that passes validation.
func validPricelist(t *testing.T, ctx context.Context, m *pricing.Manager) (*pricing.Pricelist, string) {
	t.Helper()

	pricelist, err := m.CreatePricelist(ctx, &pricing.ProductInput{
		Service:  "Hotel Aurora",
		Prefix:   "DZ",
		Type:     "Double room",
		View:     "Sea view",
		Name:     "Aurora double",
		Currency: "EUR",
	})
	require.NoError(t, err)

	id := pricelist.Product.ID

	_, period, err := m.AddPeriod(ctx, id)
	require.NoError(t, err)

	for field, value := range map[string]any{
		"dateFrom":         "2026-04-01",
		"dateTo":           "2026-05-01",
		"netPrice":         39,
		"provisionPercent": 21,
	} {
		pricelist, err = m.UpdatePeriod(ctx, id, period.ID, field, value)
		require.NoError(t, err)
	}

	return pricelist, period.ID
}

func TestManagerCreatePricelist(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	t.Run("invalid input", func(t *testing.T) {
		_, err := m.CreatePricelist(ctx, &pricing.ProductInput{Currency: "euro"}) //nolint:exhaustruct

		inputErr := pricing.IsInputError(err)
		require.NotNil(t, inputErr)
		assert.Contains(t, inputErr.Fields(), "name")
		assert.Contains(t, inputErr.Fields(), "currency")
	})

	t.Run("created as draft", func(t *testing.T) {
		//nolint:exhaustruct
		pricelist, err := m.CreatePricelist(ctx, &pricing.ProductInput{Name: "Aurora", Currency: "EUR"})
		require.NoError(t, err)

		assert.Equal(t, 1, pricelist.Product.ID)
		assert.Equal(t, pricing.StatusDraft, pricelist.Status)
		assert.Equal(t, 0, pricelist.Periods.Len())

		stored, err := m.GetPricelist(ctx, pricelist.Product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Aurora", stored.Product.Name)

		all, err := m.ListPricelists(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("unknown pricelist", func(t *testing.T) {
		_, err := m.GetPricelist(ctx, 404)
		assert.ErrorIs(t, err, pricing.ErrPricelistNotFound)

		_, _, err = m.AddPeriod(ctx, 404)
		assert.ErrorIs(t, err, pricing.ErrPricelistNotFound)
	})
}

func TestManagerMutations(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	pricelist, periodID := validPricelist(t, ctx, m)
	id := pricelist.Product.ID

	period, ok := pricelist.Periods.Get(periodID)
	require.True(t, ok)
	assert.Equal(t, "2026-04-01", period.DateFrom)
	assert.InDelta(t, 39, period.NetPrice, 0)

	pricelist, err := m.ToggleArrivalDay(ctx, id, periodID, 3)
	require.NoError(t, err)
	period, _ = pricelist.Periods.Get(periodID)
	assert.Equal(t, []int{1, 2, 4, 5, 6, 7}, period.ArrivalDays)

	pricelist, rule, err := m.AddRule(ctx, id, pricing.KindDiscount)
	require.NoError(t, err)
	assert.Equal(t, 1, pricelist.Rules.Len())

	pricelist, err = m.UpdateRule(ctx, id, rule.RecordID(), "percentValue", 15)
	require.NoError(t, err)
	assert.InDelta(t, 15, pricelist.Rules.Discounts()[0].PercentValue, 0)

	pricelist, err = m.RemoveRule(ctx, id, rule.RecordID())
	require.NoError(t, err)
	assert.Equal(t, 0, pricelist.Rules.Len())

	pricelist, err = m.RemovePeriod(ctx, id, "missing")
	require.NoError(t, err)
	assert.Equal(t, 1, pricelist.Periods.Len())

	pricelist, err = m.RemovePeriod(ctx, id, periodID)
	require.NoError(t, err)
	assert.Equal(t, 0, pricelist.Periods.Len())

	_, _, err = m.AddRule(ctx, id, "VOUCHER")
	assert.ErrorIs(t, err, pricing.ErrUnknownRuleKind)
}

func TestManagerActivate(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	pricelist, periodID := validPricelist(t, ctx, m)
	id := pricelist.Product.ID

	t.Run("capability required", func(t *testing.T) {
		_, err := m.Activate(ctx, id)
		assert.ErrorIs(t, err, pricing.ErrForbidden)
	})

	t.Run("blocked by issues", func(t *testing.T) {
		_, err := m.UpdatePeriod(ctx, id, periodID, "netPrice", 0)
		require.NoError(t, err)

		issues, err := m.Validate(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"period 1: net price must be greater than 0"}, issues)

		_, err = m.Activate(allowAll(ctx), id)

		activationErr := pricing.IsActivationError(err)
		require.NotNil(t, activationErr)
		assert.Equal(t, issues, activationErr.Issues())
	})

	t.Run("activated and reset by a change", func(t *testing.T) {
		_, err := m.UpdatePeriod(ctx, id, periodID, "netPrice", 39)
		require.NoError(t, err)

		activated, err := m.Activate(allowAll(ctx), id)
		require.NoError(t, err)
		assert.Equal(t, pricing.StatusActive, activated.Status)
		require.NotNil(t, activated.ActivatedAt)
		assert.WithinDuration(t, now, *activated.ActivatedAt, 0)

		unchanged, err := m.UpdatePeriod(ctx, id, "missing", "netPrice", 50)
		require.NoError(t, err)
		assert.Equal(t, pricing.StatusActive, unchanged.Status)

		changed, err := m.UpdatePeriod(ctx, id, periodID, "netPrice", 50)
		require.NoError(t, err)
		assert.Equal(t, pricing.StatusDraft, changed.Status)
		assert.Nil(t, changed.ActivatedAt)
	})
}

func TestManagerExport(t *testing.T) {
	ctx := context.Background()
	sink := &recordingSink{saved: make(chan string, 1)}
	m := newManager(t, pricing.WithSink(sink))
	pricelist, _ := validPricelist(t, ctx, m)
	id := pricelist.Product.ID

	_, _, err := m.Export(ctx, id)
	require.ErrorIs(t, err, pricing.ErrForbidden)

	doc, filename, err := m.Export(allowAll(ctx), id)
	require.NoError(t, err)

	assert.Equal(t, "pricelist-1-20260101T093000Z.json", filename)
	assert.Equal(t, pricing.ExportFormat, doc.Format)
	assert.Equal(t, "2026-01-01T09:30:00Z", doc.ExportedAt)
	require.Len(t, doc.Pricelist.BaseRates, 1)
	assert.Equal(t, "47.19", doc.Pricelist.BaseRates[0].GrossPrice)

	select {
	case saved := <-sink.saved:
		assert.Equal(t, filename, saved)
	case <-time.After(time.Second):
		t.Fatal("export was not handed to the sink")
	}
}

func TestManagerExportInvalidRuleSet(t *testing.T) {
	ctx := allowAll(context.Background())
	m := newManager(t)

	//nolint:exhaustruct
	pricelist, err := m.CreatePricelist(ctx, &pricing.ProductInput{Name: "Empty", Currency: "EUR"})
	require.NoError(t, err)

	doc, _, err := m.Export(ctx, pricelist.Product.ID)
	require.NoError(t, err)
	assert.Empty(t, doc.Pricelist.BaseRates)
}

func TestManagerQuote(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	pricelist, periodID := validPricelist(t, ctx, m)
	id := pricelist.Product.ID

	_, err := m.Quote(ctx, id, &pricing.QuoteRequest{Arrival: "10.04.2026", Nights: 0}) //nolint:exhaustruct

	inputErr := pricing.IsInputError(err)
	require.NotNil(t, inputErr)
	assert.Contains(t, inputErr.Fields(), "arrival")
	assert.Contains(t, inputErr.Fields(), "nights")

	//nolint:exhaustruct
	q, err := m.Quote(ctx, id, &pricing.QuoteRequest{Arrival: "2026-04-10", Nights: 3, Adults: 2})
	require.NoError(t, err)

	assert.Equal(t, "EUR", q.Currency)
	require.Len(t, q.Lines, 1)
	assert.Equal(t, periodID, q.Lines[0].PeriodID)
	assert.Equal(t, "283.14", q.Lines[0].Base)
	assert.Equal(t, "283.14", q.Lines[0].Total)
}

func TestManagerSuggest(t *testing.T) {
	ctx := context.Background()

	t.Run("no assistant", func(t *testing.T) {
		m := newManager(t)

		_, err := m.Suggest(ctx, 1, "make it cheaper")
		assert.ErrorIs(t, err, pricing.ErrAssistantUnavailable)
	})

	t.Run("with assistant", func(t *testing.T) {
		assistant := &stubAssistant{} //nolint:exhaustruct
		m := newManager(t, pricing.WithAssistant(assistant))
		pricelist, _ := validPricelist(t, ctx, m)

		_, err := m.Suggest(ctx, pricelist.Product.ID, "  ")
		assert.NotNil(t, pricing.IsInputError(err))

		answer, err := m.Suggest(ctx, pricelist.Product.ID, "families")
		require.NoError(t, err)
		assert.Equal(t, "Consider a child discount for: families", answer)
		assert.Contains(t, assistant.summary, "Hotel Aurora")
		assert.Contains(t, assistant.summary, "gross 47.19")
	})
}
