package pricing

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/avstrong/pricelist/internal/logger"
)

type idGenerator interface {
	GetID(ctx context.Context) (int, error)
}

type storageReader interface {
	GetPricelist(ctx context.Context, productID int) (*Pricelist, error)
	ListPricelists(ctx context.Context) ([]*Pricelist, error)
}

type storageWriter interface {
	SavePricelist(ctx context.Context, pricelist *Pricelist) error
}

type storage interface {
	storageReader
	storageWriter
}

type quoter interface {
	Quote(product Product, periods []PricePeriod, rules []AdjustmentRule, stay Stay) (*Quote, error)
}

// Sink receives finished export documents, e.g. to offer them as a download.
type Sink interface {
	Save(ctx context.Context, filename string, v any) error
}

// Assistant answers free-text questions about a rule set. Its answer has no structure.
type Assistant interface {
	Suggest(ctx context.Context, instruction, ruleSetSummary string) (string, error)
}

type Manager struct {
	l           *logger.Logger
	storage     storage
	idGenerator idGenerator
	quoter      quoter
	sink        Sink
	assistant   Assistant
	now         func() time.Time
}

type Option func(*Manager)

func WithSink(sink Sink) Option {
	return func(m *Manager) { m.sink = sink }
}

func WithAssistant(a Assistant) Option {
	return func(m *Manager) { m.assistant = a }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func New(l *logger.Logger, storage storage, idGenerator idGenerator, quoter quoter, opts ...Option) *Manager {
	//nolint:exhaustruct
	m := &Manager{
		l:           l,
		storage:     storage,
		idGenerator: idGenerator,
		quoter:      quoter,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

type ProductInput struct {
	Service  string `json:"service"`
	Prefix   string `json:"prefix"`
	Type     string `json:"type"`
	View     string `json:"view"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

func (in *ProductInput) validate() error {
	inputErr := NewInputError()

	if strings.TrimSpace(in.Name) == "" {
		inputErr.AddError("name", "provide product name")
	}

	if !currencyCode.MatchString(in.Currency) {
		inputErr.AddError("currency", "provide a three-letter ISO 4217 currency code")
	}

	if inputErr.FieldsCount() > 0 {
		return inputErr
	}

	return nil
}

func (m *Manager) CreatePricelist(ctx context.Context, input *ProductInput) (*Pricelist, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	id, err := m.idGenerator.GetID(ctx)
	if err != nil {
		return nil, ErrNextID
	}

	//nolint:exhaustruct
	pricelist := &Pricelist{
		Product: Product{
			ID:       id,
			Service:  input.Service,
			Prefix:   input.Prefix,
			Type:     input.Type,
			View:     input.View,
			Name:     input.Name,
			Currency: input.Currency,
		},
		Periods: NewPeriodStore(),
		Rules:   NewRuleStore(),
		Status:  StatusDraft,
	}

	if err := m.storage.SavePricelist(ctx, pricelist); err != nil {
		return nil, fmt.Errorf("save pricelist %v: %w", id, err)
	}

	m.l.LogInfo("Pricelist %v created for %q", id, input.Name)

	return pricelist, nil
}

func (m *Manager) GetPricelist(ctx context.Context, productID int) (*Pricelist, error) {
	pricelist, err := m.storage.GetPricelist(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get pricelist %v: %w", productID, err)
	}

	return pricelist, nil
}

func (m *Manager) ListPricelists(ctx context.Context) ([]*Pricelist, error) {
	pricelists, err := m.storage.ListPricelists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pricelists: %w", err)
	}

	return pricelists, nil
}

// mutate loads the pricelist, lets fn replace its stores, and saves it when
// fn reports a change. A changed pricelist falls back to draft.
func (m *Manager) mutate(ctx context.Context, productID int, fn func(p *Pricelist) bool) (*Pricelist, error) {
	pricelist, err := m.storage.GetPricelist(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get pricelist %v: %w", productID, err)
	}

	if !fn(pricelist) {
		return pricelist, nil
	}

	if pricelist.Status == StatusActive {
		m.l.LogInfo("Pricelist %v changed after activation, back to draft", productID)
	}

	pricelist.Status = StatusDraft
	pricelist.ActivatedAt = nil

	if err := m.storage.SavePricelist(ctx, pricelist); err != nil {
		return nil, fmt.Errorf("save pricelist %v: %w", productID, err)
	}

	return pricelist, nil
}

func (m *Manager) AddPeriod(ctx context.Context, productID int) (*Pricelist, PricePeriod, error) {
	var added PricePeriod

	pricelist, err := m.mutate(ctx, productID, func(p *Pricelist) bool {
		p.Periods, added = p.Periods.Add()

		return true
	})
	if err != nil {
		return nil, PricePeriod{}, err //nolint:exhaustruct
	}

	return pricelist, added, nil
}

func (m *Manager) UpdatePeriod(ctx context.Context, productID int, periodID, field string, value any) (*Pricelist, error) {
	return m.mutate(ctx, productID, func(p *Pricelist) bool {
		next := p.Periods.Update(periodID, field, value)
		if next == p.Periods {
			m.l.LogDebugf("Period update ignored: pricelist %v period %q field %q", productID, periodID, field)

			return false
		}

		p.Periods = next

		return true
	})
}

func (m *Manager) RemovePeriod(ctx context.Context, productID int, periodID string) (*Pricelist, error) {
	return m.mutate(ctx, productID, func(p *Pricelist) bool {
		next := p.Periods.Remove(periodID)
		changed := next != p.Periods
		p.Periods = next

		return changed
	})
}

func (m *Manager) ToggleArrivalDay(ctx context.Context, productID int, periodID string, day int) (*Pricelist, error) {
	return m.mutate(ctx, productID, func(p *Pricelist) bool {
		next := p.Periods.ToggleArrivalDay(periodID, day)
		changed := next != p.Periods
		p.Periods = next

		return changed
	})
}

func (m *Manager) AddRule(ctx context.Context, productID int, kind RuleKind) (*Pricelist, AdjustmentRule, error) {
	if kind != KindSupplement && kind != KindDiscount {
		return nil, nil, fmt.Errorf("add rule of kind %q: %w", kind, ErrUnknownRuleKind)
	}

	var added AdjustmentRule

	pricelist, err := m.mutate(ctx, productID, func(p *Pricelist) bool {
		p.Rules, added = p.Rules.Add(kind)

		return true
	})
	if err != nil {
		return nil, nil, err
	}

	return pricelist, added, nil
}

func (m *Manager) UpdateRule(ctx context.Context, productID int, ruleID, field string, value any) (*Pricelist, error) {
	return m.mutate(ctx, productID, func(p *Pricelist) bool {
		next := p.Rules.Update(ruleID, field, value)
		if next == p.Rules {
			m.l.LogDebugf("Rule update ignored: pricelist %v rule %q field %q", productID, ruleID, field)

			return false
		}

		p.Rules = next

		return true
	})
}

func (m *Manager) RemoveRule(ctx context.Context, productID int, ruleID string) (*Pricelist, error) {
	return m.mutate(ctx, productID, func(p *Pricelist) bool {
		next := p.Rules.Remove(ruleID)
		changed := next != p.Rules
		p.Rules = next

		return changed
	})
}

func (m *Manager) Validate(ctx context.Context, productID int) ([]string, error) {
	pricelist, err := m.GetPricelist(ctx, productID)
	if err != nil {
		return nil, err
	}

	return Validate(pricelist.Product, pricelist.Periods.List(), pricelist.Rules.List()), nil
}

func (m *Manager) Activate(ctx context.Context, productID int) (*Pricelist, error) {
	if caps, _ := CapabilitiesFromContext(ctx); !caps.Activate {
		return nil, fmt.Errorf("activate pricelist %v: %w", productID, ErrForbidden)
	}

	pricelist, err := m.GetPricelist(ctx, productID)
	if err != nil {
		return nil, err
	}

	if issues := Validate(pricelist.Product, pricelist.Periods.List(), pricelist.Rules.List()); len(issues) > 0 {
		return nil, newActivationError(issues)
	}

	activatedAt := m.now().UTC()
	pricelist.Status = StatusActive
	pricelist.ActivatedAt = &activatedAt

	if err := m.storage.SavePricelist(ctx, pricelist); err != nil {
		return nil, fmt.Errorf("save pricelist %v: %w", productID, err)
	}

	m.l.LogInfo("Pricelist %v activated", productID)

	return pricelist, nil
}

// Export serializes the current rule set and hands it to the sink without
// waiting for the result. Validation is the caller's business.
func (m *Manager) Export(ctx context.Context, productID int) (*ExportDocument, string, error) {
	if caps, _ := CapabilitiesFromContext(ctx); !caps.Export {
		return nil, "", fmt.Errorf("export pricelist %v: %w", productID, ErrForbidden)
	}

	pricelist, err := m.GetPricelist(ctx, productID)
	if err != nil {
		return nil, "", err
	}

	now := m.now()
	doc := Serialize(pricelist.Product, pricelist.Periods.List(), pricelist.Rules.List(), now)
	filename := ExportFilename(productID, now)

	if m.sink != nil {
		sinkCtx := context.WithoutCancel(ctx)

		go func() {
			if err := m.sink.Save(sinkCtx, filename, doc); err != nil {
				m.l.LogErrorf("Could not hand export %s to sink: %v", filename, err.Error())

				return
			}

			m.l.LogDebugf("Export %s handed to sink", filename)
		}()
	}

	m.l.LogInfo("Pricelist %v exported as %s", productID, filename)

	return &doc, filename, nil
}

func ExportFilename(productID int, at time.Time) string {
	return fmt.Sprintf("pricelist-%d-%s.json", productID, at.UTC().Format("20060102T150405Z"))
}

func (m *Manager) Quote(ctx context.Context, productID int, req *QuoteRequest) (*Quote, error) {
	stay, err := req.validate(m.now())
	if err != nil {
		return nil, err
	}

	pricelist, err := m.GetPricelist(ctx, productID)
	if err != nil {
		return nil, err
	}

	quote, err := m.quoter.Quote(pricelist.Product, pricelist.Periods.List(), pricelist.Rules.List(), stay)
	if err != nil {
		return nil, fmt.Errorf("quote pricelist %v: %w", productID, err)
	}

	return quote, nil
}

func (m *Manager) Suggest(ctx context.Context, productID int, instruction string) (string, error) {
	if m.assistant == nil {
		return "", ErrAssistantUnavailable
	}

	if strings.TrimSpace(instruction) == "" {
		inputErr := NewInputError()
		inputErr.AddError("instruction", "provide an instruction")

		return "", inputErr
	}

	pricelist, err := m.GetPricelist(ctx, productID)
	if err != nil {
		return "", err
	}

	summary := Summary(pricelist.Product, pricelist.Periods.List(), pricelist.Rules.List())

	answer, err := m.assistant.Suggest(ctx, instruction, summary)
	if err != nil {
		return "", fmt.Errorf("ask assistant about pricelist %v: %w", productID, err)
	}

	return answer, nil
}
