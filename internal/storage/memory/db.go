package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/avstrong/pricelist/internal/logger"
	"github.com/avstrong/pricelist/internal/pricing"
)

type Config struct {
	L *logger.Logger
}

// DB keeps pricelists in process memory. Stored values are copied on the way
// in and out; the period and rule stores inside are immutable and shared.
type DB struct {
	mu         sync.Mutex
	l          *logger.Logger
	pricelists map[int]*pricing.Pricelist
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:          conf.L,
		pricelists: make(map[int]*pricing.Pricelist),
	}
}

func (db *DB) SavePricelist(_ context.Context, pricelist *pricing.Pricelist) error {
	if pricelist == nil {
		return ErrNilPricelist
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.pricelists[pricelist.Product.ID]; !exists {
		db.l.LogDebugf("Storing new pricelist %v", pricelist.Product.ID)
	}

	db.pricelists[pricelist.Product.ID] = copyPricelist(pricelist)

	return nil
}

func (db *DB) GetPricelist(_ context.Context, productID int) (*pricing.Pricelist, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	pricelist, exists := db.pricelists[productID]
	if !exists {
		return nil, fmt.Errorf("product %v: %w", productID, pricing.ErrPricelistNotFound)
	}

	return copyPricelist(pricelist), nil
}

func (db *DB) ListPricelists(_ context.Context) ([]*pricing.Pricelist, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]*pricing.Pricelist, 0, len(db.pricelists))
	for _, pricelist := range db.pricelists {
		result = append(result, copyPricelist(pricelist))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Product.ID < result[j].Product.ID
	})

	return result, nil
}

func copyPricelist(p *pricing.Pricelist) *pricing.Pricelist {
	out := *p

	if p.ActivatedAt != nil {
		at := *p.ActivatedAt
		out.ActivatedAt = &at
	}

	return &out
}
