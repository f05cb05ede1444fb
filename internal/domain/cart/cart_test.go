package cart

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/pkg/logger"
)

// memStore keeps the serialized blob like the Redis store does
type memStore struct {
	blob    []byte
	saves   int
	saveErr error
}

func (m *memStore) Load(context.Context) ([]Entry, error) {
	if m.blob == nil {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(m.blob, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (m *memStore) Save(_ context.Context, entries []Entry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	m.blob = data
	m.saves++
	return nil
}

func product(id uint, price int64) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Товар",
		Price:    price,
		Image:    "https://example.com/p.jpg",
		Category: catalog.CategoryMonitors,
		Specs:    "27 дюймов",
		InStock:  true,
	}
}

func sumEntries(c *Cart) int64 {
	var total int64
	for _, e := range c.Entries() {
		total += e.Price * int64(e.Quantity)
	}
	return total
}

func TestAddSameProductRepeatedly(t *testing.T) {
	ctx := context.Background()
	c := New(nil, logger.Discard())
	p := product(7, 1000)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.AddItem(ctx, p))
	}

	assert.Equal(t, 5, c.TotalItems())
	assert.Equal(t, 1, c.Len())
}

func TestAddTwiceScenario(t *testing.T) {
	ctx := context.Background()
	c := New(nil, logger.Discard())
	a := product(1, 1000)

	require.NoError(t, c.AddItem(ctx, a))
	require.NoError(t, c.AddItem(ctx, a))

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.Equal(t, int64(2000), c.TotalPrice())
}

func TestInsertionOrderPreserved(t *testing.T) {
	ctx := context.Background()
	c := New(nil, logger.Discard())

	for _, id := range []uint{3, 1, 2} {
		require.NoError(t, c.AddItem(ctx, product(id, 100)))
	}
	require.NoError(t, c.AddItem(ctx, product(1, 100)))

	var ids []uint
	for _, e := range c.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []uint{3, 1, 2}, ids)
}

func TestUpdateQuantityRemovesAtZero(t *testing.T) {
	ctx := context.Background()
	c := New(nil, logger.Discard())
	p := product(4, 500)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.AddItem(ctx, p))
	}

	require.NoError(t, c.UpdateQuantity(ctx, 4, -3))
	_, ok := c.Entry(4)
	assert.False(t, ok)
	assert.True(t, c.IsEmpty())

	// Second identical call is a no-op
	require.NoError(t, c.UpdateQuantity(ctx, 4, -3))
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantityBelowZeroRemoves(t *testing.T) {
	ctx := context.Background()
	c := New(nil, logger.Discard())
	require.NoError(t, c.AddItem(ctx, product(1, 100)))

	require.NoError(t, c.UpdateQuantity(ctx, 1, -10))
	assert.Equal(t, 0, c.Len())
}

func TestUpdateQuantityIncrements(t *testing.T) {
	ctx := context.Background()
	c := New(nil, logger.Discard())
	require.NoError(t, c.AddItem(ctx, product(1, 250)))

	require.NoError(t, c.UpdateQuantity(ctx, 1, 4))
	e, ok := c.Entry(1)
	require.True(t, ok)
	assert.Equal(t, 5, e.Quantity)
	assert.Equal(t, int64(1250), c.TotalPrice())
}

func TestUpdateQuantityCapsHugeDelta(t *testing.T) {
	ctx := context.Background()
	c := New(nil, logger.Discard())
	require.NoError(t, c.AddItem(ctx, product(1, 100)))

	require.NoError(t, c.UpdateQuantity(ctx, 1, math.MaxInt))
	e, ok := c.Entry(1)
	require.True(t, ok)
	assert.Equal(t, MaxQuantity, e.Quantity)
	assert.Equal(t, int64(100*MaxQuantity), c.TotalPrice())

	require.NoError(t, c.UpdateQuantity(ctx, 1, 1))
	e, _ = c.Entry(1)
	assert.Equal(t, MaxQuantity, e.Quantity)

	require.NoError(t, c.UpdateQuantity(ctx, 1, math.MinInt))
	assert.True(t, c.IsEmpty())
}

func TestAddItemStopsAtMaxQuantity(t *testing.T) {
	ctx := context.Background()
	c := New(nil, logger.Discard())
	require.NoError(t, c.AddItem(ctx, product(1, 100)))
	require.NoError(t, c.UpdateQuantity(ctx, 1, MaxQuantity-1))

	require.NoError(t, c.AddItem(ctx, product(1, 100)))

	assert.Equal(t, MaxQuantity, c.TotalItems())
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	c := New(store, logger.Discard())
	require.NoError(t, c.AddItem(ctx, product(1, 100)))
	saves := store.saves

	require.NoError(t, c.RemoveItem(ctx, 99))
	require.NoError(t, c.UpdateQuantity(ctx, 99, 5))

	assert.Equal(t, 1, c.TotalItems())
	assert.Equal(t, saves, store.saves, "no-ops must not write")
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	c := New(nil, logger.Discard())
	require.NoError(t, c.AddItem(ctx, product(1, 100)))
	require.NoError(t, c.AddItem(ctx, product(2, 200)))

	require.NoError(t, c.RemoveItem(ctx, 1))

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, uint(2), entries[0].ID)
}

func TestTotalPriceInvariantUnderRandomOps(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	c := New(&memStore{}, logger.Discard())
	prices := map[uint]int64{1: 1000, 2: 2500, 3: 99, 4: 123456}

	for step := 0; step < 500; step++ {
		id := uint(rng.Intn(5)) + 1 // id 5 never exists in the catalog
		switch rng.Intn(4) {
		case 0, 1:
			if price, ok := prices[id]; ok {
				require.NoError(t, c.AddItem(ctx, product(id, price)))
			}
		case 2:
			require.NoError(t, c.UpdateQuantity(ctx, id, rng.Intn(7)-4))
		case 3:
			require.NoError(t, c.RemoveItem(ctx, id))
		}

		require.Equal(t, sumEntries(c), c.TotalPrice())
		seen := map[uint]bool{}
		for _, e := range c.Entries() {
			require.False(t, seen[e.ID], "duplicate entry for %d", e.ID)
			require.Positive(t, e.Quantity)
			seen[e.ID] = true
		}
	}
}

func TestClearPersistsEmptySequence(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	c := New(store, logger.Discard())
	require.NoError(t, c.AddItem(ctx, product(1, 100)))

	require.NoError(t, c.Clear(ctx))

	assert.Equal(t, 0, c.TotalItems())
	assert.JSONEq(t, `[]`, string(store.blob))
}

func TestEveryMutationPersists(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	c := New(store, logger.Discard())

	require.NoError(t, c.AddItem(ctx, product(1, 100)))
	require.NoError(t, c.AddItem(ctx, product(2, 100)))
	require.NoError(t, c.UpdateQuantity(ctx, 1, 2))
	require.NoError(t, c.RemoveItem(ctx, 2))
	require.NoError(t, c.Clear(ctx))

	assert.Equal(t, 5, store.saves)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	c := New(store, logger.Discard())
	require.NoError(t, c.AddItem(ctx, product(2, 8990)))
	require.NoError(t, c.AddItem(ctx, product(1, 25990)))
	require.NoError(t, c.AddItem(ctx, product(2, 8990)))

	reloaded := Load(ctx, store, logger.Discard())

	assert.Equal(t, c.Entries(), reloaded.Entries())
	assert.Equal(t, c.TotalPrice(), reloaded.TotalPrice())
}

func TestPersistedLayout(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	c := New(store, logger.Discard())
	require.NoError(t, c.AddItem(ctx, product(1, 1000)))

	assert.JSONEq(t, `[{
		"id": 1,
		"name": "Товар",
		"price": 1000,
		"image": "https://example.com/p.jpg",
		"category": "monitors",
		"specs": "27 дюймов",
		"quantity": 1
	}]`, string(store.blob))
}

func TestLoadCorruptBlobYieldsEmptyCart(t *testing.T) {
	store := &memStore{blob: []byte("{not json")}

	c := Load(context.Background(), store, logger.Discard())

	assert.True(t, c.IsEmpty())
}

func TestLoadDropsInvalidEntries(t *testing.T) {
	store := &memStore{blob: []byte(`[
		{"id": 1, "price": 100, "quantity": 2},
		{"id": 1, "price": 100, "quantity": 5},
		{"id": 2, "price": 100, "quantity": 0}
	]`)}

	c := Load(context.Background(), store, logger.Discard())

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.TotalItems())
}

func TestLoadCapsOversizedQuantity(t *testing.T) {
	store := &memStore{blob: []byte(`[{"id": 1, "price": 100, "quantity": 5000}]`)}

	c := Load(context.Background(), store, logger.Discard())

	assert.Equal(t, MaxQuantity, c.TotalItems())
}

func TestLoadWithNilLogger(t *testing.T) {
	store := &memStore{blob: []byte("{not json")}

	var c *Cart
	require.NotPanics(t, func() { c = Load(context.Background(), store, nil) })
	assert.True(t, c.IsEmpty())
}

func TestSaveFailureIsReportedButStateMutated(t *testing.T) {
	store := &memStore{saveErr: errors.New("redis down")}
	c := New(store, logger.Discard())

	err := c.AddItem(context.Background(), product(1, 100))

	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, 1, c.TotalItems())
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	c := New(nil, logger.Discard())
	require.NoError(t, c.AddItem(ctx, product(1, 2599000)))
	require.NoError(t, c.AddItem(ctx, product(2, 100)))
	require.NoError(t, c.AddItem(ctx, product(2, 100)))

	s := c.Summary()

	assert.Equal(t, Totals{ItemCount: 2, TotalItems: 3, TotalPrice: 2599200}, s.Totals)
	assert.Equal(t, "25992.00 ₽", s.FormattedTotal)
	assert.Len(t, s.Items, 2)
}
