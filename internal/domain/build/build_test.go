package build

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techempire/storefront/internal/domain/cart"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/pkg/logger"
)

type memStore struct {
	blob    []byte
	saveErr error
}

func (m *memStore) Load(context.Context) (map[catalog.Category]Component, error) {
	if m.blob == nil {
		return nil, nil
	}
	var components map[catalog.Category]Component
	if err := json.Unmarshal(m.blob, &components); err != nil {
		return nil, err
	}
	return components, nil
}

func (m *memStore) Save(_ context.Context, components map[catalog.Category]Component) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := json.Marshal(components)
	if err != nil {
		return err
	}
	m.blob = data
	return nil
}

// recorder collects flushed products in order
type recorder struct {
	added []catalog.Product
}

func (r *recorder) AddItem(_ context.Context, p catalog.Product) error {
	r.added = append(r.added, p)
	return nil
}

var testSlots = []Slot{
	{Category: catalog.CategoryMotherboards, Name: "Материнская плата", Required: true},
	{Category: catalog.CategoryProcessors, Name: "Процессор", Required: true},
	{Category: catalog.CategoryMonitors, Name: "Монитор", Required: false},
}

func part(id uint, category catalog.Category, price int64) catalog.Product {
	return catalog.Product{ID: id, Name: category.Name(), Price: price, Category: category, InStock: true}
}

func TestCompletenessScenario(t *testing.T) {
	ctx := context.Background()
	b := New(testSlots, nil, logger.Discard())
	assert.False(t, b.IsComplete())

	require.NoError(t, b.Select(ctx, catalog.CategoryMotherboards, part(1, catalog.CategoryMotherboards, 3000)))
	assert.False(t, b.IsComplete())
	require.Len(t, b.Missing(), 1)
	assert.Equal(t, catalog.CategoryProcessors, b.Missing()[0].Category)

	require.NoError(t, b.Select(ctx, catalog.CategoryProcessors, part(2, catalog.CategoryProcessors, 5000)))
	assert.True(t, b.IsComplete(), "optional slots do not affect completeness")
	assert.Empty(t, b.Missing())
}

func TestSelectOverwritesSlot(t *testing.T) {
	ctx := context.Background()
	b := New(testSlots, nil, logger.Discard())

	require.NoError(t, b.Select(ctx, catalog.CategoryProcessors, part(1, catalog.CategoryProcessors, 5000)))
	require.NoError(t, b.Select(ctx, catalog.CategoryProcessors, part(2, catalog.CategoryProcessors, 7000)))

	c, ok := b.Selected(catalog.CategoryProcessors)
	require.True(t, ok)
	assert.Equal(t, uint(2), c.ID)
	assert.Equal(t, int64(7000), b.TotalPrice())
	assert.Equal(t, 1, b.Len())
}

func TestSelectUnknownCategoryIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	b := New(testSlots, store, logger.Discard())

	require.NoError(t, b.Select(ctx, catalog.CategoryMice, part(1, catalog.CategoryMice, 100)))

	assert.Equal(t, 0, b.Len())
	assert.Nil(t, store.blob)
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	b := New(testSlots, nil, logger.Discard())
	require.NoError(t, b.Select(ctx, catalog.CategoryMotherboards, part(1, catalog.CategoryMotherboards, 3000)))
	require.NoError(t, b.Select(ctx, catalog.CategoryMonitors, part(2, catalog.CategoryMonitors, 2000)))

	require.NoError(t, b.Remove(ctx, catalog.CategoryMonitors))
	require.NoError(t, b.Remove(ctx, catalog.CategoryMonitors))
	assert.Equal(t, int64(3000), b.TotalPrice())

	require.NoError(t, b.Clear(ctx))
	assert.Equal(t, int64(0), b.TotalPrice())
	assert.Equal(t, 0, b.Len())
}

func TestFlushScenario(t *testing.T) {
	ctx := context.Background()
	b := New(testSlots, nil, logger.Discard())
	require.NoError(t, b.Select(ctx, catalog.CategoryProcessors, part(2, catalog.CategoryProcessors, 5000)))
	require.NoError(t, b.Select(ctx, catalog.CategoryMotherboards, part(1, catalog.CategoryMotherboards, 3000)))

	c := cart.New(nil, logger.Discard())
	added, err := b.FlushToCart(ctx, c)
	require.NoError(t, err)

	assert.Equal(t, 2, added)
	assert.Equal(t, 2, c.Len())
	for _, e := range c.Entries() {
		assert.Equal(t, 1, e.Quantity)
	}
	assert.Equal(t, int64(8000), c.TotalPrice())
	assert.Equal(t, 2, b.Len(), "flush leaves the build intact")
}

func TestFlushUsesTableOrder(t *testing.T) {
	ctx := context.Background()
	b := New(testSlots, nil, logger.Discard())
	require.NoError(t, b.Select(ctx, catalog.CategoryMonitors, part(3, catalog.CategoryMonitors, 100)))
	require.NoError(t, b.Select(ctx, catalog.CategoryProcessors, part(2, catalog.CategoryProcessors, 100)))
	require.NoError(t, b.Select(ctx, catalog.CategoryMotherboards, part(1, catalog.CategoryMotherboards, 100)))

	r := &recorder{}
	_, err := b.FlushToCart(ctx, r)
	require.NoError(t, err)

	require.Len(t, r.added, 3)
	assert.Equal(t, []uint{1, 2, 3}, []uint{r.added[0].ID, r.added[1].ID, r.added[2].ID})
}

func TestFlushEmptyBuild(t *testing.T) {
	r := &recorder{}
	b := New(testSlots, nil, logger.Discard())

	added, err := b.FlushToCart(context.Background(), r)

	assert.ErrorIs(t, err, ErrEmptyBuild)
	assert.Zero(t, added)
	assert.Empty(t, r.added)
}

func TestLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	b := New(DefaultSlots, store, logger.Discard())
	require.NoError(t, b.Select(ctx, catalog.CategoryGraphics, part(4, catalog.CategoryGraphics, 6999000)))
	require.NoError(t, b.Select(ctx, catalog.CategoryCases, part(9, catalog.CategoryCases, 1299000)))

	reloaded := Load(ctx, DefaultSlots, store, logger.Discard())

	assert.Equal(t, b.Components(), reloaded.Components())
	assert.Equal(t, b.TotalPrice(), reloaded.TotalPrice())
}

func TestLoadFailures(t *testing.T) {
	corrupt := &memStore{blob: []byte("[1,2")}
	assert.Equal(t, 0, Load(context.Background(), testSlots, corrupt, logger.Discard()).Len())

	// A mice component is outside the three-slot table
	foreign := &memStore{blob: []byte(`{"mice": {"id": 1, "price": 100}, "processors": {"id": 2, "price": 200}}`)}
	b := Load(context.Background(), testSlots, foreign, logger.Discard())
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, int64(200), b.TotalPrice())
}

func TestLoadWithNilLogger(t *testing.T) {
	corrupt := &memStore{blob: []byte("[1,2")}

	var b *Build
	require.NotPanics(t, func() { b = Load(context.Background(), testSlots, corrupt, nil) })
	assert.Equal(t, 0, b.Len())
}

func TestSaveFailureReturnsErrPersist(t *testing.T) {
	b := New(testSlots, &memStore{saveErr: errors.New("redis down")}, logger.Discard())

	err := b.Select(context.Background(), catalog.CategoryProcessors, part(1, catalog.CategoryProcessors, 100))

	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, 1, b.Len())
}

func TestDefaultSlots(t *testing.T) {
	require.Len(t, DefaultSlots, 9)

	required := 0
	for _, s := range DefaultSlots {
		assert.True(t, s.Category.Valid())
		assert.Equal(t, s.Category.Name(), s.Name)
		if s.Required {
			required++
		}
	}
	assert.Equal(t, 6, required)
}

func TestView(t *testing.T) {
	ctx := context.Background()
	b := New(testSlots, nil, logger.Discard())
	require.NoError(t, b.Select(ctx, catalog.CategoryMotherboards, part(1, catalog.CategoryMotherboards, 1899000)))

	v := b.View()

	require.Len(t, v.Slots, 3)
	require.NotNil(t, v.Slots[0].Component)
	assert.Equal(t, uint(1), v.Slots[0].Component.ID)
	assert.Nil(t, v.Slots[1].Component)
	assert.False(t, v.IsComplete)
	assert.Equal(t, "18990.00 ₽", v.FormattedTotal)
	require.Len(t, v.Missing, 1)
}
