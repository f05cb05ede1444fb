package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/pkg/logger"
)

type fakeProducts map[uint]catalog.Product

func (f fakeProducts) Get(_ context.Context, id uint) (*catalog.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return &p, nil
}

type sessionStores map[string]*memStore

func (s sessionStores) factory(sessionID string) Storage {
	if _, ok := s[sessionID]; !ok {
		s[sessionID] = &memStore{}
	}
	return s[sessionID]
}

func newTestService() (*Service, sessionStores) {
	soldOut := product(3, 500)
	soldOut.InStock = false

	products := fakeProducts{
		1: product(1, 2599000),
		2: product(2, 899000),
		3: soldOut,
	}
	stores := sessionStores{}
	return NewService(products, stores.factory, logger.Discard()), stores
}

func TestServiceAddItemPersistsPerSession(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", 1)
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, c.TotalItems())

	assert.Equal(t, 2, svc.Get(ctx, "alice").TotalItems())
	assert.True(t, svc.Get(ctx, "bob").IsEmpty())
}

func TestServiceAddItemErrors(t *testing.T) {
	svc, stores := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", 99)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	_, err = svc.AddItem(ctx, "alice", 3)
	assert.ErrorIs(t, err, ErrOutOfStock)

	assert.Nil(t, stores["alice"], "rejected adds must not touch storage")
}

func TestServiceUpdateRemoveClear(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s", 2)
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, "s", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2599000+3*899000), c.TotalPrice())

	c, err = svc.RemoveItem(ctx, "s", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, svc.Clear(ctx, "s"))
	assert.True(t, svc.Get(ctx, "s").IsEmpty())
}
