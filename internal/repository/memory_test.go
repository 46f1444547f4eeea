package repository

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
)

func TestMemoryProductStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryProductStore()

	saved, err := store.Save(ctx, domain.Product{Name: "Widget", Price: decimal.NewFromInt(5), Quantity: 2})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	found, ok, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved, found)

	saved.Name = "Widget v2"
	_, err = store.Save(ctx, saved)
	require.NoError(t, err)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Widget v2", all[0].Name)

	require.NoError(t, store.DeleteByID(ctx, saved.ID))
	_, ok, err = store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryProductStore_FindAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryProductStore()

	var ids []string
	for i := 0; i < 5; i++ {
		p, err := store.Save(ctx, domain.Product{Name: "p" + strconv.Itoa(i)})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	require.NoError(t, store.DeleteByID(ctx, ids[2]))

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(all))
	for _, p := range all {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"p0", "p1", "p3", "p4"}, names)
}

func TestMemoryProductStore_EmptyAndUnknown(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryProductStore()

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	assert.NoError(t, store.DeleteByID(ctx, "missing"))
}

func TestMemoryProductStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryProductStore().Save(ctx, domain.Product{Name: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryProductStore_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryProductStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = store.Save(ctx, domain.Product{Name: "p" + strconv.Itoa(i)})
		}(i)
	}
	wg.Wait()

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
