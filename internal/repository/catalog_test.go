package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/client"
)

func TestProductRepository_SeedAndList(t *testing.T) {
	ctx := context.Background()
	db, err := client.InitCatalogDB(":memory:")
	require.NoError(t, err)

	repo := NewProductRepository(db)
	require.NoError(t, repo.SeedDefaults(ctx))
	// seeding again must not duplicate the catalog
	require.NoError(t, repo.SeedDefaults(ctx))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 6)

	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, p.Price, 0.0)
	}
}

func TestWebhookEventRepository(t *testing.T) {
	ctx := context.Background()
	db, err := client.InitCatalogDB(":memory:")
	require.NoError(t, err)

	repo := NewWebhookEventRepository(db)

	seen, err := repo.Exists(ctx, "evt_1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, repo.MarkProcessed(ctx, "evt_1", "checkout.session.completed"))

	seen, err = repo.Exists(ctx, "evt_1")
	require.NoError(t, err)
	assert.True(t, seen)
}
