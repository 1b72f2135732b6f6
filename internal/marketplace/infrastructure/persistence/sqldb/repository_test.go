package sqldb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/khamyang/internal/marketplace/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Seller{}, &domain.Product{}))
	return db
}

func TestProductRoundTripWithLists(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	ctx := context.Background()

	product := domain.NewProduct("seller-1", "Scarf", "Handwoven", "textiles", 450, 500,
		[]string{"M", "L"}, []string{"a.jpg", "b.jpg"}, 5)
	require.NoError(t, repo.Save(ctx, product))

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StringList{"M", "L"}, got.Sizes)
	assert.Equal(t, domain.StringList{"a.jpg", "b.jpg"}, got.Images)
	assert.Equal(t, 500.0, got.OriginalPrice)
}

func TestProductEmptyListsRoundTrip(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	ctx := context.Background()

	product := domain.NewProduct("seller-1", "Scarf", "", "textiles", 450, 0, nil, nil, 0)
	require.NoError(t, repo.Save(ctx, product))

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Sizes)
	assert.Empty(t, got.Images)
}

func TestListActiveExcludesInactive(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	ctx := context.Background()

	active := domain.NewProduct("seller-1", "Scarf", "", "textiles", 450, 0, nil, nil, 1)
	require.NoError(t, repo.Save(ctx, active))

	inactive := domain.NewProduct("seller-1", "Old stock", "", "textiles", 100, 0, nil, nil, 0)
	inactive.Status = "inactive"
	require.NoError(t, repo.Save(ctx, inactive))

	listed, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Scarf", listed[0].Name)

	// 卖家自己的列表不过滤状态
	mine, err := repo.ListBySeller(ctx, "seller-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestSellerGetByEmail(t *testing.T) {
	repo := NewSellerRepository(newTestDB(t))
	ctx := context.Background()

	seller := domain.NewSeller("Nang Seng", "Khamyang Crafts", "seng@example.com", "hash", "123", "123")
	require.NoError(t, repo.Save(ctx, seller))

	got, err := repo.GetByEmail(ctx, "seng@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, seller.ID, got.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
