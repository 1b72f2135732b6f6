package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authdomain "github.com/wyfcoding/khamyang/internal/auth/domain"
	"github.com/wyfcoding/khamyang/internal/marketplace/domain"
	"github.com/wyfcoding/khamyang/pkg/errs"
)

type fakeSellerRepo struct {
	sellers map[string]*domain.Seller
}

func newFakeSellerRepo() *fakeSellerRepo {
	return &fakeSellerRepo{sellers: make(map[string]*domain.Seller)}
}

func (r *fakeSellerRepo) Save(ctx context.Context, seller *domain.Seller) error {
	s := *seller
	r.sellers[seller.ID] = &s
	return nil
}

func (r *fakeSellerRepo) GetByID(ctx context.Context, id string) (*domain.Seller, error) {
	if s, ok := r.sellers[id]; ok {
		out := *s
		return &out, nil
	}
	return nil, nil
}

func (r *fakeSellerRepo) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	for _, s := range r.sellers {
		if s.Email == email {
			out := *s
			return &out, nil
		}
	}
	return nil, nil
}

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*domain.Product)}
}

func (r *fakeProductRepo) Save(ctx context.Context, product *domain.Product) error {
	p := *product
	r.products[product.ID] = &p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if p, ok := r.products[id]; ok {
		out := *p
		return &out, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) ListActive(ctx context.Context) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.Status == domain.ProductStatusActive {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.SellerID == sellerID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func newTestServices() (*MarketplaceCommandService, *MarketplaceQueryService, *fakeSellerRepo, *fakeProductRepo) {
	sellers := newFakeSellerRepo()
	products := newFakeProductRepo()
	command := NewMarketplaceCommandService(sellers, products, nil, nil)
	query := NewMarketplaceQueryService(sellers, products)
	return command, query, sellers, products
}

func registerTestSeller(t *testing.T, command *MarketplaceCommandService) *domain.Seller {
	t.Helper()
	seller, err := command.RegisterSeller(context.Background(), RegisterSellerCommand{
		FullName:     "Nang Seng",
		BusinessName: "Khamyang Crafts",
		Email:        "seng@example.com",
		Password:     "craft123",
		Phone:        "8888888888",
		Whatsapp:     "8888888888",
	})
	require.NoError(t, err)
	return seller
}

func sellerCtx(seller *domain.Seller) authdomain.AuthContext {
	return authdomain.AuthContext{SellerID: seller.ID, SellerName: seller.BusinessName}
}

func TestRegisterSellerDuplicateEmail(t *testing.T) {
	command, _, _, _ := newTestServices()
	registerTestSeller(t, command)

	_, err := command.RegisterSeller(context.Background(), RegisterSellerCommand{
		FullName:     "Other",
		BusinessName: "Other Shop",
		Email:        "seng@example.com",
		Password:     "pw",
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CodeConflict))
	assert.Equal(t, "Seller with this email already exists", errs.MessageOf(err))
}

func TestLoginSeller(t *testing.T) {
	command, _, _, _ := newTestServices()
	seller := registerTestSeller(t, command)

	got, err := command.LoginSeller(context.Background(), SellerLoginCommand{
		Email: "seng@example.com", Password: "craft123",
	})
	require.NoError(t, err)
	assert.Equal(t, seller.ID, got.ID)
	assert.Equal(t, "Khamyang Crafts", got.BusinessName)

	// 未知邮箱与错误密码返回同一消息
	for _, cmd := range []SellerLoginCommand{
		{Email: "seng@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "craft123"},
	} {
		_, err := command.LoginSeller(context.Background(), cmd)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.CodeUnauthorized))
		assert.Equal(t, "Invalid email or password", errs.MessageOf(err))
	}
}

func TestAddProductStampsSellerID(t *testing.T) {
	command, _, _, products := newTestServices()
	seller := registerTestSeller(t, command)
	ctx := context.Background()

	product, err := command.AddProduct(ctx, sellerCtx(seller), AddProductCommand{
		Name:          "Handwoven scarf",
		Description:   "Traditional pattern",
		Category:      "textiles",
		Price:         450,
		Sizes:         []string{"M", "L"},
		Images:        []string{"scarf.jpg"},
		StockQuantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, seller.ID, product.SellerID)
	assert.Equal(t, domain.ProductStatusActive, product.Status)
	// 原价缺省时取售价
	assert.Equal(t, 450.0, product.OriginalPrice)

	stored, err := products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, seller.ID, stored.SellerID)
}

func TestAddProductRequiresSellerLogin(t *testing.T) {
	command, _, _, _ := newTestServices()

	_, err := command.AddProduct(context.Background(), authdomain.AuthContext{UserID: "u1"}, AddProductCommand{
		Name: "x", Category: "y", Price: 1,
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CodeUnauthorized))
	assert.Equal(t, "Please login first", errs.MessageOf(err))
}

func TestDeleteProductOwnerOnly(t *testing.T) {
	command, _, _, _ := newTestServices()
	seller := registerTestSeller(t, command)
	ctx := context.Background()

	other, err := command.RegisterSeller(ctx, RegisterSellerCommand{
		FullName: "Other", BusinessName: "Other Shop", Email: "other@example.com", Password: "pw",
	})
	require.NoError(t, err)

	product, err := command.AddProduct(ctx, sellerCtx(seller), AddProductCommand{
		Name: "Scarf", Category: "textiles", Price: 450,
	})
	require.NoError(t, err)

	err = command.DeleteProduct(ctx, sellerCtx(other), product.ID)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CodeUnauthorized))
	assert.Equal(t, "Unauthorized", errs.MessageOf(err))

	err = command.DeleteProduct(ctx, sellerCtx(seller), "missing")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CodeNotFound))
	assert.Equal(t, "Product not found", errs.MessageOf(err))

	require.NoError(t, command.DeleteProduct(ctx, sellerCtx(seller), product.ID))
}

func TestListActiveProductsEnrichesSellerInfo(t *testing.T) {
	command, query, _, products := newTestServices()
	seller := registerTestSeller(t, command)
	ctx := context.Background()

	_, err := command.AddProduct(ctx, sellerCtx(seller), AddProductCommand{
		Name: "Scarf", Category: "textiles", Price: 450,
	})
	require.NoError(t, err)

	// 非 active 商品不出现在公共列表
	inactive := domain.NewProduct(seller.ID, "Old stock", "", "textiles", 100, 0, nil, nil, 0)
	inactive.Status = "inactive"
	require.NoError(t, products.Save(ctx, inactive))

	listed, err := query.ListActiveProducts(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].SellerInfo)
	assert.Equal(t, "Khamyang Crafts", listed[0].SellerInfo.BusinessName)
	assert.Equal(t, "8888888888", listed[0].SellerInfo.Whatsapp)
}

func TestListSellerProductsRequiresLogin(t *testing.T) {
	command, query, _, _ := newTestServices()
	seller := registerTestSeller(t, command)
	ctx := context.Background()

	_, err := query.ListSellerProducts(ctx, authdomain.AuthContext{})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CodeUnauthorized))

	_, err = command.AddProduct(ctx, sellerCtx(seller), AddProductCommand{
		Name: "Scarf", Category: "textiles", Price: 450,
	})
	require.NoError(t, err)

	listed, err := query.ListSellerProducts(ctx, sellerCtx(seller))
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
