package application

import (
	"context"

	authdomain "github.com/wyfcoding/khamyang/internal/auth/domain"
	"github.com/wyfcoding/khamyang/internal/marketplace/domain"
	"github.com/wyfcoding/khamyang/pkg/errs"
)

// MarketplaceQueryService 集市查询服务
type MarketplaceQueryService struct {
	sellers  domain.SellerRepository
	products domain.ProductRepository
}

// NewMarketplaceQueryService 创建集市查询服务实例
func NewMarketplaceQueryService(sellers domain.SellerRepository, products domain.ProductRepository) *MarketplaceQueryService {
	return &MarketplaceQueryService{sellers: sellers, products: products}
}

// ListActiveProducts 返回所有在售商品并附带卖家联系方式。
// 同一卖家的联系信息只查询一次。
func (s *MarketplaceQueryService) ListActiveProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, errs.Store(err)
	}

	contacts := make(map[string]*domain.ContactInfo)
	for _, p := range products {
		contact, ok := contacts[p.SellerID]
		if !ok {
			seller, err := s.sellers.GetByID(ctx, p.SellerID)
			if err != nil {
				return nil, errs.Store(err)
			}
			if seller != nil {
				c := seller.Contact()
				contact = &c
			}
			contacts[p.SellerID] = contact
		}
		p.SellerInfo = contact
	}

	if products == nil {
		products = []*domain.Product{}
	}
	return products, nil
}

// ListSellerProducts 返回当前登录卖家的全部商品
func (s *MarketplaceQueryService) ListSellerProducts(ctx context.Context, auth authdomain.AuthContext) ([]*domain.Product, error) {
	if !auth.IsSeller() {
		return nil, errs.Unauthorized("Please login first")
	}

	products, err := s.products.ListBySeller(ctx, auth.SellerID)
	if err != nil {
		return nil, errs.Store(err)
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return products, nil
}

// GetSeller 按 ID 获取卖家
func (s *MarketplaceQueryService) GetSeller(ctx context.Context, id string) (*domain.Seller, error) {
	seller, err := s.sellers.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Store(err)
	}
	if seller == nil {
		return nil, errs.NotFound("Seller not found")
	}
	return seller, nil
}
