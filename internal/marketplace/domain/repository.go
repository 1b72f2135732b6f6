package domain

import "context"

// SellerRepository 卖家仓储接口，未命中返回 (nil, nil)。
type SellerRepository interface {
	Save(ctx context.Context, seller *Seller) error
	GetByID(ctx context.Context, id string) (*Seller, error)
	GetByEmail(ctx context.Context, email string) (*Seller, error)
}

// ProductRepository 商品仓储接口。
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	// ListActive 返回所有 status=active 的商品
	ListActive(ctx context.Context) ([]*Product, error)
	// ListBySeller 返回指定卖家的全部商品，不过滤状态
	ListBySeller(ctx context.Context, sellerID string) ([]*Product, error)
	Delete(ctx context.Context, id string) error
}
