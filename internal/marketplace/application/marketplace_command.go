package application

import (
	"context"
	"time"

	authdomain "github.com/wyfcoding/khamyang/internal/auth/domain"
	"github.com/wyfcoding/khamyang/internal/marketplace/domain"
	"github.com/wyfcoding/khamyang/pkg/errs"
	"github.com/wyfcoding/khamyang/pkg/metrics"
	"github.com/wyfcoding/khamyang/pkg/mq"
	"golang.org/x/crypto/bcrypt"
)

// RegisterSellerCommand 卖家注册命令
type RegisterSellerCommand struct {
	FullName     string
	BusinessName string
	Email        string
	Password     string
	Phone        string
	Whatsapp     string
}

// SellerLoginCommand 卖家登录命令
type SellerLoginCommand struct {
	Email    string
	Password string
}

// AddProductCommand 商品上架命令
type AddProductCommand struct {
	Name          string
	Description   string
	Category      string
	Price         float64
	OriginalPrice float64
	Sizes         []string
	Images        []string
	StockQuantity int
}

// MarketplaceCommandService 集市命令服务
type MarketplaceCommandService struct {
	sellers   domain.SellerRepository
	products  domain.ProductRepository
	publisher mq.Publisher
	metrics   *metrics.Metrics
}

// NewMarketplaceCommandService 创建集市命令服务实例
func NewMarketplaceCommandService(
	sellers domain.SellerRepository,
	products domain.ProductRepository,
	publisher mq.Publisher,
	m *metrics.Metrics,
) *MarketplaceCommandService {
	return &MarketplaceCommandService{
		sellers:   sellers,
		products:  products,
		publisher: publisher,
		metrics:   m,
	}
}

// RegisterSeller 注册卖家；邮箱重复时返回冲突错误
func (s *MarketplaceCommandService) RegisterSeller(ctx context.Context, cmd RegisterSellerCommand) (*domain.Seller, error) {
	if cmd.FullName == "" || cmd.BusinessName == "" || cmd.Email == "" || cmd.Password == "" {
		return nil, errs.Validation("Please fill all fields")
	}

	existing, err := s.sellers.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, errs.Store(err)
	}
	if existing != nil {
		return nil, errs.Conflict("Seller with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Store(err)
	}

	seller := domain.NewSeller(cmd.FullName, cmd.BusinessName, cmd.Email, string(hash), cmd.Phone, cmd.Whatsapp)
	if err := s.sellers.Save(ctx, seller); err != nil {
		return nil, errs.Store(err)
	}

	if s.publisher != nil {
		event := domain.SellerEvent{
			SellerID:     seller.ID,
			BusinessName: seller.BusinessName,
			Email:        seller.Email,
			Timestamp:    time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.EventSellerRegistered, seller.Email, event)
	}
	if s.metrics != nil {
		s.metrics.SellerRegistrationsTotal.Inc()
	}

	return seller, nil
}

// LoginSeller 校验卖家凭据；邮箱未知与密码错误不可区分。
// 会话创建由调用方通过认证上下文完成。
func (s *MarketplaceCommandService) LoginSeller(ctx context.Context, cmd SellerLoginCommand) (*domain.Seller, error) {
	seller, err := s.sellers.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, errs.Store(err)
	}
	if seller == nil {
		return nil, errs.Unauthorized("Invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte(cmd.Password)) != nil {
		return nil, errs.Unauthorized("Invalid email or password")
	}

	if s.publisher != nil {
		event := domain.SellerEvent{
			SellerID:     seller.ID,
			BusinessName: seller.BusinessName,
			Email:        seller.Email,
			Timestamp:    time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.EventSellerLoggedIn, seller.Email, event)
	}
	if s.metrics != nil {
		s.metrics.LoginsTotal.Inc()
	}

	return seller, nil
}

// AddProduct 上架商品，卖家身份取自认证上下文
func (s *MarketplaceCommandService) AddProduct(ctx context.Context, auth authdomain.AuthContext, cmd AddProductCommand) (*domain.Product, error) {
	if !auth.IsSeller() {
		return nil, errs.Unauthorized("Please login first")
	}
	if cmd.Name == "" || cmd.Category == "" || cmd.Price <= 0 {
		return nil, errs.Validation("Missing required fields")
	}

	product := domain.NewProduct(
		auth.SellerID,
		cmd.Name,
		cmd.Description,
		cmd.Category,
		cmd.Price,
		cmd.OriginalPrice,
		cmd.Sizes,
		cmd.Images,
		cmd.StockQuantity,
	)
	if err := s.products.Save(ctx, product); err != nil {
		return nil, errs.Store(err)
	}

	if s.publisher != nil {
		event := domain.ProductEvent{
			ProductID: product.ID,
			SellerID:  product.SellerID,
			Name:      product.Name,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.EventProductAdded, product.ID, event)
	}
	if s.metrics != nil {
		s.metrics.ProductsTotal.Inc()
	}

	return product, nil
}

// DeleteProduct 下架商品，仅限商品归属卖家
func (s *MarketplaceCommandService) DeleteProduct(ctx context.Context, auth authdomain.AuthContext, productID string) error {
	if !auth.IsSeller() {
		return errs.Unauthorized("Please login first")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return errs.Store(err)
	}
	if product == nil {
		return errs.NotFound("Product not found")
	}
	if product.SellerID != auth.SellerID {
		return errs.Unauthorized("Unauthorized")
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return errs.Store(err)
	}

	if s.publisher != nil {
		event := domain.ProductEvent{
			ProductID: product.ID,
			SellerID:  product.SellerID,
			Name:      product.Name,
			Timestamp: time.Now(),
		}
		_ = s.publisher.Publish(ctx, domain.EventProductDeleted, product.ID, event)
	}

	return nil
}
