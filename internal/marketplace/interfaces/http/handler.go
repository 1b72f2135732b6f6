package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authapp "github.com/wyfcoding/khamyang/internal/auth/application"
	authdomain "github.com/wyfcoding/khamyang/internal/auth/domain"
	authhttp "github.com/wyfcoding/khamyang/internal/auth/interfaces/http"
	"github.com/wyfcoding/khamyang/internal/marketplace/application"
	"github.com/wyfcoding/khamyang/pkg/errs"
	"github.com/wyfcoding/khamyang/pkg/logger"
)

// MarketplaceHandler 集市 HTTP 处理器。
// 保持原始客户端契约：业务失败也返回 200，由 success 字段区分。
type MarketplaceHandler struct {
	command      *application.MarketplaceCommandService
	query        *application.MarketplaceQueryService
	auth         *authapp.AuthCommandService
	secureCookie bool
}

func NewMarketplaceHandler(
	command *application.MarketplaceCommandService,
	query *application.MarketplaceQueryService,
	auth *authapp.AuthCommandService,
	secureCookie bool,
) *MarketplaceHandler {
	return &MarketplaceHandler{command: command, query: query, auth: auth, secureCookie: secureCookie}
}

// RegisterRoutes 注册集市相关路由
func (h *MarketplaceHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/seller/register", h.RegisterSeller)
	r.POST("/api/seller/login", h.LoginSeller)
	r.POST("/api/seller/logout", h.LogoutSeller)

	r.POST("/api/products/add", h.AddProduct)
	r.GET("/api/products", h.ListProducts)
	r.GET("/api/seller/products", h.ListSellerProducts)
	r.DELETE("/api/products/:id", h.DeleteProduct)
}

// 前端提交的字段名保持 camelCase
type sellerRegisterRequest struct {
	FullName string `json:"fullName"`
	ShopName string `json:"shopName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
}

type sellerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Sizes         []string `json:"sizes"`
	Images        []string `json:"images"`
	StockQuantity int      `json:"stockQuantity"`
}

// RegisterSeller 注册卖家账号
func (h *MarketplaceHandler) RegisterSeller(c *gin.Context) {
	var req sellerRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failMessage(c, "Please fill all fields")
		return
	}

	_, err := h.command.RegisterSeller(c.Request.Context(), application.RegisterSellerCommand{
		FullName:     req.FullName,
		BusinessName: req.ShopName,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		Whatsapp:     req.Whatsapp,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Seller registered successfully"})
}

// LoginSeller 卖家登录，成功后设置独立的卖家会话 Cookie
func (h *MarketplaceHandler) LoginSeller(c *gin.Context) {
	var req sellerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failMessage(c, "Invalid email or password")
		return
	}

	seller, err := h.command.LoginSeller(c.Request.Context(), application.SellerLoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	session, err := h.auth.StartSession(c.Request.Context(), authdomain.RoleSeller, seller.ID, seller.BusinessName)
	if err != nil {
		h.fail(c, err)
		return
	}

	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	c.SetCookie(authhttp.SellerSessionCookie, session.Token, maxAge, "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{"success": true, "seller": gin.H{
		"id":            seller.ID,
		"business_name": seller.BusinessName,
		"email":         seller.Email,
	}})
}

// LogoutSeller 注销卖家会话
func (h *MarketplaceHandler) LogoutSeller(c *gin.Context) {
	if token, err := c.Cookie(authhttp.SellerSessionCookie); err == nil {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			logger.Warn(c.Request.Context(), "failed to delete seller session", "error", err)
		}
	}
	c.SetCookie(authhttp.SellerSessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AddProduct 上架商品
func (h *MarketplaceHandler) AddProduct(c *gin.Context) {
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failMessage(c, "Missing required fields")
		return
	}

	_, err := h.command.AddProduct(c.Request.Context(), *authhttp.GetAuthContext(c), application.AddProductCommand{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Sizes:         req.Sizes,
		Images:        req.Images,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product added successfully"})
}

// ListProducts 返回所有在售商品及卖家联系方式
func (h *MarketplaceHandler) ListProducts(c *gin.Context) {
	products, err := h.query.ListActiveProducts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// ListSellerProducts 返回当前卖家的全部商品
func (h *MarketplaceHandler) ListSellerProducts(c *gin.Context) {
	products, err := h.query.ListSellerProducts(c.Request.Context(), *authhttp.GetAuthContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// DeleteProduct 删除商品，仅限归属卖家
func (h *MarketplaceHandler) DeleteProduct(c *gin.Context) {
	if err := h.command.DeleteProduct(c.Request.Context(), *authhttp.GetAuthContext(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}

func (h *MarketplaceHandler) fail(c *gin.Context, err error) {
	if errs.HTTPStatus(err) == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "marketplace request failed", "error", err)
	}
	h.failMessage(c, errs.MessageOf(err))
}

func (h *MarketplaceHandler) failMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": false, "message": message})
}
