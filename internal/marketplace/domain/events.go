package domain

import "time"

// 集市领域事件类型
const (
	EventSellerRegistered = "seller.registered"
	EventSellerLoggedIn   = "seller.login"
	EventProductAdded     = "product.added"
	EventProductDeleted   = "product.deleted"
)

// SellerEvent 卖家账号事件
type SellerEvent struct {
	SellerID     string    `json:"seller_id"`
	BusinessName string    `json:"business_name"`
	Email        string    `json:"email"`
	Timestamp    time.Time `json:"timestamp"`
}

// ProductEvent 商品变更事件
type ProductEvent struct {
	ProductID string    `json:"product_id"`
	SellerID  string    `json:"seller_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}
