package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProductStatusActive 商品可售状态
const ProductStatusActive = "active"

// StringList 以 JSON 数组存入关系库的字符串切片，用于尺码与图片列表。
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Product 商品，归属于单个卖家。
type Product struct {
	ID            string     `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	SellerID      string     `gorm:"type:varchar(36);not null;index" bson:"seller_id" json:"seller_id"`
	Name          string     `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	Description   string     `gorm:"type:text" bson:"description" json:"description"`
	Category      string     `gorm:"type:varchar(64);index" bson:"category" json:"category"`
	Price         float64    `gorm:"not null" bson:"price" json:"price"`
	OriginalPrice float64    `bson:"original_price" json:"original_price"`
	Sizes         StringList `gorm:"type:text" bson:"sizes" json:"sizes"`
	Images        StringList `gorm:"type:text" bson:"images" json:"images"`
	StockQuantity int        `gorm:"not null;default:0" bson:"stock_quantity" json:"stock_quantity"`
	Status        string     `gorm:"type:varchar(16);not null;default:active;index" bson:"status" json:"status"`
	CreatedAt     time.Time  `gorm:"not null" bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" bson:"updated_at" json:"updated_at"`

	// 列表查询时联卖家信息填充，不落库
	SellerInfo *ContactInfo `gorm:"-" bson:"-" json:"seller_info,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// NewProduct 创建商品；原价缺省时取售价
func NewProduct(sellerID, name, description, category string, price, originalPrice float64, sizes, images []string, stockQuantity int) *Product {
	if originalPrice <= 0 {
		originalPrice = price
	}
	now := time.Now()
	return &Product{
		ID:            uuid.NewString(),
		SellerID:      sellerID,
		Name:          name,
		Description:   description,
		Category:      category,
		Price:         price,
		OriginalPrice: originalPrice,
		Sizes:         sizes,
		Images:        images,
		StockQuantity: stockQuantity,
		Status:        ProductStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
