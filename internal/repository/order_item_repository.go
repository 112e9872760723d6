package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// 商品別の集計行（顧客の全注文をまたいだ合計）
type ProductSummaryRow struct {
	ProductID     int64  `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalQuantity int64  `json:"total_quantity"`
	TotalAmount   int64  `json:"total_amount"`
}

// 商品別の明細行（該当する注文明細ごとに1行）
type ProductDetailRow struct {
	OrderID         int64             `json:"order_id"`
	OrderTime       time.Time         `json:"order_time"`
	Status          model.OrderStatus `json:"status"`
	ShippingAddress string            `json:"shipping_address"`
	ShippingCode    string            `json:"shipping_code"`
	Quantity        int64             `json:"quantity"`
	PricePerItem    int64             `json:"price_per_item"`
	SubTotal        int64             `json:"sub_total"`
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error

	// 集計はDB側に寄せる（group by 商品id+名前）
	ProductSummaries(ctx context.Context, email string) ([]ProductSummaryRow, error)
	// 注文時間の降順
	ProductDetails(ctx context.Context, email string, productID int64) ([]ProductDetailRow, error)
}
