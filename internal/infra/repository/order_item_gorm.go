package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

func (r *OrderItemGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error
}

func (r *OrderItemGormRepository) ProductSummaries(ctx context.Context, email string) ([]repo.ProductSummaryRow, error) {
	var rows []repo.ProductSummaryRow

	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Select(`order_items.product_id,
			order_items.product_name,
			SUM(order_items.quantity) AS total_quantity,
			SUM(order_items.quantity * order_items.unit_price) AS total_amount`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("customers.email = ?", email).
		Group("order_items.product_id, order_items.product_name").
		Scan(&rows).Error
	if err != nil {
		return []repo.ProductSummaryRow{}, err
	}
	if rows == nil {
		rows = []repo.ProductSummaryRow{}
	}
	return rows, nil
}

func (r *OrderItemGormRepository) ProductDetails(ctx context.Context, email string, productID int64) ([]repo.ProductDetailRow, error) {
	var rows []repo.ProductDetailRow

	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Select(`orders.id AS order_id,
			orders.order_time,
			orders.status,
			orders.shipping_address,
			orders.shipping_code,
			order_items.quantity,
			order_items.unit_price AS price_per_item,
			order_items.quantity * order_items.unit_price AS sub_total`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("customers.email = ? AND order_items.product_id = ?", email, productID).
		Order("orders.order_time desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.ProductDetailRow{}, err
	}
	if rows == nil {
		rows = []repo.ProductDetailRow{}
	}
	return rows, nil
}
