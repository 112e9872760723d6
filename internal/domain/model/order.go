package model

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusOrdered   OrderStatus = "ORDERED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusShipping  OrderStatus = "SHIPPING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// 配送先を修正できるのは ORDERED / PAID のみ
func (s OrderStatus) Editable() bool {
	return s == OrderStatusOrdered || s == OrderStatusPaid
}

// キャンセル（削除）できるのは ORDERED のみ
func (s OrderStatus) Cancelable() bool {
	return s == OrderStatusOrdered
}

// メールなどに出す表示名
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusOrdered:
		return "주문 완료"
	case OrderStatusPaid:
		return "결제 완료"
	case OrderStatusPreparing:
		return "배송 준비 중"
	case OrderStatusShipping:
		return "배송 중"
	case OrderStatusDelivered:
		return "배송 완료"
	case OrderStatusCanceled:
		return "주문 취소"
	}
	return string(s)
}

func ParseOrderStatus(v string) (OrderStatus, error) {
	switch OrderStatus(v) {
	case OrderStatusOrdered, OrderStatusPaid, OrderStatusPreparing,
		OrderStatusShipping, OrderStatusDelivered, OrderStatusCanceled:
		return OrderStatus(v), nil
	}
	return "", fmt.Errorf("unknown order status: %q", v)
}

type Order struct {
	ID              int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID      int64       `gorm:"not null;index" json:"customer_id"`
	OrderTime       time.Time   `gorm:"not null;index" json:"order_time"`
	TotalAmount     int64       `gorm:"not null" json:"total_amount"`
	Status          OrderStatus `gorm:"type:varchar(50);not null;index" json:"status"`
	ShippingAddress string      `gorm:"type:varchar(255);not null" json:"shipping_address"`
	ShippingCode    string      `gorm:"type:varchar(5);not null" json:"shipping_code"`
	CreatedAt       time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
