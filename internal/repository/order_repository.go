package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateShippingInfo(ctx context.Context, orderID int64, address string, code string) error
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error

	// バッチ対象の検索（status かつ orderTime < before）
	ListByStatusBefore(ctx context.Context, status model.OrderStatus, before time.Time) ([]model.Order, error)
	// バッチ昇格用の一括更新
	UpdateStatusByIDs(ctx context.Context, ids []int64, status model.OrderStatus) error
}
