package repository

import (
	"context"

	"app/internal/domain/model"
)

// 顧客の永続化（保存・取得）だけを約束。
type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	// メールで1件取得。いなければ ErrNotFound
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
	// メール存在チェック
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, c model.Customer) (int64, error)
}
