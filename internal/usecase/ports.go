package usecase

import (
	"time"

	"app/internal/domain/model"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

// ステータス変更メールを送る約束。送信の成否は呼び出し側を止めない。
type Notifier interface {
	SendStatusMail(to string, status model.OrderStatus) error
}
