package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"app/internal/domain/model"
	"app/internal/report"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// 1日1回の締め時刻（この時刻より前の ORDERED が対象）
const BatchHour = 14

// レポートの書き出し先の約束
type ReportWriter interface {
	Write(rows []report.Row, now time.Time) (string, error)
}

// OrderBatchUsecase は日次バッチ本体。状態は持たず、多重起動の抑止は
// スケジューラ側の契約（単一実行）に任せる。
type OrderBatchUsecase struct {
	tx     repo.TransactionManager
	writer ReportWriter
	clock  Clock
}

func NewOrderBatchUsecase(tx repo.TransactionManager, writer ReportWriter, clock Clock) *OrderBatchUsecase {
	return &OrderBatchUsecase{tx: tx, writer: writer, clock: clock}
}

// RunDailyBatch は当日14:00より前の ORDERED 注文をCSVに書き出し、
// 書き出しに成功した場合だけ一括で SHIPPING に昇格させる。
// 対象ゼロなら何もしない。書き出し失敗は昇格前に中断する。
func (u *OrderBatchUsecase) RunDailyBatch(ctx context.Context) error {
	runID := uuid.NewString()
	now := u.clock.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), BatchHour, 0, 0, 0, now.Location())

	slog.Info("order batch started", "run_id", runID, "cutoff", cutoff)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByStatusBefore(ctx, model.OrderStatusOrdered, cutoff)
		if err != nil {
			return fmt.Errorf("list target orders: %w", err)
		}
		if len(orders) == 0 {
			slog.Info("order batch: no target orders", "run_id", runID)
			return nil
		}

		exports := make([]report.OrderExport, 0, len(orders))
		ids := make([]int64, 0, len(orders))
		emails := make(map[int64]string)

		for _, o := range orders {
			email, ok := emails[o.CustomerID]
			if !ok {
				c, err := r.Customers().FindByID(ctx, o.CustomerID)
				if err != nil {
					return fmt.Errorf("load customer %d: %w", o.CustomerID, err)
				}
				email = c.Email
				emails[o.CustomerID] = email
			}

			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return fmt.Errorf("load items for order %d: %w", o.ID, err)
			}

			exportItems := make([]report.ItemExport, 0, len(items))
			for _, it := range items {
				exportItems = append(exportItems, report.ItemExport{
					ProductName: it.ProductName,
					Quantity:    it.Quantity,
					UnitPrice:   it.UnitPrice,
				})
			}

			exports = append(exports, report.OrderExport{
				ID:              o.ID,
				Email:           email,
				ShippingAddress: o.ShippingAddress,
				ShippingCode:    o.ShippingCode,
				OrderTime:       o.OrderTime,
				Items:           exportItems,
			})
			ids = append(ids, o.ID)
		}

		rows := report.BuildRows(exports)

		//書けなかったら昇格せずに中断。次回の定時実行でやり直す。
		path, err := u.writer.Write(rows, now)
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		if err := r.Orders().UpdateStatusByIDs(ctx, ids, model.OrderStatusShipping); err != nil {
			return fmt.Errorf("promote orders: %w", err)
		}

		slog.Info("order batch finished",
			"run_id", runID, "orders", len(ids), "rows", len(rows), "report", path)
		return nil
	})

	if err != nil {
		slog.Error("order batch failed", "run_id", runID, "error", err)
		return err
	}
	return nil
}
