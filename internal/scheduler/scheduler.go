package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"app/internal/usecase"

	"github.com/robfig/cron/v3"
)

// Scheduler は毎日14:00に注文バッチを起動する。
// SkipIfStillRunning で同時実行は1つに抑える。
type Scheduler struct {
	c *cron.Cron
}

func New(batch *usecase.OrderBatchUsecase) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	spec := fmt.Sprintf("0 %d * * *", usecase.BatchHour)
	if _, err := c.AddFunc(spec, func() {
		if err := batch.RunDailyBatch(context.Background()); err != nil {
			slog.Error("scheduled order batch failed", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("register batch schedule: %w", err)
	}

	return &Scheduler{c: c}, nil
}

func (s *Scheduler) Start() {
	slog.Info("batch scheduler started", "hour", usecase.BatchHour)
	s.c.Start()
}

func (s *Scheduler) Stop() {
	s.c.Stop()
}
