package service

import (
	"Followdesk/internal/repository"
	"context"
	log "log/slog"

	"gorm.io/gorm"
)

// LockSweeper 把 today 之前所有未锁定的日报一次性锁定，可重复执行
type LockSweeper interface {
	Sweep(ctx context.Context, today string) (int64, error)
	// SweepTx 在调用方事务内执行，与后续读写共用同一个 tx
	SweepTx(ctx context.Context, tx *gorm.DB, today string) (int64, error)
}

type lockSweeperImpl struct {
	reportRepo repository.ReportRepo
}

func NewLockSweeper(reportRepo repository.ReportRepo) LockSweeper {
	return &lockSweeperImpl{reportRepo: reportRepo}
}

func (s *lockSweeperImpl) Sweep(ctx context.Context, today string) (int64, error) {
	return sweep(ctx, s.reportRepo, today)
}

func (s *lockSweeperImpl) SweepTx(ctx context.Context, tx *gorm.DB, today string) (int64, error) {
	return sweep(ctx, s.reportRepo.WithTx(tx), today)
}

func sweep(ctx context.Context, repo repository.ReportRepo, today string) (int64, error) {
	n, err := repo.LockBefore(ctx, today)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.InfoContext(ctx, "past reports locked", "today", today, "count", n)
	}
	return n, nil
}
