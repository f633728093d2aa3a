package job

import (
	"Followdesk/internal/pkg/clock"
	"Followdesk/internal/pkg/consts"
	"Followdesk/internal/pkg/logger"
	"Followdesk/internal/pkg/redis"
	"Followdesk/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const reportLockJobTimeout = 30 * time.Second

// ReportLockJob 定时锁定往日日报，只是提前执行，读写前的惰性锁定仍然生效
type ReportLockJob struct {
	sweeper service.LockSweeper
	clock   clock.Clock
}

func NewReportLockJob(sweeper service.LockSweeper, clk clock.Clock) *ReportLockJob {
	return &ReportLockJob{
		sweeper: sweeper,
		clock:   clk,
	}
}

func (s *ReportLockJob) Run() {
	traceID := "job-report-lock-" + uuid.NewString()
	ctx, cancel := context.WithTimeout(context.WithValue(context.Background(), logger.TraceIDKey, traceID), reportLockJobTimeout)
	defer cancel()

	// 多实例部署时只让一个实例执行
	if redis.Enabled() {
		token := uuid.NewString()
		ok, err := redis.TryLock(ctx, consts.ReportLockSweepLock, token, reportLockJobTimeout, 1)
		if err != nil {
			log.ErrorContext(ctx, "acquire report lock sweep lock error", "err", err)
			return
		}
		if !ok {
			log.InfoContext(ctx, "report lock sweep running on another instance")
			return
		}
		defer redis.UnLock(context.Background(), consts.ReportLockSweepLock, token)
	}

	today := s.clock.Today()
	n, err := s.sweeper.Sweep(ctx, today)
	if err != nil {
		log.ErrorContext(ctx, "report lock sweep error", "today", today, "err", err)
		return
	}
	log.InfoContext(ctx, "report lock sweep finished", "today", today, "locked", n)
}
