package cron

import (
	"Followdesk/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine        *cron.Cron
	reportLockJob *job.ReportLockJob
	lockSweepSpec string
}

// NewCronManager lockSweepSpec 为六段式表达式，为空时不注册
func NewCronManager(reportLockJob *job.ReportLockJob, lockSweepSpec string) *Manager {
	return &Manager{
		engine:        cron.New(cron.WithSeconds()),
		reportLockJob: reportLockJob,
		lockSweepSpec: lockSweepSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if s.lockSweepSpec == "" {
		log.Info("report lock sweep job disabled")
		return nil
	}
	if _, err := s.engine.AddJob(s.lockSweepSpec, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(s.reportLockJob)); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
