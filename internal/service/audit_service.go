package service

import (
	"Followdesk/internal/api/dto"
	"Followdesk/internal/model"
	"Followdesk/internal/pkg/clock"
	"Followdesk/internal/pkg/consts"
	"Followdesk/internal/pkg/logger"
	"Followdesk/internal/repository"
	"context"
	log "log/slog"
	"sync"
	"time"
)

const mirrorTimeout = 5 * time.Second

// AuditMirror 审计日志的附加投递目标，失败只记日志
type AuditMirror interface {
	Name() string
	Mirror(ctx context.Context, entry *model.AuditLog) error
}

type AuditService interface {
	// Record 写审计日志，任何失败都只记录不返回
	Record(ctx context.Context, userID uint64, action, details, ip string)
	List(ctx context.Context, limit int) ([]*dto.AuditLogDTO, error)
	// Wait 等待在途的镜像投递完成
	Wait()
}

type auditServiceImpl struct {
	auditRepo repository.AuditLogRepo
	userRepo  repository.UserRepo
	mirrors   []AuditMirror
	clock     clock.Clock
	wg        sync.WaitGroup
}

func NewAuditService(auditRepo repository.AuditLogRepo, userRepo repository.UserRepo, clk clock.Clock, mirrors ...AuditMirror) AuditService {
	return &auditServiceImpl{
		auditRepo: auditRepo,
		userRepo:  userRepo,
		mirrors:   mirrors,
		clock:     clk,
	}
}

func (s *auditServiceImpl) Record(ctx context.Context, userID uint64, action, details, ip string) {
	entry := &model.AuditLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ip,
		Timestamp: s.clock.Now(),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.ErrorContext(ctx, "audit log write failed", "action", action, "err", err)
		return
	}

	if len(s.mirrors) == 0 {
		return
	}
	// 请求结束后继续投递，只保留 trace_id
	mctx := context.WithValue(context.Background(), logger.TraceIDKey, ctx.Value(logger.TraceIDKey))
	for _, m := range s.mirrors {
		s.wg.Add(1)
		go func(m AuditMirror) {
			defer s.wg.Done()
			c, cancel := context.WithTimeout(mctx, mirrorTimeout)
			defer cancel()
			if err := m.Mirror(c, entry); err != nil {
				log.WarnContext(c, "audit mirror failed", "mirror", m.Name(), "err", err)
			}
		}(m)
	}
}

func (s *auditServiceImpl) Wait() {
	s.wg.Wait()
}

func (s *auditServiceImpl) List(ctx context.Context, limit int) ([]*dto.AuditLogDTO, error) {
	if limit <= 0 {
		limit = consts.AuditLogDefaultLimit
	}
	if limit > consts.AuditLogMaxLimit {
		limit = consts.AuditLogMaxLimit
	}

	logs, err := s.auditRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(logs))
	seen := make(map[uint64]struct{}, len(logs))
	for _, l := range logs {
		if _, ok := seen[l.UserID]; !ok {
			seen[l.UserID] = struct{}{}
			ids = append(ids, l.UserID)
		}
	}
	users, err := s.userRepo.GetUserByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	usernames := make(map[uint64]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	res := make([]*dto.AuditLogDTO, 0, len(logs))
	for _, l := range logs {
		name, ok := usernames[l.UserID]
		if !ok {
			name = consts.UnknownAuditUsername
		}
		res = append(res, &dto.AuditLogDTO{
			ID:        l.ID,
			Username:  name,
			Action:    l.Action,
			Details:   l.Details,
			IPAddress: l.IPAddress,
			Timestamp: l.Timestamp.Format(time.DateTime),
		})
	}
	return res, nil
}
