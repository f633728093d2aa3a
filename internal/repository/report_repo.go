package repository

import (
	"Followdesk/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepo interface {
	WithTx(tx *gorm.DB) ReportRepo
	// LockBefore 一次批量更新锁定 today 之前所有未锁定的日报
	LockBefore(ctx context.Context, today string) (int64, error)
	GetByKey(ctx context.Context, employeeID, accountID uint64, date string) (*model.DailyReport, error)
	// Upsert 按 (employee, account, date) 写入，冲突时只覆盖未锁定的行；返回 0 表示目标行已锁定
	Upsert(ctx context.Context, report *model.DailyReport) (int64, error)
	UpdateCount(ctx context.Context, id uint64, count int) (int64, error)
	ListByEmployeeDate(ctx context.Context, employeeID uint64, date string) ([]*model.DailyReport, error)
	ListByDate(ctx context.Context, date string) ([]*model.DailyReport, error)
	// ListByRange 日期闭区间，空串表示不限；按日期倒序
	ListByRange(ctx context.Context, start, end string) ([]*model.DailyReport, error)
}

type reportRepoImpl struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepo {
	return &reportRepoImpl{db: db}
}

func (s *reportRepoImpl) WithTx(tx *gorm.DB) ReportRepo {
	return &reportRepoImpl{db: tx}
}

func (s *reportRepoImpl) LockBefore(ctx context.Context, today string) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.DailyReport{}).
		Where("date < ? AND locked = ?", today, false).
		Update("locked", true)
	return result.RowsAffected, result.Error
}

func (s *reportRepoImpl) GetByKey(ctx context.Context, employeeID, accountID uint64, date string) (*model.DailyReport, error) {
	report := &model.DailyReport{}
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND instagram_account_id = ? AND date = ?", employeeID, accountID, date).
		First(report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return report, nil
}

func (s *reportRepoImpl) Upsert(ctx context.Context, report *model.DailyReport) (int64, error) {
	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}, {Name: "instagram_account_id"}, {Name: "date"}},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "daily_reports", Name: "locked"}, Value: false},
		}},
		DoUpdates: clause.AssignmentColumns([]string{"follower_count", "updated_at"}),
	}
	// mysql 的 ON DUPLICATE KEY UPDATE 不支持 WHERE，锁定的行原值写回，影响行数为 0
	if s.db.Dialector.Name() == "mysql" {
		onConflict.Where = clause.Where{}
		onConflict.DoUpdates = clause.Assignments(map[string]interface{}{
			"follower_count": gorm.Expr("IF(locked, follower_count, VALUES(follower_count))"),
			"updated_at":     gorm.Expr("IF(locked, updated_at, VALUES(updated_at))"),
		})
	}

	result := s.db.WithContext(ctx).Clauses(onConflict).Create(report)
	return result.RowsAffected, result.Error
}

func (s *reportRepoImpl) UpdateCount(ctx context.Context, id uint64, count int) (int64, error) {
	// locked = false 作为条件，锁定后的行不会被改写
	result := s.db.WithContext(ctx).
		Model(&model.DailyReport{}).
		Where("id = ? AND locked = ?", id, false).
		Update("follower_count", count)
	return result.RowsAffected, result.Error
}

func (s *reportRepoImpl) ListByEmployeeDate(ctx context.Context, employeeID uint64, date string) ([]*model.DailyReport, error) {
	reports := make([]*model.DailyReport, 0)
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date).
		Order("instagram_account_id ASC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *reportRepoImpl) ListByDate(ctx context.Context, date string) ([]*model.DailyReport, error) {
	reports := make([]*model.DailyReport, 0)
	if err := s.db.WithContext(ctx).Where("date = ?", date).Order("id ASC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *reportRepoImpl) ListByRange(ctx context.Context, start, end string) ([]*model.DailyReport, error) {
	reports := make([]*model.DailyReport, 0)
	query := s.db.WithContext(ctx).Model(&model.DailyReport{})
	if start != "" {
		query = query.Where("date >= ?", start)
	}
	if end != "" {
		query = query.Where("date <= ?", end)
	}
	if err := query.Order("date DESC").Order("id ASC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
