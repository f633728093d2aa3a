package repository

import (
	"Followdesk/internal/model"
	"context"

	"gorm.io/gorm"
)

type DownloadRepo interface {
	Create(ctx context.Context, rec *model.DownloadRecord) error
	ListAll(ctx context.Context) ([]*model.DownloadRecord, error)
	ListByEmployee(ctx context.Context, employeeID uint64) ([]*model.DownloadRecord, error)
	ListStartingFrom(ctx context.Context, startDate string) ([]*model.DownloadRecord, error)
	ListRecentByEmployee(ctx context.Context, employeeID uint64, limit int) ([]*model.DownloadRecord, error)
	SumByEmployee(ctx context.Context, employeeID uint64) (int64, error)
}

type downloadRepoImpl struct {
	db *gorm.DB
}

func NewDownloadRepo(db *gorm.DB) DownloadRepo {
	return &downloadRepoImpl{db: db}
}

func (s *downloadRepoImpl) Create(ctx context.Context, rec *model.DownloadRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *downloadRepoImpl) ListAll(ctx context.Context) ([]*model.DownloadRecord, error) {
	records := make([]*model.DownloadRecord, 0)
	if err := s.db.WithContext(ctx).Order("start_date ASC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *downloadRepoImpl) ListByEmployee(ctx context.Context, employeeID uint64) ([]*model.DownloadRecord, error) {
	records := make([]*model.DownloadRecord, 0)
	err := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *downloadRepoImpl) ListStartingFrom(ctx context.Context, startDate string) ([]*model.DownloadRecord, error) {
	records := make([]*model.DownloadRecord, 0)
	if err := s.db.WithContext(ctx).Where("start_date >= ?", startDate).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *downloadRepoImpl) ListRecentByEmployee(ctx context.Context, employeeID uint64, limit int) ([]*model.DownloadRecord, error) {
	records := make([]*model.DownloadRecord, 0)
	err := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *downloadRepoImpl) SumByEmployee(ctx context.Context, employeeID uint64) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&model.DownloadRecord{}).
		Select("COALESCE(SUM(count), 0)").
		Where("employee_id = ?", employeeID).
		Scan(&total).Error
	return total, err
}
