package repository

import (
	"Followdesk/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type EmployeeRepo interface {
	WithTx(tx *gorm.DB) EmployeeRepo
	GetById(ctx context.Context, id uint64) (*model.Employee, error)
	GetByUserId(ctx context.Context, userID uint64) (*model.Employee, error)
	GetByIds(ctx context.Context, ids []uint64) ([]*model.Employee, error)
	// List 按 id 升序
	List(ctx context.Context) ([]*model.Employee, error)
	Create(ctx context.Context, emp *model.Employee) error
	SetQuota(ctx context.Context, id uint64, quota int) error
	SumQuota(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint64) error
}

type employeeRepoImpl struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) EmployeeRepo {
	return &employeeRepoImpl{db: db}
}

func (s *employeeRepoImpl) WithTx(tx *gorm.DB) EmployeeRepo {
	return &employeeRepoImpl{db: tx}
}

func (s *employeeRepoImpl) GetById(ctx context.Context, id uint64) (*model.Employee, error) {
	emp := &model.Employee{}
	if err := s.db.WithContext(ctx).First(emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return emp, nil
}

func (s *employeeRepoImpl) GetByUserId(ctx context.Context, userID uint64) (*model.Employee, error) {
	emp := &model.Employee{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return emp, nil
}

func (s *employeeRepoImpl) GetByIds(ctx context.Context, ids []uint64) ([]*model.Employee, error) {
	emps := make([]*model.Employee, 0)
	if len(ids) == 0 {
		return emps, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&emps).Error; err != nil {
		return nil, err
	}
	return emps, nil
}

func (s *employeeRepoImpl) List(ctx context.Context) ([]*model.Employee, error) {
	emps := make([]*model.Employee, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&emps).Error; err != nil {
		return nil, err
	}
	return emps, nil
}

func (s *employeeRepoImpl) Create(ctx context.Context, emp *model.Employee) error {
	return s.db.WithContext(ctx).Create(emp).Error
}

func (s *employeeRepoImpl) SetQuota(ctx context.Context, id uint64, quota int) error {
	return s.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("id = ?", id).
		Update("account_quota", quota).Error
}

func (s *employeeRepoImpl) SumQuota(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&model.Employee{}).
		Select("COALESCE(SUM(account_quota), 0)").
		Scan(&total).Error
	return total, err
}

func (s *employeeRepoImpl) Delete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Employee{}, id).Error
}
