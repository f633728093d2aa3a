package repository

import (
	"Followdesk/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type AccountRepo interface {
	WithTx(tx *gorm.DB) AccountRepo
	GetById(ctx context.Context, id uint64) (*model.Account, error)
	GetByIds(ctx context.Context, ids []uint64) ([]*model.Account, error)
	ListByEmployee(ctx context.Context, employeeID uint64) ([]*model.Account, error)
	CountByEmployee(ctx context.Context, employeeID uint64) (int64, error)
	CountGroupByEmployee(ctx context.Context) (map[uint64]int64, error)
	// ExistingUsernames 返回 usernames 中已被占用的部分，excludeID 非 0 时忽略该账号自身
	ExistingUsernames(ctx context.Context, usernames []string, excludeID uint64) ([]string, error)
	Create(ctx context.Context, acc *model.Account) error
	CreateBatch(ctx context.Context, accounts []*model.Account) error
	UpdateCredentials(ctx context.Context, id uint64, username, password string) error
	Delete(ctx context.Context, id uint64) error
	UnassignByEmployee(ctx context.Context, employeeID uint64) (int64, error)
	// ListUnassignedIds 未分配账号 id，升序
	ListUnassignedIds(ctx context.Context, limit int) ([]uint64, error)
	AssignIds(ctx context.Context, ids []uint64, employeeID uint64) (int64, error)
}

type accountRepoImpl struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepo {
	return &accountRepoImpl{db: db}
}

func (s *accountRepoImpl) WithTx(tx *gorm.DB) AccountRepo {
	return &accountRepoImpl{db: tx}
}

func (s *accountRepoImpl) GetById(ctx context.Context, id uint64) (*model.Account, error) {
	acc := &model.Account{}
	if err := s.db.WithContext(ctx).First(acc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return acc, nil
}

func (s *accountRepoImpl) GetByIds(ctx context.Context, ids []uint64) ([]*model.Account, error) {
	accounts := make([]*model.Account, 0)
	if len(ids) == 0 {
		return accounts, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *accountRepoImpl) ListByEmployee(ctx context.Context, employeeID uint64) ([]*model.Account, error) {
	accounts := make([]*model.Account, 0)
	err := s.db.WithContext(ctx).
		Where("assigned_employee_id = ?", employeeID).
		Order("id ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *accountRepoImpl) CountByEmployee(ctx context.Context, employeeID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("assigned_employee_id = ?", employeeID).
		Count(&count).Error
	return count, err
}

func (s *accountRepoImpl) CountGroupByEmployee(ctx context.Context) (map[uint64]int64, error) {
	var rows []struct {
		AssignedEmployeeID uint64
		Cnt                int64
	}
	err := s.db.WithContext(ctx).
		Model(&model.Account{}).
		Select("assigned_employee_id, COUNT(*) AS cnt").
		Where("assigned_employee_id IS NOT NULL").
		Group("assigned_employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint64]int64, len(rows))
	for _, r := range rows {
		counts[r.AssignedEmployeeID] = r.Cnt
	}
	return counts, nil
}

func (s *accountRepoImpl) ExistingUsernames(ctx context.Context, usernames []string, excludeID uint64) ([]string, error) {
	existing := make([]string, 0)
	if len(usernames) == 0 {
		return existing, nil
	}
	query := s.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("username IN ?", usernames)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Pluck("username", &existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *accountRepoImpl) Create(ctx context.Context, acc *model.Account) error {
	return s.db.WithContext(ctx).Create(acc).Error
}

func (s *accountRepoImpl) CreateBatch(ctx context.Context, accounts []*model.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&accounts).Error
}

func (s *accountRepoImpl) UpdateCredentials(ctx context.Context, id uint64, username, password string) error {
	return s.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"username": username,
			"password": password,
		}).Error
}

func (s *accountRepoImpl) Delete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Account{}, id).Error
}

func (s *accountRepoImpl) UnassignByEmployee(ctx context.Context, employeeID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("assigned_employee_id = ?", employeeID).
		Update("assigned_employee_id", nil)
	return result.RowsAffected, result.Error
}

func (s *accountRepoImpl) ListUnassignedIds(ctx context.Context, limit int) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := s.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("assigned_employee_id IS NULL").
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *accountRepoImpl) AssignIds(ctx context.Context, ids []uint64, employeeID uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	// 条件里带上 IS NULL，并发分配时已被别人抢走的行不会被覆盖
	result := s.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id IN ? AND assigned_employee_id IS NULL", ids).
		Update("assigned_employee_id", employeeID)
	return result.RowsAffected, result.Error
}
