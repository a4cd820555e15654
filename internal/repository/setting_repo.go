package repository

import (
	"context"

	"gorm.io/gorm"

	"hooplog/backend/internal/model"
)

// SettingRepository settings data access
type SettingRepository interface {
	Create(ctx context.Context, setting *model.Setting) error
	GetByUserID(ctx context.Context, userID string) (*model.Setting, error)
	Update(ctx context.Context, setting *model.Setting) error
}

type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepo creates a SettingRepository
func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) Create(ctx context.Context, setting *model.Setting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *settingRepo) GetByUserID(ctx context.Context, userID string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepo) Update(ctx context.Context, setting *model.Setting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}
