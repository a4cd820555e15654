package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hooplog/backend/internal/model"
	pkgerrors "hooplog/backend/pkg/errors"
)

// ProgressFilter catalog predicates plus the favorite flag of the progress row
type ProgressFilter struct {
	SessionFilter
	Favorite *bool
}

// ProgressRepository user_session_progress data access
type ProgressRepository interface {
	Get(ctx context.Context, userID string, sessionID uint) (*model.SessionProgress, error)
	// GetOrCreate returns the existing row for (userID, sessionID) or inserts one
	// carrying the progress and favorite values of defaults. created reports
	// whether this call inserted the row. A concurrent insert for the same pair
	// is absorbed by re-reading the winner's row.
	GetOrCreate(ctx context.Context, userID string, sessionID uint, defaults model.SessionProgress) (p *model.SessionProgress, created bool, err error)
	Update(ctx context.Context, progress *model.SessionProgress) error
	Delete(ctx context.Context, userID string, sessionID uint) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	ListByUser(ctx context.Context, userID string, filter ProgressFilter) ([]model.SessionProgress, error)
}

type progressRepo struct {
	db *gorm.DB
}

// NewProgressRepo creates a ProgressRepository
func NewProgressRepo(db *gorm.DB) ProgressRepository {
	return &progressRepo{db: db}
}

func (r *progressRepo) Get(ctx context.Context, userID string, sessionID uint) (*model.SessionProgress, error) {
	var p model.SessionProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *progressRepo) GetOrCreate(
	ctx context.Context,
	userID string,
	sessionID uint,
	defaults model.SessionProgress,
) (*model.SessionProgress, bool, error) {
	existing, err := r.Get(ctx, userID, sessionID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	p := &model.SessionProgress{
		UserID:    userID,
		SessionID: sessionID,
		Progress:  defaults.Progress,
		Favorite:  defaults.Favorite,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		if !pkgerrors.IsDuplicateKey(err) {
			return nil, false, err
		}
		existing, err := r.Get(ctx, userID, sessionID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return p, true, nil
}

func (r *progressRepo) Update(ctx context.Context, progress *model.SessionProgress) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(progress).Error
}

func (r *progressRepo) Delete(ctx context.Context, userID string, sessionID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Delete(&model.SessionProgress{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *progressRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.SessionProgress{})
	return res.RowsAffected, res.Error
}

func (r *progressRepo) ListByUser(ctx context.Context, userID string, filter ProgressFilter) ([]model.SessionProgress, error) {
	var rows []model.SessionProgress
	db := r.db.WithContext(ctx).
		Model(&model.SessionProgress{}).
		Joins("JOIN sessions ON sessions.session_id = user_session_progress.session_id").
		Where("user_session_progress.user_id = ?", userID)
	db = applySessionFilter(db, filter.SessionFilter)
	if filter.Favorite != nil {
		db = db.Where("user_session_progress.favorite = ?", *filter.Favorite)
	}

	if err := db.
		Preload("Session").
		Order("user_session_progress.created_at DESC").
		Order("user_session_progress.id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
