package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hooplog/backend/internal/model"
)

// SessionFilter optional catalog predicates. Zero values are ignored.
type SessionFilter struct {
	Title      string
	Type       model.SessionType
	Difficulty model.Difficulty
}

// SessionRepository catalog data access
type SessionRepository interface {
	ListPrebuilt(ctx context.Context, filter SessionFilter) ([]model.Session, error)
	GetByID(ctx context.Context, id uint) (*model.Session, error)
	Create(ctx context.Context, session *model.Session) error
	Update(ctx context.Context, session *model.Session) error
	// DeleteWithProgress removes every progress row referencing the session
	// and then the session itself, in one transaction.
	DeleteWithProgress(ctx context.Context, id uint) error
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo creates a SessionRepository
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) ListPrebuilt(ctx context.Context, filter SessionFilter) ([]model.Session, error) {
	var sessions []model.Session
	db := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("sessions.owner_id IS NULL")
	db = applySessionFilter(db, filter)

	if err := db.
		Order("sessions.created_at DESC").
		Order("sessions.session_id DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id uint) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) Update(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(session).Error
}

func (r *sessionRepo) DeleteWithProgress(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).
			Delete(&model.SessionProgress{}).Error; err != nil {
			return err
		}

		res := tx.Where("session_id = ?", id).Delete(&model.Session{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// applySessionFilter adds the filter predicates against the sessions table.
// Callers must have sessions in scope, directly or through a join.
func applySessionFilter(db *gorm.DB, filter SessionFilter) *gorm.DB {
	if title := strings.TrimSpace(filter.Title); title != "" {
		db = db.Where("LOWER(sessions.title) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(title))+"%")
	}
	if filter.Type != "" {
		db = db.Where("sessions.type = ?", filter.Type)
	}
	if filter.Difficulty != "" {
		db = db.Where("sessions.difficulty = ?", filter.Difficulty)
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
