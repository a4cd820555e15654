package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every repository
type Repository struct {
	db *gorm.DB

	User     UserRepository
	Session  SessionRepository
	Progress ProgressRepository
	Setting  SettingRepository
	Quote    QuoteRepository
}

// NewRepository builds the aggregate on db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:       db,
		User:     NewUserRepo(db),
		Session:  NewSessionRepo(db),
		Progress: NewProgressRepo(db),
		Setting:  NewSettingRepo(db),
		Quote:    NewQuoteRepo(db),
	}
}

// BeginTx starts a transaction. Returns a nil tx when the aggregate has no
// database attached (unit tests with mock repositories).
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx returns a Repository whose members run on tx. A nil tx returns r.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
