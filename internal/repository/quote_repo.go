package repository

import (
	"context"

	"gorm.io/gorm"

	"hooplog/backend/internal/model"
)

// QuoteRepository quotes data access
type QuoteRepository interface {
	Count(ctx context.Context) (int64, error)
	// GetByOffset returns the quote at position offset in id order
	GetByOffset(ctx context.Context, offset int) (*model.Quote, error)
}

type quoteRepo struct {
	db *gorm.DB
}

// NewQuoteRepo creates a QuoteRepository
func NewQuoteRepo(db *gorm.DB) QuoteRepository {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Quote{}).Count(&total).Error
	return total, err
}

func (r *quoteRepo) GetByOffset(ctx context.Context, offset int) (*model.Quote, error) {
	var quote model.Quote
	err := r.db.WithContext(ctx).
		Order("quote_id ASC").
		Offset(offset).
		Limit(1).
		Take(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
