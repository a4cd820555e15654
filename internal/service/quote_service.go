package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hooplog/backend/internal/dto"
	"hooplog/backend/internal/repository"
)

// ErrNoQuotes the quotes table is empty
var ErrNoQuotes = errors.New("no quotes available")

// QuoteService motivational quotes
type QuoteService interface {
	Random(ctx context.Context) (*dto.QuoteResponse, error)
}

type quoteService struct {
	repo   *repository.Repository
	logger *zap.Logger
	intn   func(n int) int
}

// NewQuoteService creates a QuoteService
func NewQuoteService(repo *repository.Repository, logger *zap.Logger) QuoteService {
	return &quoteService{repo: repo, logger: logger, intn: rand.IntN}
}

func (s *quoteService) Random(ctx context.Context) (*dto.QuoteResponse, error) {
	total, err := s.repo.Quote.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count quotes", zap.Error(err))
		return nil, err
	}
	if total == 0 {
		return nil, ErrNoQuotes
	}

	quote, err := s.repo.Quote.GetByOffset(ctx, s.intn(int(total)))
	if err != nil {
		// rows deleted between count and read
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoQuotes
		}
		s.logger.Error("failed to load quote", zap.Error(err))
		return nil, err
	}

	return &dto.QuoteResponse{
		ID:     quote.QuoteID,
		Text:   quote.Text,
		Author: quote.Author,
	}, nil
}
