package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"hooplog/backend/internal/model"
)

func TestQuoteService_Random_Empty(t *testing.T) {
	repo, _ := newMockRepos()
	svc := NewQuoteService(repo, zap.NewNop())

	if _, err := svc.Random(context.Background()); !errors.Is(err, ErrNoQuotes) {
		t.Errorf("expected ErrNoQuotes, got %v", err)
	}
}

func TestQuoteService_Random_UsesOffset(t *testing.T) {
	repo, mocks := newMockRepos()
	mocks.quote.quotes = []model.Quote{
		{QuoteID: 1, Text: "first", Author: "a"},
		{QuoteID: 2, Text: "second", Author: "b"},
		{QuoteID: 3, Text: "third", Author: "c"},
	}

	var gotN int
	svc := &quoteService{repo: repo, logger: zap.NewNop(), intn: func(n int) int {
		gotN = n
		return 2
	}}

	q, err := svc.Random(context.Background())
	if err != nil {
		t.Fatalf("random should succeed, got %v", err)
	}
	if gotN != 3 {
		t.Errorf("expected intn(3), got intn(%d)", gotN)
	}
	if q.ID != 3 || q.Text != "third" {
		t.Errorf("unexpected quote %+v", q)
	}
}

func TestQuoteService_Random_InRange(t *testing.T) {
	repo, mocks := newMockRepos()
	mocks.quote.quotes = []model.Quote{{QuoteID: 1, Text: "only"}}
	svc := NewQuoteService(repo, zap.NewNop())

	for i := 0; i < 20; i++ {
		q, err := svc.Random(context.Background())
		if err != nil || q.ID != 1 {
			t.Fatalf("expected the only quote, got %+v (%v)", q, err)
		}
	}
}
