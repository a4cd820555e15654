package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"hooplog/backend/internal/dto"
	"hooplog/backend/internal/model"
)

func setupTestProgressService() (ProgressService, *mockRepos) {
	repo, mocks := newMockRepos()
	return NewProgressService(repo, zap.NewNop()), mocks
}

// ── Subscribe ──

func TestProgressService_Subscribe_Idempotent(t *testing.T) {
	svc, mocks := setupTestProgressService()
	ctx := context.Background()
	s := mocks.session.seed("Drill", model.SystemOwner())

	first, err := svc.Subscribe(ctx, "user-a", s.SessionID)
	if err != nil {
		t.Fatalf("subscribe should succeed, got %v", err)
	}
	if first.Progress != 0 || first.Favorite {
		t.Errorf("new subscription should start at 0/false, got %d/%v", first.Progress, first.Favorite)
	}

	_, _ = svc.UpdateProgress(ctx, "user-a", s.SessionID, &dto.UpdateProgressRequest{Progress: intPtr(55)})

	second, err := svc.Subscribe(ctx, "user-a", s.SessionID)
	if err != nil {
		t.Fatalf("second subscribe should succeed, got %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same record %d, got %d", first.ID, second.ID)
	}
	if second.Progress != 55 {
		t.Errorf("subscribe must not reset progress, got %d", second.Progress)
	}
	if len(mocks.progress.rows) != 1 {
		t.Errorf("expected one row, got %d", len(mocks.progress.rows))
	}
}

func TestProgressService_Subscribe_SessionNotFound(t *testing.T) {
	svc, _ := setupTestProgressService()

	if _, err := svc.Subscribe(context.Background(), "user-a", 404); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

// ── Unsubscribe ──

func TestProgressService_Unsubscribe_NotIdempotent(t *testing.T) {
	svc, mocks := setupTestProgressService()
	ctx := context.Background()
	s := mocks.session.seed("Drill", model.SystemOwner())

	if err := svc.Unsubscribe(ctx, "user-a", s.SessionID); !errors.Is(err, ErrNotSubscribed) {
		t.Errorf("never subscribed: expected ErrNotSubscribed, got %v", err)
	}

	_, _ = svc.Subscribe(ctx, "user-a", s.SessionID)
	if err := svc.Unsubscribe(ctx, "user-a", s.SessionID); err != nil {
		t.Errorf("first unsubscribe should succeed, got %v", err)
	}
	if err := svc.Unsubscribe(ctx, "user-a", s.SessionID); !errors.Is(err, ErrNotSubscribed) {
		t.Errorf("second unsubscribe: expected ErrNotSubscribed, got %v", err)
	}
}

// ── UpdateProgress ──

func TestProgressService_UpdateProgress_CreatesThenMerges(t *testing.T) {
	svc, mocks := setupTestProgressService()
	ctx := context.Background()
	s := mocks.session.seed("Drill", model.SystemOwner())

	p, err := svc.UpdateProgress(ctx, "user-a", s.SessionID, &dto.UpdateProgressRequest{Progress: intPtr(40)})
	if err != nil {
		t.Fatalf("update should succeed, got %v", err)
	}
	if p.Progress != 40 || p.Favorite {
		t.Errorf("expected 40/false, got %d/%v", p.Progress, p.Favorite)
	}

	p, err = svc.UpdateProgress(ctx, "user-a", s.SessionID, &dto.UpdateProgressRequest{Favorite: boolPtr(true)})
	if err != nil {
		t.Fatalf("second update should succeed, got %v", err)
	}
	if p.Progress != 40 || !p.Favorite {
		t.Errorf("expected 40/true, got %d/%v", p.Progress, p.Favorite)
	}
}

func TestProgressService_UpdateProgress_OutOfRange(t *testing.T) {
	svc, mocks := setupTestProgressService()
	ctx := context.Background()
	s := mocks.session.seed("Drill", model.UserOwner("user-a"))
	_, _ = svc.Subscribe(ctx, "user-b", s.SessionID)

	for _, v := range []int{150, 101, -1} {
		_, err := svc.UpdateProgress(ctx, "user-b", s.SessionID, &dto.UpdateProgressRequest{Progress: intPtr(v)})
		if !errors.Is(err, ErrProgressOutOfRange) {
			t.Errorf("progress %d: expected ErrProgressOutOfRange, got %v", v, err)
		}
	}

	p, _ := mocks.progress.Get(ctx, "user-b", s.SessionID)
	if p.Progress != 0 {
		t.Errorf("rejected values must not be stored, got %d", p.Progress)
	}

	for _, v := range []int{0, 100} {
		if _, err := svc.UpdateProgress(ctx, "user-b", s.SessionID, &dto.UpdateProgressRequest{Progress: intPtr(v)}); err != nil {
			t.Errorf("progress %d should be accepted, got %v", v, err)
		}
	}
}

func TestProgressService_UpdateProgress_SessionNotFound(t *testing.T) {
	svc, mocks := setupTestProgressService()

	_, err := svc.UpdateProgress(context.Background(), "user-a", 77, &dto.UpdateProgressRequest{Progress: intPtr(10)})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if len(mocks.progress.rows) != 0 {
		t.Error("no row should be created for a missing session")
	}
}

// ── ToggleFavorite ──

func TestProgressService_ToggleFavorite(t *testing.T) {
	svc, mocks := setupTestProgressService()
	ctx := context.Background()
	s := mocks.session.seed("Drill", model.SystemOwner())

	p, err := svc.ToggleFavorite(ctx, "user-a", s.SessionID, nil)
	if err != nil {
		t.Fatalf("toggle should succeed, got %v", err)
	}
	if !p.Favorite || p.Progress != 0 {
		t.Errorf("first toggle should create favorite=true progress=0, got %v/%d", p.Favorite, p.Progress)
	}

	p, _ = svc.ToggleFavorite(ctx, "user-a", s.SessionID, nil)
	if p.Favorite {
		t.Error("second toggle without value should negate to false")
	}

	p, _ = svc.ToggleFavorite(ctx, "user-a", s.SessionID, boolPtr(false))
	if p.Favorite {
		t.Error("explicit false must win over negation")
	}

	p, _ = svc.ToggleFavorite(ctx, "user-a", s.SessionID, boolPtr(true))
	if !p.Favorite {
		t.Error("explicit true must win")
	}
}

func TestProgressService_ToggleFavorite_ExplicitFalseOnCreate(t *testing.T) {
	svc, mocks := setupTestProgressService()
	s := mocks.session.seed("Drill", model.SystemOwner())

	p, err := svc.ToggleFavorite(context.Background(), "user-a", s.SessionID, boolPtr(false))
	if err != nil {
		t.Fatalf("toggle should succeed, got %v", err)
	}
	if p.Favorite {
		t.Error("explicit false on a new row should be stored as false")
	}
}

// ── ResetAll ──

func TestProgressService_ResetAll(t *testing.T) {
	svc, mocks := setupTestProgressService()
	ctx := context.Background()
	s1 := mocks.session.seed("A", model.SystemOwner())
	s2 := mocks.session.seed("B", model.SystemOwner())

	_, _ = svc.Subscribe(ctx, "user-a", s1.SessionID)
	_, _ = svc.Subscribe(ctx, "user-a", s2.SessionID)
	_, _ = svc.Subscribe(ctx, "user-b", s1.SessionID)

	n, err := svc.ResetAll(ctx, "user-a")
	if err != nil || n != 2 {
		t.Fatalf("expected 2 rows deleted, got %d (%v)", n, err)
	}
	if _, err := mocks.progress.Get(ctx, "user-b", s1.SessionID); err != nil {
		t.Error("other users' rows must survive")
	}

	n, err = svc.ResetAll(ctx, "user-a")
	if err != nil || n != 0 {
		t.Errorf("reset with nothing left should succeed with 0, got %d (%v)", n, err)
	}
}
