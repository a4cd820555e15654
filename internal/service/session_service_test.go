package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"hooplog/backend/internal/dto"
	"hooplog/backend/internal/model"
	"hooplog/backend/pkg/storage"
)

func setupTestSessionService() (SessionService, ProgressService, *mockRepos, *mockUploader) {
	repo, mocks := newMockRepos()
	uploader := &mockUploader{}
	logger := zap.NewNop()
	return NewSessionService(repo, uploader, logger), NewProgressService(repo, logger), mocks, uploader
}

func validCreateRequest() *dto.CreateSessionRequest {
	return &dto.CreateSessionRequest{
		Title:      "Catch and Shoot",
		Type:       string(model.SessionTypeShooting),
		Difficulty: string(model.DifficultyEasy),
		Duration:   30,
		Intensity:  6,
	}
}

// ── List ──

func TestSessionService_ListPrebuilt(t *testing.T) {
	svc, _, mocks, _ := setupTestSessionService()
	older := mocks.session.seed("Form Shooting", model.SystemOwner())
	newer := mocks.session.seed("Spot Up", model.SystemOwner())
	mocks.session.seed("Mine", model.UserOwner("user-a"))

	got, err := svc.ListPrebuilt(context.Background(), &dto.SessionListQuery{})
	if err != nil {
		t.Fatalf("list should succeed, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 prebuilt sessions, got %d", len(got))
	}
	if got[0].ID != newer.SessionID || got[1].ID != older.SessionID {
		t.Errorf("expected newest first, got %d, %d", got[0].ID, got[1].ID)
	}
	for _, s := range got {
		if s.IsCustom || s.OwnerID != nil {
			t.Errorf("prebuilt session %d reported as custom", s.ID)
		}
	}
}

func TestSessionService_ListForUser_Favorites(t *testing.T) {
	svc, progress, mocks, _ := setupTestSessionService()
	ctx := context.Background()
	s1 := mocks.session.seed("One", model.SystemOwner())
	s2 := mocks.session.seed("Two", model.SystemOwner())
	s3 := mocks.session.seed("Three", model.SystemOwner())

	_, _ = progress.ToggleFavorite(ctx, "user-a", s1.SessionID, nil)
	_, _ = progress.Subscribe(ctx, "user-a", s2.SessionID)
	_, _ = progress.ToggleFavorite(ctx, "user-a", s3.SessionID, nil)
	_, _ = progress.ToggleFavorite(ctx, "user-b", s2.SessionID, nil)

	got, err := svc.ListForUser(ctx, "user-a", &dto.MyListQuery{Favorite: boolPtr(true)})
	if err != nil {
		t.Fatalf("list should succeed, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(got))
	}
	if got[0].Session.ID != s3.SessionID || got[1].Session.ID != s1.SessionID {
		t.Errorf("expected [%d %d] newest first, got [%d %d]",
			s3.SessionID, s1.SessionID, got[0].Session.ID, got[1].Session.ID)
	}
	for _, row := range got {
		if !row.Progress.Favorite || row.Progress.UserID != "user-a" {
			t.Errorf("unexpected row %+v", row.Progress)
		}
	}
}

// ── Create ──

func TestSessionService_Create(t *testing.T) {
	svc, _, mocks, uploader := setupTestSessionService()

	resp, err := svc.Create(context.Background(), "user-a", validCreateRequest(), testFile("court.png"))
	if err != nil {
		t.Fatalf("create should succeed, got %v", err)
	}
	if !resp.IsCustom || resp.OwnerID == nil || *resp.OwnerID != "user-a" {
		t.Errorf("created session should be owned by user-a, got %v", resp.OwnerID)
	}
	if resp.ImageURL == nil || *resp.ImageURL != "https://cdn.test/session/court.png" {
		t.Errorf("unexpected image url %v", resp.ImageURL)
	}
	if len(uploader.uploads) != 1 || uploader.uploads[0] != storage.CategorySession {
		t.Errorf("expected one session upload, got %v", uploader.uploads)
	}
	if _, ok := mocks.session.sessions[resp.ID]; !ok {
		t.Error("session should be persisted")
	}
}

func TestSessionService_Create_InvalidFields(t *testing.T) {
	svc, _, mocks, _ := setupTestSessionService()

	tests := []struct {
		name   string
		mutate func(r *dto.CreateSessionRequest)
	}{
		{"blank title", func(r *dto.CreateSessionRequest) { r.Title = "   " }},
		{"unknown type", func(r *dto.CreateSessionRequest) { r.Type = "Dunking" }},
		{"unknown difficulty", func(r *dto.CreateSessionRequest) { r.Difficulty = "Extreme" }},
		{"zero duration", func(r *dto.CreateSessionRequest) { r.Duration = 0 }},
		{"negative duration", func(r *dto.CreateSessionRequest) { r.Duration = -5 }},
		{"intensity too low", func(r *dto.CreateSessionRequest) { r.Intensity = 0 }},
		{"intensity too high", func(r *dto.CreateSessionRequest) { r.Intensity = 11 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), "user-a", req, nil)
			if !errors.Is(err, ErrInvalidSessionFields) {
				t.Errorf("expected ErrInvalidSessionFields, got %v", err)
			}
		})
	}
	if len(mocks.session.sessions) != 0 {
		t.Errorf("nothing should be persisted, got %d sessions", len(mocks.session.sessions))
	}
}

// ── Update / Delete authorization ──

func TestSessionService_PrebuiltIsReadOnly(t *testing.T) {
	svc, _, mocks, _ := setupTestSessionService()
	prebuilt := mocks.session.seed("Catalog", model.SystemOwner())

	for _, uid := range []string{"user-a", "user-b", ""} {
		_, err := svc.Update(context.Background(), uid, prebuilt.SessionID, &dto.UpdateSessionRequest{Title: strPtr("hacked")}, nil)
		if !errors.Is(err, ErrSessionForbidden) {
			t.Errorf("update by %q: expected ErrSessionForbidden, got %v", uid, err)
		}
		if err := svc.Delete(context.Background(), uid, prebuilt.SessionID); !errors.Is(err, ErrSessionForbidden) {
			t.Errorf("delete by %q: expected ErrSessionForbidden, got %v", uid, err)
		}
	}
	if mocks.session.sessions[prebuilt.SessionID].Title != "Catalog" {
		t.Error("prebuilt session must not change")
	}
}

func TestSessionService_Update(t *testing.T) {
	svc, _, mocks, _ := setupTestSessionService()
	own := mocks.session.seed("Mine", model.UserOwner("user-a"))

	t.Run("non-owner forbidden", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "user-b", own.SessionID, &dto.UpdateSessionRequest{Title: strPtr("x")}, nil)
		if !errors.Is(err, ErrSessionForbidden) {
			t.Errorf("expected ErrSessionForbidden, got %v", err)
		}
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "user-a", 999, &dto.UpdateSessionRequest{}, nil)
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("owner merges fields", func(t *testing.T) {
		resp, err := svc.Update(context.Background(), "user-a", own.SessionID, &dto.UpdateSessionRequest{
			Title:     strPtr("Renamed"),
			Intensity: intPtr(9),
		}, nil)
		if err != nil {
			t.Fatalf("update should succeed, got %v", err)
		}
		if resp.Title != "Renamed" || resp.Intensity != 9 || resp.Duration != 30 {
			t.Errorf("unexpected merge result %+v", resp)
		}
	})

	t.Run("owner invalid intensity", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "user-a", own.SessionID, &dto.UpdateSessionRequest{Intensity: intPtr(42)}, nil)
		if !errors.Is(err, ErrInvalidSessionFields) {
			t.Errorf("expected ErrInvalidSessionFields, got %v", err)
		}
	})
}

func TestSessionService_Delete_Cascades(t *testing.T) {
	svc, progress, mocks, _ := setupTestSessionService()
	ctx := context.Background()
	own := mocks.session.seed("Mine", model.UserOwner("user-a"))
	other := mocks.session.seed("Catalog", model.SystemOwner())

	_, _ = progress.Subscribe(ctx, "user-a", own.SessionID)
	_, _ = progress.UpdateProgress(ctx, "user-b", own.SessionID, &dto.UpdateProgressRequest{Progress: intPtr(70)})
	_, _ = progress.Subscribe(ctx, "user-b", other.SessionID)

	if err := svc.Delete(ctx, "user-b", own.SessionID); !errors.Is(err, ErrSessionForbidden) {
		t.Fatalf("non-owner delete: expected ErrSessionForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, "user-a", own.SessionID); err != nil {
		t.Fatalf("owner delete should succeed, got %v", err)
	}

	if _, err := svc.GetByID(ctx, own.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
	for key := range mocks.progress.rows {
		if key.sessionID == own.SessionID {
			t.Errorf("orphan progress row left for %s", key.userID)
		}
	}

	rows, _ := svc.ListForUser(ctx, "user-b", &dto.MyListQuery{})
	if len(rows) != 1 || rows[0].Session.ID != other.SessionID {
		t.Errorf("user-b should only keep the catalog session, got %+v", rows)
	}

	if err := svc.Delete(ctx, "user-a", own.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second delete: expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionService_GetByID_AnyCaller(t *testing.T) {
	svc, _, mocks, _ := setupTestSessionService()
	own := mocks.session.seed("Mine", model.UserOwner("user-a"))

	resp, err := svc.GetByID(context.Background(), own.SessionID)
	if err != nil {
		t.Fatalf("get should succeed, got %v", err)
	}
	if resp.Title != "Mine" {
		t.Errorf("unexpected title %q", resp.Title)
	}
}
