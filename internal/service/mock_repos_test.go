package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"hooplog/backend/internal/model"
	"hooplog/backend/internal/repository"
)

var mockEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	user.CreatedAt = mockEpoch.Add(time.Duration(m.seq) * time.Second)
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[uint]*model.Session
	nextID   uint
	progress *mockProgressRepo
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[uint]*model.Session)}
}

func (m *mockSessionRepo) ListPrebuilt(_ context.Context, filter repository.SessionFilter) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.Owner().IsSystem() && matchSession(s, filter) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SessionID > result[j].SessionID })
	return result, nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id uint) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	m.nextID++
	session.SessionID = m.nextID
	session.CreatedAt = mockEpoch.Add(time.Duration(m.nextID) * time.Second)
	session.UpdatedAt = session.CreatedAt
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.Session) error {
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) DeleteWithProgress(_ context.Context, id uint) error {
	if _, ok := m.sessions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	if m.progress != nil {
		for key, p := range m.progress.rows {
			if p.SessionID == id {
				delete(m.progress.rows, key)
			}
		}
	}
	delete(m.sessions, id)
	return nil
}

// seed inserts a session directly, bypassing Create
func (m *mockSessionRepo) seed(title string, owner model.Owner) *model.Session {
	s := &model.Session{
		Title:      title,
		Type:       model.SessionTypeShooting,
		Difficulty: model.DifficultyEasy,
		Duration:   30,
		Intensity:  5,
	}
	s.SetOwner(owner)
	_ = m.Create(context.Background(), s)
	return s
}

func matchSession(s *model.Session, f repository.SessionFilter) bool {
	if f.Title != "" && !strings.Contains(strings.ToLower(s.Title), strings.ToLower(f.Title)) {
		return false
	}
	if f.Type != "" && s.Type != f.Type {
		return false
	}
	if f.Difficulty != "" && s.Difficulty != f.Difficulty {
		return false
	}
	return true
}

// ── Mock ProgressRepository ──

type progressKey struct {
	userID    string
	sessionID uint
}

type mockProgressRepo struct {
	rows     map[progressKey]*model.SessionProgress
	nextID   uint
	sessions *mockSessionRepo
}

func newMockProgressRepo(sessions *mockSessionRepo) *mockProgressRepo {
	return &mockProgressRepo{rows: make(map[progressKey]*model.SessionProgress), sessions: sessions}
}

func (m *mockProgressRepo) Get(_ context.Context, userID string, sessionID uint) (*model.SessionProgress, error) {
	if p, ok := m.rows[progressKey{userID, sessionID}]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgressRepo) GetOrCreate(ctx context.Context, userID string, sessionID uint, defaults model.SessionProgress) (*model.SessionProgress, bool, error) {
	if p, err := m.Get(ctx, userID, sessionID); err == nil {
		return p, false, nil
	}
	m.nextID++
	p := &model.SessionProgress{
		ID:        m.nextID,
		UserID:    userID,
		SessionID: sessionID,
		Progress:  defaults.Progress,
		Favorite:  defaults.Favorite,
	}
	p.CreatedAt = mockEpoch.Add(time.Duration(m.nextID) * time.Minute)
	p.UpdatedAt = p.CreatedAt
	m.rows[progressKey{userID, sessionID}] = p
	return p, true, nil
}

func (m *mockProgressRepo) Update(_ context.Context, progress *model.SessionProgress) error {
	m.rows[progressKey{progress.UserID, progress.SessionID}] = progress
	return nil
}

func (m *mockProgressRepo) Delete(_ context.Context, userID string, sessionID uint) error {
	key := progressKey{userID, sessionID}
	if _, ok := m.rows[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rows, key)
	return nil
}

func (m *mockProgressRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for key := range m.rows {
		if key.userID == userID {
			delete(m.rows, key)
			n++
		}
	}
	return n, nil
}

func (m *mockProgressRepo) ListByUser(_ context.Context, userID string, filter repository.ProgressFilter) ([]model.SessionProgress, error) {
	var result []model.SessionProgress
	for key, p := range m.rows {
		if key.userID != userID {
			continue
		}
		s, ok := m.sessions.sessions[p.SessionID]
		if !ok || !matchSession(s, filter.SessionFilter) {
			continue
		}
		if filter.Favorite != nil && p.Favorite != *filter.Favorite {
			continue
		}
		row := *p
		row.Session = s
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	settings  map[string]*model.Setting
	createErr error
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{settings: make(map[string]*model.Setting)}
}

func (m *mockSettingRepo) Create(_ context.Context, setting *model.Setting) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.settings[setting.UserID] = setting
	return nil
}

func (m *mockSettingRepo) GetByUserID(_ context.Context, userID string) (*model.Setting, error) {
	if s, ok := m.settings[userID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSettingRepo) Update(_ context.Context, setting *model.Setting) error {
	m.settings[setting.UserID] = setting
	return nil
}

// ── Mock QuoteRepository ──

type mockQuoteRepo struct {
	quotes []model.Quote
}

func (m *mockQuoteRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.quotes)), nil
}

func (m *mockQuoteRepo) GetByOffset(_ context.Context, offset int) (*model.Quote, error) {
	if offset < 0 || offset >= len(m.quotes) {
		return nil, gorm.ErrRecordNotFound
	}
	q := m.quotes[offset]
	return &q, nil
}

// ── aggregate ──

type mockRepos struct {
	user     *mockUserRepo
	session  *mockSessionRepo
	progress *mockProgressRepo
	setting  *mockSettingRepo
	quote    *mockQuoteRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	sessions := newMockSessionRepo()
	progress := newMockProgressRepo(sessions)
	sessions.progress = progress

	m := &mockRepos{
		user:     newMockUserRepo(),
		session:  sessions,
		progress: progress,
		setting:  newMockSettingRepo(),
		quote:    &mockQuoteRepo{},
	}
	return &repository.Repository{
		User:     m.user,
		Session:  m.session,
		Progress: m.progress,
		Setting:  m.setting,
		Quote:    m.quote,
	}, m
}
