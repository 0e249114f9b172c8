package repository

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"smart-life-organizer/internal/model"
)

// Memory keeps users, settings and content in process memory with the same
// constraints the Postgres schema enforces. It backs local tests and the
// router test suite.
type Memory struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]model.User
	settings map[int64]model.UserSettings
	content  map[int64]model.Content
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:    map[int64]model.User{},
		settings: map[int64]model.UserSettings{},
		content:  map[int64]model.Content{},
		now:      time.Now,
	}
}

func (m *Memory) Users() *MemoryUsers       { return &MemoryUsers{m} }
func (m *Memory) Settings() *MemorySettings { return &MemorySettings{m} }
func (m *Memory) Content() *MemoryContent   { return &MemoryContent{m} }

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

type MemoryUsers struct{ m *Memory }

func (s *MemoryUsers) FindByID(_ context.Context, id int64) (model.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	u, ok := s.m.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *MemoryUsers) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, u := range s.m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *MemoryUsers) List(_ context.Context) ([]model.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	users := make([]model.User, 0, len(s.m.users))
	for _, id := range slices.Sorted(maps.Keys(s.m.users)) {
		users = append(users, s.m.users[id])
	}
	return users, nil
}

func (s *MemoryUsers) CreateWithSettings(_ context.Context, u model.User, settings model.UserSettings) (model.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, existing := range s.m.users {
		if existing.Username == u.Username {
			return model.User{}, duplicateUser(false)
		}
		if existing.Email == u.Email {
			return model.User{}, duplicateUser(true)
		}
	}

	u.ID = s.m.id()
	u.CreatedAt = s.m.now().UTC()
	s.m.users[u.ID] = u

	settings.ID = s.m.id()
	settings.UserID = u.ID
	s.m.settings[u.ID] = settings
	return u, nil
}

func (s *MemoryUsers) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	u, ok := s.m.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	s.m.users[id] = u
	return nil
}

// SetActive flips the active flag of a stored user.
func (s *MemoryUsers) SetActive(id int64, active bool) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if u, ok := s.m.users[id]; ok {
		u.IsActive = active
		s.m.users[id] = u
	}
}

func (s *MemoryUsers) Delete(_ context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.users[id]; !ok {
		return model.ErrUserNotFound
	}
	for _, c := range s.m.content {
		if c.UserID == id {
			return model.ErrUserHasContent
		}
	}
	delete(s.m.users, id)
	delete(s.m.settings, id)
	return nil
}

func (s *MemoryUsers) Count(_ context.Context) (int, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return len(s.m.users), nil
}

type MemorySettings struct{ m *Memory }

func (s *MemorySettings) FindByUserID(_ context.Context, userID int64) (model.UserSettings, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	settings, ok := s.m.settings[userID]
	if !ok {
		return model.UserSettings{}, model.ErrSettingsNotFound
	}
	return settings, nil
}

func (s *MemorySettings) Update(_ context.Context, settings model.UserSettings) (model.UserSettings, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	current, ok := s.m.settings[settings.UserID]
	if !ok {
		return model.UserSettings{}, model.ErrSettingsNotFound
	}
	settings.ID = current.ID
	s.m.settings[settings.UserID] = settings
	return settings, nil
}

type MemoryContent struct{ m *Memory }

func (s *MemoryContent) List(_ context.Context) ([]model.Content, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	contents := make([]model.Content, 0, len(s.m.content))
	for _, id := range slices.Sorted(maps.Keys(s.m.content)) {
		contents = append(contents, s.m.content[id])
	}
	return contents, nil
}

func (s *MemoryContent) FindByID(_ context.Context, id int64) (model.Content, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	c, ok := s.m.content[id]
	if !ok {
		return model.Content{}, model.ErrContentNotFound
	}
	return c, nil
}

func (s *MemoryContent) FindBySlug(_ context.Context, slug string) (model.Content, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, c := range s.m.content {
		if slug != "" && c.Slug == slug {
			return c, nil
		}
	}
	return model.Content{}, model.ErrContentNotFound
}

func (s *MemoryContent) Create(_ context.Context, c model.Content) (model.Content, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.users[c.UserID]; !ok {
		return model.Content{}, model.ErrUserNotFound
	}
	for _, existing := range s.m.content {
		if c.Slug != "" && existing.Slug == c.Slug {
			return model.Content{}, model.ErrSlugConflict
		}
	}

	c.ID = s.m.id()
	c.CreatedTime = s.m.now().UTC()
	c.Tags = model.SplitTags(model.JoinTags(c.Tags))
	s.m.content[c.ID] = c
	return c, nil
}

// Put stores c under its own id, bypassing slug and owner checks.
func (s *MemoryContent) Put(c model.Content) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if c.ID > s.m.nextID {
		s.m.nextID = c.ID
	}
	s.m.content[c.ID] = c
}

func (s *MemoryContent) Update(_ context.Context, c model.Content) (model.Content, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.content[c.ID]; !ok {
		return model.Content{}, model.ErrContentNotFound
	}
	c.Tags = model.SplitTags(model.JoinTags(c.Tags))
	s.m.content[c.ID] = c
	return c, nil
}

func (s *MemoryContent) Delete(_ context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.content[id]; !ok {
		return model.ErrContentNotFound
	}
	delete(s.m.content, id)
	return nil
}
