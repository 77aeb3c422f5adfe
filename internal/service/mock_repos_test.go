package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"work-diary/backend/internal/model"
	"work-diary/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[string]*model.User // key: user_id
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.nextID++
		user.UserID = fmt.Sprintf("user-%d", m.nextID)
	}
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
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByRole(_ context.Context, role string) (*model.User, error) {
	for _, u := range m.users {
		if u.Role == role {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) EmailInUse(_ context.Context, email, excludeID string) (bool, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) && u.UserID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByResetToken(_ context.Context, token string, now time.Time) (*model.User, error) {
	for _, u := range m.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == token &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(now) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock DiaryRepository ──

type mockDiaryRepo struct {
	entries map[string]*model.WorkDiaryEntry
	users   *mockUserRepo // owner preloading
	nextID  int
}

func newMockDiaryRepo(users *mockUserRepo) *mockDiaryRepo {
	return &mockDiaryRepo{entries: make(map[string]*model.WorkDiaryEntry), users: users}
}

func (m *mockDiaryRepo) Create(_ context.Context, entry *model.WorkDiaryEntry) error {
	if entry.EntryID == "" {
		m.nextID++
		entry.EntryID = fmt.Sprintf("entry-%d", m.nextID)
	}
	entry.Status = strings.ToLower(entry.Status)
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *mockDiaryRepo) GetByID(_ context.Context, id string) (*model.WorkDiaryEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	if u, uok := m.users.users[e.UserID]; uok {
		cp.User = u
	}
	return &cp, nil
}

func (m *mockDiaryRepo) ListByUser(_ context.Context, userID string) ([]model.WorkDiaryEntry, error) {
	var result []model.WorkDiaryEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockDiaryRepo) ListAll(_ context.Context, date *time.Time) ([]model.WorkDiaryEntry, error) {
	var result []model.WorkDiaryEntry
	for _, e := range m.entries {
		if date != nil {
			y1, m1, d1 := e.Date.Date()
			y2, m2, d2 := date.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		cp := *e
		if u, ok := m.users.users[e.UserID]; ok {
			cp.User = u
		}
		result = append(result, cp)
	}
	return result, nil
}

func (m *mockDiaryRepo) UpdateStatus(ctx context.Context, id, status string) (*model.WorkDiaryEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	e.Status = strings.ToLower(status)
	return m.GetByID(ctx, id)
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	rows   map[string][]model.Timetable // key: faculty_id
	users  *mockUserRepo
	nextID int
}

func newMockTimetableRepo(users *mockUserRepo) *mockTimetableRepo {
	return &mockTimetableRepo{rows: make(map[string][]model.Timetable), users: users}
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id string) (*model.Timetable, error) {
	for _, rows := range m.rows {
		for _, r := range rows {
			if r.TimetableID == id {
				cp := r
				if u, ok := m.users.users[r.FacultyID]; ok {
					cp.Faculty = u
				}
				return &cp, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) ListByFaculty(_ context.Context, facultyID string) ([]model.Timetable, error) {
	return append([]model.Timetable(nil), m.rows[facultyID]...), nil
}

func (m *mockTimetableRepo) Replace(_ context.Context, facultyID string, rows []model.Timetable) error {
	stored := make([]model.Timetable, len(rows))
	for i, r := range rows {
		m.nextID++
		r.TimetableID = fmt.Sprintf("tt-%d", m.nextID)
		stored[i] = r
	}
	m.rows[facultyID] = stored
	return nil
}

// newMockRepository bundles the mocks into the aggregate the services
// expect.
func newMockRepository() (*repository.Repository, *mockUserRepo, *mockDiaryRepo, *mockTimetableRepo) {
	users := newMockUserRepo()
	diary := newMockDiaryRepo(users)
	timetable := newMockTimetableRepo(users)
	repo := &repository.Repository{
		User:      users,
		Diary:     diary,
		Timetable: timetable,
	}
	return repo, users, diary, timetable
}
