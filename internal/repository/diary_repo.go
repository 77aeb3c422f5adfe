package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"work-diary/backend/internal/model"
)

// DiaryRepository is the work-diary-entry data-access interface.
type DiaryRepository interface {
	Create(ctx context.Context, entry *model.WorkDiaryEntry) error
	GetByID(ctx context.Context, id string) (*model.WorkDiaryEntry, error)
	// ListByUser returns one user's entries, newest date first.
	ListByUser(ctx context.Context, userID string) ([]model.WorkDiaryEntry, error)
	// ListAll returns every entry with its owner preloaded; when date is
	// non-nil only entries falling on that calendar day are returned.
	ListAll(ctx context.Context, date *time.Time) ([]model.WorkDiaryEntry, error)
	// UpdateStatus mutates only the status column, leaving every other
	// field untouched, and returns the updated row.
	UpdateStatus(ctx context.Context, id, status string) (*model.WorkDiaryEntry, error)
}

type diaryRepo struct {
	db *gorm.DB
}

// NewDiaryRepo creates the GORM-backed DiaryRepository.
func NewDiaryRepo(db *gorm.DB) DiaryRepository {
	return &diaryRepo{db: db}
}

func (r *diaryRepo) Create(ctx context.Context, entry *model.WorkDiaryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *diaryRepo) GetByID(ctx context.Context, id string) (*model.WorkDiaryEntry, error) {
	var entry model.WorkDiaryEntry
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *diaryRepo) ListByUser(ctx context.Context, userID string) ([]model.WorkDiaryEntry, error) {
	var entries []model.WorkDiaryEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *diaryRepo) ListAll(ctx context.Context, date *time.Time) ([]model.WorkDiaryEntry, error) {
	q := r.db.WithContext(ctx).Preload("User")

	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)
		q = q.Where("date BETWEEN ? AND ?", dayStart, dayEnd)
	}

	var entries []model.WorkDiaryEntry
	if err := q.Order("date DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *diaryRepo) UpdateStatus(ctx context.Context, id, status string) (*model.WorkDiaryEntry, error) {
	res := r.db.WithContext(ctx).
		Model(&model.WorkDiaryEntry{}).
		Where("entry_id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}
