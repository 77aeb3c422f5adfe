package repository

import (
	"context"

	"gorm.io/gorm"

	"work-diary/backend/internal/model"
)

// TimetableRepository is the timetable data-access interface.
type TimetableRepository interface {
	GetByID(ctx context.Context, id string) (*model.Timetable, error)
	// ListByFaculty returns one member's rows ordered by day then start
	// time.
	ListByFaculty(ctx context.Context, facultyID string) ([]model.Timetable, error)
	// Replace wipes a member's rows and inserts the new set in a single
	// transaction, so a crash never leaves a member half-scheduled.
	Replace(ctx context.Context, facultyID string, rows []model.Timetable) error
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo creates the GORM-backed TimetableRepository.
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) GetByID(ctx context.Context, id string) (*model.Timetable, error) {
	var row model.Timetable
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("timetable_id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *timetableRepo) ListByFaculty(ctx context.Context, facultyID string) ([]model.Timetable, error) {
	var rows []model.Timetable
	err := r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		Order("CASE day " +
			"WHEN 'Monday' THEN 0 WHEN 'Tuesday' THEN 1 WHEN 'Wednesday' THEN 2 " +
			"WHEN 'Thursday' THEN 3 WHEN 'Friday' THEN 4 WHEN 'Saturday' THEN 5 END, start_time").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *timetableRepo) Replace(ctx context.Context, facultyID string, rows []model.Timetable) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("faculty_id = ?", facultyID).Delete(&model.Timetable{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
