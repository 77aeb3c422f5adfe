package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	User      UserRepository
	Diary     DiaryRepository
	Timetable TimetableRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:      NewUserRepo(db),
		Diary:     NewDiaryRepo(db),
		Timetable: NewTimetableRepo(db),
	}
}
