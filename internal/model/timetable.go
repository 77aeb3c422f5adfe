package model

// Days a class can be scheduled on, in week order.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayOrder maps a day name to its position for sorting.
var DayOrder = map[string]int{
	"Monday": 0, "Tuesday": 1, "Wednesday": 2,
	"Thursday": 3, "Friday": 4, "Saturday": 5,
}

// Timetable is one scheduled class slot for one faculty member, table
// "timetables". Rows are transient: wiped and recreated per faculty
// member on every generation run, no historical versioning.
type Timetable struct {
	TimetableID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"timetable_id"`
	FacultyID   string `gorm:"type:uuid;not null;index"                       json:"faculty_id"`
	Day         string `gorm:"type:varchar(10);not null"                      json:"day"`
	StartTime   string `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime     string `gorm:"type:varchar(5);not null"                       json:"end_time"`
	Subject     string `gorm:"type:varchar(100);not null"                     json:"subject"`
	Room        string `gorm:"type:varchar(20);not null"                      json:"room"`
	Department  string `gorm:"type:varchar(100);not null"                     json:"department"`
	Semester    int    `gorm:"type:smallint;not null"                         json:"semester"`
	BaseModel

	Faculty *User `gorm:"foreignKey:FacultyID;references:UserID" json:"faculty,omitempty"`
}

func (Timetable) TableName() string { return "timetables" }
