package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"work-diary/backend/internal/dto"
	"work-diary/backend/internal/model"
	"work-diary/backend/internal/repository"
)

var (
	ErrNoFaculty = errors.New("No faculty members found")
)

// Subject pools for generation. Which pool a member draws from depends
// on their department: Computer Science and Information Technology use
// the CS pool, everyone else the engineering pool.
var (
	csSubjects = []string{
		"Java Programming", "SQL Database", "DBMS", "Data Structures",
		"Algorithms (ADA)", "Operating Systems", "Computer Networks",
		"Web Technologies", "Python Programming", "Software Engineering",
		"Discrete Mathematics", "Computer Organization", "Cloud Computing",
		"Machine Learning", "Cyber Security", "Mobile Application Development",
		"Computer Graphics",
	}
	otherSubjects = []string{
		"Digital Electronics", "Structural Analysis", "Thermodynamics",
		"Power Systems", "Fluid Mechanics", "Microprocessors",
		"Machine Design", "Control Systems", "Industrial Engineering",
		"Biomedical Engineering", "Chemical Process Design",
		"Environmental Engineering",
	}
)

// departments is the canonical list a blank member department is
// backfilled from during generation.
var departments = []string{
	"Computer Science",
	"Electronics",
	"Civil Engineering",
	"Mechanical Engineering",
	"Electrical Engineering",
	"Information Technology",
	"Chemical Engineering",
	"Biotechnology",
}

// timeSlot is one of the six fixed hourly teaching slots of a day.
type timeSlot struct {
	Start string
	End   string
}

var timeSlots = []timeSlot{
	{"09:00", "10:00"},
	{"10:00", "11:00"},
	{"11:00", "12:00"},
	{"13:00", "14:00"},
	{"14:00", "15:00"},
	{"15:00", "16:00"},
}

const (
	maxSlotRetries = 10
	roomCount      = 10
)

// TimetableService generates and serves randomized weekly schedules.
type TimetableService interface {
	// Generate rebuilds the timetable of every faculty member. Existing
	// rows of each member are replaced atomically per member.
	Generate(ctx context.Context) (*dto.GenerateTimetableResponse, error)
	// Schedule returns the caller's rows ordered by day and start time.
	Schedule(ctx context.Context, userID string) (*dto.ScheduleResponse, error)
	// ExportICS renders the caller's schedule as an iCalendar feed with
	// weekly recurring events.
	ExportICS(ctx context.Context, userID string) (string, error)
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
	// rnd drives all random draws, swappable in tests for determinism.
	rnd *rand.Rand
}

// NewTimetableService creates the TimetableService with a time-seeded
// random source.
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{
		repo:   repo,
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// isCSDepartment reports whether a department draws from the CS pool.
func isCSDepartment(dept string) bool {
	switch strings.ToLower(strings.TrimSpace(dept)) {
	case "computer science", "information technology":
		return true
	}
	return false
}

// pickSubjects draws n distinct subjects from an already-shuffled pool
// starting at a random offset, wrapping around the end.
func (s *timetableService) pickSubjects(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	start := s.rnd.Intn(len(pool))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, pool[(start+i)%len(pool)])
	}
	return out
}

func (s *timetableService) Generate(ctx context.Context) (*dto.GenerateTimetableResponse, error) {
	faculty, err := s.repo.User.ListByRole(ctx, model.RoleFaculty)
	if err != nil {
		s.logger.Error("faculty listing failed", zap.Error(err))
		return nil, err
	}
	if len(faculty) == 0 {
		return nil, ErrNoFaculty
	}

	// Fresh shuffles each run so consecutive generations differ even
	// for the same member set.
	cs := append([]string(nil), csSubjects...)
	other := append([]string(nil), otherSubjects...)
	s.rnd.Shuffle(len(cs), func(i, j int) { cs[i], cs[j] = cs[j], cs[i] })
	s.rnd.Shuffle(len(other), func(i, j int) { other[i], other[j] = other[j], other[i] })

	// Used (day, start, room, subject) tuples, shared across the whole
	// run so two members rarely land the same class.
	seen := make(map[string]bool)

	for i := range faculty {
		member := &faculty[i]
		rows := s.generateMemberRows(member, cs, other, seen)
		if err := s.repo.Timetable.Replace(ctx, member.UserID, rows); err != nil {
			s.logger.Error("timetable replace failed",
				zap.String("faculty_id", member.UserID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	s.logger.Info("timetable generated", zap.Int("faculty_count", len(faculty)))
	return &dto.GenerateTimetableResponse{
		Success:      true,
		Message:      "Timetable generated successfully",
		FacultyCount: len(faculty),
	}, nil
}

// generateMemberRows builds one member's week: 2-3 subjects from the
// member's own pool plus 1-2 from the opposite pool, 2-3 classes per
// day Monday through Saturday, slots drawn without replacement within
// a day. A (day, start, room, subject) tuple already present in seen
// is redrawn up to maxSlotRetries times, then accepted as-is: a rare
// duplicate assignment is harmless while an unbounded loop is not.
func (s *timetableService) generateMemberRows(member *model.User, cs, other []string, seen map[string]bool) []model.Timetable {
	primaryPool, secondaryPool := other, cs
	if isCSDepartment(member.Department) {
		primaryPool, secondaryPool = cs, other
	}

	primary := s.pickSubjects(primaryPool, s.rnd.Intn(2)+2)     // 2-3
	secondary := s.pickSubjects(secondaryPool, s.rnd.Intn(2)+1) // 1-2
	subjects := append(append([]string(nil), primary...), secondary...)

	department := member.Department
	if department == "" {
		department = departments[s.rnd.Intn(len(departments))]
	}

	var rows []model.Timetable

	for _, day := range model.Days {
		perDay := s.rnd.Intn(2) + 2 // 2-3 classes

		// Draw distinct slots for the day.
		slotIdx := s.rnd.Perm(len(timeSlots))[:perDay]
		for _, si := range slotIdx {
			slot := timeSlots[si]

			var subject, room string
			for attempt := 0; attempt < maxSlotRetries; attempt++ {
				subject = subjects[s.rnd.Intn(len(subjects))]
				room = fmt.Sprintf("Room %d", 101+s.rnd.Intn(roomCount))
				key := day + "|" + slot.Start + "|" + room + "|" + subject
				if !seen[key] {
					seen[key] = true
					break
				}
			}

			rows = append(rows, model.Timetable{
				FacultyID:  member.UserID,
				Day:        day,
				StartTime:  slot.Start,
				EndTime:    slot.End,
				Subject:    subject,
				Room:       room,
				Department: department,
				Semester:   s.rnd.Intn(8) + 1,
			})
		}
	}
	return rows
}

func (s *timetableService) Schedule(ctx context.Context, userID string) (*dto.ScheduleResponse, error) {
	rows, err := s.repo.Timetable.ListByFaculty(ctx, userID)
	if err != nil {
		s.logger.Error("schedule listing failed", zap.String("faculty_id", userID), zap.Error(err))
		return nil, err
	}

	data := make([]dto.TimetableRow, 0, len(rows))
	for _, r := range rows {
		data = append(data, dto.TimetableRow{
			ID:         r.TimetableID,
			FacultyID:  r.FacultyID,
			Day:        r.Day,
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
			Subject:    r.Subject,
			Room:       r.Room,
			Department: r.Department,
			Semester:   r.Semester,
		})
	}

	return &dto.ScheduleResponse{Success: true, Data: data}, nil
}

// icsDayMap maps schedule day names to iCalendar BYDAY codes.
var icsDayMap = map[string]string{
	"Monday": "MO", "Tuesday": "TU", "Wednesday": "WE",
	"Thursday": "TH", "Friday": "FR", "Saturday": "SA",
}

func (s *timetableService) ExportICS(ctx context.Context, userID string) (string, error) {
	rows, err := s.repo.Timetable.ListByFaculty(ctx, userID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//work-diary//timetable//EN")
	cal.SetName("Teaching Schedule")

	// Anchor recurrences on the current week's Monday so every weekday
	// occurrence lands on or after it.
	now := time.Now()
	weekStart := now.AddDate(0, 0, -int(now.Weekday())+1)

	for _, r := range rows {
		dayOffset, ok := model.DayOrder[r.Day]
		if !ok {
			continue
		}
		start, err := time.Parse("15:04", r.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse("15:04", r.EndTime)
		if err != nil {
			continue
		}

		day := weekStart.AddDate(0, 0, dayOffset)
		startAt := time.Date(day.Year(), day.Month(), day.Day(),
			start.Hour(), start.Minute(), 0, 0, time.Local)
		endAt := time.Date(day.Year(), day.Month(), day.Day(),
			end.Hour(), end.Minute(), 0, 0, time.Local)

		ev := cal.AddEvent(uuid.NewString())
		ev.SetSummary(r.Subject)
		ev.SetLocation(r.Room)
		ev.SetDescription(fmt.Sprintf("%s, semester %d", r.Department, r.Semester))
		ev.SetStartAt(startAt)
		ev.SetEndAt(endAt)
		ev.SetDtStampTime(now)
		ev.AddRrule("FREQ=WEEKLY;BYDAY=" + icsDayMap[r.Day])
	}

	return cal.Serialize(), nil
}
