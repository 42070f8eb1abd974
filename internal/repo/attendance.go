package repo

import (
	"BioAttend/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceRepository — контракт доступа к записям посещаемости.
type AttendanceRepository interface {
	// CreateIfAbsent пытается создать запись. Если студент уже отмечен на этой
	// паре в этот день — ничего не делает. Возвращает created=true, если запись
	// была создана именно этой операцией.
	CreateIfAbsent(ctx context.Context, a *model.Attendance) (created bool, err error)

	// ListByCourse возвращает записи курса за день (day в формате YYYY-MM-DD)
	// вместе со студентами.
	ListByCourse(ctx context.Context, courseCode, day string) ([]model.Attendance, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepository создаёт реализацию репозитория для Attendance.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

// CreateIfAbsent создаёт запись посещаемости, если её ещё нет.
func (r *attendanceRepo) CreateIfAbsent(ctx context.Context, a *model.Attendance) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_code"}, {Name: "day"}},
		DoNothing: true,
	}).Create(a)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *attendanceRepo) ListByCourse(ctx context.Context, courseCode, day string) ([]model.Attendance, error) {
	var out []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("course_code = ? AND day = ?", courseCode, day).
		Order("created_at").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
