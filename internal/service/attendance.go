package service

import (
	"BioAttend/internal/biometric"
	"BioAttend/internal/model"
	"BioAttend/internal/repo"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotEnrolled — у студента ещё нет зарегистрированного отпечатка.
var ErrNotEnrolled = errors.New("student has no enrolled fingerprint")

// AttendanceService сверяет захваченный шаблон с хранимым и отмечает
// присутствие. Несовпадение, испорченный блоб и непохожий отпечаток снаружи
// выглядят одинаково — {matched: false, confidence: 0}.
type AttendanceService struct {
	students   repo.StudentRepository
	attendance repo.AttendanceRepository
	matcher    *biometric.Matcher
	threshold  float64
	logger     *zap.SugaredLogger
}

func NewAttendanceService(
	students repo.StudentRepository,
	attendance repo.AttendanceRepository,
	matcher *biometric.Matcher,
	threshold float64,
	logger *zap.SugaredLogger,
) *AttendanceService {
	return &AttendanceService{
		students:   students,
		attendance: attendance,
		matcher:    matcher,
		threshold:  threshold,
		logger:     logger,
	}
}

// Verify прогоняет захваченный шаблон через матчер и при совпадении создаёт
// запись посещаемости за сегодняшний день (повторная отметка — no-op).
// Возвращаемый MatchResult отдается вызывающему в любом исходе.
func (s *AttendanceService) Verify(ctx context.Context, studentID, courseCode, templateJSON string) (biometric.MatchResult, error) {
	var noMatch biometric.MatchResult

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noMatch, ErrStudentNotFound
		}
		return noMatch, err
	}
	if student.Fingerprint == "" {
		return noMatch, ErrNotEnrolled
	}

	res, candidate := s.matcher.VerifyDetailed(templateJSON, student.Fingerprint, s.threshold)
	if !res.Matched {
		s.logger.Infow("verification rejected",
			"student_id", student.ID,
			"course", courseCode,
			"confidence", res.Confidence,
		)
		return res, nil
	}

	rec := &model.Attendance{
		ID:         uuid.NewString(),
		StudentID:  student.ID,
		CourseCode: courseCode,
		Day:        time.Now().UTC().Format("2006-01-02"),
		Status:     "present",
		Confidence: res.Confidence,
	}
	created, err := s.attendance.CreateIfAbsent(ctx, rec)
	if err != nil {
		return res, err
	}

	s.logger.Infow("attendance recorded",
		"student_id", student.ID,
		"course", courseCode,
		"confidence", res.Confidence,
		"candidate", candidate,
		"created", created,
	)
	return res, nil
}

// Report возвращает записи курса за день (YYYY-MM-DD).
func (s *AttendanceService) Report(ctx context.Context, courseCode, day string) ([]model.Attendance, error) {
	return s.attendance.ListByCourse(ctx, courseCode, day)
}
