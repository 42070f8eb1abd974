package service

import (
	"BioAttend/internal/biometric"
	"BioAttend/internal/repo"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxEnrolledTemplates — предел истории сканов одного пальца в allTemplates.
// При переполнении самый старый скан вытесняется.
const maxEnrolledTemplates = 5

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrBadTemplate     = errors.New("malformed template document")
)

// EnrollmentService отвечает за регистрацию отпечатков: проверяет захваченный
// документ, сливает повторные сканы в metadata.allTemplates и шифрует результат
// перед сохранением. Ошибки криптослоя здесь фатальны — порча хранимого блоба
// или неверный ключ должны дойти до оператора, а не прятаться.
type EnrollmentService struct {
	students repo.StudentRepository
	key      []byte
	logger   *zap.SugaredLogger
}

func NewEnrollmentService(students repo.StudentRepository, key []byte, logger *zap.SugaredLogger) *EnrollmentService {
	return &EnrollmentService{students: students, key: key, logger: logger}
}

// Enroll сохраняет новый захват отпечатка студента. Повторная регистрация
// добавляет скан в историю, а не затирает её: верификация потом сравнивает
// вход с каждым вариантом.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, templateJSON string) error {
	doc, err := biometric.ParseTemplate(templateJSON)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadTemplate, err)
	}
	if doc.Template == "" {
		return fmt.Errorf("%w: empty template field", ErrBadTemplate)
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	merged := *doc
	history := []string{doc.Template}
	if student.Fingerprint != "" {
		prevJSON, err := biometric.Decrypt(student.Fingerprint, s.key)
		if err != nil {
			return err
		}
		prev, err := biometric.ParseTemplate(prevJSON)
		if err != nil {
			return fmt.Errorf("%w: stored document: %v", ErrBadTemplate, err)
		}
		history = append(enrolledHistory(prev), doc.Template)
		if len(history) > maxEnrolledTemplates {
			history = history[len(history)-maxEnrolledTemplates:]
		}
	}
	if merged.Metadata == nil {
		merged.Metadata = &biometric.TemplateMetadata{}
	}
	merged.Metadata.AllTemplates = history

	raw, err := json.Marshal(&merged)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadTemplate, err)
	}
	blob, err := biometric.Encrypt(string(raw), s.key)
	if err != nil {
		return err
	}
	if err := s.students.UpdateFingerprint(ctx, student.ID, blob); err != nil {
		return err
	}

	s.logger.Infow("fingerprint enrolled",
		"student_id", student.ID,
		"captures", len(history),
		"format", merged.Format,
	)
	return nil
}

// enrolledHistory возвращает список сканов из хранимого документа.
func enrolledHistory(t *biometric.Template) []string {
	if t.Metadata != nil && len(t.Metadata.AllTemplates) > 0 {
		return t.Metadata.AllTemplates
	}
	if t.Template == "" {
		return nil
	}
	return []string{t.Template}
}
