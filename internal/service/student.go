package service

import (
	"BioAttend/internal/model"
	"BioAttend/internal/repo"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMatricTaken    = errors.New("matric number already registered")
	ErrInvalidStudent = errors.New("full name and matric are required")
)

// StudentService — создание и чтение карточек студентов.
type StudentService struct {
	repo repo.StudentRepository
}

func NewStudentService(r repo.StudentRepository) *StudentService {
	return &StudentService{repo: r}
}

func (s *StudentService) Create(ctx context.Context, fullName, matric string) (*model.Student, error) {
	fullName = strings.TrimSpace(fullName)
	matric = strings.TrimSpace(matric)
	if fullName == "" || matric == "" {
		return nil, ErrInvalidStudent
	}

	existing, err := s.repo.GetByMatric(ctx, matric)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMatricTaken
	}

	return s.repo.Create(ctx, &model.Student{
		ID:       uuid.NewString(),
		FullName: fullName,
		Matric:   matric,
	})
}

func (s *StudentService) Get(ctx context.Context, id string) (*model.Student, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return st, nil
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.repo.List(ctx)
}
