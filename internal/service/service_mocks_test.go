package service

import (
	"BioAttend/internal/model"
	"BioAttend/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// мок для repo.StudentRepository
type mockStudentRepo struct{ mock.Mock }

func (m *mockStudentRepo) Create(ctx context.Context, s *model.Student) (*model.Student, error) {
	args := m.Called(ctx, s)
	if v, ok := args.Get(0).(*model.Student); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStudentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Student); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStudentRepo) GetByMatric(ctx context.Context, matric string) (*model.Student, error) {
	args := m.Called(ctx, matric)
	if v, ok := args.Get(0).(*model.Student); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStudentRepo) UpdateFingerprint(ctx context.Context, id string, blob string) error {
	return m.Called(ctx, id, blob).Error(0)
}

func (m *mockStudentRepo) List(ctx context.Context) ([]model.Student, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Student); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.StudentRepository = (*mockStudentRepo)(nil)

// мок для repo.AttendanceRepository
type mockAttendanceRepo struct{ mock.Mock }

func (m *mockAttendanceRepo) CreateIfAbsent(ctx context.Context, a *model.Attendance) (bool, error) {
	args := m.Called(ctx, a)
	return args.Bool(0), args.Error(1)
}

func (m *mockAttendanceRepo) ListByCourse(ctx context.Context, courseCode, day string) ([]model.Attendance, error) {
	args := m.Called(ctx, courseCode, day)
	if v, ok := args.Get(0).([]model.Attendance); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.AttendanceRepository = (*mockAttendanceRepo)(nil)
