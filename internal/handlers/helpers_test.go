package handlers_test

import (
	"BioAttend/internal/biometric"
	"BioAttend/internal/config"
	"BioAttend/internal/handlers"
	"BioAttend/internal/middleware"
	"BioAttend/internal/model"
	"BioAttend/internal/repo"
	"BioAttend/internal/service"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Minimal mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

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

// тестовый ключ шифрования шаблонов (32 байта)
func testTemplateKey() []byte {
	return bytes.Repeat([]byte{0x42}, 32)
}

// --- Helpers ---
func newTestRouter(t *testing.T, ur repo.UserRepository, sr repo.StudentRepository, ar repo.AttendanceRepository) (http.Handler, *config.Config) {
	t.Helper()
	cfg := &config.Config{AuthSecret: "test-secret", MatchThreshold: 75}
	logger := zap.NewNop().Sugar()
	key := testTemplateKey()

	userSvc := service.NewUserService(ur)
	studentSvc := service.NewStudentService(sr)
	enrollSvc := service.NewEnrollmentService(sr, key, logger)
	attendSvc := service.NewAttendanceService(sr, ar, biometric.NewMatcher(key), cfg.MatchThreshold, logger)

	h := handlers.NewHandler(userSvc, studentSvc, enrollSvc, attendSvc, logger, cfg)
	return h.Router, cfg
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}
