package handlers

import (
	"BioAttend/internal/config"
	"BioAttend/internal/middleware"
	"BioAttend/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	studentService *service.StudentService,
	enrollmentService *service.EnrollmentService,
	attendanceService *service.AttendanceService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	studentHandler := NewStudentHandler(studentService, enrollmentService, logger)
	attendanceHandler := NewAttendanceHandler(attendanceService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)

	// Student routes
	r.Post("/api/students", studentHandler.Create)
	r.Get("/api/students", studentHandler.List)
	r.Get("/api/students/{id}", studentHandler.Get)
	r.Post("/api/students/{id}/fingerprint", studentHandler.EnrollFingerprint)

	// Attendance routes
	r.Post("/api/attendance/verify", attendanceHandler.Verify)
	r.Get("/api/attendance", attendanceHandler.Report)

	return &Handler{Router: r}
}
