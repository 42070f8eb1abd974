package main

import (
	"BioAttend/internal/biometric"
	"BioAttend/internal/config"
	"BioAttend/internal/handlers"
	"BioAttend/internal/middleware"
	"BioAttend/internal/repo"
	"BioAttend/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	key, err := cfg.TemplateKey()
	if err != nil {
		sugar.Fatalw("invalid template key", "error", err)
	}

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	studentRepo := repo.NewStudentRepository(gormDB)
	attendanceRepo := repo.NewAttendanceRepository(gormDB)

	matcher := biometric.NewMatcher(key)

	userService := service.NewUserService(userRepo)
	studentService := service.NewStudentService(studentRepo)
	enrollmentService := service.NewEnrollmentService(studentRepo, key, sugar)
	attendanceService := service.NewAttendanceService(studentRepo, attendanceRepo, matcher, cfg.MatchThreshold, sugar)

	h := handlers.NewHandler(userService, studentService, enrollmentService, attendanceService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"MatchThreshold", cfg.MatchThreshold,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
