package handlers

import (
	"BioAttend/internal/middleware"
	"BioAttend/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// AttendanceHandler — верификация отпечатка и журнал посещаемости.
type AttendanceHandler struct {
	AttendanceService *service.AttendanceService
	Logger            *zap.SugaredLogger
}

func NewAttendanceHandler(attendanceService *service.AttendanceService, logger *zap.SugaredLogger) *AttendanceHandler {
	return &AttendanceHandler{AttendanceService: attendanceService, Logger: logger}
}

// verifyRequest несёт захваченный документ шаблона как вложенный JSON.
type verifyRequest struct {
	StudentID  string          `json:"student_id"`
	CourseCode string          `json:"course_code"`
	Template   json.RawMessage `json:"template"`
}

type verifyResponse struct {
	Matched    bool    `json:"matched"`
	Confidence float64 `json:"confidence"`
	Status     string  `json:"status"` // "present" | "rejected"
}

// Verify сверяет отпечаток и при совпадении отмечает присутствие.
func (h *AttendanceHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Verify: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.StudentID == "" || req.CourseCode == "" {
		http.Error(w, "student_id and course_code are required", http.StatusBadRequest)
		return
	}

	res, err := h.AttendanceService.Verify(r.Context(), req.StudentID, req.CourseCode, string(req.Template))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			http.Error(w, "student not found", http.StatusNotFound)
		case errors.Is(err, service.ErrNotEnrolled):
			http.Error(w, "student has no enrolled fingerprint", http.StatusConflict)
		default:
			h.Logger.Errorw("Verify: service error", "student_id", req.StudentID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	status := "rejected"
	if res.Matched {
		status = "present"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(verifyResponse{
		Matched:    res.Matched,
		Confidence: res.Confidence,
		Status:     status,
	})
}

type attendanceRowDTO struct {
	StudentID  string  `json:"student_id"`
	FullName   string  `json:"full_name,omitempty"`
	Matric     string  `json:"matric,omitempty"`
	Confidence float64 `json:"confidence"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}

// Report отдаёт журнал курса за день: /api/attendance?course=MTH202&date=2026-02-12.
// Без параметра date берётся сегодняшний день (UTC).
func (h *AttendanceHandler) Report(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	course := r.URL.Query().Get("course")
	if course == "" {
		http.Error(w, "course is required", http.StatusBadRequest)
		return
	}
	day := r.URL.Query().Get("date")
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	rows, err := h.AttendanceService.Report(r.Context(), course, day)
	if err != nil {
		h.Logger.Errorw("Report: service error", "course", course, "day", day, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]attendanceRowDTO, 0, len(rows))
	for _, a := range rows {
		row := attendanceRowDTO{
			StudentID:  a.StudentID,
			Confidence: a.Confidence,
			Status:     a.Status,
			CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339),
		}
		if a.Student != nil {
			row.FullName = a.Student.FullName
			row.Matric = a.Student.Matric
		}
		out = append(out, row)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(out)
}
