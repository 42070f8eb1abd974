package handlers

import (
	"BioAttend/internal/middleware"
	"BioAttend/internal/model"
	"BioAttend/internal/service"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxTemplateBodySize — предел тела запроса с документом шаблона (1 МБ).
const maxTemplateBodySize = 1 << 20

// StudentHandler — карточки студентов и регистрация отпечатков.
type StudentHandler struct {
	StudentService    *service.StudentService
	EnrollmentService *service.EnrollmentService
	Logger            *zap.SugaredLogger
}

func NewStudentHandler(studentService *service.StudentService, enrollmentService *service.EnrollmentService, logger *zap.SugaredLogger) *StudentHandler {
	return &StudentHandler{StudentService: studentService, EnrollmentService: enrollmentService, Logger: logger}
}

type createStudentRequest struct {
	FullName string `json:"full_name"`
	Matric   string `json:"matric"`
}

// studentResponse — карточка без биометрии: блоб наружу не отдаётся никогда.
type studentResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Matric   string `json:"matric"`
	Enrolled bool   `json:"enrolled"`
}

func toStudentResponse(s *model.Student) studentResponse {
	return studentResponse{
		ID:       s.ID,
		FullName: s.FullName,
		Matric:   s.Matric,
		Enrolled: s.Fingerprint != "",
	}
}

// Create создаёт карточку студента.
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	student, err := h.StudentService.Create(r.Context(), req.FullName, req.Matric)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStudent):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrMatricTaken):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.Logger.Errorw("Create student: service error", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toStudentResponse(student))
}

// Get отдаёт карточку студента по id.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	student, err := h.StudentService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			http.Error(w, "student not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("Get student: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(toStudentResponse(student))
}

// List отдаёт всех студентов, отсортированных по имени.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	students, err := h.StudentService.List(r.Context())
	if err != nil {
		h.Logger.Errorw("List students: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]studentResponse, 0, len(students))
	for i := range students {
		out = append(out, toStudentResponse(&students[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(out)
}

// EnrollFingerprint принимает документ шаблона как тело запроса и регистрирует
// его за студентом. Повторный вызов дописывает скан в историю.
func (h *StudentHandler) EnrollFingerprint(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxTemplateBodySize))
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	studentID := chi.URLParam(r, "id")
	if err := h.EnrollmentService.Enroll(r.Context(), studentID, string(body)); err != nil {
		switch {
		case errors.Is(err, service.ErrBadTemplate):
			http.Error(w, "malformed template", http.StatusBadRequest)
		case errors.Is(err, service.ErrStudentNotFound):
			http.Error(w, "student not found", http.StatusNotFound)
		default:
			// сюда попадают и ошибки криптослоя — повод будить оператора
			h.Logger.Errorw("Enroll: service error", "student_id", studentID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
