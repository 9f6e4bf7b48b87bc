package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"schoolcomm/internal/httputil"
	"schoolcomm/internal/model"
	"schoolcomm/internal/service"
	"schoolcomm/internal/transport/http/middleware"
	"schoolcomm/internal/validate"
)

type AttendanceHandler struct {
	attService *service.AttendanceService
}

func NewAttendanceHandler(attService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attService: attService}
}

func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req model.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	att, err := h.attService.Mark(r.Context(), userID, &req)
	if err != nil {
		log.Printf("[ERROR] Failed to mark attendance: %v", err)
		httputil.WriteInternalError(w, "Failed to mark attendance")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, att)
}

func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.attService.List(r.Context(), queryInt64(r, "class_id"), queryInt64(r, "student_id"), queryString(r, "date"))
	if err != nil {
		log.Printf("[ERROR] Failed to list attendance: %v", err)
		httputil.WriteInternalError(w, "Failed to load attendance")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *AttendanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(chi.URLParam(r, "studentID"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid student id")
		return
	}

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	if startDate == "" || endDate == "" {
		httputil.WriteBadRequest(w, "start_date and end_date are required")
		return
	}

	stats, err := h.attService.Stats(r.Context(), studentID, startDate, endDate)
	if err != nil {
		log.Printf("[ERROR] Failed to compute attendance stats for student %d: %v", studentID, err)
		httputil.WriteInternalError(w, "Failed to load attendance stats")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}
