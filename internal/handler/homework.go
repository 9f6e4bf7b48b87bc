package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"schoolcomm/internal/httputil"
	"schoolcomm/internal/model"
	"schoolcomm/internal/service"
	"schoolcomm/internal/transport/http/middleware"
	"schoolcomm/internal/validate"
)

type HomeworkHandler struct {
	hwService *service.HomeworkService
}

func NewHomeworkHandler(hwService *service.HomeworkService) *HomeworkHandler {
	return &HomeworkHandler{hwService: hwService}
}

func (h *HomeworkHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req model.CreateHomeworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	hw, err := h.hwService.Create(r.Context(), userID, &req)
	if err != nil {
		log.Printf("[ERROR] Failed to create homework: %v", err)
		httputil.WriteInternalError(w, "Failed to create homework")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, hw)
}

func (h *HomeworkHandler) List(w http.ResponseWriter, r *http.Request) {
	homework, err := h.hwService.List(r.Context(), queryInt64(r, "class_id"), queryString(r, "subject"))
	if err != nil {
		log.Printf("[ERROR] Failed to list homework: %v", err)
		httputil.WriteInternalError(w, "Failed to load homework")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, homework)
}

func (h *HomeworkHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitHomeworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	sub, err := h.hwService.Submit(r.Context(), &req)
	if err != nil {
		log.Printf("[ERROR] Failed to submit homework: %v", err)
		httputil.WriteInternalError(w, "Failed to submit homework")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, sub)
}

func (h *HomeworkHandler) Grade(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req model.GradeHomeworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	sub, err := h.hwService.Grade(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrSubmissionNotFound) {
			httputil.WriteNotFound(w, "Submission not found")
			return
		}
		log.Printf("[ERROR] Failed to grade submission: %v", err)
		httputil.WriteInternalError(w, "Failed to grade submission")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, sub)
}

func (h *HomeworkHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.hwService.Submissions(r.Context(), queryInt64(r, "homework_id"), queryInt64(r, "student_id"))
	if err != nil {
		log.Printf("[ERROR] Failed to list submissions: %v", err)
		httputil.WriteInternalError(w, "Failed to load submissions")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, subs)
}
