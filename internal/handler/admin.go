package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"schoolcomm/internal/httputil"
	"schoolcomm/internal/model"
	"schoolcomm/internal/service"
	"schoolcomm/internal/validate"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.adminService.CreateUser(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrUsernameExists) {
			httputil.WriteConflict(w, "Username already taken")
			return
		}
		log.Printf("[ERROR] Failed to create user: %v", err)
		httputil.WriteInternalError(w, "Failed to create user")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, user)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		log.Printf("[ERROR] Failed to list users: %v", err)
		httputil.WriteInternalError(w, "Failed to load users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user id")
		return
	}

	var req struct {
		Active *bool `json:"active" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Active == nil {
		httputil.WriteBadRequest(w, "active is required")
		return
	}

	if err := h.adminService.SetUserActive(r.Context(), userID, *req.Active); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Failed to update user %d: %v", userID, err)
		httputil.WriteInternalError(w, "Failed to update user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AdminHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req model.CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	class, err := h.adminService.CreateClass(r.Context(), &req)
	if err != nil {
		log.Printf("[ERROR] Failed to create class: %v", err)
		httputil.WriteInternalError(w, "Failed to create class")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, class)
}

func (h *AdminHandler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.adminService.ListClasses(r.Context())
	if err != nil {
		log.Printf("[ERROR] Failed to list classes: %v", err)
		httputil.WriteInternalError(w, "Failed to load classes")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, classes)
}

func (h *AdminHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	student, err := h.adminService.CreateStudent(r.Context(), &req)
	if err != nil {
		log.Printf("[ERROR] Failed to create student: %v", err)
		httputil.WriteInternalError(w, "Failed to create student")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, student)
}

func (h *AdminHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.adminService.ListStudents(r.Context())
	if err != nil {
		log.Printf("[ERROR] Failed to list students: %v", err)
		httputil.WriteInternalError(w, "Failed to load students")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, students)
}
