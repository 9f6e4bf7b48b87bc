package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"schoolcomm/internal/httputil"
	"schoolcomm/internal/model"
	"schoolcomm/internal/service"
	"schoolcomm/internal/validate"
)

type FeeHandler struct {
	feeService *service.FeeService
}

func NewFeeHandler(feeService *service.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

func (h *FeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	fee, err := h.feeService.Create(r.Context(), &req)
	if err != nil {
		log.Printf("[ERROR] Failed to create fee record: %v", err)
		httputil.WriteInternalError(w, "Failed to create fee record")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, fee)
}

func (h *FeeHandler) List(w http.ResponseWriter, r *http.Request) {
	fees, err := h.feeService.List(r.Context(), queryInt64(r, "student_id"), queryString(r, "payment_status"))
	if err != nil {
		log.Printf("[ERROR] Failed to list fee records: %v", err)
		httputil.WriteInternalError(w, "Failed to load fee records")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, fees)
}

func (h *FeeHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req model.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	fee, err := h.feeService.RecordPayment(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrFeeNotFound) {
			httputil.WriteNotFound(w, "Fee record not found")
			return
		}
		log.Printf("[ERROR] Failed to record payment: %v", err)
		httputil.WriteInternalError(w, "Failed to record payment")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, fee)
}
