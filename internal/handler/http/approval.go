package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/approval"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
)

type ApprovalHandler interface {
	CreateOvertimeRequest(w http.ResponseWriter, r *http.Request)
	ApproveOvertimeLevel1(w http.ResponseWriter, r *http.Request)
	ApproveOvertimeFinal(w http.ResponseWriter, r *http.Request)
	RejectOvertime(w http.ResponseWriter, r *http.Request)
	CancelOvertime(w http.ResponseWriter, r *http.Request)

	CreateMonthlySummaryRequest(w http.ResponseWriter, r *http.Request)
	ApproveSummaryLevel1(w http.ResponseWriter, r *http.Request)
	ApproveSummaryFinal(w http.ResponseWriter, r *http.Request)
	RejectSummary(w http.ResponseWriter, r *http.Request)
	CancelSummary(w http.ResponseWriter, r *http.Request)
}

type approvalHandlerImpl struct {
	approvalService approval.ApprovalService
}

func NewApprovalHandler(approvalService approval.ApprovalService) ApprovalHandler {
	return &approvalHandlerImpl{
		approvalService: approvalService,
	}
}

// CreateOvertimeRequest implements ApprovalHandler.
func (h *approvalHandlerImpl) CreateOvertimeRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	var req approval.CreateOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.approvalService.CreateOvertimeRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request created", result)
}

// CreateMonthlySummaryRequest implements ApprovalHandler.
func (h *approvalHandlerImpl) CreateMonthlySummaryRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	var req approval.CreateMonthlySummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.approvalService.CreateMonthlySummaryRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Monthly summary request created", result)
}

// transition runs one workflow step identified by the route. It factors out
// the claims/URL-param plumbing shared by all eight transition endpoints.
func (h *approvalHandlerImpl) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(requestID, actorID string) (approval.StatusResponse, error),
) {
	actorID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request id is required", nil)
		return
	}

	result, err := fn(requestID, actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *approvalHandlerImpl) reject(
	w http.ResponseWriter,
	r *http.Request,
	fn func(requestID, actorID, reason string) (approval.StatusResponse, error),
) {
	var body approval.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := body.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	h.transition(w, r, func(requestID, actorID string) (approval.StatusResponse, error) {
		return fn(requestID, actorID, body.Reason)
	})
}

// ApproveOvertimeLevel1 implements ApprovalHandler.
func (h *approvalHandlerImpl) ApproveOvertimeLevel1(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(requestID, actorID string) (approval.StatusResponse, error) {
		return h.approvalService.ApproveOvertimeLevel1(r.Context(), requestID, actorID)
	})
}

// ApproveOvertimeFinal implements ApprovalHandler.
func (h *approvalHandlerImpl) ApproveOvertimeFinal(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(requestID, actorID string) (approval.StatusResponse, error) {
		return h.approvalService.ApproveOvertimeFinal(r.Context(), requestID, actorID)
	})
}

// RejectOvertime implements ApprovalHandler.
func (h *approvalHandlerImpl) RejectOvertime(w http.ResponseWriter, r *http.Request) {
	h.reject(w, r, func(requestID, actorID, reason string) (approval.StatusResponse, error) {
		return h.approvalService.RejectOvertime(r.Context(), requestID, actorID, reason)
	})
}

// CancelOvertime implements ApprovalHandler.
func (h *approvalHandlerImpl) CancelOvertime(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(requestID, actorID string) (approval.StatusResponse, error) {
		return h.approvalService.CancelOvertime(r.Context(), requestID, actorID)
	})
}

// ApproveSummaryLevel1 implements ApprovalHandler.
func (h *approvalHandlerImpl) ApproveSummaryLevel1(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(requestID, actorID string) (approval.StatusResponse, error) {
		return h.approvalService.ApproveSummaryLevel1(r.Context(), requestID, actorID)
	})
}

// ApproveSummaryFinal implements ApprovalHandler.
func (h *approvalHandlerImpl) ApproveSummaryFinal(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(requestID, actorID string) (approval.StatusResponse, error) {
		return h.approvalService.ApproveSummaryFinal(r.Context(), requestID, actorID)
	})
}

// RejectSummary implements ApprovalHandler.
func (h *approvalHandlerImpl) RejectSummary(w http.ResponseWriter, r *http.Request) {
	h.reject(w, r, func(requestID, actorID, reason string) (approval.StatusResponse, error) {
		return h.approvalService.RejectSummary(r.Context(), requestID, actorID, reason)
	})
}

// CancelSummary implements ApprovalHandler.
func (h *approvalHandlerImpl) CancelSummary(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(requestID, actorID string) (approval.StatusResponse, error) {
		return h.approvalService.CancelSummary(r.Context(), requestID, actorID)
	})
}
