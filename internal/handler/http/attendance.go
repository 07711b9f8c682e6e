package http

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	LatenessPrecheck(w http.ResponseWriter, r *http.Request)
	PotentialOvertime(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// employeeIDFromClaims pulls the acting employee out of the verified JWT.
func employeeIDFromClaims(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	employeeID, ok := claims["employee_id"].(string)
	return employeeID, ok && employeeID != ""
}

func sourceIP(r *http.Request) *string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return nil
	}
	return &host
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID
	req.SourceIP = sourceIP(r)

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID
	req.SourceIP = sourceIP(r)

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LatenessPrecheck implements AttendanceHandler. Read-only: lets a client
// show "you would be N minutes late" before the actual check-in.
func (h *attendanceHandlerImpl) LatenessPrecheck(w http.ResponseWriter, r *http.Request) {
	at := time.Now().UTC()
	if atParam := r.URL.Query().Get("at"); atParam != "" {
		parsed, ok := validator.IsValidDateTime(atParam)
		if !ok {
			response.BadRequest(w, "Query parameter 'at' must be an RFC3339 timestamp", nil)
			return
		}
		at = parsed
	}

	result, err := h.attendanceService.EvaluateLateness(r.Context(), at)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PotentialOvertime implements AttendanceHandler.
func (h *attendanceHandlerImpl) PotentialOvertime(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	from, okFrom := validator.IsValidDate(r.URL.Query().Get("from"))
	to, okTo := validator.IsValidDate(r.URL.Query().Get("to"))
	if !okFrom || !okTo {
		response.BadRequest(w, "Query parameters 'from' and 'to' must be dates in YYYY-MM-DD form", nil)
		return
	}
	if to.Before(from) {
		response.BadRequest(w, "'to' must not be before 'from'", nil)
		return
	}

	candidates, err := h.attendanceService.PotentialOvertime(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, candidates)
}
