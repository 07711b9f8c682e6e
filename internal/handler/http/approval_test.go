package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/approval"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubApprovalService overrides the create operations; the embedded
// interface panics on anything else a test should not reach.
type stubApprovalService struct {
	approval.ApprovalService
	overtime approval.OvertimeRequest
	summary  approval.MonthlySummaryRequest
}

func (s *stubApprovalService) CreateOvertimeRequest(_ context.Context, req approval.CreateOvertimeRequest) (approval.OvertimeRequest, error) {
	out := s.overtime
	out.EmployeeID = req.EmployeeID
	return out, nil
}

func (s *stubApprovalService) CreateMonthlySummaryRequest(_ context.Context, req approval.CreateMonthlySummaryRequest) (approval.MonthlySummaryRequest, error) {
	out := s.summary
	out.EmployeeID = req.EmployeeID
	return out, nil
}

func withClaims(t *testing.T, r *http.Request, claims map[string]interface{}) *http.Request {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return r.WithContext(jwtauth.NewContext(r.Context(), token, nil))
}

func TestCreateOvertimeRequest_RespondsCreated(t *testing.T) {
	t.Parallel()
	h := NewApprovalHandler(&stubApprovalService{
		overtime: approval.OvertimeRequest{ID: "ot-1", Status: approval.StatusPending},
	})

	body := strings.NewReader(`{"date":"2024-03-14","hours_requested":2,"work_description":"release support"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/overtime-requests", body)
	r = withClaims(t, r, map[string]interface{}{"employee_id": "emp-1", "type": "access"})
	w := httptest.NewRecorder()

	h.CreateOvertimeRequest(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp response.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Overtime request created", resp.Message)
}

func TestCreateMonthlySummaryRequest_RespondsCreated(t *testing.T) {
	t.Parallel()
	h := NewApprovalHandler(&stubApprovalService{
		summary: approval.MonthlySummaryRequest{ID: "ms-1", Status: approval.StatusPending},
	})

	body := strings.NewReader(`{"period":"2024-03","include_attendance":true}`)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/monthly-summary-requests", body)
	r = withClaims(t, r, map[string]interface{}{"employee_id": "emp-1", "type": "access"})
	w := httptest.NewRecorder()

	h.CreateMonthlySummaryRequest(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp response.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Monthly summary request created", resp.Message)
}

func TestCreateOvertimeRequest_MissingClaims(t *testing.T) {
	t.Parallel()
	h := NewApprovalHandler(&stubApprovalService{})

	r := httptest.NewRequest(http.MethodPost, "/api/v1/overtime-requests", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.CreateOvertimeRequest(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
