package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/approval"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type monthlySummaryRequestRepository struct {
	db *database.DB
}

func NewMonthlySummaryRequestRepository(db *database.DB) approval.MonthlySummaryRequestRepository {
	return &monthlySummaryRequestRepository{db: db}
}

const summaryRequestColumns = `
	id, employee_id, period,
	include_attendance, include_overtime, include_lateness, priority,
	status, level1_approver_id, level1_approved_at,
	final_approver_id, final_approved_at,
	rejection_reason, rejection_stage,
	version, created_at, updated_at
`

func scanSummaryRequest(row pgx.Row) (approval.MonthlySummaryRequest, error) {
	var req approval.MonthlySummaryRequest
	var status string
	var stage *string

	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Period,
		&req.IncludeAttendance, &req.IncludeOvertime, &req.IncludeLateness, &req.Priority,
		&status, &req.Level1ApproverID, &req.Level1ApprovedAt,
		&req.FinalApproverID, &req.FinalApprovedAt,
		&req.RejectionReason, &stage,
		&req.Version, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return approval.MonthlySummaryRequest{}, err
	}

	req.Status = approval.Status(status)
	if stage != nil {
		s := approval.RejectionStage(*stage)
		req.RejectionStage = &s
	}

	return req, nil
}

// Create implements approval.MonthlySummaryRequestRepository.
func (r *monthlySummaryRequestRepository) Create(ctx context.Context, req approval.MonthlySummaryRequest) (approval.MonthlySummaryRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_summary_requests (
			id, employee_id, period,
			include_attendance, include_overtime, include_lateness, priority,
			status, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
		RETURNING ` + summaryRequestColumns

	created, err := scanSummaryRequest(q.QueryRow(ctx, query,
		uuid.NewString(),
		req.EmployeeID,
		req.Period,
		req.IncludeAttendance,
		req.IncludeOvertime,
		req.IncludeLateness,
		req.Priority,
		string(req.Status),
	))
	if err != nil {
		return approval.MonthlySummaryRequest{}, fmt.Errorf("failed to create monthly summary request: %w", err)
	}

	return created, nil
}

// GetByID implements approval.MonthlySummaryRequestRepository.
func (r *monthlySummaryRequestRepository) GetByID(ctx context.Context, id string) (approval.MonthlySummaryRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + summaryRequestColumns + ` FROM monthly_summary_requests WHERE id = $1`

	req, err := scanSummaryRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.MonthlySummaryRequest{}, approval.ErrRequestNotFound
		}
		return approval.MonthlySummaryRequest{}, fmt.Errorf("failed to get monthly summary request: %w", err)
	}

	return req, nil
}

// Save implements approval.MonthlySummaryRequestRepository with the same
// optimistic version check as overtime requests.
func (r *monthlySummaryRequestRepository) Save(ctx context.Context, req approval.MonthlySummaryRequest) (approval.MonthlySummaryRequest, error) {
	q := GetQuerier(ctx, r.db)

	var stage *string
	if req.RejectionStage != nil {
		s := string(*req.RejectionStage)
		stage = &s
	}

	query := `
		UPDATE monthly_summary_requests SET
			status = $1,
			level1_approver_id = $2, level1_approved_at = $3,
			final_approver_id = $4, final_approved_at = $5,
			rejection_reason = $6, rejection_stage = $7,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $8 AND version = $9
		RETURNING ` + summaryRequestColumns

	saved, err := scanSummaryRequest(q.QueryRow(ctx, query,
		string(req.Status),
		req.Level1ApproverID, req.Level1ApprovedAt,
		req.FinalApproverID, req.FinalApprovedAt,
		req.RejectionReason, stage,
		req.ID, req.Version,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.MonthlySummaryRequest{}, approval.ErrVersionConflict
		}
		return approval.MonthlySummaryRequest{}, fmt.Errorf("failed to save monthly summary request: %w", err)
	}

	return saved, nil
}
