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

type overtimeRequestRepository struct {
	db *database.DB
}

func NewOvertimeRequestRepository(db *database.DB) approval.OvertimeRequestRepository {
	return &overtimeRequestRepository{db: db}
}

const overtimeRequestColumns = `
	id, employee_id, date, hours_requested, work_description, amount,
	status, level1_approver_id, level1_approved_at,
	final_approver_id, final_approved_at,
	rejection_reason, rejection_stage,
	version, created_at, updated_at
`

func scanOvertimeRequest(row pgx.Row) (approval.OvertimeRequest, error) {
	var req approval.OvertimeRequest
	var status string
	var stage *string

	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.HoursRequested, &req.WorkDescription, &req.Amount,
		&status, &req.Level1ApproverID, &req.Level1ApprovedAt,
		&req.FinalApproverID, &req.FinalApprovedAt,
		&req.RejectionReason, &stage,
		&req.Version, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return approval.OvertimeRequest{}, err
	}

	req.Status = approval.Status(status)
	if stage != nil {
		s := approval.RejectionStage(*stage)
		req.RejectionStage = &s
	}

	return req, nil
}

// Create implements approval.OvertimeRequestRepository.
func (r *overtimeRequestRepository) Create(ctx context.Context, req approval.OvertimeRequest) (approval.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (
			id, employee_id, date, hours_requested, work_description, amount, status, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, 1)
		RETURNING ` + overtimeRequestColumns

	created, err := scanOvertimeRequest(q.QueryRow(ctx, query,
		uuid.NewString(),
		req.EmployeeID,
		req.Date.Format("2006-01-02"),
		req.HoursRequested,
		req.WorkDescription,
		req.Amount,
		string(req.Status),
	))
	if err != nil {
		return approval.OvertimeRequest{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return created, nil
}

// GetByID implements approval.OvertimeRequestRepository.
func (r *overtimeRequestRepository) GetByID(ctx context.Context, id string) (approval.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeRequestColumns + ` FROM overtime_requests WHERE id = $1`

	req, err := scanOvertimeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.OvertimeRequest{}, approval.ErrRequestNotFound
		}
		return approval.OvertimeRequest{}, fmt.Errorf("failed to get overtime request: %w", err)
	}

	return req, nil
}

// Save implements approval.OvertimeRequestRepository. The version check
// loses against any concurrent writer; the caller maps the conflict to an
// invalid-transition error.
func (r *overtimeRequestRepository) Save(ctx context.Context, req approval.OvertimeRequest) (approval.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	var stage *string
	if req.RejectionStage != nil {
		s := string(*req.RejectionStage)
		stage = &s
	}

	query := `
		UPDATE overtime_requests SET
			status = $1,
			level1_approver_id = $2, level1_approved_at = $3,
			final_approver_id = $4, final_approved_at = $5,
			rejection_reason = $6, rejection_stage = $7,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $8 AND version = $9
		RETURNING ` + overtimeRequestColumns

	saved, err := scanOvertimeRequest(q.QueryRow(ctx, query,
		string(req.Status),
		req.Level1ApproverID, req.Level1ApprovedAt,
		req.FinalApproverID, req.FinalApprovedAt,
		req.RejectionReason, stage,
		req.ID, req.Version,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.OvertimeRequest{}, approval.ErrVersionConflict
		}
		return approval.OvertimeRequest{}, fmt.Errorf("failed to save overtime request: %w", err)
	}

	return saved, nil
}
