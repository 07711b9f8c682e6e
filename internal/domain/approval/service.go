package approval

import "context"

// ApprovalService runs the shared two-level workflow for both request
// types. Every transition returns the resulting workflow snapshot.
type ApprovalService interface {
	CreateOvertimeRequest(ctx context.Context, req CreateOvertimeRequest) (OvertimeRequest, error)
	ApproveOvertimeLevel1(ctx context.Context, requestID, actorID string) (StatusResponse, error)
	ApproveOvertimeFinal(ctx context.Context, requestID, actorID string) (StatusResponse, error)
	RejectOvertime(ctx context.Context, requestID, actorID, reason string) (StatusResponse, error)
	CancelOvertime(ctx context.Context, requestID, actorID string) (StatusResponse, error)

	CreateMonthlySummaryRequest(ctx context.Context, req CreateMonthlySummaryRequest) (MonthlySummaryRequest, error)
	ApproveSummaryLevel1(ctx context.Context, requestID, actorID string) (StatusResponse, error)
	ApproveSummaryFinal(ctx context.Context, requestID, actorID string) (StatusResponse, error)
	RejectSummary(ctx context.Context, requestID, actorID, reason string) (StatusResponse, error)
	CancelSummary(ctx context.Context, requestID, actorID string) (StatusResponse, error)
}
