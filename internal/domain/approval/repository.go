package approval

import "context"

// OvertimeRequestRepository persists manual overtime requests.
// Save applies an optimistic version check: the update only lands when the
// stored version matches the loaded one, otherwise ErrVersionConflict.
type OvertimeRequestRepository interface {
	Create(ctx context.Context, req OvertimeRequest) (OvertimeRequest, error)
	GetByID(ctx context.Context, id string) (OvertimeRequest, error)
	Save(ctx context.Context, req OvertimeRequest) (OvertimeRequest, error)
}

// MonthlySummaryRequestRepository persists monthly summary requests with
// the same optimistic-concurrency contract.
type MonthlySummaryRequestRepository interface {
	Create(ctx context.Context, req MonthlySummaryRequest) (MonthlySummaryRequest, error)
	GetByID(ctx context.Context, id string) (MonthlySummaryRequest, error)
	Save(ctx context.Context, req MonthlySummaryRequest) (MonthlySummaryRequest, error)
}
