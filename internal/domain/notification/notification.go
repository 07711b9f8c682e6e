package notification

import "context"

// Type labels the event that produced a notification.
type Type string

const (
	TypeCheckIn                Type = "attendance_check_in"
	TypeCheckOut               Type = "attendance_check_out"
	TypeRequestLevel1Approved  Type = "request_level1_approved"
	TypeRequestApproved        Type = "request_approved"
	TypeRequestRejected        Type = "request_rejected"
	TypeRequestCancelled       Type = "request_cancelled"
	TypePotentialOvertimeFound Type = "potential_overtime_found"
)

// Notification is a follow-up message for an employee. Delivery happens in
// an external collaborator; the core only enqueues.
type Notification struct {
	RecipientID string
	Type        Type
	Title       string
	Message     string
	Data        map[string]interface{}
}

// Notifier dispatches notifications without blocking the caller. Enqueue
// must never fail the business operation that triggered it.
type Notifier interface {
	Enqueue(ctx context.Context, n Notification)
}
