package approval

import (
	"github.com/presensia/attendance-backend-go/internal/domain/approval"
)

// The two-level transition rules, written once against the Approvable
// capability surface. Authorization is evaluated by the caller before a
// transition is applied; these functions only guard state.

// ApplyLevel1 grants division-level approval. Valid from pending only.
func ApplyLevel1(req approval.Approvable, grant approval.Approval) error {
	if req.CurrentStatus() != approval.StatusPending {
		return approval.ErrInvalidTransition
	}
	req.SetLevel1(grant)
	req.SetStatus(approval.StatusLevel1Approved)
	return nil
}

// ApplyFinal grants organization-wide approval. Valid from pending or
// level1_approved. When level 1 was skipped, it is back-filled with the
// same approver and instant so every approved record carries a level-1
// approval.
func ApplyFinal(req approval.Approvable, grant approval.Approval) error {
	switch req.CurrentStatus() {
	case approval.StatusPending, approval.StatusLevel1Approved:
	default:
		return approval.ErrInvalidTransition
	}
	if req.Level1() == nil {
		req.SetLevel1(grant)
	}
	req.SetFinal(grant)
	req.SetStatus(approval.StatusApproved)
	return nil
}

// ApplyReject rejects the request with a mandatory reason. Valid from
// pending or level1_approved. The stage is recorded for audit: a rejection
// before any level-1 approval is a level-1-stage rejection, afterwards a
// final-stage one. The terminal status is rejected either way.
func ApplyReject(req approval.Approvable, reason string) error {
	if reason == "" {
		return approval.ErrRejectionReasonRequired
	}
	switch req.CurrentStatus() {
	case approval.StatusPending, approval.StatusLevel1Approved:
	default:
		return approval.ErrInvalidTransition
	}

	stage := approval.RejectionStageFinal
	if req.Level1() == nil {
		stage = approval.RejectionStageLevel1
	}
	req.SetRejection(reason, stage)
	req.SetStatus(approval.StatusRejected)
	return nil
}

// ApplyCancel withdraws the request. Valid from pending only, and only by
// the original requester.
func ApplyCancel(req approval.Approvable, actorID string) error {
	if req.CurrentStatus() != approval.StatusPending {
		return approval.ErrInvalidTransition
	}
	if actorID != req.RequesterID() {
		return approval.ErrUnauthorized
	}
	req.SetStatus(approval.StatusCancelled)
	return nil
}
