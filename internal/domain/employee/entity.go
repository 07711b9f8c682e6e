package employee

import "time"

// Hourly wage convention: monthly base salary over 22 workdays of 8 hours.
// The divisor is fixed regardless of the configured schedule; changing it
// would change payout amounts.
const wageDivisorHours = 22 * 8

type Employee struct {
	ID                string
	Name              string
	DivisionID        string
	MonthlyBaseSalary *float64

	// Approval capabilities. Division approvers may act on requests from
	// their own division; org approvers may act on any request.
	CanApproveDivision bool
	CanApproveOrg      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HourlyWage derives the wage used for overtime amounts. Employees without
// a configured salary accrue no paid overtime, so this returns 0 rather
// than an error.
func (e Employee) HourlyWage() float64 {
	if e.MonthlyBaseSalary == nil {
		return 0
	}
	return *e.MonthlyBaseSalary / wageDivisorHours
}

// HasDivisionAuthorityOver reports whether e may grant level-1 approval
// for an employee in divisionID.
func (e Employee) HasDivisionAuthorityOver(divisionID string) bool {
	return e.CanApproveDivision && e.DivisionID == divisionID
}

// HasOrgAuthority reports whether e may grant final approval.
func (e Employee) HasOrgAuthority() bool {
	return e.CanApproveOrg
}
