package employee

import "context"

// EmployeeRepository resolves wage and authority inputs for evaluations.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
}
