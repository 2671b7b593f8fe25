package worker

import "time"

type Worker struct {
	ID       string
	Name     string
	Role     string
	IsActive bool
	// HasDiscount opts the worker into discount deduction during payroll.
	HasDiscount bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
