package model

import "fmt"

// ReportStatus tracks a report through its run lifecycle. Transitions only
// move forward; a report never returns to Pending once it has started.
type ReportStatus int

const (
	ReportPending ReportStatus = iota
	ReportInProgress
	ReportCompleted
	ReportFailed
)

func (s ReportStatus) String() string {
	switch s {
	case ReportPending:
		return "Pending"
	case ReportInProgress:
		return "InProgress"
	case ReportCompleted:
		return "Completed"
	case ReportFailed:
		return "Failed"
	}
	return "Unknown"
}

// Terminal reports whether no further transition is allowed.
func (s ReportStatus) Terminal() bool {
	return s == ReportCompleted || s == ReportFailed
}

// CanAdvanceTo reports whether a transition from s to next is legal.
func (s ReportStatus) CanAdvanceTo(next ReportStatus) bool {
	return next > s
}

// Domain classifies what part of the cloud estate a check looks at.
type Domain string

const (
	DomainCompute  Domain = "COMPUTE"
	DomainStorage  Domain = "STORAGE"
	DomainDatabase Domain = "DATABASE"
	DomainNetwork  Domain = "NETWORK"
	DomainBilling  Domain = "BILLING"
	DomainOther    Domain = "OTHER"
)

// ResultTable is the opaque tabular payload produced by a check.
type ResultTable struct {
	Columns []string
	Rows    [][]string
}

// RowCount returns the number of data rows in the table.
func (t *ResultTable) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// FailureDetail captures why a report failed, for the run summary and logs.
type FailureDetail struct {
	Message string
	Events  []string
}

// ReportResult holds everything a single check produced during one run.
type ReportResult struct {
	Status       ReportStatus
	Data         ResultTable
	Savings      *float64 // nil when the check does not estimate savings
	ExecutionIDs []string // query/job ids from the underlying API
	Failure      *FailureDetail
}

// Advance moves the result forward in its lifecycle. Backward transitions
// are rejected so a collected report can never be resurrected.
func (r *ReportResult) Advance(next ReportStatus) error {
	if !r.Status.CanAdvanceTo(next) {
		return fmt.Errorf("illegal report status transition %s -> %s", r.Status, next)
	}
	r.Status = next
	return nil
}

// Fail marks the result failed and records the failure detail.
func (r *ReportResult) Fail(err error, events ...string) {
	r.Status = ReportFailed
	r.Failure = &FailureDetail{Message: err.Error(), Events: events}
}

// SavingsOrZero treats a missing savings estimate as contributing zero.
func (r *ReportResult) SavingsOrZero() float64 {
	if r.Savings == nil {
		return 0
	}
	return *r.Savings
}
