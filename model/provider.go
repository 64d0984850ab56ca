package model

import "errors"

// ProviderState is the per-provider lifecycle position driven by the
// execution controller. States move forward only; SkippedNotEnrolled,
// Fetched and Failed are terminal for the run.
type ProviderState int

const (
	ProviderDiscovered ProviderState = iota
	ProviderInstantiated
	ProviderAuthenticated
	ProviderConfiguredChecked
	ProviderSkippedNotEnrolled
	ProviderMandatoryReportsRun
	ProviderRunning
	ProviderFetched
	ProviderFailed
)

func (s ProviderState) String() string {
	switch s {
	case ProviderDiscovered:
		return "Discovered"
	case ProviderInstantiated:
		return "Instantiated"
	case ProviderAuthenticated:
		return "Authenticated"
	case ProviderConfiguredChecked:
		return "ConfiguredChecked"
	case ProviderSkippedNotEnrolled:
		return "SkippedNotEnrolled"
	case ProviderMandatoryReportsRun:
		return "MandatoryReportsRun"
	case ProviderRunning:
		return "Running"
	case ProviderFetched:
		return "Fetched"
	case ProviderFailed:
		return "Failed"
	}
	return "Unknown"
}

// Terminal reports whether the provider takes no further part in the run.
func (s ProviderState) Terminal() bool {
	return s == ProviderSkippedNotEnrolled || s == ProviderFetched || s == ProviderFailed
}

// ExecutionMode is the run-wide strategy for driving providers. Only
// ExecutionSync is valid; anything else is rejected before any provider runs.
type ExecutionMode string

const (
	ExecutionSync  ExecutionMode = "sync"
	ExecutionAsync ExecutionMode = "async"
)

// Valid reports whether the mode is supported.
func (m ExecutionMode) Valid() bool {
	return m == ExecutionSync
}

// ErrInvalidExecutionType rejects a run whose execution mode is not
// supported, before any report work starts.
var ErrInvalidExecutionType = errors.New("invalid execution type")

// ReportKind distinguishes a base run from a dependency run of a report set.
type ReportKind string

const (
	ReportKindBase      ReportKind = "base"
	ReportKindDependent ReportKind = "dependent"
)
