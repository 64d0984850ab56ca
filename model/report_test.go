package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStatusTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    ReportStatus
		to      ReportStatus
		allowed bool
	}{
		{"pending to in progress", ReportPending, ReportInProgress, true},
		{"in progress to completed", ReportInProgress, ReportCompleted, true},
		{"in progress to failed", ReportInProgress, ReportFailed, true},
		{"completed to failed", ReportCompleted, ReportFailed, true},
		{"completed back to pending", ReportCompleted, ReportPending, false},
		{"failed to completed", ReportFailed, ReportCompleted, false},
		{"in progress back to pending", ReportInProgress, ReportPending, false},
		{"no self transition", ReportInProgress, ReportInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.allowed, tt.from.CanAdvanceTo(tt.to))
		})
	}
}

func TestReportResultAdvanceRejectsBackwardTransition(t *testing.T) {
	t.Parallel()

	result := &ReportResult{Status: ReportCompleted}
	err := result.Advance(ReportInProgress)
	require.Error(t, err)
	assert.Equal(t, ReportCompleted, result.Status, "status must not change on a rejected transition")
}

func TestReportResultFailRecordsDetail(t *testing.T) {
	t.Parallel()

	result := &ReportResult{Status: ReportInProgress}
	result.Fail(errors.New("query timed out"), "provider=cur report=graviton_savings phase=run")

	assert.Equal(t, ReportFailed, result.Status)
	require.NotNil(t, result.Failure)
	assert.Equal(t, "query timed out", result.Failure.Message)
	assert.Len(t, result.Failure.Events, 1)
}

func TestTerminalStatuses(t *testing.T) {
	t.Parallel()

	assert.False(t, ReportPending.Terminal())
	assert.False(t, ReportInProgress.Terminal())
	assert.True(t, ReportCompleted.Terminal())
	assert.True(t, ReportFailed.Terminal())
}

func TestSavingsOrZero(t *testing.T) {
	t.Parallel()

	result := &ReportResult{}
	assert.Zero(t, result.SavingsOrZero())

	savings := 42.5
	result.Savings = &savings
	assert.Equal(t, 42.5, result.SavingsOrZero())
}
