package runcontext_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

func TestNewDefaultsToSyncMode(t *testing.T) {
	t.Parallel()

	rc, err := runcontext.New(model.Flags{}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, model.ExecutionSync, rc.Mode)
}

func TestNewRejectsUnsupportedExecutionMode(t *testing.T) {
	t.Parallel()

	_, err := runcontext.New(model.Flags{ExecutionMode: "async"}, io.Discard)
	require.ErrorIs(t, err, model.ErrInvalidExecutionType)
	assert.ErrorContains(t, err, "async")
}

func TestNewFlagOverridesConfiguration(t *testing.T) {
	t.Parallel()

	rc, err := runcontext.New(model.Flags{
		Region:   "eu-west-1",
		CurTable: "billing_v2",
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", rc.Config.AWSRegion)
	assert.Equal(t, "billing_v2", rc.Config.CurTable)
}
