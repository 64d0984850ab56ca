package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRequestKey(t *testing.T) {
	t.Parallel()

	report, provider, err := SplitRequestKey("graviton_savings.cur")
	require.NoError(t, err)
	assert.Equal(t, "graviton_savings", report)
	assert.Equal(t, "cur", provider)

	// report names may themselves contain dots; the provider is the last
	// segment
	report, provider, err = SplitRequestKey("trend.v2.ce")
	require.NoError(t, err)
	assert.Equal(t, "trend.v2", report)
	assert.Equal(t, "ce", provider)

	for _, malformed := range []string{"", "nodot", ".cur", "report."} {
		_, _, err := SplitRequestKey(malformed)
		assert.Error(t, err, "key %q should be rejected", malformed)
	}
}

func TestProviderEnabled(t *testing.T) {
	t.Parallel()

	request := ReportRequest{
		"graviton_savings.cur":  true,
		"idle_nat_gateways.cur": false,
		"monthly_costs.ce":      true,
	}

	assert.True(t, request.ProviderEnabled("cur"))
	assert.True(t, request.ProviderEnabled("ce"))
	assert.False(t, request.ProviderEnabled("gcp"))

	// a provider whose only reports are disabled is not enabled
	disabled := ReportRequest{"rightsizing.co": false}
	assert.False(t, disabled.ProviderEnabled("co"))
}

func TestEnabledReportsForIsSorted(t *testing.T) {
	t.Parallel()

	request := ReportRequest{
		"unused_elastic_ips.ec2": true,
		"stopped_instances.ec2":  true,
		"unused_ebs_volumes.ec2": true,
		"monthly_costs.ce":       true,
	}

	assert.Equal(t,
		[]string{"stopped_instances", "unused_ebs_volumes", "unused_elastic_ips"},
		request.EnabledReportsFor("ec2"))
}

func TestSoleProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		request ReportRequest
		want    string
	}{
		{
			name:    "single provider",
			request: ReportRequest{"graviton_savings.cur": true, "idle_nat_gateways.cur": true},
			want:    "cur",
		},
		{
			name:    "multiple providers",
			request: ReportRequest{"graviton_savings.cur": true, "monthly_costs.ce": true},
			want:    "",
		},
		{
			name:    "disabled entries do not count",
			request: ReportRequest{"graviton_savings.cur": true, "monthly_costs.ce": false},
			want:    "cur",
		},
		{
			name:    "empty request",
			request: ReportRequest{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.request.SoleProvider())
		})
	}
}

func TestEnabledCount(t *testing.T) {
	t.Parallel()

	request := ReportRequest{
		"a.cur": true,
		"b.cur": false,
		"c.ce":  true,
	}
	assert.Equal(t, 2, request.EnabledCount())
}
