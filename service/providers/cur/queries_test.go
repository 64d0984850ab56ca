package cur

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cost-advisor/model"
	"github.com/elC0mpa/cost-advisor/service/runcontext"
)

func newTestProvider(t *testing.T, facts model.DerivedFacts) *provider {
	t.Helper()

	rc, err := runcontext.New(model.Flags{}, io.Discard)
	require.NoError(t, err)
	rc.SetDerivedFacts(facts)

	built, err := NewProvider(rc)
	require.NoError(t, err)

	p, ok := built.(*provider)
	require.True(t, ok)
	p.table = "billing_export"
	return p
}

func TestQueriesUseVariantColumns(t *testing.T) {
	t.Parallel()

	legacy := newTestProvider(t, model.DerivedFacts{SchemaVariant: model.SchemaLegacy})
	assert.Contains(t, legacy.avgInstanceCostQuery(), "product_instance_type")
	assert.Contains(t, legacy.avgInstanceCostQuery(), "billing_export")

	v2 := newTestProvider(t, model.DerivedFacts{SchemaVariant: model.SchemaV2})
	assert.Contains(t, v2.avgInstanceCostQuery(), "product['instance_type']")

	focus := newTestProvider(t, model.DerivedFacts{SchemaVariant: model.SchemaFocus})
	assert.Contains(t, focus.avgInstanceCostQuery(), "billedcost")
	assert.NotContains(t, focus.avgInstanceCostQuery(), "line_item_unblended_cost")

	// the unknown variant falls back to the legacy layout
	unknown := newTestProvider(t, model.DerivedFacts{SchemaVariant: model.SchemaUnknown})
	assert.Contains(t, unknown.avgInstanceCostQuery(), "product_instance_type")
}

func TestIdleNatGatewaysQueryHonorsResourceIDFact(t *testing.T) {
	t.Parallel()

	with := newTestProvider(t, model.DerivedFacts{SchemaVariant: model.SchemaLegacy, ResourceIDExists: true})
	assert.Contains(t, with.idleNatGatewaysQuery(), model.ResourceIDColumn)

	without := newTestProvider(t, model.DerivedFacts{SchemaVariant: model.SchemaLegacy})
	assert.NotContains(t, without.idleNatGatewaysQuery(), model.ResourceIDColumn)
	assert.Contains(t, without.idleNatGatewaysQuery(), "'shared'")
}

func TestSumColumn(t *testing.T) {
	t.Parallel()

	table := &model.ResultTable{
		Columns: []string{"instance_type", "total_cost"},
		Rows: [][]string{
			{"m5.large", "100.50"},
			{"c5.xlarge", "49.50"},
			{"r5.large", "not-a-number"},
			{"t3.micro"},
		},
	}

	assert.InDelta(t, 150.0, sumColumn(table, "total_cost"), 0.001)
	assert.Zero(t, sumColumn(table, "missing"))
}

func TestGravitonQueryExcludesGravitonFamilies(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, model.DerivedFacts{SchemaVariant: model.SchemaLegacy})
	query := p.gravitonCandidatesQuery()
	assert.True(t, strings.Contains(query, "NOT LIKE"))
	assert.Contains(t, query, "AmazonEC2")
}
