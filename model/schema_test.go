package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		columns []string
		want    SchemaVariant
	}{
		{
			name:    "legacy marker",
			columns: []string{"line_item_usage_type", "product_instance_type_family"},
			want:    SchemaLegacy,
		},
		{
			name:    "v2 marker",
			columns: []string{"line_item_usage_type", "product"},
			want:    SchemaV2,
		},
		{
			name:    "focus marker",
			columns: []string{"billedcost", "contractedunitprice"},
			want:    SchemaFocus,
		},
		{
			name:    "no marker",
			columns: []string{"line_item_usage_type", "line_item_unblended_cost"},
			want:    SchemaUnknown,
		},
		{
			name:    "empty column list",
			columns: nil,
			want:    SchemaUnknown,
		},
		{
			// legacy marker is checked before the v2 one, so a table
			// carrying both classifies as legacy
			name:    "marker priority",
			columns: []string{"product", "product_instance_type_family", "contractedunitprice"},
			want:    SchemaLegacy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifySchema(tt.columns))
		})
	}
}

func TestDefaultFacts(t *testing.T) {
	t.Parallel()

	facts := DefaultFacts()
	assert.Equal(t, SchemaUnknown, facts.SchemaVariant)
	assert.False(t, facts.ResourceIDExists)
}
