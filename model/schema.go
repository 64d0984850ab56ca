package model

// SchemaVariant identifies which billing-export schema generation a table
// uses. The variant changes how later reports build their queries.
type SchemaVariant string

const (
	SchemaLegacy  SchemaVariant = "legacy"
	SchemaV2      SchemaVariant = "v2.0"
	SchemaFocus   SchemaVariant = "focus"
	SchemaUnknown SchemaVariant = "Unknown"
)

// schemaMarker maps a marker column to the variant it indicates. Order
// matters: the first marker found in the column list wins.
type schemaMarker struct {
	Column  string
	Variant SchemaVariant
}

var schemaMarkers = []schemaMarker{
	{Column: "product_instance_type_family", Variant: SchemaLegacy},
	{Column: "product", Variant: SchemaV2},
	{Column: "contractedunitprice", Variant: SchemaFocus},
}

// ResourceIDColumn is the column whose presence enables per-resource queries.
const ResourceIDColumn = "line_item_resource_id"

// ClassifySchema returns the billing-export variant for a column list,
// first-match-wins over the ordered marker rules.
func ClassifySchema(columns []string) SchemaVariant {
	for _, marker := range schemaMarkers {
		for _, column := range columns {
			if column == marker.Column {
				return marker.Variant
			}
		}
	}
	return SchemaUnknown
}

// DerivedFacts are the precondition resolver's outputs, consumed read-only
// by providers when building their queries.
type DerivedFacts struct {
	SchemaVariant    SchemaVariant
	ResourceIDExists bool
}

// DefaultFacts is what providers see when precondition resolution was
// skipped or failed in a degradable way.
func DefaultFacts() DerivedFacts {
	return DerivedFacts{SchemaVariant: SchemaUnknown}
}
