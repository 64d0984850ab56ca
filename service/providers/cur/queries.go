package cur

import (
	"fmt"

	"github.com/elC0mpa/cost-advisor/model"
)

// columnSet maps the logical billing columns to their concrete names in
// each schema generation of the export table.
type columnSet struct {
	instanceType string
	usageType    string
	cost         string
	productCode  string
	usageAmount  string
}

func columnsFor(variant model.SchemaVariant) columnSet {
	switch variant {
	case model.SchemaV2:
		return columnSet{
			instanceType: "product['instance_type']",
			usageType:    "line_item_usage_type",
			cost:         "line_item_unblended_cost",
			productCode:  "line_item_product_code",
			usageAmount:  "line_item_usage_amount",
		}
	case model.SchemaFocus:
		return columnSet{
			instanceType: "x_servicedetails",
			usageType:    "chargedescription",
			cost:         "billedcost",
			productCode:  "servicename",
			usageAmount:  "consumedquantity",
		}
	default:
		// legacy layout also serves the Unknown variant as the best guess
		return columnSet{
			instanceType: "product_instance_type",
			usageType:    "line_item_usage_type",
			cost:         "line_item_unblended_cost",
			productCode:  "line_item_product_code",
			usageAmount:  "line_item_usage_amount",
		}
	}
}

func (p *provider) avgInstanceCostQuery() string {
	cols := columnsFor(p.RC.Facts().SchemaVariant)
	return fmt.Sprintf(`SELECT %s AS instance_type,
	ROUND(AVG(%s), 4) AS avg_cost
FROM %s
WHERE %s = 'AmazonEC2'
	AND %s LIKE '%%BoxUsage%%'
GROUP BY %s
ORDER BY avg_cost DESC`,
		cols.instanceType, cols.cost, p.table, cols.productCode, cols.usageType, cols.instanceType)
}

func (p *provider) gravitonCandidatesQuery() string {
	cols := columnsFor(p.RC.Facts().SchemaVariant)
	query := fmt.Sprintf(`SELECT %s AS instance_type,
	ROUND(SUM(%s), 2) AS total_cost
FROM %s
WHERE %s = 'AmazonEC2'
	AND %s LIKE '%%BoxUsage%%'
	AND %s NOT LIKE '%%g.%%'
	AND %s NOT LIKE '%%gd.%%'`,
		cols.instanceType, cols.cost, p.table, cols.productCode,
		cols.usageType, cols.instanceType, cols.instanceType)

	if p.RC.Facts().ResourceIDExists {
		query += fmt.Sprintf("\nGROUP BY %s\nORDER BY total_cost DESC", cols.instanceType)
	} else {
		query += fmt.Sprintf("\nGROUP BY %s", cols.instanceType)
	}
	return query
}

func (p *provider) idleNatGatewaysQuery() string {
	cols := columnsFor(p.RC.Facts().SchemaVariant)
	resourceCol := "'shared'"
	if p.RC.Facts().ResourceIDExists {
		resourceCol = model.ResourceIDColumn
	}
	return fmt.Sprintf(`SELECT %s AS resource_id,
	ROUND(SUM(CASE WHEN %s LIKE '%%NatGateway-Hours%%' THEN %s ELSE 0 END), 2) AS hourly_cost,
	ROUND(SUM(CASE WHEN %s LIKE '%%NatGateway-Bytes%%' THEN %s ELSE 0 END), 4) AS gb_processed
FROM %s
WHERE %s LIKE '%%NatGateway%%'
GROUP BY %s
HAVING SUM(CASE WHEN %s LIKE '%%NatGateway-Bytes%%' THEN %s ELSE 0 END) < 1
ORDER BY hourly_cost DESC`,
		resourceCol, cols.usageType, cols.cost, cols.usageType, cols.usageAmount,
		p.table, cols.usageType, resourceCol, cols.usageType, cols.usageAmount)
}
