package response

// ProviderInfo describes one installed report provider.
type ProviderInfo struct {
	Name           string   `json:"name"`
	LongName       string   `json:"long_name"`
	RequiresRegion bool     `json:"requires_region"`
	Reports        []string `json:"reports"`
}

// ReportOutcome is one executed report with its final status and payload.
type ReportOutcome struct {
	Provider     string     `json:"provider"`
	Report       string     `json:"report"`
	CommonName   string     `json:"common_name"`
	Domain       string     `json:"domain"`
	Status       string     `json:"status"`
	Savings      float64    `json:"estimated_savings"`
	Columns      []string   `json:"columns,omitempty"`
	Rows         [][]string `json:"rows,omitempty"`
	ExecutionIDs []string   `json:"execution_ids,omitempty"`
	Failure      string     `json:"failure,omitempty"`
}

// RunSummary is the full outcome of one engine run.
type RunSummary struct {
	Completed    []ReportOutcome `json:"completed"`
	Failed       []ReportOutcome `json:"failed"`
	TotalSavings float64         `json:"total_estimated_savings"`
	Alerts       []Alert         `json:"alerts,omitempty"`
}

// Alert is one structured run event.
type Alert struct {
	Level    string `json:"level"`
	Provider string `json:"provider"`
	Report   string `json:"report,omitempty"`
	Message  string `json:"message"`
}

// RunRecord is one persisted past run.
type RunRecord struct {
	ID            int64   `json:"id"`
	StartedAt     string  `json:"started_at"`
	CompletedAt   string  `json:"completed_at"`
	Mode          string  `json:"mode"`
	Completed     int     `json:"completed"`
	Failed        int     `json:"failed"`
	TotalSavings  float64 `json:"total_savings"`
	SchemaVariant string  `json:"schema_variant"`
}
