package model

type Flags struct {
	// Report request sources, highest priority first. Exactly one is used.
	SSMParameter string // fetch the request YAML from SSM Parameter Store
	RequestFile  string // explicit local request YAML
	Checks       []string
	// default local YAML is picked up when none of the above are set

	// Execution
	ExecutionMode string

	// AWS-specific flags
	Region  string
	Profile string

	// Billing export overrides
	CurDatabase string
	CurTable    string
	CurRegion   string

	// Azure-specific flags
	Subscription string

	// GCP-specific flags
	Project        string
	BillingAccount string

	// Output
	OutputDir string
	NoChart   bool
}
