package base

import "github.com/elC0mpa/cost-advisor/model"

// CheckInfo is the static metadata half of a check. Concrete checks embed
// it and implement only Run and Savings.
type CheckInfo struct {
	CheckName        string
	CheckCommonName  string
	CheckService     string
	CheckDomain      model.Domain
	CheckDescription string
	CheckReportType  string
	CheckDisabled    bool
	CheckMandatory   bool
	Precheck         bool
}

func (c CheckInfo) Name() string             { return c.CheckName }
func (c CheckInfo) CommonName() string       { return c.CheckCommonName }
func (c CheckInfo) ServiceName() string      { return c.CheckService }
func (c CheckInfo) DomainName() model.Domain { return c.CheckDomain }
func (c CheckInfo) Description() string      { return c.CheckDescription }
func (c CheckInfo) ReportType() string       { return c.CheckReportType }
func (c CheckInfo) Disabled() bool           { return c.CheckDisabled }
func (c *CheckInfo) Disable()                { c.CheckDisabled = true }
func (c CheckInfo) Mandatory() bool          { return c.CheckMandatory }
func (c CheckInfo) Precondition() bool       { return c.Precheck }
