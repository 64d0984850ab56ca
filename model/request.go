package model

import (
	"fmt"
	"sort"
	"strings"
)

// ReportRequest maps "<report-name>.<provider-name>" keys to an enabled flag.
// Exactly one request source populates it per run.
type ReportRequest map[string]bool

// RequestKey builds the canonical request key for a report.
func RequestKey(report, provider string) string {
	return report + "." + provider
}

// SplitRequestKey breaks a request key into report and provider names.
func SplitRequestKey(key string) (report, provider string, err error) {
	idx := strings.LastIndex(key, ".")
	if idx <= 0 || idx == len(key)-1 {
		return "", "", fmt.Errorf("malformed report request key %q", key)
	}
	return key[:idx], key[idx+1:], nil
}

// Enabled reports whether a specific report of a provider was requested.
func (r ReportRequest) Enabled(report, provider string) bool {
	return r[RequestKey(report, provider)]
}

// ProviderEnabled reports whether at least one report of the provider was
// requested. This is the provider enablement rule for the whole run.
func (r ReportRequest) ProviderEnabled(provider string) bool {
	for key, enabled := range r {
		if !enabled {
			continue
		}
		if _, p, err := SplitRequestKey(key); err == nil && p == provider {
			return true
		}
	}
	return false
}

// EnabledReportsFor returns the sorted report names requested for a provider.
func (r ReportRequest) EnabledReportsFor(provider string) []string {
	var names []string
	for key, enabled := range r {
		if !enabled {
			continue
		}
		if name, p, err := SplitRequestKey(key); err == nil && p == provider {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// EnabledCount returns how many reports are requested across all providers.
func (r ReportRequest) EnabledCount() int {
	count := 0
	for _, enabled := range r {
		if enabled {
			count++
		}
	}
	return count
}

// SoleProvider returns the provider name if every enabled report belongs to
// one provider, and "" otherwise. The precondition failure policy keys on it.
func (r ReportRequest) SoleProvider() string {
	sole := ""
	for key, enabled := range r {
		if !enabled {
			continue
		}
		_, provider, err := SplitRequestKey(key)
		if err != nil {
			continue
		}
		if sole == "" {
			sole = provider
			continue
		}
		if sole != provider {
			return ""
		}
	}
	return sole
}
