// SPDX-License-Identifier: MIT

package mihomo

// Rule is a routing rule as reported by the daemon. The backend passes these
// through untouched; matching happens entirely inside the daemon.
type Rule struct {
	Type    string `json:"type"`
	Payload string `json:"payload"`
	Proxy   string `json:"proxy"`
	Size    int    `json:"size"`
}

// RuleProvider is an external rule source the daemon pulls rules from.
type RuleProvider struct {
	Name        string `json:"name"`
	Behavior    string `json:"behavior"`
	Format      string `json:"format"`
	Type        string `json:"type"`
	VehicleType string `json:"vehicleType"`
	RuleCount   int    `json:"ruleCount"`
	UpdatedAt   string `json:"updatedAt"`
}

type rulesResponse struct {
	Rules []Rule `json:"rules"`
}

type ruleProvidersResponse struct {
	Providers map[string]RuleProvider `json:"providers"`
}
