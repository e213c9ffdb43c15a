package progression

// Entitlements are the purchase flags supplied by the billing collaborator.
// The engine only reads them.
type Entitlements struct {
	Premium  bool
	Lifetime bool
}

// HasPremium reports whether premium content is available.
func (e Entitlements) HasPremium() bool { return e.Premium || e.Lifetime }

// BypassesLevelGates reports whether level requirements are waived.
// Secret-gated features are never bypassed.
func (e Entitlements) BypassesLevelGates() bool { return e.Lifetime }
