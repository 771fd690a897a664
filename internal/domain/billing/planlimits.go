package billing

// PlanTier is the subscription level determining feature flags and quotas.
type PlanTier string

const (
	TierFree    PlanTier = "free"
	TierStarter PlanTier = "starter"
	TierPro     PlanTier = "pro"
	TierAgency  PlanTier = "agency"
)

func (t PlanTier) IsValid() bool {
	switch t {
	case TierFree, TierStarter, TierPro, TierAgency:
		return true
	}
	return false
}

// Feature is a gated product capability.
type Feature string

const (
	FeatureMessaging Feature = "messaging"
	FeatureChat      Feature = "chat"
	FeatureSearch    Feature = "search"
)

// Metric names a metered unit of consumption.
type Metric string

const (
	MetricChat   Metric = "chat"
	MetricSearch Metric = "search"
)

// PlanLimits carries the feature flags and billing-period quotas for a plan
// tier. A nil limit means unlimited.
type PlanLimits struct {
	AllowMessaging bool
	AllowChat      bool
	AllowSearch    bool
	ChatLimit      *int
	SearchLimit    *int
}

// Allows reports whether the plan includes the feature.
func (l PlanLimits) Allows(feature Feature) bool {
	switch feature {
	case FeatureMessaging:
		return l.AllowMessaging
	case FeatureChat:
		return l.AllowChat
	case FeatureSearch:
		return l.AllowSearch
	}
	return false
}

// LimitFor returns the quota for a metric, or nil when unlimited.
func (l PlanLimits) LimitFor(metric Metric) *int {
	switch metric {
	case MetricChat:
		return l.ChatLimit
	case MetricSearch:
		return l.SearchLimit
	}
	return nil
}

func intPtr(v int) *int { return &v }

// planLimitsByTier is the static entitlement table. Tiers without an entry
// are treated as requiring an upgrade.
var planLimitsByTier = map[PlanTier]PlanLimits{
	TierFree: {
		AllowMessaging: false,
		AllowChat:      true,
		AllowSearch:    true,
		ChatLimit:      intPtr(5),
		SearchLimit:    intPtr(10),
	},
	TierStarter: {
		AllowMessaging: true,
		AllowChat:      true,
		AllowSearch:    true,
		ChatLimit:      intPtr(25),
		SearchLimit:    intPtr(50),
	},
	TierPro: {
		AllowMessaging: true,
		AllowChat:      true,
		AllowSearch:    true,
		ChatLimit:      intPtr(200),
		SearchLimit:    intPtr(500),
	},
	TierAgency: {
		AllowMessaging: true,
		AllowChat:      true,
		AllowSearch:    true,
		ChatLimit:      nil,
		SearchLimit:    nil,
	},
}

// LimitsForTier looks up the static plan table.
func LimitsForTier(tier PlanTier) (PlanLimits, bool) {
	limits, ok := planLimitsByTier[tier]
	return limits, ok
}
