package domain

import (
	"sort"
	"strings"
)

// Tier represents a subscription plan level.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierTeam       Tier = "team"
	TierEnterprise Tier = "enterprise"
)

// ParseTier maps a stored tier string to a known Tier. Unknown or corrupt
// values degrade to the most restrictive tier so a stale record can never
// escalate privilege.
func ParseTier(s string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierPro:
		return TierPro
	case TierTeam:
		return TierTeam
	case TierEnterprise:
		return TierEnterprise
	default:
		return TierFree
	}
}

// Feature identifies a gated capability.
type Feature string

const (
	FeatureBasicFocusTracking  Feature = "basic_focus_tracking"
	FeatureCalendarView        Feature = "calendar_view"
	FeatureAICoach             Feature = "ai_coach"
	FeatureAIProductivityCoach Feature = "ai_productivity_coach"
	FeatureAdvancedAnalytics   Feature = "advanced_analytics"
	FeatureGoogleCalendar      Feature = "google_calendar"
	FeatureMicrosoftCalendar   Feature = "microsoft_calendar"
	FeatureFocusRecommendation Feature = "focus_recommendations"
	FeatureTeamAnalytics       Feature = "team_analytics"
	FeatureSharedFocusSessions Feature = "shared_focus_sessions"
	FeatureCustomIntegrations  Feature = "custom_integrations"
	FeaturePrioritySupport     Feature = "priority_support"
	FeatureAdminDashboard      Feature = "admin_dashboard"
	FeatureTeamCollaboration   Feature = "team_collaboration"
)

// FreeDailySessionCap is the number of focus sessions a free-tier user may
// start per UTC calendar day.
const FreeDailySessionCap = 5

// SessionLimitUpgradeMessage is shown when a free-tier user hits the daily cap.
const SessionLimitUpgradeMessage = "You have reached the free daily limit of 5 focus sessions. Upgrade to Pro for unlimited sessions."

// featureSet is an immutable set of features owned by a tier.
type featureSet map[Feature]struct{}

func newFeatureSet(features ...Feature) featureSet {
	s := make(featureSet, len(features))
	for _, f := range features {
		s[f] = struct{}{}
	}
	return s
}

// union returns a new set containing everything in s plus extra. Tier sets
// are built by union so free ⊂ pro ⊂ team ⊂ enterprise holds by construction.
func (s featureSet) union(extra ...Feature) featureSet {
	out := make(featureSet, len(s)+len(extra))
	for f := range s {
		out[f] = struct{}{}
	}
	for _, f := range extra {
		out[f] = struct{}{}
	}
	return out
}

var (
	freeFeatures = newFeatureSet(
		FeatureBasicFocusTracking,
		FeatureCalendarView,
	)
	proFeatures = freeFeatures.union(
		FeatureAICoach,
		FeatureAIProductivityCoach,
		FeatureAdvancedAnalytics,
		FeatureGoogleCalendar,
		FeatureMicrosoftCalendar,
		FeatureFocusRecommendation,
	)
	teamFeatures = proFeatures.union(
		FeatureTeamAnalytics,
		FeatureSharedFocusSessions,
		FeatureTeamCollaboration,
	)
	enterpriseFeatures = teamFeatures.union(
		FeatureCustomIntegrations,
		FeaturePrioritySupport,
		FeatureAdminDashboard,
	)
)

var tierFeatures = map[Tier]featureSet{
	TierFree:       freeFeatures,
	TierPro:        proFeatures,
	TierTeam:       teamFeatures,
	TierEnterprise: enterpriseFeatures,
}

// TierAllows reports whether the given tier includes the feature. Pure table
// lookup: no storage, no side effects. Unknown tiers behave as free.
func TierAllows(tier Tier, f Feature) bool {
	set, ok := tierFeatures[tier]
	if !ok {
		set = tierFeatures[TierFree]
	}
	_, allowed := set[f]
	return allowed
}

// DailySessionLimit returns the per-day session-start cap for a tier.
// Zero means unlimited.
func DailySessionLimit(tier Tier) int {
	if ParseTier(string(tier)) == TierFree {
		return FreeDailySessionCap
	}
	return 0
}

// Plan is the displayable summary of a subscription tier.
type Plan struct {
	Tier        Tier      `json:"tier"`
	DisplayName string    `json:"display_name"`
	Features    []Feature `json:"features"`
}

var tierDisplayNames = map[Tier]string{
	TierFree:       "Free",
	TierPro:        "Pro",
	TierTeam:       "Team",
	TierEnterprise: "Enterprise",
}

// PlanInfo returns the plan summary for a tier, with its feature list sorted
// for stable output.
func PlanInfo(tier Tier) Plan {
	tier = ParseTier(string(tier))
	set := tierFeatures[tier]
	features := make([]Feature, 0, len(set))
	for f := range set {
		features = append(features, f)
	}
	sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })
	return Plan{Tier: tier, DisplayName: tierDisplayNames[tier], Features: features}
}

var upgradeMessages = map[Feature]string{
	FeatureAICoach:             "Upgrade to Pro to chat with your AI productivity coach.",
	FeatureAIProductivityCoach: "Upgrade to Pro to chat with your AI productivity coach.",
	FeatureAdvancedAnalytics:   "Upgrade to Pro to unlock advanced analytics.",
	FeatureGoogleCalendar:      "Upgrade to Pro to connect Google Calendar.",
	FeatureMicrosoftCalendar:   "Upgrade to Pro to connect Microsoft Calendar.",
	FeatureFocusRecommendation: "Upgrade to Pro for personalised focus recommendations.",
	FeatureTeamAnalytics:       "Upgrade to Team to see analytics across your whole team.",
	FeatureSharedFocusSessions: "Upgrade to Team to run shared focus sessions.",
	FeatureTeamCollaboration:   "Upgrade to Team to collaborate with your team.",
	FeatureCustomIntegrations:  "Upgrade to Enterprise to build custom integrations.",
	FeaturePrioritySupport:     "Upgrade to Enterprise for priority support.",
	FeatureAdminDashboard:      "Upgrade to Enterprise for the admin dashboard.",
}

// UpgradeMessage returns a human-readable upgrade prompt for a gated feature.
func UpgradeMessage(f Feature) string {
	if msg, ok := upgradeMessages[f]; ok {
		return msg
	}
	return "Upgrade your plan to unlock this feature."
}

// Resolver answers entitlement questions for concrete users. The admin
// allow-list comes from configuration, never from a literal embedded in code;
// an allow-listed email resolves true for every feature regardless of tier.
type Resolver struct {
	adminEmails map[string]struct{}
}

// NewResolver builds a Resolver from the configured admin allow-list.
func NewResolver(adminEmails []string) *Resolver {
	allow := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			allow[e] = struct{}{}
		}
	}
	return &Resolver{adminEmails: allow}
}

// IsAdminListed reports whether the email is on the admin allow-list.
func (r *Resolver) IsAdminListed(email string) bool {
	_, ok := r.adminEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// HasAccess reports whether a user may use a feature. Pure decision: side
// effects (quota charges, alerts) happen only after this check passes.
func (r *Resolver) HasAccess(email string, tier Tier, f Feature) bool {
	if r.IsAdminListed(email) {
		return true
	}
	return TierAllows(ParseTier(string(tier)), f)
}
