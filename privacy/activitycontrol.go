package privacy

import (
	"github.com/clearbid/clearbid-server/config"
	"github.com/clearbid/clearbid-server/privacy/gpp"
)

const defaultActivityResult = true

// ActivityControl holds the realized rule trees for every activity the
// account configured. Once built it is immutable and safe to share across
// goroutines.
type ActivityControl struct {
	plans map[Activity]ActivityPlan
}

// NewActivityControl builds one plan per configured activity. Each plan gets
// a fresh creation context so privacy module deduplication is scoped to one
// activity's rule tree. Invalid account configuration aborts the build.
func NewActivityControl(cfg *config.AccountPrivacy, gppCtx gpp.Context, moduleCreators ModuleCreators) (ActivityControl, error) {
	ac := ActivityControl{}

	if cfg == nil || cfg.AllowActivities == nil {
		return ac, nil
	}

	creators := newRuleCreators(moduleCreators)
	allowActivities := cfg.AllowActivities

	bindings := []struct {
		activity    Activity
		activityCfg config.Activity
	}{
		{ActivitySyncUser, allowActivities.SyncUser},
		{ActivityFetchBids, allowActivities.FetchBids},
		{ActivityEnrichUserFPD, allowActivities.EnrichUserFPD},
		{ActivityReportAnalytics, allowActivities.ReportAnalytics},
		{ActivityTransmitUserFPD, allowActivities.TransmitUserFPD},
		{ActivityTransmitPreciseGeo, allowActivities.TransmitPreciseGeo},
		{ActivityTransmitUniqueRequestIDs, allowActivities.TransmitUniqueRequestIds},
		{ActivityTransmitTIDs, allowActivities.TransmitTids},
	}

	plans := make(map[Activity]ActivityPlan, len(bindings))
	for _, binding := range bindings {
		plan, err := buildPlan(binding.activityCfg, binding.activity, gppCtx, cfg.Modules, creators)
		if err != nil {
			return ActivityControl{}, err
		}
		plans[binding.activity] = plan
	}
	ac.plans = plans

	return ac, nil
}

func buildPlan(activityCfg config.Activity, activity Activity, gppCtx gpp.Context, modules []config.AccountPrivacyModule, creators ruleCreators) (ActivityPlan, error) {
	ctx := NewCreationContext(activity, gppCtx, modules)

	rules := make([]Rule, 0, len(activityCfg.Rules))
	for _, ruleCfg := range activityCfg.Rules {
		rule, err := creators.buildRule(ruleConfigFrom(ruleCfg), ctx)
		if err != nil {
			return ActivityPlan{}, err
		}
		rules = append(rules, rule)
	}

	return ActivityPlan{
		defaultResult: activityDefaultToDefaultResult(activityCfg.Default),
		rules:         rules,
	}, nil
}

func activityDefaultToDefaultResult(activityDefault *bool) bool {
	if activityDefault == nil {
		return defaultActivityResult
	}
	return *activityDefault
}

// Allow resolves the activity's verdict for the call, with abstain falling
// back to the plan's default and unknown activities to the global default.
func (e ActivityControl) Allow(activity Activity, payload ActivityCallPayload) bool {
	plan, planDefined := e.plans[activity]

	if !planDefined {
		return defaultActivityResult
	}

	return plan.Allow(payload)
}

// Evaluate exposes the tri-state verdict before default resolution.
func (e ActivityControl) Evaluate(activity Activity, payload ActivityCallPayload) ActivityResult {
	plan, planDefined := e.plans[activity]

	if !planDefined {
		return ActivityAbstain
	}

	return plan.Evaluate(payload)
}

// ActivityPlan is the ordered rule list for one activity. The first rule with
// an opinion wins.
type ActivityPlan struct {
	defaultResult bool
	rules         []Rule
}

func (p ActivityPlan) Evaluate(payload ActivityCallPayload) ActivityResult {
	for _, rule := range p.rules {
		if result := rule.Evaluate(payload); result != ActivityAbstain {
			return result
		}
	}

	return ActivityAbstain
}

func (p ActivityPlan) Allow(payload ActivityCallPayload) bool {
	if result := p.Evaluate(payload); result != ActivityAbstain {
		return result == ActivityAllow
	}

	return p.defaultResult
}
