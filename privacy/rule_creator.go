package privacy

import (
	"fmt"
	"strings"

	"github.com/clearbid/clearbid-server/config"
	"github.com/clearbid/clearbid-server/errortypes"
)

type ruleConfigKind int

const (
	ruleKindComponent ruleConfigKind = iota
	ruleKindConditions
	ruleKindGppSid
	ruleKindPrivacyModules
)

func (k ruleConfigKind) String() string {
	switch k {
	case ruleKindComponent:
		return "component"
	case ruleKindConditions:
		return "conditions"
	case ruleKindGppSid:
		return "gppSid"
	case ruleKindPrivacyModules:
		return "privacyModules"
	}

	return "unknown"
}

// ruleConfig is the tagged union of declarative rule shapes. Each shape is
// routed to the creator registered for its kind.
type ruleConfig interface {
	kind() ruleConfigKind
}

type componentRuleConfig struct {
	allow bool
	names []string
	types []string
}

func (componentRuleConfig) kind() ruleConfigKind { return ruleKindComponent }

type conditionsRuleConfig struct {
	allow     bool
	condition *config.ActivityCondition
}

func (conditionsRuleConfig) kind() ruleConfigKind { return ruleKindConditions }

type gppSidRuleConfig struct {
	allow bool
	sids  []int8
}

func (gppSidRuleConfig) kind() ruleConfigKind { return ruleKindGppSid }

type privacyModulesRuleConfig struct {
	patterns []string
}

func (privacyModulesRuleConfig) kind() ruleConfigKind { return ruleKindPrivacyModules }

// ruleConfigFrom classifies one account rule into its union shape. A rule
// selecting modules wins over condition shapes; a condition with only
// component or only section-id clauses gets its dedicated shape; everything
// else, including an absent condition, is a full conditions rule.
func ruleConfigFrom(r config.ActivityRule) ruleConfig {
	allow := activityRuleAllow(r.Allow)

	if len(r.PrivacyReg) > 0 {
		return privacyModulesRuleConfig{patterns: r.PrivacyReg}
	}

	if cond := r.Condition; cond != nil {
		hasComponent := len(cond.ComponentName) > 0 || len(cond.ComponentType) > 0
		hasGeo := len(cond.Geo) > 0
		hasSid := cond.GppSID != nil
		hasGpc := cond.Gpc != nil

		if hasComponent && !hasGeo && !hasSid && !hasGpc {
			return componentRuleConfig{allow: allow, names: cond.ComponentName, types: cond.ComponentType}
		}
		if hasSid && !hasComponent && !hasGeo && !hasGpc {
			return gppSidRuleConfig{allow: allow, sids: cond.GppSID}
		}
	}

	return conditionsRuleConfig{allow: allow, condition: r.Condition}
}

func activityRuleAllow(allow *bool) bool {
	if allow == nil {
		return defaultActivityResult
	}
	return *allow
}

// ruleCreator builds a Rule from the one configuration kind it handles.
// Receiving another kind is a wiring bug, reported as an internal error.
type ruleCreator interface {
	relatedKind() ruleConfigKind
	from(cfg ruleConfig, ctx *CreationContext) (Rule, error)
}

type ruleCreators map[ruleConfigKind]ruleCreator

func newRuleCreators(moduleCreators ModuleCreators) ruleCreators {
	return ruleCreators{
		ruleKindComponent:      componentRuleCreator{},
		ruleKindConditions:     conditionsRuleCreator{},
		ruleKindGppSid:         gppSidRuleCreator{},
		ruleKindPrivacyModules: privacyModulesRuleCreator{creators: moduleCreators},
	}
}

func (rc ruleCreators) buildRule(cfg ruleConfig, ctx *CreationContext) (Rule, error) {
	creator, ok := rc[cfg.kind()]
	if !ok {
		return nil, &errortypes.InternalError{
			Message: fmt.Sprintf("no rule creator registered for %s configuration", cfg.kind()),
		}
	}

	return creator.from(cfg, ctx)
}

func wrongConfigError(expected ruleConfigKind, cfg ruleConfig) error {
	return &errortypes.InternalError{
		Message: fmt.Sprintf("%s rule creator received %s configuration", expected, cfg.kind()),
	}
}

type componentRuleCreator struct{}

func (componentRuleCreator) relatedKind() ruleConfigKind { return ruleKindComponent }

func (componentRuleCreator) from(cfg ruleConfig, ctx *CreationContext) (Rule, error) {
	c, ok := cfg.(componentRuleConfig)
	if !ok {
		return nil, wrongConfigError(ruleKindComponent, cfg)
	}

	names, err := conditionToRuleComponentNames(c.names, c.types)
	if err != nil {
		return nil, err
	}

	return NewComponentRule(c.allow, names, c.types), nil
}

// conditionToRuleComponentNames resolves configured names against configured
// types: a dotted name is parsed as "type.name", an untyped name is crossed
// with every configured type, and with no types it defaults to bidder.
func conditionToRuleComponentNames(names []string, types []string) ([]Component, error) {
	components := []Component{}

	for _, name := range names {
		if strings.Contains(name, ".") {
			component, err := ParseComponent(name)
			if err != nil {
				return nil, err
			}
			components = append(components, component)
			continue
		}

		if len(types) == 0 {
			components = append(components, Component{Type: ComponentTypeBidder, Name: name})
			continue
		}

		for _, t := range types {
			components = append(components, Component{Type: t, Name: name})
		}
	}

	return components, nil
}

type conditionsRuleCreator struct{}

func (conditionsRuleCreator) relatedKind() ruleConfigKind { return ruleKindConditions }

// from builds up to three sub-rules, one per condition axis present in the
// configuration, AND-combined. Absent axes are omitted rather than built as
// always-matching rules, and an absent condition yields an empty AndRule.
func (conditionsRuleCreator) from(cfg ruleConfig, ctx *CreationContext) (Rule, error) {
	c, ok := cfg.(conditionsRuleConfig)
	if !ok {
		return nil, wrongConfigError(ruleKindConditions, cfg)
	}

	if c.condition == nil {
		return NewAndRule(), nil
	}

	var rules []Rule
	cond := c.condition

	if len(cond.ComponentName) > 0 || len(cond.ComponentType) > 0 {
		names, err := conditionToRuleComponentNames(cond.ComponentName, cond.ComponentType)
		if err != nil {
			return nil, err
		}
		rules = append(rules, NewComponentRule(c.allow, names, cond.ComponentType))
	}

	if len(cond.Geo) > 0 {
		rules = append(rules, NewGeoRule(c.allow, sidsMatch(cond.GppSID, ctx), cond.Geo))
	} else if cond.GppSID != nil {
		rules = append(rules, NewGppSidRule(c.allow, sidsMatch(cond.GppSID, ctx)))
	}

	if cond.Gpc != nil {
		rules = append(rules, NewGpcRule(c.allow, *cond.Gpc))
	}

	return NewAndRule(rules...), nil
}

// sidsMatch resolves a configured section-id filter against the request's
// consent scope at build time. No filter always matches; a filter requires a
// non-empty intersection with a non-empty scope.
func sidsMatch(configured []int8, ctx *CreationContext) bool {
	if configured == nil {
		return true
	}

	return ctx.Gpp.IntersectsScope(configured)
}

type gppSidRuleCreator struct{}

func (gppSidRuleCreator) relatedKind() ruleConfigKind { return ruleKindGppSid }

func (gppSidRuleCreator) from(cfg ruleConfig, ctx *CreationContext) (Rule, error) {
	c, ok := cfg.(gppSidRuleConfig)
	if !ok {
		return nil, wrongConfigError(ruleKindGppSid, cfg)
	}

	return NewGppSidRule(c.allow, sidsMatch(c.sids, ctx)), nil
}

type privacyModulesRuleCreator struct {
	creators ModuleCreators
}

func (privacyModulesRuleCreator) relatedKind() ruleConfigKind { return ruleKindPrivacyModules }

// from walks patterns in list order over the account's configured qualifiers.
// Qualifiers already consumed in this creation context, without a registered
// creator, or disabled are skipped silently; privacy configuration gaps must
// never abort the auction.
func (r privacyModulesRuleCreator) from(cfg ruleConfig, ctx *CreationContext) (Rule, error) {
	c, ok := cfg.(privacyModulesRuleConfig)
	if !ok {
		return nil, wrongConfigError(ruleKindPrivacyModules, cfg)
	}

	var rules []Rule
	for _, pattern := range c.patterns {
		for _, qualifier := range ctx.configuredQualifiers() {
			if !qualifier.MatchesPattern(pattern) {
				continue
			}
			if ctx.isUsed(qualifier) {
				continue
			}
			ctx.markUsed(qualifier)

			moduleConfig, _ := ctx.ModuleConfig(qualifier)
			if !moduleConfig.IsEnabled() {
				continue
			}

			creator, registered := r.creators[qualifier]
			if !registered {
				continue
			}

			rule, err := creator.From(ctx)
			if err != nil {
				return nil, err
			}
			if rule != nil {
				rules = append(rules, rule)
			}
		}
	}

	return NewAndRule(rules...), nil
}
