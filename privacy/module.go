package privacy

import (
	"sort"
	"strings"

	"github.com/clearbid/clearbid-server/config"
	"github.com/clearbid/clearbid-server/privacy/gpp"
)

// ModuleQualifier is the identity of one pluggable compliance module, matched
// against account configured patterns by exact name or a single trailing *.
type ModuleQualifier string

const (
	ModuleUSNat         ModuleQualifier = "iab.usnat"
	ModuleUSCustomLogic ModuleQualifier = "iab.uscustomlogic"
)

func (q ModuleQualifier) String() string {
	return string(q)
}

// MatchesPattern reports whether the qualifier's module name matches an exact
// pattern or a trailing-* prefix pattern.
func (q ModuleQualifier) MatchesPattern(pattern string) bool {
	if prefix, found := strings.CutSuffix(pattern, "*"); found {
		return strings.HasPrefix(string(q), prefix)
	}

	return string(q) == pattern
}

// ModuleCreator builds the Rule for one privacy module from a creation
// context. Creators are wired once at startup and must tolerate concurrent
// From calls for different contexts.
type ModuleCreator interface {
	Qualifier() ModuleQualifier
	From(ctx *CreationContext) (Rule, error)
}

// ModuleCreators is the registry of available module implementations.
type ModuleCreators map[ModuleQualifier]ModuleCreator

// CreationContext is scoped to building the rule tree for one activity of one
// account. The used set guarantees a physical module is applied at most once
// even when several rule configs select it, directly or via wildcard. It is
// mutated single-threaded during one build and must not be reused.
type CreationContext struct {
	Activity      Activity
	Gpp           gpp.Context
	moduleConfigs map[ModuleQualifier]config.AccountPrivacyModule
	used          map[ModuleQualifier]struct{}
}

func NewCreationContext(activity Activity, gppCtx gpp.Context, modules []config.AccountPrivacyModule) *CreationContext {
	moduleConfigs := make(map[ModuleQualifier]config.AccountPrivacyModule, len(modules))
	for _, m := range modules {
		moduleConfigs[ModuleQualifier(m.Code)] = m
	}

	return &CreationContext{
		Activity:      activity,
		Gpp:           gppCtx,
		moduleConfigs: moduleConfigs,
		used:          make(map[ModuleQualifier]struct{}),
	}
}

// ModuleConfig returns the account's configuration for the qualifier.
func (c *CreationContext) ModuleConfig(qualifier ModuleQualifier) (config.AccountPrivacyModule, bool) {
	moduleConfig, ok := c.moduleConfigs[qualifier]
	return moduleConfig, ok
}

// configuredQualifiers returns the account's module qualifiers sorted by name
// so pattern scans stay deterministic.
func (c *CreationContext) configuredQualifiers() []ModuleQualifier {
	qualifiers := make([]ModuleQualifier, 0, len(c.moduleConfigs))
	for qualifier := range c.moduleConfigs {
		qualifiers = append(qualifiers, qualifier)
	}
	sort.Slice(qualifiers, func(i, j int) bool { return qualifiers[i] < qualifiers[j] })
	return qualifiers
}

func (c *CreationContext) isUsed(qualifier ModuleQualifier) bool {
	_, ok := c.used[qualifier]
	return ok
}

func (c *CreationContext) markUsed(qualifier ModuleQualifier) {
	c.used[qualifier] = struct{}{}
}
