package config

import (
	"encoding/json"
)

// Account represents a publisher account configuration
type Account struct {
	ID       string         `mapstructure:"id" json:"id"`
	Disabled bool           `mapstructure:"disabled" json:"disabled"`
	Privacy  AccountPrivacy `mapstructure:"privacy" json:"privacy"`
}

// AccountPrivacy holds the account's activity gating configuration and the
// privacy modules available to its rules.
type AccountPrivacy struct {
	AllowActivities *AllowActivities       `mapstructure:"allowactivities" json:"allowactivities"`
	Modules         []AccountPrivacyModule `mapstructure:"modules" json:"modules"`
}

// AccountPrivacyModule is one configured privacy module. Code is the module
// qualifier name, Config the module specific configuration left opaque here
// and decoded by the module's creator.
type AccountPrivacyModule struct {
	Code    string          `mapstructure:"code" json:"code"`
	Enabled *bool           `mapstructure:"enabled" json:"enabled"`
	Config  json.RawMessage `mapstructure:"config" json:"config"`
}

// IsEnabled treats an unset flag as enabled.
func (m AccountPrivacyModule) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

type AllowActivities struct {
	SyncUser                 Activity `mapstructure:"syncUser" json:"syncUser"`
	FetchBids                Activity `mapstructure:"fetchBids" json:"fetchBids"`
	EnrichUserFPD            Activity `mapstructure:"enrichUfpd" json:"enrichUfpd"`
	ReportAnalytics          Activity `mapstructure:"reportAnalytics" json:"reportAnalytics"`
	TransmitUserFPD          Activity `mapstructure:"transmitUfpd" json:"transmitUfpd"`
	TransmitPreciseGeo       Activity `mapstructure:"transmitPreciseGeo" json:"transmitPreciseGeo"`
	TransmitUniqueRequestIds Activity `mapstructure:"transmitUniqueRequestIds" json:"transmitUniqueRequestIds"`
	TransmitTids             Activity `mapstructure:"transmitTid" json:"transmitTid"`
}

type Activity struct {
	Default *bool          `mapstructure:"default" json:"default"`
	Rules   []ActivityRule `mapstructure:"rules" json:"rules"`
}

// ActivityRule is one declarative rule. Exactly one shape applies: a rule with
// PrivacyReg set selects privacy modules by name pattern, otherwise the
// condition object (possibly absent) drives a predicate rule.
type ActivityRule struct {
	Allow      *bool              `mapstructure:"allow" json:"allow"`
	Condition  *ActivityCondition `mapstructure:"condition" json:"condition"`
	PrivacyReg []string           `mapstructure:"privacyreg" json:"privacyreg"`
}

type ActivityCondition struct {
	ComponentName []string `mapstructure:"componentName" json:"componentName"`
	ComponentType []string `mapstructure:"componentType" json:"componentType"`
	GppSID        []int8   `mapstructure:"gppSid" json:"gppSid"`
	Geo           []string `mapstructure:"geo" json:"geo"`
	Gpc           *bool    `mapstructure:"gpc" json:"gpc"`
}

// USNatModuleConfig configures the built-in US national opt-out module.
type USNatModuleConfig struct {
	SkipSIDs []int8 `mapstructure:"skipSids" json:"skipSids"`
}

// USCustomLogicModuleConfig configures the account-authored logic module.
// NormalizeSections defaults to true when unset.
type USCustomLogicModuleConfig struct {
	SIDs              []int8                        `mapstructure:"sids" json:"sids"`
	NormalizeSections *bool                         `mapstructure:"normalizeSections" json:"normalizeSections"`
	ActivityConfig    []USCustomLogicActivityConfig `mapstructure:"activityConfig" json:"activityConfig"`
}

type USCustomLogicActivityConfig struct {
	Activities     []string        `mapstructure:"activities" json:"activities"`
	RestrictIfTrue *bool           `mapstructure:"restrictIfTrue" json:"restrictIfTrue"`
	Logic          json.RawMessage `mapstructure:"logic" json:"logic"`
}
