package usnat

import (
	"encoding/json"
	"fmt"

	"github.com/clearbid/clearbid-server/config"
	"github.com/clearbid/clearbid-server/errortypes"
	"github.com/clearbid/clearbid-server/metrics"
	"github.com/clearbid/clearbid-server/privacy"
	"github.com/clearbid/clearbid-server/privacy/usgpp"
	"github.com/clearbid/clearbid-server/util/sliceutil"
)

// Creator builds the built-in US opt-out module. It reads every applicable US
// section through the US-National mapped surface and denies the activity when
// the user opted out or the section forbids the transaction.
type Creator struct {
	metrics metrics.MetricsEngine
}

func NewCreator(metricsEngine metrics.MetricsEngine) *Creator {
	return &Creator{metrics: metricsEngine}
}

func (c *Creator) Qualifier() privacy.ModuleQualifier {
	return privacy.ModuleUSNat
}

func (c *Creator) From(ctx *privacy.CreationContext) (privacy.Rule, error) {
	moduleConfig, ok := ctx.ModuleConfig(c.Qualifier())
	if !ok {
		return module{result: privacy.ActivityAbstain}, nil
	}

	var cfg config.USNatModuleConfig
	if len(moduleConfig.Config) > 0 {
		if err := json.Unmarshal(moduleConfig.Config, &cfg); err != nil {
			c.metrics.RecordAlert(metrics.AlertGeneral)
			return nil, &errortypes.AccountConfig{
				Message: fmt.Sprintf("invalid %s module configuration: %v", c.Qualifier(), err),
			}
		}
	}

	// consent data is fixed for the request, the verdict folds at build time
	result := privacy.ActivityAbstain
	for _, sid := range ctx.Gpp.SectionIDs() {
		if !sliceutil.Contains(usgpp.SupportedSIDs(), int8(sid)) {
			continue
		}
		if sliceutil.Contains(cfg.SkipSIDs, int8(sid)) {
			continue
		}

		reader, err := usgpp.ForSection(sid, true, ctx.Gpp.Model())
		if err != nil {
			continue
		}

		switch verdict(ctx.Activity, reader) {
		case privacy.ActivityDeny:
			return module{result: privacy.ActivityDeny}, nil
		case privacy.ActivityAllow:
			result = privacy.ActivityAllow
		}
	}

	return module{result: result}, nil
}

// verdict evaluates one section's opt-out signals for the activity. A section
// missing from the consent string abstains.
func verdict(activity privacy.Activity, r usgpp.Reader) privacy.ActivityResult {
	if r.Value(usgpp.FieldVersion) == nil {
		return privacy.ActivityAbstain
	}

	if intEquals(r, usgpp.FieldMspaServiceProviderMode, 1) {
		return privacy.ActivityDeny
	}
	if boolEquals(r, usgpp.FieldGpc, true) {
		return privacy.ActivityDeny
	}
	if intEquals(r, usgpp.FieldSaleOptOut, 1) ||
		intEquals(r, usgpp.FieldSharingOptOut, 1) ||
		intEquals(r, usgpp.FieldTargetedAdvertisingOptOut, 1) {
		return privacy.ActivityDeny
	}
	for _, consent := range r.Ints(usgpp.FieldKnownChildSensitiveDataConsents) {
		if consent != 0 {
			return privacy.ActivityDeny
		}
	}

	switch activity {
	case privacy.ActivitySyncUser,
		privacy.ActivityEnrichUserFPD,
		privacy.ActivityTransmitUserFPD,
		privacy.ActivityTransmitPreciseGeo:
		if intEquals(r, usgpp.FieldPersonalDataConsents, 2) {
			return privacy.ActivityDeny
		}
	}

	return privacy.ActivityAllow
}

func intEquals(r usgpp.Reader, field usgpp.Field, expected int) bool {
	v := r.Int(field)
	return v != nil && *v == expected
}

func boolEquals(r usgpp.Reader, field usgpp.Field, expected bool) bool {
	v := r.Bool(field)
	return v != nil && *v == expected
}

// module carries the folded verdict for the activity it was built for.
type module struct {
	result privacy.ActivityResult
}

func (m module) Evaluate(payload privacy.ActivityCallPayload) privacy.ActivityResult {
	return m.result
}
