package usnat

import (
	"encoding/json"
	"errors"
	"testing"

	gpplib "github.com/prebid/go-gpp"
	gppConstants "github.com/prebid/go-gpp/constants"
	"github.com/prebid/go-gpp/sections/uspnat"
	"github.com/prebid/go-gpp/sections/uspva"
	"github.com/stretchr/testify/assert"

	"github.com/clearbid/clearbid-server/config"
	"github.com/clearbid/clearbid-server/errortypes"
	"github.com/clearbid/clearbid-server/metrics"
	"github.com/clearbid/clearbid-server/privacy"
	"github.com/clearbid/clearbid-server/privacy/gpp"
)

func usnatContext(activity privacy.Activity, gppCtx gpp.Context, moduleConfig string) *privacy.CreationContext {
	module := config.AccountPrivacyModule{Code: string(privacy.ModuleUSNat)}
	if moduleConfig != "" {
		module.Config = json.RawMessage(moduleConfig)
	}

	return privacy.NewCreationContext(activity, gppCtx, []config.AccountPrivacyModule{module})
}

func modelWithUSNat(section uspnat.USPNAT) gpp.Model {
	container := gpplib.GppContainer{
		Version:      1,
		SectionTypes: []gppConstants.SectionID{gppConstants.SectionUSPNAT},
		Sections:     []gpplib.Section{section},
	}
	return gpp.NewModel(&container)
}

func TestCreatorQualifier(t *testing.T) {
	creator := NewCreator(&metrics.NilMetricsEngine{})
	assert.Equal(t, privacy.ModuleUSNat, creator.Qualifier())
}

func TestCreatorFromModuleNotConfigured(t *testing.T) {
	creator := NewCreator(&metrics.NilMetricsEngine{})
	ctx := privacy.NewCreationContext(privacy.ActivityFetchBids, gpp.Context{}, nil)

	rule, err := creator.From(ctx)

	assert.NoError(t, err)
	assert.Equal(t, privacy.ActivityAbstain, rule.Evaluate(privacy.ActivityCallPayload{}))
}

func TestCreatorFromInvalidModuleConfig(t *testing.T) {
	metricsEngine := &metrics.MetricsEngineMock{}
	metricsEngine.On("RecordAlert", metrics.AlertGeneral).Once()
	creator := NewCreator(metricsEngine)

	rule, err := creator.From(usnatContext(privacy.ActivityFetchBids, gpp.Context{}, `{"skipSids":"oops"}`))

	assert.Nil(t, rule)
	var configErr *errortypes.AccountConfig
	assert.True(t, errors.As(err, &configErr))
	metricsEngine.AssertExpectations(t)
}

func TestCreatorFromSectionAbsentAbstains(t *testing.T) {
	creator := NewCreator(&metrics.NilMetricsEngine{})
	ctx := usnatContext(privacy.ActivityFetchBids, gpp.NewContext(gpp.Model{}, []int8{7}), "")

	rule, err := creator.From(ctx)

	assert.NoError(t, err)
	assert.Equal(t, privacy.ActivityAbstain, rule.Evaluate(privacy.ActivityCallPayload{}))
}

func TestCreatorFromVerdicts(t *testing.T) {
	testCases := []struct {
		name     string
		activity privacy.Activity
		section  func() uspnat.USPNAT
		expected privacy.ActivityResult
	}{
		{
			name:     "no_opt_outs_allow",
			activity: privacy.ActivityFetchBids,
			section: func() uspnat.USPNAT {
				var s uspnat.USPNAT
				s.CoreSegment.Version = 1
				return s
			},
			expected: privacy.ActivityAllow,
		},
		{
			name:     "service_provider_mode_denies",
			activity: privacy.ActivityFetchBids,
			section: func() uspnat.USPNAT {
				var s uspnat.USPNAT
				s.CoreSegment.Version = 1
				s.CoreSegment.MspaServiceProviderMode = 1
				return s
			},
			expected: privacy.ActivityDeny,
		},
		{
			name:     "gpc_denies",
			activity: privacy.ActivityFetchBids,
			section: func() uspnat.USPNAT {
				var s uspnat.USPNAT
				s.CoreSegment.Version = 1
				s.Value = "core.gpc"
				s.GPCSegment.Gpc = true
				return s
			},
			expected: privacy.ActivityDeny,
		},
		{
			name:     "sale_opt_out_denies",
			activity: privacy.ActivityFetchBids,
			section: func() uspnat.USPNAT {
				var s uspnat.USPNAT
				s.CoreSegment.Version = 1
				s.CoreSegment.SaleOptOut = 1
				return s
			},
			expected: privacy.ActivityDeny,
		},
		{
			name:     "sale_opt_out_not_exercised_allows",
			activity: privacy.ActivityFetchBids,
			section: func() uspnat.USPNAT {
				var s uspnat.USPNAT
				s.CoreSegment.Version = 1
				s.CoreSegment.SaleOptOut = 2
				return s
			},
			expected: privacy.ActivityAllow,
		},
		{
			name:     "sharing_opt_out_denies",
			activity: privacy.ActivityFetchBids,
			section: func() uspnat.USPNAT {
				var s uspnat.USPNAT
				s.CoreSegment.Version = 1
				s.CoreSegment.SharingOptOut = 1
				return s
			},
			expected: privacy.ActivityDeny,
		},
		{
			name:     "targeted_advertising_opt_out_denies",
			activity: privacy.ActivityFetchBids,
			section: func() uspnat.USPNAT {
				var s uspnat.USPNAT
				s.CoreSegment.Version = 1
				s.CoreSegment.TargetedAdvertisingOptOut = 1
				return s
			},
			expected: privacy.ActivityDeny,
		},
		{
			name:     "known_child_consent_denies",
			activity: privacy.ActivityFetchBids,
			section: func() uspnat.USPNAT {
				var s uspnat.USPNAT
				s.CoreSegment.Version = 1
				s.CoreSegment.KnownChildSensitiveDataConsents = []byte{0, 1}
				return s
			},
			expected: privacy.ActivityDeny,
		},
		{
			name:     "personal_data_consent_denies_user_fpd",
			activity: privacy.ActivityTransmitUserFPD,
			section: func() uspnat.USPNAT {
				var s uspnat.USPNAT
				s.CoreSegment.Version = 1
				s.CoreSegment.PersonalDataConsents = 2
				return s
			},
			expected: privacy.ActivityDeny,
		},
		{
			name:     "personal_data_consent_ignored_for_fetch_bids",
			activity: privacy.ActivityFetchBids,
			section: func() uspnat.USPNAT {
				var s uspnat.USPNAT
				s.CoreSegment.Version = 1
				s.CoreSegment.PersonalDataConsents = 2
				return s
			},
			expected: privacy.ActivityAllow,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			creator := NewCreator(&metrics.NilMetricsEngine{})
			gppCtx := gpp.NewContext(modelWithUSNat(test.section()), []int8{7})

			rule, err := creator.From(usnatContext(test.activity, gppCtx, ""))

			assert.NoError(t, err)
			assert.Equal(t, test.expected, rule.Evaluate(privacy.ActivityCallPayload{}))
		})
	}
}

func TestCreatorFromSkipSIDs(t *testing.T) {
	var section uspnat.USPNAT
	section.CoreSegment.Version = 1
	section.CoreSegment.SaleOptOut = 1

	creator := NewCreator(&metrics.NilMetricsEngine{})
	gppCtx := gpp.NewContext(modelWithUSNat(section), []int8{7})

	rule, err := creator.From(usnatContext(privacy.ActivityFetchBids, gppCtx, `{"skipSids":[7]}`))

	assert.NoError(t, err)
	assert.Equal(t, privacy.ActivityAbstain, rule.Evaluate(privacy.ActivityCallPayload{}))
}

func TestCreatorFromUnsupportedScopeIgnored(t *testing.T) {
	// TCF EU in scope is not a US section and never contributes a verdict
	creator := NewCreator(&metrics.NilMetricsEngine{})
	gppCtx := gpp.NewContext(gpp.Model{}, []int8{2})

	rule, err := creator.From(usnatContext(privacy.ActivityFetchBids, gppCtx, ""))

	assert.NoError(t, err)
	assert.Equal(t, privacy.ActivityAbstain, rule.Evaluate(privacy.ActivityCallPayload{}))
}

func TestCreatorFromStateSectionNormalized(t *testing.T) {
	// Virginia's aggregate child consent signal denies through the mapped reader
	var section uspva.USPVA
	section.CoreSegment.Version = 1
	section.CoreSegment.KnownChildSensitiveDataConsents = []byte{2}

	container := gpplib.GppContainer{
		Version:      1,
		SectionTypes: []gppConstants.SectionID{gppConstants.SectionUSPVA},
		Sections:     []gpplib.Section{section},
	}
	gppCtx := gpp.NewContext(gpp.NewModel(&container), []int8{9})

	creator := NewCreator(&metrics.NilMetricsEngine{})
	rule, err := creator.From(usnatContext(privacy.ActivityFetchBids, gppCtx, ""))

	assert.NoError(t, err)
	assert.Equal(t, privacy.ActivityDeny, rule.Evaluate(privacy.ActivityCallPayload{}))
}
