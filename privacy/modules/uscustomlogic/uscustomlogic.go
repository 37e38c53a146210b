package uscustomlogic

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/glog"
	gocache "github.com/patrickmn/go-cache"
	gppConstants "github.com/prebid/go-gpp/constants"

	"github.com/clearbid/clearbid-server/config"
	"github.com/clearbid/clearbid-server/errortypes"
	"github.com/clearbid/clearbid-server/jsonlogic"
	"github.com/clearbid/clearbid-server/metrics"
	"github.com/clearbid/clearbid-server/privacy"
	"github.com/clearbid/clearbid-server/privacy/usgpp"
	"github.com/clearbid/clearbid-server/util/sliceutil"
)

const (
	nodeCacheExpiration      = 10 * time.Minute
	nodeCacheCleanupInterval = 15 * time.Minute
)

// Creator builds the account-authored logic module: a per-activity boolean
// expression evaluated against the uniform consent signal surface of every
// applicable US section.
type Creator struct {
	jsonLogic jsonlogic.Evaluator
	metrics   metrics.MetricsEngine
	nodes     *gocache.Cache
}

func NewCreator(jsonLogic jsonlogic.Evaluator, metricsEngine metrics.MetricsEngine) *Creator {
	return &Creator{
		jsonLogic: jsonLogic,
		metrics:   metricsEngine,
		nodes:     gocache.New(nodeCacheExpiration, nodeCacheCleanupInterval),
	}
}

func (c *Creator) Qualifier() privacy.ModuleQualifier {
	return privacy.ModuleUSCustomLogic
}

// From realizes the module for one activity build. When the request scope
// carries none of the module's sections, or the activity has no configured
// expression, the module abstains without touching the readers or the
// expression engine. A malformed expression is an account configuration
// error: it aborts the build and raises a general alert.
func (c *Creator) From(ctx *privacy.CreationContext) (privacy.Rule, error) {
	moduleConfig, ok := ctx.ModuleConfig(c.Qualifier())
	if !ok {
		return abstainModule{}, nil
	}

	var cfg config.USCustomLogicModuleConfig
	if len(moduleConfig.Config) > 0 {
		if err := json.Unmarshal(moduleConfig.Config, &cfg); err != nil {
			c.metrics.RecordAlert(metrics.AlertGeneral)
			return nil, &errortypes.AccountConfig{
				Message: fmt.Sprintf("invalid %s module configuration: %v", c.Qualifier(), err),
			}
		}
	}

	sids := applicableSIDs(ctx, cfg.SIDs)
	if len(sids) == 0 {
		return abstainModule{}, nil
	}

	activityConfig, found := activityConfigFor(ctx.Activity, cfg.ActivityConfig)
	if !found || len(activityConfig.Logic) == 0 {
		return abstainModule{}, nil
	}

	node, err := c.parse(activityConfig.Logic)
	if err != nil {
		c.metrics.RecordAlert(metrics.AlertGeneral)
		return nil, &errortypes.AccountConfig{
			Message: fmt.Sprintf("unable to parse %s logic for activity %s: %v", c.Qualifier(), ctx.Activity, err),
		}
	}

	normalizeSections := cfg.NormalizeSections == nil || *cfg.NormalizeSections

	sections := make([]map[string]any, 0, len(sids))
	for _, sid := range sids {
		reader, err := usgpp.ForSection(sid, normalizeSections, ctx.Gpp.Model())
		if err != nil {
			// configured sid without a reader, routine skip
			continue
		}
		sections = append(sections, reader.Facts())
	}
	if len(sections) == 0 {
		return abstainModule{}, nil
	}

	return module{
		jsonLogic:      c.jsonLogic,
		node:           node,
		restrictIfTrue: activityConfig.RestrictIfTrue == nil || *activityConfig.RestrictIfTrue,
		sections:       sections,
	}, nil
}

// parse caches parsed nodes by expression text so repeated builds of the same
// account logic skip re-parsing.
func (c *Creator) parse(raw json.RawMessage) (jsonlogic.Node, error) {
	key := string(raw)
	if cached, ok := c.nodes.Get(key); ok {
		return cached.(jsonlogic.Node), nil
	}

	node, err := c.jsonLogic.Parse(raw)
	if err != nil {
		return jsonlogic.Node{}, err
	}

	c.nodes.SetDefault(key, node)
	return node, nil
}

// applicableSIDs intersects the request's consent scope with the module's
// configured sections, in ascending sid order.
func applicableSIDs(ctx *privacy.CreationContext, configured []int8) []gppConstants.SectionID {
	var sids []gppConstants.SectionID
	for _, sid := range ctx.Gpp.SectionIDs() {
		if sliceutil.Contains(configured, int8(sid)) {
			sids = append(sids, sid)
		}
	}
	return sids
}

func activityConfigFor(activity privacy.Activity, configs []config.USCustomLogicActivityConfig) (config.USCustomLogicActivityConfig, bool) {
	for _, cfg := range configs {
		for _, name := range cfg.Activities {
			parsed, err := privacy.ParseActivity(name)
			if err != nil {
				// unknown activity names are tolerated, the entry may target
				// activities added in a newer release
				continue
			}
			if parsed == activity {
				return cfg, true
			}
		}
	}

	return config.USCustomLogicActivityConfig{}, false
}

type abstainModule struct{}

func (abstainModule) Evaluate(payload privacy.ActivityCallPayload) privacy.ActivityResult {
	return privacy.ActivityAbstain
}

// module applies the expression per section and combines the verdicts with
// most-restrictive-wins semantics.
type module struct {
	jsonLogic      jsonlogic.Evaluator
	node           jsonlogic.Node
	restrictIfTrue bool
	sections       []map[string]any
}

func (m module) Evaluate(payload privacy.ActivityCallPayload) privacy.ActivityResult {
	result := privacy.ActivityAbstain

	for _, facts := range m.sections {
		matched, err := m.jsonLogic.Evaluate(m.node, facts)
		if err != nil {
			glog.Warningf("us custom logic evaluation failed: %v", err)
			continue
		}

		if matched == m.restrictIfTrue {
			return privacy.ActivityDeny
		}
		result = privacy.ActivityAllow
	}

	return result
}
