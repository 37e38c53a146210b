package modules

import (
	"github.com/clearbid/clearbid-server/jsonlogic"
	"github.com/clearbid/clearbid-server/metrics"
	"github.com/clearbid/clearbid-server/privacy"
	"github.com/clearbid/clearbid-server/privacy/modules/uscustomlogic"
	"github.com/clearbid/clearbid-server/privacy/modules/usnat"
)

// Creators wires the built-in privacy module implementations, keyed by
// qualifier for pattern based selection.
func Creators(jsonLogic jsonlogic.Evaluator, metricsEngine metrics.MetricsEngine) privacy.ModuleCreators {
	creators := []privacy.ModuleCreator{
		usnat.NewCreator(metricsEngine),
		uscustomlogic.NewCreator(jsonLogic, metricsEngine),
	}

	wired := make(privacy.ModuleCreators, len(creators))
	for _, creator := range creators {
		wired[creator.Qualifier()] = creator
	}

	return wired
}
